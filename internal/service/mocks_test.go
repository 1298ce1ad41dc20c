package service

import (
	"context"
	"time"

	"infinium/internal/analysis"
	"infinium/internal/imagestore"
	"infinium/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

// MockFamilyRepository is a mock implementation of FamilyRepository.
type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) Create(ctx context.Context, member *model.FamilyMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockFamilyRepository) ListByUser(ctx context.Context, userID string) ([]model.FamilyMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FamilyMember), args.Error(1)
}

// MockFoodAnalysisRepository is a mock implementation of FoodAnalysisRepository.
type MockFoodAnalysisRepository struct {
	mock.Mock
}

func (m *MockFoodAnalysisRepository) Create(ctx context.Context, rec *model.FoodAnalysisRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockFoodAnalysisRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.FoodAnalysisRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodAnalysisRecord), args.Error(1)
}

func (m *MockFoodAnalysisRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]model.FoodAnalysisRecord, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodAnalysisRecord), args.Error(1)
}

// MockDietPlanRepository is a mock implementation of DietPlanRepository.
type MockDietPlanRepository struct {
	mock.Mock
}

func (m *MockDietPlanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDietPlanRepository) Deactivate(ctx context.Context, tx pgx.Tx, userID string) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

func (m *MockDietPlanRepository) Create(ctx context.Context, tx pgx.Tx, plan *model.DietPlan) error {
	args := m.Called(ctx, tx, plan)
	return args.Error(0)
}

func (m *MockDietPlanRepository) GetActive(ctx context.Context, userID string) (*model.DietPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) History(ctx context.Context, userID string, limit int) ([]model.DietPlan, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DietPlan), args.Error(1)
}

// MockRecommendationRepository is a mock implementation of RecommendationRepository.
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) Create(ctx context.Context, rec *model.RecommendationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecommendationRepository) Latest(ctx context.Context, userID string) (*model.RecommendationRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecommendationRecord), args.Error(1)
}

// MockAnalyzer is a mock implementation of analysis.Analyzer.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) AnalyzeImage(ctx context.Context, img analysis.Image) (*model.FoodAnalysis, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodAnalysis), args.Error(1)
}

// MockPlanner is a mock implementation of analysis.Planner.
type MockPlanner struct {
	mock.Mock
}

func (m *MockPlanner) DietPlan(ctx context.Context, profile *model.UserProfile, history []model.FoodAnalysisRecord, days int) (*model.DietPlanContent, error) {
	args := m.Called(ctx, profile, history, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DietPlanContent), args.Error(1)
}

func (m *MockPlanner) Recommendations(ctx context.Context, profile *model.UserProfile) (*model.NutritionRecommendations, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NutritionRecommendations), args.Error(1)
}

// MockStore is a mock implementation of imagestore.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, name string, data []byte, contentType string) (*imagestore.Object, error) {
	args := m.Called(ctx, name, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagestore.Object), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
