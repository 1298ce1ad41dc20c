package handler

import (
	"context"

	"infinium/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockFoodService is a mock implementation of FoodService.
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) Analyze(ctx context.Context, userID string, req *model.AnalyzeRequest) (*model.AnalyzeResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyzeResult), args.Error(1)
}

func (m *MockFoodService) History(ctx context.Context, userID string, limit int) ([]model.FoodAnalysisRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodAnalysisRecord), args.Error(1)
}

func (m *MockFoodService) DailySummary(ctx context.Context, userID, date string) (*model.DailySummary, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailySummary), args.Error(1)
}

func (m *MockFoodService) GenerateDietPlan(ctx context.Context, userID string, days int) (*model.GenerateDietPlanResult, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GenerateDietPlanResult), args.Error(1)
}

func (m *MockFoodService) ActiveDietPlan(ctx context.Context, userID string) (*model.DietPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DietPlan), args.Error(1)
}

func (m *MockFoodService) DietPlanHistory(ctx context.Context, userID string, limit int) ([]model.DietPlan, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DietPlan), args.Error(1)
}

func (m *MockFoodService) Recommendations(ctx context.Context, userID string) (*model.NutritionRecommendations, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NutritionRecommendations), args.Error(1)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SaveProfile(ctx context.Context, req *model.UserProfileRequest) (*model.UserProfile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserService) AddFamilyMember(ctx context.Context, userID string, req *model.FamilyMemberRequest) (*model.FamilyMember, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FamilyMember), args.Error(1)
}

func (m *MockUserService) FamilyMembers(ctx context.Context, userID string) ([]model.FamilyMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FamilyMember), args.Error(1)
}
