package repository

import (
	"context"
	"time"

	"infinium/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines data access for user profiles.
type UserRepository interface {
	// Upsert inserts the profile or replaces the stored one with the same ID.
	Upsert(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error)

	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, id string) (*model.UserProfile, error)
}

// FamilyRepository defines data access for family members.
type FamilyRepository interface {
	// Create inserts a new family member.
	Create(ctx context.Context, member *model.FamilyMember) error

	// ListByUser returns the user's family members in insertion order.
	ListByUser(ctx context.Context, userID string) ([]model.FamilyMember, error)
}

// FoodAnalysisRepository defines data access for analysed meals.
type FoodAnalysisRepository interface {
	// Create inserts a new analysis record.
	Create(ctx context.Context, record *model.FoodAnalysisRecord) error

	// ListByUser returns at most limit records, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.FoodAnalysisRecord, error)

	// ListByDate returns every record of the given calendar date.
	ListByDate(ctx context.Context, userID string, date time.Time) ([]model.FoodAnalysisRecord, error)
}

// DietPlanRepository defines data access for generated diet plans.
type DietPlanRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Deactivate clears the active flag of every plan of the user within tx.
	Deactivate(ctx context.Context, tx pgx.Tx, userID string) error

	// Create inserts a plan within tx.
	Create(ctx context.Context, tx pgx.Tx, plan *model.DietPlan) error

	// GetActive returns nil, nil when the user has no active plan.
	GetActive(ctx context.Context, userID string) (*model.DietPlan, error)

	// History returns at most limit plans, newest first.
	History(ctx context.Context, userID string, limit int) ([]model.DietPlan, error)
}

// RecommendationRepository defines data access for nutrition recommendations.
type RecommendationRepository interface {
	// Create inserts a new recommendation record.
	Create(ctx context.Context, rec *model.RecommendationRecord) error

	// Latest returns nil, nil when no recommendations were stored.
	Latest(ctx context.Context, userID string) (*model.RecommendationRecord, error)
}
