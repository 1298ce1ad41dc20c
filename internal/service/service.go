package service

import (
	"context"

	"infinium/internal/model"
)

// Defaults applied when a request omits a value.
const (
	DefaultHistoryLimit     = 50
	DefaultPlanHistoryLimit = 10
	MaxLimit                = 500
	dietPlanHistoryRecords  = 14
)

// FoodService defines meal analysis and diet planning operations.
type FoodService interface {
	// Analyze stores the image when it is inline, analyses it and records the result.
	Analyze(ctx context.Context, userID string, req *model.AnalyzeRequest) (*model.AnalyzeResult, error)

	// History returns at most limit analyses, newest first.
	History(ctx context.Context, userID string, limit int) ([]model.FoodAnalysisRecord, error)

	// DailySummary totals every analysis of date (YYYY-MM-DD, empty for today).
	DailySummary(ctx context.Context, userID, date string) (*model.DailySummary, error)

	// GenerateDietPlan creates a new active plan of days days.
	GenerateDietPlan(ctx context.Context, userID string, days int) (*model.GenerateDietPlanResult, error)

	// ActiveDietPlan returns nil, nil when no plan is active.
	ActiveDietPlan(ctx context.Context, userID string) (*model.DietPlan, error)

	// DietPlanHistory returns at most limit plans, newest first.
	DietPlanHistory(ctx context.Context, userID string, limit int) ([]model.DietPlan, error)

	// Recommendations returns stored advice younger than a week or generates new advice.
	Recommendations(ctx context.Context, userID string) (*model.NutritionRecommendations, error)
}

// UserService defines profile and family operations.
type UserService interface {
	// SaveProfile creates or updates a profile. A missing ID creates a new user.
	SaveProfile(ctx context.Context, req *model.UserProfileRequest) (*model.UserProfile, error)

	// GetProfile fails with model.ErrUserNotFound when the user does not exist.
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)

	// AddFamilyMember validates and stores a new family member.
	AddFamilyMember(ctx context.Context, userID string, req *model.FamilyMemberRequest) (*model.FamilyMember, error)

	// FamilyMembers returns the user's family in insertion order.
	FamilyMembers(ctx context.Context, userID string) ([]model.FamilyMember, error)
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return model.ErrInvalidLimit
	}
	return nil
}
