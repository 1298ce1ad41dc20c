package model

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationTTL is how long stored recommendations are reused.
const RecommendationTTL = 7 * 24 * time.Hour

// MacroBreakdown is the recommended macronutrient split.
type MacroBreakdown struct {
	ProteinPercentage float64 `json:"proteinPercentage"`
	CarbsPercentage   float64 `json:"carbsPercentage"`
	FatPercentage     float64 `json:"fatPercentage"`
	Explanation       string  `json:"explanation,omitempty"`
}

// NutritionRecommendations is the generated advice for a user profile.
type NutritionRecommendations struct {
	MacroBreakdown        MacroBreakdown `json:"macroBreakdown"`
	EssentialNutrients    []string       `json:"essentialNutrients,omitempty"`
	FoodsToEmphasize      []string       `json:"foodsToEmphasize,omitempty"`
	FoodsToAvoid          []string       `json:"foodsToAvoid,omitempty"`
	MealTimingAdvice      string         `json:"mealTimingAdvice,omitempty"`
	SupplementSuggestions []string       `json:"supplementSuggestions,omitempty"`
}

// RecommendationRecord is a persisted set of recommendations.
type RecommendationRecord struct {
	ID        uuid.UUID                `json:"id" db:"id"`
	UserID    string                   `json:"userId" db:"user_id"`
	Data      NutritionRecommendations `json:"recommendationsData" db:"recommendations_data"`
	CreatedAt time.Time                `json:"createdAt" db:"created_at"`
}

// Fresh reports whether the record is younger than RecommendationTTL at now.
func (r *RecommendationRecord) Fresh(now time.Time) bool {
	return r != nil && now.Sub(r.CreatedAt) < RecommendationTTL
}
