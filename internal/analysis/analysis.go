// Package analysis turns meal photos into structured nutrition data and
// produces diet plans and recommendations through large language models.
package analysis

import (
	"context"
	"errors"

	"infinium/internal/model"
)

// ErrNoJSON is returned when a model response carries no JSON object.
var ErrNoJSON = errors.New("no JSON object in model response")

// Image is a meal photo. Data takes precedence over URL when both are set.
type Image struct {
	URL      string
	Data     []byte
	MIMEType string
}

// Analyzer extracts food items and nutrition values from a meal image.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, img Image) (*model.FoodAnalysis, error)
}

// Generator completes a text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Planner produces diet plans and nutrition recommendations for a profile.
type Planner interface {
	DietPlan(ctx context.Context, profile *model.UserProfile, history []model.FoodAnalysisRecord, days int) (*model.DietPlanContent, error)
	Recommendations(ctx context.Context, profile *model.UserProfile) (*model.NutritionRecommendations, error)
}
