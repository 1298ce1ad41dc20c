package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"infinium/internal/model"

	"github.com/rs/zerolog"
)

const (
	defaultCalorieGoal = 2000
	recentIntakeMeals  = 7
)

// Advisor builds diet plans and recommendations on top of a text Generator.
type Advisor struct {
	gen    Generator
	logger zerolog.Logger
}

// NewAdvisor creates an Advisor using gen for completions.
func NewAdvisor(gen Generator, logger zerolog.Logger) *Advisor {
	return &Advisor{
		gen:    gen,
		logger: logger.With().Str("component", "advisor").Logger(),
	}
}

// DietPlan generates a days-long plan. history is expected newest first;
// only the most recent meals are described to the model.
func (a *Advisor) DietPlan(ctx context.Context, profile *model.UserProfile, history []model.FoodAnalysisRecord, days int) (*model.DietPlanContent, error) {
	calorieGoal := profile.CalorieGoal
	if calorieGoal <= 0 {
		calorieGoal = defaultCalorieGoal
	}

	prompt, err := dietPlanPrompt.Format(map[string]any{
		"days":         days,
		"calorieGoal":  calorieGoal,
		"fitnessGoal":  orDefault(profile.FitnessGoal, "maintain weight"),
		"allergies":    joinOr(profile.Allergies, "none"),
		"preferences":  joinOr(profile.DietaryPreferences, "none"),
		"age":          ageString(profile.Age),
		"gender":       orDefault(profile.Gender, "unspecified"),
		"recentIntake": recentIntake(history),
	})
	if err != nil {
		return nil, fmt.Errorf("formatting diet plan prompt: %w", err)
	}

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("diet plan generation failed: %w", err)
	}

	var plan model.DietPlanContent
	if err := decode(text, &plan); err != nil {
		a.logger.Warn().Err(err).Str("user_id", profile.ID).Msg("unparseable diet plan response")
		return nil, fmt.Errorf("diet plan generation failed: %w", err)
	}

	if plan.Plan.Duration == 0 {
		plan.Plan.Duration = days
	}
	if plan.Plan.TargetCalories == 0 {
		plan.Plan.TargetCalories = calorieGoal
	}

	a.logger.Debug().
		Str("user_id", profile.ID).
		Int("days", len(plan.Plan.Days)).
		Msg("diet plan generated")

	return &plan, nil
}

// Recommendations generates nutrition advice for profile.
func (a *Advisor) Recommendations(ctx context.Context, profile *model.UserProfile) (*model.NutritionRecommendations, error) {
	calorieGoal := profile.CalorieGoal
	if calorieGoal <= 0 {
		calorieGoal = defaultCalorieGoal
	}

	prompt, err := recommendationsPrompt.Format(map[string]any{
		"age":         ageString(profile.Age),
		"gender":      strings.ToLower(orDefault(profile.Gender, "person")),
		"fitnessGoal": orDefault(profile.FitnessGoal, "maintain weight"),
		"preferences": joinOr(profile.DietaryPreferences, "none"),
		"allergies":   joinOr(profile.Allergies, "none"),
		"calorieGoal": calorieGoal,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting recommendations prompt: %w", err)
	}

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("recommendations failed: %w", err)
	}

	var recs model.NutritionRecommendations
	if err := decode(text, &recs); err != nil {
		a.logger.Warn().Err(err).Str("user_id", profile.ID).Msg("unparseable recommendations response")
		return nil, fmt.Errorf("recommendations failed: %w", err)
	}

	return &recs, nil
}

// recentIntake renders one line per meal for the newest records.
func recentIntake(history []model.FoodAnalysisRecord) string {
	if len(history) == 0 {
		return "No recent data"
	}
	if len(history) > recentIntakeMeals {
		history = history[:recentIntakeMeals]
	}

	var b strings.Builder
	for _, rec := range history {
		names := make([]string, 0, len(rec.Analysis.FoodItems))
		for _, item := range rec.Analysis.FoodItems {
			names = append(names, item.Name)
		}
		total := rec.Analysis.TotalCalories
		if total == 0 {
			total = model.SumMacros(rec.Analysis.FoodItems).Calories
		}
		fmt.Fprintf(&b, "- %s (%s cal)\n", strings.Join(names, ", "), strconv.FormatFloat(total, 'f', -1, 64))
	}

	return strings.TrimRight(b.String(), "\n")
}

func ageString(age *int) string {
	if age == nil {
		return "unknown"
	}
	return strconv.Itoa(*age)
}
