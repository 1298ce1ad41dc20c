package model

import (
	"time"

	"github.com/google/uuid"
)

// Diet plan duration bounds in days.
const (
	DefaultPlanDays = 7
	MinPlanDays     = 1
	MaxPlanDays     = 30
)

// PlannedMeal is a single meal of a generated plan day.
type PlannedMeal struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Calories    float64  `json:"calories"`
	Macros      *Macros  `json:"macros,omitempty"`
	Preparation string   `json:"preparation,omitempty"`
}

// PlanDay groups the meals of one plan day.
type PlanDay struct {
	Day              int           `json:"day"`
	Meals            []PlannedMeal `json:"meals"`
	DayTotalCalories float64       `json:"dayTotalCalories"`
}

// PlanSchedule is the day-by-day part of a diet plan.
type PlanSchedule struct {
	Duration       int       `json:"duration"`
	TargetCalories int       `json:"targetCalories"`
	Days           []PlanDay `json:"days"`
}

// DietPlanContent is the generated diet plan document.
type DietPlanContent struct {
	Plan              PlanSchedule `json:"plan"`
	NutritionTips     []string     `json:"nutritionTips,omitempty"`
	HydrationReminder string       `json:"hydrationReminder,omitempty"`
	ExerciseAdvice    string       `json:"exerciseAdvice,omitempty"`
	WeeklyObjectives  []string     `json:"weeklyObjectives,omitempty"`
}

// DietPlan is a persisted diet plan.
type DietPlan struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	UserID       string          `json:"userId" db:"user_id"`
	Plan         DietPlanContent `json:"planData" db:"plan_data"`
	DurationDays int             `json:"durationDays" db:"duration_days"`
	IsActive     bool            `json:"isActive" db:"is_active"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}

// GenerateDietPlanRequest is the payload of POST /api/food/{userId}/diet-plan/generate.
type GenerateDietPlanRequest struct {
	DaysCount int `json:"daysCount"`
}

// GenerateDietPlanResult is returned after a plan was generated and stored.
type GenerateDietPlanResult struct {
	PlanID    uuid.UUID       `json:"planId"`
	Plan      DietPlanContent `json:"plan"`
	CreatedAt time.Time       `json:"createdAt"`
}
