package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// Macros holds macronutrient grams for a food item.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// NutritionFacts holds secondary nutrition values reported by the analyzer.
type NutritionFacts struct {
	Fiber    float64  `json:"fiber"`
	Sugar    float64  `json:"sugar"`
	Sodium   float64  `json:"sodium"`
	Vitamins []string `json:"vitamins,omitempty"`
}

// FoodItem is one recognised item of an analysed meal.
type FoodItem struct {
	Name           string          `json:"name"`
	Quantity       string          `json:"quantity,omitempty"`
	Calories       float64         `json:"calories"`
	Macros         *Macros         `json:"macros,omitempty"`
	Allergens      []string        `json:"allergens,omitempty"`
	NutritionFacts *NutritionFacts `json:"nutritionFacts,omitempty"`
}

// FoodAnalysis is the structured payload produced by the vision adapter.
type FoodAnalysis struct {
	FoodItems     []FoodItem `json:"foodItems"`
	TotalCalories float64    `json:"totalCalories"`
	MealType      string     `json:"mealType,omitempty"`
	HealthScore   float64    `json:"healthScore,omitempty"`
	Suggestions   []string   `json:"suggestions,omitempty"`
	Timestamp     string     `json:"timestamp,omitempty"`
}

// FoodAnalysisRecord is a persisted analysis owned by a user.
type FoodAnalysisRecord struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	UserID    string       `json:"userId" db:"user_id"`
	ImageURL  string       `json:"imageUrl" db:"image_url"`
	ImageKey  *string      `json:"imageKey,omitempty" db:"image_key"`
	Analysis  FoodAnalysis `json:"analysis" db:"analysis_data"`
	Date      string       `json:"date" db:"analysis_date"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
}

// AnalyzeRequest is the payload of POST /api/food/{userId}/analyze.
type AnalyzeRequest struct {
	ImageURL    string `json:"imageUrl,omitempty"`
	ImageBuffer string `json:"imageBuffer,omitempty"`
}

// DeviceUploadRequest is the payload of POST /api/esp32/upload.
type DeviceUploadRequest struct {
	AnalyzeRequest
	UserID string `json:"userId"`
}

// AnalyzeResult is returned after a successful analysis.
type AnalyzeResult struct {
	AnalysisID uuid.UUID    `json:"analysisId"`
	ImageURL   string       `json:"imageUrl"`
	Analysis   FoodAnalysis `json:"analysis"`
	SavedAt    time.Time    `json:"savedAt"`
}

// MacroTotals is the sum of calories and macros over a set of food items.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailySummary aggregates all analyses recorded on one date.
type DailySummary struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"totalCalories"`
	Macros        Macros  `json:"macros"`
	Meals         int     `json:"meals"`
}

// SumMacros totals calories and macros of items. Missing macros and
// non-finite values count as zero, so the result is never NaN.
func SumMacros(items []FoodItem) MacroTotals {
	var t MacroTotals
	for _, item := range items {
		t.Calories += finite(item.Calories)
		if item.Macros == nil {
			continue
		}
		t.Protein += finite(item.Macros.Protein)
		t.Carbs += finite(item.Macros.Carbs)
		t.Fat += finite(item.Macros.Fat)
	}
	return t
}

// Items flattens the food items of every record, preserving order.
func Items(records []FoodAnalysisRecord) []FoodItem {
	var items []FoodItem
	for _, r := range records {
		items = append(items, r.Analysis.FoodItems...)
	}
	return items
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
