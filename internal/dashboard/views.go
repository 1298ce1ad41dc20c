package dashboard

import (
	"encoding/json"
	"slices"

	"infinium/internal/model"
)

// View names a full-screen dashboard section.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewAlerts       View = "alerts"
	ViewFreshness    View = "freshness"
	ViewRecipes      View = "recipes"
	ViewShopping     View = "shopping"
	ViewFamily       View = "family"
	ViewProfile      View = "profile"
	ViewFoodAnalysis View = "foodanalysis"
)

// CoreViews lists the views every controller knows, in navigation order.
var CoreViews = []View{
	ViewDashboard,
	ViewAlerts,
	ViewFreshness,
	ViewRecipes,
	ViewShopping,
	ViewFamily,
	ViewProfile,
}

// DashboardProjection is the overview data.
type DashboardProjection struct {
	HighSeverityAlertCount    int           `json:"highSeverityAlertCount"`
	LowFreshnessCount         int           `json:"lowFreshnessCount"`
	RecipeCount               int           `json:"recipeCount"`
	HighPriorityShoppingCount int           `json:"highPriorityShoppingCount"`
	TotalInventoryCount       int           `json:"totalInventoryCount"`
	DistinctCategoryCount     int           `json:"distinctCategoryCount"`
	RecentAlerts              []model.Alert `json:"recentAlerts"`
	AlertsBadge               int           `json:"alertsBadge"`
}

// FreshnessRow pairs an inventory item with its color class.
type FreshnessRow struct {
	Item       model.InventoryItem `json:"item"`
	ColorClass string              `json:"colorClass"`
}

// ProfileProjection is the profile view data.
type ProfileProjection struct {
	Profile     model.UserProfile `json:"profile"`
	CalorieGoal int               `json:"calorieGoal"`
}

// FoodAnalysisProjection is the meal history view data.
type FoodAnalysisProjection struct {
	History []model.FoodAnalysisRecord `json:"history"`
	Totals  model.MacroTotals          `json:"totals"`
	Last    *model.AnalyzeResult       `json:"last,omitempty"`
}

// Projection is what a render hands to the painter. Only the field matching
// View is set.
type Projection struct {
	View         View                           `json:"view"`
	Theme        string                         `json:"theme,omitempty"`
	Dashboard    *DashboardProjection           `json:"dashboard,omitempty"`
	Alerts       *Partition[model.Alert]        `json:"alerts,omitempty"`
	Freshness    []FreshnessRow                 `json:"freshness,omitempty"`
	Recipes      []model.Recipe                 `json:"recipes,omitempty"`
	Shopping     *Partition[model.ShoppingItem] `json:"shopping,omitempty"`
	Family       []model.FamilyMember           `json:"family,omitempty"`
	Profile      *ProfileProjection             `json:"profile,omitempty"`
	FoodAnalysis *FoodAnalysisProjection        `json:"foodAnalysis,omitempty"`
}

// MarshalJSON always emits the list of the projected view, as [] when it is
// empty, and omits the lists of other views.
func (p Projection) MarshalJSON() ([]byte, error) {
	type plain Projection
	out := struct {
		plain
		Freshness *[]FreshnessRow       `json:"freshness,omitempty"`
		Recipes   *[]model.Recipe       `json:"recipes,omitempty"`
		Family    *[]model.FamilyMember `json:"family,omitempty"`
	}{plain: plain(p)}

	switch p.View {
	case ViewFreshness:
		out.Freshness = nonNil(p.Freshness)
	case ViewRecipes:
		out.Recipes = nonNil(p.Recipes)
	case ViewFamily:
		out.Family = nonNil(p.Family)
	}
	return json.Marshal(out)
}

func nonNil[T any](s []T) *[]T {
	if s == nil {
		s = []T{}
	}
	return &s
}

// ProjectDashboard computes the overview of ds.
func ProjectDashboard(ds model.Dataset) DashboardProjection {
	high := CountBySeverity(ds.Alerts, model.LevelHigh)
	recent := ds.Alerts[:min(RecentAlertCount, len(ds.Alerts))]

	return DashboardProjection{
		HighSeverityAlertCount:    high,
		LowFreshnessCount:         CountByFreshnessThreshold(ds.Inventory, LowFreshnessThreshold),
		RecipeCount:               len(ds.Recipes),
		HighPriorityShoppingCount: len(PartitionByPriority(ds.Shopping).High),
		TotalInventoryCount:       len(ds.Inventory),
		DistinctCategoryCount:     DistinctCategories(ds.Inventory),
		RecentAlerts:              append([]model.Alert{}, recent...),
		AlertsBadge:               high,
	}
}

// ProjectFreshness sorts inventory by ascending freshness.
func ProjectFreshness(inventory []model.InventoryItem) []FreshnessRow {
	sorted := SortByField(inventory, "freshnessScore", Asc)
	rows := make([]FreshnessRow, len(sorted))
	for i, item := range sorted {
		rows[i] = FreshnessRow{Item: item, ColorClass: FreshnessColorClass(item.FreshnessScore)}
	}
	return rows
}

// ProjectFoodAnalysis lists history newest first with its macro totals.
func ProjectFoodAnalysis(ds model.Dataset) FoodAnalysisProjection {
	history := append([]model.FoodAnalysisRecord{}, ds.FoodHistory...)
	slices.SortStableFunc(history, func(a, b model.FoodAnalysisRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return FoodAnalysisProjection{
		History: history,
		Totals:  SumMacros(model.Items(history)),
		Last:    ds.LastAnalysis,
	}
}

// Project computes the projection of view over ds. ok is false for unknown views.
func Project(view View, ds model.Dataset) (p Projection, ok bool) {
	p.View = view

	switch view {
	case ViewDashboard:
		d := ProjectDashboard(ds)
		p.Dashboard = &d
	case ViewAlerts:
		alerts := PartitionByPriority(ds.Alerts)
		p.Alerts = &alerts
	case ViewFreshness:
		p.Freshness = ProjectFreshness(ds.Inventory)
	case ViewRecipes:
		p.Recipes = SortByField(ds.Recipes, "matchScore", Desc)
	case ViewShopping:
		shopping := PartitionByPriority(ds.Shopping)
		p.Shopping = &shopping
	case ViewFamily:
		p.Family = slices.Clone(ds.Family)
	case ViewProfile:
		p.Profile = &ProfileProjection{Profile: ds.User, CalorieGoal: ds.User.CalorieGoal}
	case ViewFoodAnalysis:
		f := ProjectFoodAnalysis(ds)
		p.FoodAnalysis = &f
	default:
		return p, false
	}

	return p, true
}
