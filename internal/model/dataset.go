package model

import "slices"

// Dataset is the client-side working set rendered by the dashboard.
type Dataset struct {
	User      UserProfile     `json:"user" yaml:"user"`
	Family    []FamilyMember  `json:"family" yaml:"family"`
	Alerts    []Alert         `json:"alerts" yaml:"alerts"`
	Inventory []InventoryItem `json:"inventory" yaml:"inventory"`
	Recipes   []Recipe        `json:"recipes" yaml:"recipes"`
	Shopping  []ShoppingItem  `json:"shoppingList" yaml:"shoppingList"`

	// Server-originated state, never read from seed files.
	FoodHistory  []FoodAnalysisRecord `json:"foodHistory,omitempty" yaml:"-"`
	LastAnalysis *AnalyzeResult       `json:"lastAnalysis,omitempty" yaml:"-"`
}

// Clone returns a copy whose collections can be reordered without touching d.
func (d Dataset) Clone() Dataset {
	out := d
	out.User.DietaryPreferences = slices.Clone(d.User.DietaryPreferences)
	out.User.Allergies = slices.Clone(d.User.Allergies)
	out.Family = slices.Clone(d.Family)
	out.Alerts = slices.Clone(d.Alerts)
	out.Inventory = slices.Clone(d.Inventory)
	out.Recipes = slices.Clone(d.Recipes)
	out.Shopping = slices.Clone(d.Shopping)
	out.FoodHistory = slices.Clone(d.FoodHistory)
	if d.LastAnalysis != nil {
		last := *d.LastAnalysis
		out.LastAnalysis = &last
	}
	return out
}
