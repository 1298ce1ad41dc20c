package model

// Severity and priority levels shared by alerts and shopping items.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

// Alert warns about an inventory item close to expiry.
type Alert struct {
	ID              int    `json:"id" yaml:"id"`
	Item            string `json:"item" yaml:"item"`
	Category        string `json:"category" yaml:"category"`
	ExpirationDate  string `json:"expirationDate" yaml:"expirationDate"`
	DaysUntilExpiry int    `json:"daysUntilExpiry" yaml:"daysUntilExpiry"`
	Severity        string `json:"severity" yaml:"severity"`
	Message         string `json:"message" yaml:"message"`
}

// Level returns the alert severity.
func (a Alert) Level() string { return a.Severity }

// InventoryItem is a stored food item with a freshness estimate.
type InventoryItem struct {
	ID              int    `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Category        string `json:"category" yaml:"category"`
	PurchaseDate    string `json:"purchaseDate" yaml:"purchaseDate"`
	ExpirationDate  string `json:"expirationDate" yaml:"expirationDate"`
	FreshnessScore  int    `json:"freshnessScore" yaml:"freshnessScore"`
	Quantity        string `json:"quantity" yaml:"quantity"`
	StorageLocation string `json:"storageLocation" yaml:"storageLocation"`
}

// SortKey returns the numeric value of a sortable field.
func (i InventoryItem) SortKey(field string) (float64, bool) {
	switch field {
	case "freshnessScore":
		return float64(i.FreshnessScore), true
	case "id":
		return float64(i.ID), true
	}
	return 0, false
}

// Recipe is a suggestion built from the current inventory.
type Recipe struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	PrepTime    string   `json:"prepTime" yaml:"prepTime"`
	Difficulty  string   `json:"difficulty" yaml:"difficulty"`
	MatchScore  int      `json:"matchScore" yaml:"matchScore"`
	Calories    int      `json:"calories" yaml:"calories"`
}

// SortKey returns the numeric value of a sortable field.
func (r Recipe) SortKey(field string) (float64, bool) {
	switch field {
	case "matchScore":
		return float64(r.MatchScore), true
	case "calories":
		return float64(r.Calories), true
	case "id":
		return float64(r.ID), true
	}
	return 0, false
}

// ShoppingItem is a suggested purchase.
type ShoppingItem struct {
	ID       int    `json:"id" yaml:"id"`
	Item     string `json:"item" yaml:"item"`
	Category string `json:"category" yaml:"category"`
	Priority string `json:"priority" yaml:"priority"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Level returns the shopping priority.
func (s ShoppingItem) Level() string { return s.Priority }
