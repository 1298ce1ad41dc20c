package dashboard

import (
	"slices"
	"sync"

	"infinium/internal/model"
)

// Store owns the dashboard dataset. Renders read snapshots, so a projection
// never observes a half-applied mutation.
type Store struct {
	mu   sync.RWMutex
	data model.Dataset
}

// NewStore creates a store holding ds.
func NewStore(ds model.Dataset) *Store {
	return &Store{data: ds.Clone()}
}

// Snapshot returns a copy of the current dataset.
func (s *Store) Snapshot() model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// ReplaceSeed swaps every seeded collection and the profile for those of ds.
// Food history and the last analysis come from the server and are kept.
func (s *Store) ReplaceSeed(ds model.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ds.Clone()
	next.FoodHistory = s.data.FoodHistory
	next.LastAnalysis = s.data.LastAnalysis
	s.data = next
}

// ReplaceFoodHistory replaces the whole food history collection.
func (s *Store) ReplaceFoodHistory(records []model.FoodAnalysisRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.FoodHistory = slices.Clone(records)
}

// SetLastAnalysis records the most recent analysis result.
func (s *Store) SetLastAnalysis(res *model.AnalyzeResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.LastAnalysis = res
}

// DismissAlert removes the alert with id and reports whether it existed.
func (s *Store) DismissAlert(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.data.Alerts)
	s.data.Alerts = slices.DeleteFunc(s.data.Alerts, func(a model.Alert) bool { return a.ID == id })
	return len(s.data.Alerts) != n
}

// AddFamilyMember appends m to the family collection.
func (s *Store) AddFamilyMember(m model.FamilyMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Family = append(s.data.Family, m)
}

// DeleteFamilyMember removes the member with id and reports whether it existed.
func (s *Store) DeleteFamilyMember(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.data.Family)
	s.data.Family = slices.DeleteFunc(s.data.Family, func(m model.FamilyMember) bool { return m.ID == id })
	return len(s.data.Family) != n
}

// SetCalorieGoal updates the profile calorie goal.
func (s *Store) SetCalorieGoal(goal int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.User.CalorieGoal = goal
}

// SetProfile replaces the user profile.
func (s *Store) SetProfile(p model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.User = p
}
