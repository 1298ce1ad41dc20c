package dashboard

import (
	"cmp"
	"slices"

	"infinium/internal/model"
)

// Dashboard thresholds.
const (
	LowFreshnessThreshold = 50
	RecentAlertCount      = 3
)

// Freshness color classes. Each bucket includes its lower bound:
// [75,100] fresh, [50,75) aging, [25,50) stale, below 25 expiring.
const (
	ClassFresh    = "fresh"
	ClassAging    = "aging"
	ClassStale    = "stale"
	ClassExpiring = "expiring"
)

// Direction orders SortByField.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Leveled is implemented by items grouped by severity or priority.
type Leveled interface {
	Level() string
}

// Sortable is implemented by items with numeric sortable fields.
type Sortable interface {
	SortKey(field string) (float64, bool)
}

// Partition holds items grouped by level, each group in input order.
type Partition[T any] struct {
	High   []T `json:"high"`
	Medium []T `json:"medium"`
	Low    []T `json:"low"`
}

// Len returns the number of partitioned items.
func (p Partition[T]) Len() int {
	return len(p.High) + len(p.Medium) + len(p.Low)
}

// CountBySeverity counts alerts whose severity equals severity exactly.
func CountBySeverity(alerts []model.Alert, severity string) int {
	n := 0
	for _, a := range alerts {
		if a.Severity == severity {
			n++
		}
	}
	return n
}

// CountByFreshnessThreshold counts items scoring strictly below threshold.
func CountByFreshnessThreshold(inventory []model.InventoryItem, threshold int) int {
	n := 0
	for _, item := range inventory {
		if item.FreshnessScore < threshold {
			n++
		}
	}
	return n
}

// FreshnessColorClass buckets a freshness score.
func FreshnessColorClass(score int) string {
	switch {
	case score >= 75:
		return ClassFresh
	case score >= 50:
		return ClassAging
	case score >= 25:
		return ClassStale
	default:
		return ClassExpiring
	}
}

// SeverityBucket maps a severity or priority to its group. Unrecognised
// values fall into the low group.
func SeverityBucket(severity string) string {
	switch severity {
	case model.LevelHigh, model.LevelMedium:
		return severity
	default:
		return model.LevelLow
	}
}

// PartitionByPriority splits items into high, medium and low groups.
func PartitionByPriority[T Leveled](items []T) Partition[T] {
	p := Partition[T]{High: []T{}, Medium: []T{}, Low: []T{}}
	for _, item := range items {
		switch SeverityBucket(item.Level()) {
		case model.LevelHigh:
			p.High = append(p.High, item)
		case model.LevelMedium:
			p.Medium = append(p.Medium, item)
		default:
			p.Low = append(p.Low, item)
		}
	}
	return p
}

// SortByField returns a stably sorted copy of items. items is not modified.
// An unknown field yields the items in their original order.
func SortByField[T Sortable](items []T, field string, dir Direction) []T {
	out := slices.Clone(items)
	if len(out) == 0 {
		return out
	}
	if _, ok := out[0].SortKey(field); !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b T) int {
		ka, _ := a.SortKey(field)
		kb, _ := b.SortKey(field)
		if dir == Desc {
			return cmp.Compare(kb, ka)
		}
		return cmp.Compare(ka, kb)
	})
	return out
}

// SumMacros totals calories and macros; missing values count as zero.
func SumMacros(items []model.FoodItem) model.MacroTotals {
	return model.SumMacros(items)
}

// DistinctCategories counts the inventory categories in use.
func DistinctCategories(inventory []model.InventoryItem) int {
	seen := make(map[string]struct{}, len(inventory))
	for _, item := range inventory {
		seen[item.Category] = struct{}{}
	}
	return len(seen)
}
