// Package render paints dashboard projections to a terminal or as JSON.
package render

import (
	"infinium/internal/dashboard"
	"infinium/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colours of one theme.
type Palette struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	High       lipgloss.Color
	Medium     lipgloss.Color
	Low        lipgloss.Color
	Fresh      lipgloss.Color
	Aging      lipgloss.Color
	Stale      lipgloss.Color
	Expiring   lipgloss.Color
}

var (
	lightPalette = Palette{
		Foreground: lipgloss.Color("#0f172a"),
		Primary:    lipgloss.Color("#059669"),
		Muted:      lipgloss.Color("#64748b"),
		Border:     lipgloss.Color("#cbd5e1"),
		High:       lipgloss.Color("#dc2626"),
		Medium:     lipgloss.Color("#ea580c"),
		Low:        lipgloss.Color("#ca8a04"),
		Fresh:      lipgloss.Color("#059669"),
		Aging:      lipgloss.Color("#ca8a04"),
		Stale:      lipgloss.Color("#ea580c"),
		Expiring:   lipgloss.Color("#dc2626"),
	}

	darkPalette = Palette{
		Foreground: lipgloss.Color("#f1f5f9"),
		Primary:    lipgloss.Color("#34d399"),
		Muted:      lipgloss.Color("#94a3b8"),
		Border:     lipgloss.Color("#334155"),
		High:       lipgloss.Color("#f87171"),
		Medium:     lipgloss.Color("#fb923c"),
		Low:        lipgloss.Color("#facc15"),
		Fresh:      lipgloss.Color("#34d399"),
		Aging:      lipgloss.Color("#facc15"),
		Stale:      lipgloss.Color("#fb923c"),
		Expiring:   lipgloss.Color("#f87171"),
	}
)

// PaletteFor returns the palette of theme; anything but dark is light.
func PaletteFor(theme string) Palette {
	if theme == dashboard.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// SystemTheme reports the terminal's theme.
func SystemTheme() string {
	if lipgloss.HasDarkBackground() {
		return dashboard.ThemeDark
	}
	return dashboard.ThemeLight
}

// level returns the colour of a severity or priority.
func (p Palette) level(level string) lipgloss.Color {
	switch dashboard.SeverityBucket(level) {
	case model.LevelHigh:
		return p.High
	case model.LevelMedium:
		return p.Medium
	default:
		return p.Low
	}
}

// freshness returns the colour of a freshness class.
func (p Palette) freshness(class string) lipgloss.Color {
	switch class {
	case dashboard.ClassFresh:
		return p.Fresh
	case dashboard.ClassAging:
		return p.Aging
	case dashboard.ClassStale:
		return p.Stale
	default:
		return p.Expiring
	}
}
