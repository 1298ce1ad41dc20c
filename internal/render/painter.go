package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"infinium/internal/dashboard"
	"infinium/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// TextPainter writes a styled text rendering of each projection.
type TextPainter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextPainter creates a painter writing to w.
func NewTextPainter(w io.Writer) *TextPainter {
	return &TextPainter{w: w}
}

// Paint implements dashboard.Painter.
func (t *TextPainter) Paint(p dashboard.Projection) error {
	out := Text(p)

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.w, out+"\n"); err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}
	return nil
}

// JSONPainter writes each projection as one JSON line.
type JSONPainter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONPainter creates a painter writing to w.
func NewJSONPainter(w io.Writer) *JSONPainter {
	return &JSONPainter{enc: json.NewEncoder(w)}
}

// Paint implements dashboard.Painter.
func (j *JSONPainter) Paint(p dashboard.Projection) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	return nil
}

type styles struct {
	palette Palette
	title   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	box     lipgloss.Style
}

func newStyles(theme string) styles {
	pal := PaletteFor(theme)
	return styles{
		palette: pal,
		title:   lipgloss.NewStyle().Bold(true).Foreground(pal.Primary).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(pal.Foreground),
		muted:   lipgloss.NewStyle().Foreground(pal.Muted),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(pal.Border).Padding(0, 1),
	}
}

func (s styles) colored(c lipgloss.Color, text string) string {
	return lipgloss.NewStyle().Foreground(c).Render(text)
}

// Text renders p as styled text.
func Text(p dashboard.Projection) string {
	s := newStyles(p.Theme)

	var body string
	switch {
	case p.Dashboard != nil:
		body = s.dashboard(*p.Dashboard)
	case p.Alerts != nil:
		body = s.alerts(*p.Alerts)
	case p.View == dashboard.ViewFreshness:
		body = s.freshness(p.Freshness)
	case p.View == dashboard.ViewRecipes:
		body = s.recipes(p.Recipes)
	case p.Shopping != nil:
		body = s.shopping(*p.Shopping)
	case p.View == dashboard.ViewFamily:
		body = s.family(p.Family)
	case p.Profile != nil:
		body = s.profile(*p.Profile)
	case p.FoodAnalysis != nil:
		body = s.foodAnalysis(*p.FoodAnalysis)
	}
	if body == "" {
		body = s.muted.Render("Nothing to show.")
	}

	return lipgloss.JoinVertical(lipgloss.Left, s.title.Render(viewTitle(p.View)), body)
}

func viewTitle(v dashboard.View) string {
	switch v {
	case dashboard.ViewDashboard:
		return "Dashboard"
	case dashboard.ViewAlerts:
		return "Smart Alerts"
	case dashboard.ViewFreshness:
		return "Freshness Scoring"
	case dashboard.ViewRecipes:
		return "Recipe Engine"
	case dashboard.ViewShopping:
		return "Smart Shopping"
	case dashboard.ViewFamily:
		return "Family Members"
	case dashboard.ViewProfile:
		return "Profile"
	case dashboard.ViewFoodAnalysis:
		return "Food Analysis"
	}
	return string(v)
}

func (s styles) dashboard(d dashboard.DashboardProjection) string {
	stat := func(label string, value int) string {
		return s.box.Render(s.label.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(fmt.Sprint(value)))
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Urgent alerts", d.HighSeverityAlertCount),
		stat("Low freshness", d.LowFreshnessCount),
		stat("Recipes", d.RecipeCount),
		stat("To buy", d.HighPriorityShoppingCount),
	)

	lines := []string{
		stats,
		s.muted.Render(fmt.Sprintf("%d items across %d categories", d.TotalInventoryCount, d.DistinctCategoryCount)),
		"",
		s.label.Bold(true).Render("Recent alerts"),
	}
	for _, a := range d.RecentAlerts {
		lines = append(lines, s.alertLine(a))
	}
	return strings.Join(lines, "\n")
}

func (s styles) alertLine(a model.Alert) string {
	marker := s.colored(s.palette.level(a.Severity), "●")
	return fmt.Sprintf("%s %s %s %s", marker, a.Item, s.muted.Render("("+a.Category+")"), a.Message)
}

func (s styles) alerts(p dashboard.Partition[model.Alert]) string {
	var lines []string
	groups := []struct {
		title string
		items []model.Alert
	}{
		{"High", p.High},
		{"Medium", p.Medium},
		{"Low", p.Low},
	}
	for _, g := range groups {
		if len(g.items) == 0 {
			continue
		}
		lines = append(lines, s.label.Bold(true).Render(fmt.Sprintf("%s (%d)", g.title, len(g.items))))
		for _, a := range g.items {
			lines = append(lines, fmt.Sprintf("  [%d] %s %s", a.ID, s.alertLine(a), s.muted.Render("expires "+a.ExpirationDate)))
		}
	}
	return strings.Join(lines, "\n")
}

func (s styles) freshness(rows []dashboard.FreshnessRow) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		score := s.colored(s.palette.freshness(r.ColorClass), fmt.Sprintf("%3d%%", r.Item.FreshnessScore))
		lines = append(lines, fmt.Sprintf("%s  %-16s %s", score, r.Item.Name,
			s.muted.Render(r.Item.Quantity+", "+r.Item.StorageLocation)))
	}
	return strings.Join(lines, "\n")
}

func (s styles) recipes(recipes []model.Recipe) string {
	lines := make([]string, 0, len(recipes))
	for _, r := range recipes {
		lines = append(lines, fmt.Sprintf("%s %s\n  %s\n  %s",
			s.colored(s.palette.Primary, fmt.Sprintf("%d%%", r.MatchScore)),
			s.label.Bold(true).Render(r.Name),
			r.Description,
			s.muted.Render(fmt.Sprintf("%s · %s · %d kcal · %s", r.PrepTime, r.Difficulty, r.Calories, strings.Join(r.Ingredients, ", "))),
		))
	}
	return strings.Join(lines, "\n")
}

func (s styles) shopping(p dashboard.Partition[model.ShoppingItem]) string {
	var lines []string
	for _, group := range [][]model.ShoppingItem{p.High, p.Medium, p.Low} {
		for _, item := range group {
			lines = append(lines, fmt.Sprintf("%s %s %s",
				s.colored(s.palette.level(item.Priority), "■"),
				item.Item,
				s.muted.Render(item.Category+", "+item.Reason)))
		}
	}
	return strings.Join(lines, "\n")
}

func (s styles) family(members []model.FamilyMember) string {
	lines := make([]string, 0, len(members))
	for _, m := range members {
		goal := "-"
		if m.CalorieGoal != nil {
			goal = fmt.Sprintf("%d kcal", *m.CalorieGoal)
		}
		lines = append(lines, s.box.Render(strings.Join([]string{
			s.label.Bold(true).Render(m.Name) + s.muted.Render(fmt.Sprintf(" #%s", m.ID)),
			fmt.Sprintf("%s, %d, %s", m.Relationship, m.Age, m.Gender),
			"Allergies: " + strings.Join(m.Allergies, ", "),
			"Diet: " + strings.Join(m.DietaryRestrictions, ", "),
			"Medical: " + strings.Join(m.MedicalConditions, ", "),
			"Goal: " + goal,
		}, "\n")))
	}
	return strings.Join(lines, "\n")
}

func (s styles) profile(p dashboard.ProfileProjection) string {
	return strings.Join([]string{
		s.label.Bold(true).Render(p.Profile.Name),
		s.muted.Render(p.Profile.Email),
		"Preferences: " + strings.Join(p.Profile.DietaryPreferences, ", "),
		"Allergies: " + strings.Join(p.Profile.Allergies, ", "),
		fmt.Sprintf("Calorie goal: %d kcal", p.CalorieGoal),
	}, "\n")
}

func (s styles) foodAnalysis(f dashboard.FoodAnalysisProjection) string {
	lines := []string{
		s.label.Bold(true).Render(fmt.Sprintf("%.0f kcal", f.Totals.Calories)) +
			s.muted.Render(fmt.Sprintf("  P %.0fg  C %.0fg  F %.0fg", f.Totals.Protein, f.Totals.Carbs, f.Totals.Fat)),
	}
	if f.Last != nil {
		lines = append(lines, fmt.Sprintf("Last analysis: %d items, %.0f kcal",
			len(f.Last.Analysis.FoodItems), f.Last.Analysis.TotalCalories))
	}
	for _, r := range f.History {
		names := make([]string, len(r.Analysis.FoodItems))
		for i, item := range r.Analysis.FoodItems {
			names[i] = item.Name
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			s.muted.Render(r.CreatedAt.Format("2006-01-02 15:04")),
			strings.Join(names, ", "),
			s.muted.Render(fmt.Sprintf("%.0f kcal", r.Analysis.TotalCalories))))
	}
	return strings.Join(lines, "\n")
}
