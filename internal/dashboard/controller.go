// Package dashboard implements the client view controller: navigation
// between views, the projections each view renders, and the local actions
// that mutate the dataset.
package dashboard

import (
	"slices"
	"sync"

	"infinium/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Painter draws a projection. It is the only output of a render.
type Painter interface {
	Paint(p Projection) error
}

// ThemeSource supplies the active theme at render time.
type ThemeSource interface {
	Theme() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithFoodAnalysis enables the food analysis view.
func WithFoodAnalysis() Option {
	return func(c *Controller) { c.views = append(c.views, ViewFoodAnalysis) }
}

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithThemeSource sets where the theme is read from.
func WithThemeSource(t ThemeSource) Option {
	return func(c *Controller) { c.theme = t }
}

// WithPrefs sets the preference file used for the theme and its toggle.
func WithPrefs(p *Prefs) Option {
	return func(c *Controller) {
		c.prefs = p
		c.theme = p
	}
}

// WithIDGenerator sets the generator of family member ids.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

// WithCalorieRange sets the accepted calorie goal range.
func WithCalorieRange(minGoal, maxGoal int) Option {
	return func(c *Controller) {
		c.calorieMin = minGoal
		c.calorieMax = maxGoal
	}
}

// Controller tracks the active view and renders it from the store. Renders
// are serialised and run to completion.
type Controller struct {
	store    *Store
	painter  Painter
	notifier Notifier
	theme    ThemeSource
	prefs    *Prefs
	newID    func() string
	logger   zerolog.Logger

	calorieMin int
	calorieMax int

	mu          sync.Mutex
	views       []View
	current     View
	visible     map[View]bool
	highlighted View
	last        Projection
}

// NewController creates a controller showing the dashboard. The initial view
// is not rendered until Navigate or Refresh is called.
func NewController(store *Store, painter Painter, logger zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		painter:  painter,
		newID:    uuid.NewString,
		logger:   logger.With().Str("component", "view_controller").Logger(),
		views:    slices.Clone(CoreViews),
		current:  ViewDashboard,
		visible:  map[View]bool{ViewDashboard: true},
		notifier: &Inbox{},

		calorieMin: model.MinCalorieGoal,
		calorieMax: model.MaxCalorieGoal,
	}
	c.highlighted = ViewDashboard
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Views returns the views this controller can show.
func (c *Controller) Views() []View {
	return slices.Clone(c.views)
}

// Current returns the active view.
func (c *Controller) Current() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Visible returns the views marked visible. It always holds exactly one view.
func (c *Controller) Visible() []View {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []View
	for _, v := range c.views {
		if c.visible[v] {
			out = append(out, v)
		}
	}
	return out
}

// Highlighted returns the view whose navigation entry is highlighted.
func (c *Controller) Highlighted() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlighted
}

// Last returns the most recently painted projection.
func (c *Controller) Last() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Navigate switches to the named view and renders it. Unknown names are
// logged and leave the state unchanged. Navigating to the current view
// re-renders it.
func (c *Controller) Navigate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := View(name)
	if !slices.Contains(c.views, target) {
		c.logger.Warn().Err(ErrUnknownView).Str("view", name).Msg("navigation ignored")
		return
	}

	c.visible[c.current] = false
	c.visible[target] = true
	c.highlighted = target
	c.render(target)
	c.current = target
}

// Refresh re-renders the current view.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render(c.current)
}

// Render computes the projection of view without changing the active view
// or painting it.
func (c *Controller) Render(view View) (Projection, bool) {
	if !slices.Contains(c.views, view) {
		return Projection{View: view}, false
	}
	p, ok := Project(view, c.store.Snapshot())
	p.Theme = c.currentTheme()
	return p, ok
}

// rerender repaints the current view when it is one of views.
func (c *Controller) rerender(views ...View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Contains(views, c.current) {
		c.render(c.current)
	}
}

// render must be called with c.mu held.
func (c *Controller) render(view View) {
	p, ok := Project(view, c.store.Snapshot())
	if !ok {
		return
	}
	p.Theme = c.currentTheme()
	c.last = p

	if c.painter == nil {
		return
	}
	if err := c.painter.Paint(p); err != nil {
		c.logger.Error().Err(err).Str("view", string(view)).Msg("failed to paint view")
	}
}

func (c *Controller) currentTheme() string {
	if c.theme == nil {
		return ""
	}
	return c.theme.Theme()
}
