package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"infinium/internal/model"
)

// DismissAlert removes an alert and re-renders the views that show alerts.
func (c *Controller) DismissAlert(id int) bool {
	if !c.store.DismissAlert(id) {
		c.logger.Debug().Int("alert_id", id).Msg("alert not found")
		return false
	}
	c.rerender(ViewAlerts, ViewDashboard)
	return true
}

// UpdateCalorieGoal applies a calorie goal typed by the user. Input that is
// not a whole number is ignored; out-of-range values are rejected.
func (c *Controller) UpdateCalorieGoal(input string) error {
	goal, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return nil
	}

	if goal < c.calorieMin || goal > c.calorieMax {
		msg := fmt.Sprintf("must be between %d and %d", c.calorieMin, c.calorieMax)
		notify(c.notifier, LevelError, "Calorie goal "+msg)
		return invalid("calorieGoal", msg)
	}

	c.store.SetCalorieGoal(goal)
	c.rerender(ViewProfile)
	notify(c.notifier, LevelSuccess, "Calorie goal updated")
	return nil
}

// AddFamilyMember validates form and appends the member to the family.
func (c *Controller) AddFamilyMember(form FamilyForm) (*model.FamilyMember, error) {
	member, err := form.Member(c.newID())
	if err != nil {
		notify(c.notifier, LevelError, err.Error())
		return nil, err
	}

	c.store.AddFamilyMember(member)
	c.rerender(ViewFamily)
	notify(c.notifier, LevelSuccess, member.Name+" added to family")

	c.logger.Info().Str("member_id", member.ID).Msg("family member added")
	return &member, nil
}

// DeleteFamilyMember removes a member when confirm returns true.
func (c *Controller) DeleteFamilyMember(id string, confirm func() bool) bool {
	if confirm == nil || !confirm() {
		return false
	}
	if !c.store.DeleteFamilyMember(id) {
		return false
	}

	c.rerender(ViewFamily)
	notify(c.notifier, LevelSuccess, "Family member removed")
	return true
}

// ToggleTheme flips and persists the theme, then re-renders the current view.
func (c *Controller) ToggleTheme() (string, error) {
	if c.prefs == nil {
		return c.currentTheme(), nil
	}

	theme, err := c.prefs.Toggle()
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to save theme")
		notify(c.notifier, LevelError, "Could not save theme preference")
		return theme, err
	}

	c.Refresh()
	return theme, nil
}
