package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"infinium/internal/client"
	"infinium/internal/dashboard"
	"infinium/internal/model"

	"github.com/spf13/cobra"
)

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view [name]",
		Short: "Render one view and exit",
		Long: `Renders a single view from the local dataset. Known views:
  dashboard, alerts, freshness, recipes, shopping, family, profile
  foodanalysis (with --food-analysis; loads the history from the backend)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := string(dashboard.ViewDashboard)
			if len(args) == 1 {
				name = args[0]
			}

			ws, err := a.newWorkspace()
			if err != nil {
				return err
			}
			if !slices.Contains(ws.ctrl.Views(), dashboard.View(name)) {
				return fmt.Errorf("%w: %s", dashboard.ErrUnknownView, name)
			}

			if name == string(dashboard.ViewFoodAnalysis) && ws.session.CheckConnection(cmd.Context()) {
				if err := ws.session.RefreshHistory(cmd.Context()); err != nil {
					a.logger.Warn().Err(err).Msg("showing view without food history")
				}
			}

			ws.ctrl.Navigate(name)
			return nil
		},
	}
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var imageURL string

	cmd := &cobra.Command{
		Use:   "analyze [image-file]",
		Short: "Analyze a meal photo",
		Long: `Sends a meal photo to the backend for analysis. Pass a local file or
--url for an image already hosted elsewhere.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := analyzeRequest(imageURL, args)
			if err != nil {
				return err
			}

			ws, err := a.newWorkspace()
			if err != nil {
				return err
			}
			if !ws.session.CheckConnection(cmd.Context()) {
				return dashboard.ErrOffline
			}

			res, err := ws.session.AnalyzeImage(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return a.printJSON(res)
			}
			for _, item := range res.Analysis.FoodItems {
				a.println(fmt.Sprintf("%-24s %6.0f kcal", item.Name, item.Calories))
			}
			a.println(fmt.Sprintf("%-24s %6.0f kcal", "Total", res.Analysis.TotalCalories))
			return nil
		},
	}

	cmd.Flags().StringVar(&imageURL, "url", "", "image URL instead of a local file")
	return cmd
}

// analyzeRequest builds the request from --url or a local image file.
func analyzeRequest(imageURL string, args []string) (model.AnalyzeRequest, error) {
	switch {
	case imageURL != "" && len(args) > 0:
		return model.AnalyzeRequest{}, errors.New("pass either an image file or --url, not both")
	case imageURL != "":
		return model.AnalyzeRequest{ImageURL: imageURL}, nil
	case len(args) == 0:
		return model.AnalyzeRequest{}, errors.New("an image file or --url is required")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return model.AnalyzeRequest{}, fmt.Errorf("failed to read image: %w", err)
	}
	return model.AnalyzeRequest{ImageBuffer: client.EncodeImage(data)}, nil
}

func newPlanCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a diet plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.newWorkspace()
			if err != nil {
				return err
			}
			if !ws.session.CheckConnection(cmd.Context()) {
				return dashboard.ErrOffline
			}

			res, err := ws.session.GenerateDietPlan(cmd.Context(), days)
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return a.printJSON(res)
			}
			printPlan(a, res.Plan)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", model.DefaultPlanDays, "plan length in days")
	return cmd
}

func printPlan(a *app, plan model.DietPlanContent) {
	a.println(fmt.Sprintf("%d-day plan, %d kcal/day", plan.Plan.Duration, plan.Plan.TargetCalories))
	for _, day := range plan.Plan.Days {
		a.println(fmt.Sprintf("Day %d (%.0f kcal)", day.Day, day.DayTotalCalories))
		for _, meal := range day.Meals {
			a.println(fmt.Sprintf("  %-10s %s", meal.Type, meal.Name))
		}
	}
	if len(plan.NutritionTips) > 0 {
		a.println("Tips: " + strings.Join(plan.NutritionTips, "; "))
	}
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.api.HealthCheck(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == outputJSON {
				return a.printJSON(status)
			}
			a.println(fmt.Sprintf("%s (%s backend, up %.0fs)", status.Status, status.Backend, status.Uptime))
			return nil
		},
	}
}
