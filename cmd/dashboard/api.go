package main

import (
	"infinium/internal/model"

	"github.com/spf13/cobra"
)

// newAPICmd exposes every backend operation as a raw JSON command.
func newAPICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Call backend endpoints directly and print the JSON result",
	}

	cmd.AddCommand(
		apiAnalyzeCmd(a),
		apiHistoryCmd(a),
		apiSummaryCmd(a),
		apiGeneratePlanCmd(a),
		apiActivePlanCmd(a),
		apiPlanHistoryCmd(a),
		apiRecommendationsCmd(a),
		apiSaveProfileCmd(a),
		apiGetProfileCmd(a),
		apiAddFamilyCmd(a),
		apiFamilyCmd(a),
		apiHealthCmd(a),
	)
	return cmd
}

func apiAnalyzeCmd(a *app) *cobra.Command {
	var imageURL string
	cmd := &cobra.Command{
		Use:   "analyze [image-file]",
		Short: "POST /api/food/{userId}/analyze",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := analyzeRequest(imageURL, args)
			if err != nil {
				return err
			}
			res, err := a.api.UploadAndAnalyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
	cmd.Flags().StringVar(&imageURL, "url", "", "image URL instead of a local file")
	return cmd
}

func apiHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "GET /api/food/{userId}/history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GetFoodHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return a.printJSON(emptyIfNil(res))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of analyses")
	return cmd
}

func apiSummaryCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "GET /api/food/{userId}/daily-summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GetDailySummary(cmd.Context(), date)
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	return cmd
}

func apiGeneratePlanCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "generate-plan",
		Short: "POST /api/food/{userId}/diet-plan/generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GenerateDietPlan(cmd.Context(), days)
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
	cmd.Flags().IntVar(&days, "days", model.DefaultPlanDays, "plan length in days")
	return cmd
}

func apiActivePlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "active-plan",
		Short: "GET /api/food/{userId}/diet-plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GetActiveDietPlan(cmd.Context())
			if err != nil {
				return err
			}
			if res == nil {
				a.println("No active diet plan")
				return nil
			}
			return a.printJSON(res)
		},
	}
}

func apiPlanHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "plan-history",
		Short: "GET /api/food/{userId}/diet-plan/history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GetDietPlanHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return a.printJSON(emptyIfNil(res))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of plans")
	return cmd
}

func apiRecommendationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recommendations",
		Short: "GET /api/food/{userId}/recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GetNutritionRecommendations(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
}

func apiSaveProfileCmd(a *app) *cobra.Command {
	var req model.UserProfileRequest
	var age int

	cmd := &cobra.Command{
		Use:   "save-profile",
		Short: "POST /api/users/profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("age") {
				req.Age = &age
			}
			res, err := a.api.SaveProfile(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.ID, "id", "", "existing user id (empty creates a user)")
	flags.StringVar(&req.Name, "name", "", "display name")
	flags.StringVar(&req.Email, "email", "", "email address")
	flags.IntVar(&age, "age", 0, "age in years")
	flags.StringVar(&req.Gender, "gender", "", "gender")
	flags.StringSliceVar(&req.Allergies, "allergies", nil, "comma-separated allergies")
	flags.StringSliceVar(&req.DietaryPreferences, "preferences", nil, "comma-separated dietary preferences")
	flags.IntVar(&req.CalorieGoal, "calorie-goal", model.MinCalorieGoal, "daily calorie goal")
	flags.StringVar(&req.FitnessGoal, "fitness-goal", "", "fitness goal")
	return cmd
}

func apiGetProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [user-id]",
		Short: "GET /api/users/{userId}/profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GetProfile(cmd.Context(), a.targetUser(args))
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
}

func apiAddFamilyCmd(a *app) *cobra.Command {
	var req model.FamilyMemberRequest
	var goal int

	cmd := &cobra.Command{
		Use:   "add-family",
		Short: "POST /api/users/{userId}/family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("calorie-goal") {
				req.CalorieGoal = &goal
			}
			res, err := a.api.AddFamilyMember(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Name, "name", "", "member name")
	flags.IntVar(&req.Age, "age", 0, "age in years")
	flags.StringVar(&req.Gender, "gender", "", "gender")
	flags.StringVar(&req.Relationship, "relationship", "", "relationship to the user")
	flags.StringSliceVar(&req.Allergies, "allergies", nil, "comma-separated allergies")
	flags.StringSliceVar(&req.DietaryRestrictions, "restrictions", nil, "comma-separated dietary restrictions")
	flags.StringSliceVar(&req.MedicalConditions, "conditions", nil, "comma-separated medical conditions")
	flags.IntVar(&goal, "calorie-goal", 0, "daily calorie goal")
	return cmd
}

func apiFamilyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "family [user-id]",
		Short: "GET /api/users/{userId}/family",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.GetFamilyMembers(cmd.Context(), a.targetUser(args))
			if err != nil {
				return err
			}
			return a.printJSON(emptyIfNil(res))
		},
	}
}

func apiHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "GET /health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.HealthCheck(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
}

func (a *app) targetUser(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return a.cfg.UserID
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
