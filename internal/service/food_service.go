package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"infinium/internal/analysis"
	"infinium/internal/imagestore"
	"infinium/internal/model"
	"infinium/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// foodService implements FoodService.
type foodService struct {
	foodRepo repository.FoodAnalysisRepository
	planRepo repository.DietPlanRepository
	recRepo  repository.RecommendationRepository
	userRepo repository.UserRepository
	analyzer analysis.Analyzer
	planner  analysis.Planner
	images   imagestore.Store
	logger   zerolog.Logger
	now      func() time.Time
}

// NewFoodService creates a new food service.
func NewFoodService(
	foodRepo repository.FoodAnalysisRepository,
	planRepo repository.DietPlanRepository,
	recRepo repository.RecommendationRepository,
	userRepo repository.UserRepository,
	analyzer analysis.Analyzer,
	planner analysis.Planner,
	images imagestore.Store,
	logger zerolog.Logger,
) FoodService {
	return &foodService{
		foodRepo: foodRepo,
		planRepo: planRepo,
		recRepo:  recRepo,
		userRepo: userRepo,
		analyzer: analyzer,
		planner:  planner,
		images:   images,
		logger:   logger.With().Str("service", "food").Logger(),
		now:      time.Now,
	}
}

// Analyze stores the image when it is inline, analyses it and records the result.
func (s *foodService) Analyze(ctx context.Context, userID string, req *model.AnalyzeRequest) (*model.AnalyzeResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, model.ErrUserIDRequired
	}
	if req == nil || (req.ImageBuffer == "" && req.ImageURL == "") {
		return nil, model.ErrImageRequired
	}

	now := s.now().UTC()
	img := analysis.Image{URL: req.ImageURL}
	var imageKey *string

	if req.ImageBuffer != "" {
		obj, err := imagestore.Upload(ctx, s.images, req.ImageBuffer, now)
		if err != nil {
			if _, ok := model.AsDomainError(err); ok {
				return nil, err
			}
			s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to store image")
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		img = analysis.Image{URL: obj.URL, Data: obj.Data, MIMEType: obj.ContentType}
		imageKey = &obj.Key
	}

	result, err := s.analyzer.AnalyzeImage(ctx, img)
	if err != nil {
		if errors.Is(err, model.ErrImageRequired) || errors.Is(err, model.ErrInvalidImageURL) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", userID).Str("image_url", img.URL).Msg("food analysis failed")
		return nil, fmt.Errorf("%w: %v", model.ErrAnalysisFailed, err)
	}

	record := &model.FoodAnalysisRecord{
		ID:        uuid.New(),
		UserID:    userID,
		ImageURL:  img.URL,
		ImageKey:  imageKey,
		Analysis:  *result,
		Date:      now.Format(model.DateLayout),
		CreatedAt: now,
	}

	if err := s.foodRepo.Create(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save food analysis")
		return nil, fmt.Errorf("failed to save food analysis: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("analysis_id", record.ID.String()).
		Int("food_items", len(result.FoodItems)).
		Msg("food analysed successfully")

	return &model.AnalyzeResult{
		AnalysisID: record.ID,
		ImageURL:   record.ImageURL,
		Analysis:   record.Analysis,
		SavedAt:    record.CreatedAt,
	}, nil
}

// History returns at most limit analyses, newest first.
func (s *foodService) History(ctx context.Context, userID string, limit int) ([]model.FoodAnalysisRecord, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	records, err := s.foodRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get food history")
		return nil, fmt.Errorf("failed to get food history: %w", err)
	}

	return records, nil
}

// DailySummary totals every analysis of date (YYYY-MM-DD, empty for today).
func (s *foodService) DailySummary(ctx context.Context, userID, date string) (*model.DailySummary, error) {
	var day time.Time
	if date == "" {
		day = s.now().UTC().Truncate(24 * time.Hour)
	} else {
		var err error
		if day, err = time.Parse(model.DateLayout, date); err != nil {
			return nil, model.ErrInvalidDate
		}
	}

	records, err := s.foodRepo.ListByDate(ctx, userID, day)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get daily summary")
		return nil, fmt.Errorf("failed to get daily summary: %w", err)
	}

	totals := model.SumMacros(model.Items(records))

	return &model.DailySummary{
		Date:          day.Format(model.DateLayout),
		TotalCalories: totals.Calories,
		Macros: model.Macros{
			Protein: totals.Protein,
			Carbs:   totals.Carbs,
			Fat:     totals.Fat,
		},
		Meals: len(records),
	}, nil
}

// GenerateDietPlan creates a new active plan of days days.
func (s *foodService) GenerateDietPlan(ctx context.Context, userID string, days int) (*model.GenerateDietPlanResult, error) {
	if days < model.MinPlanDays || days > model.MaxPlanDays {
		return nil, model.ErrInvalidDaysCount
	}

	var (
		profile *model.UserProfile
		history []model.FoodAnalysisRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.userRepo.GetByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.foodRepo.ListByUser(gctx, userID, dietPlanHistoryRecords)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load diet plan context")
		return nil, fmt.Errorf("failed to load diet plan context: %w", err)
	}

	if profile == nil {
		return nil, model.ErrUserNotFound
	}

	content, err := s.planner.DietPlan(ctx, profile, history, days)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("diet plan generation failed")
		return nil, fmt.Errorf("%w: %v", model.ErrAnalysisFailed, err)
	}

	plan := &model.DietPlan{
		ID:           uuid.New(),
		UserID:       userID,
		Plan:         *content,
		DurationDays: days,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}

	tx, err := s.planRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save diet plan: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.planRepo.Deactivate(ctx, tx, userID); err != nil {
		return nil, fmt.Errorf("failed to save diet plan: %w", err)
	}

	if err = s.planRepo.Create(ctx, tx, plan); err != nil {
		return nil, fmt.Errorf("failed to save diet plan: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("plan_id", plan.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to save diet plan: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("plan_id", plan.ID.String()).
		Int("days", days).
		Msg("diet plan generated successfully")

	return &model.GenerateDietPlanResult{
		PlanID:    plan.ID,
		Plan:      plan.Plan,
		CreatedAt: plan.CreatedAt,
	}, nil
}

// ActiveDietPlan returns nil, nil when no plan is active.
func (s *foodService) ActiveDietPlan(ctx context.Context, userID string) (*model.DietPlan, error) {
	plan, err := s.planRepo.GetActive(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get active diet plan")
		return nil, fmt.Errorf("failed to get active diet plan: %w", err)
	}
	return plan, nil
}

// DietPlanHistory returns at most limit plans, newest first.
func (s *foodService) DietPlanHistory(ctx context.Context, userID string, limit int) ([]model.DietPlan, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.History(ctx, userID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get diet plan history")
		return nil, fmt.Errorf("failed to get diet plan history: %w", err)
	}

	return plans, nil
}

// Recommendations returns stored advice younger than a week or generates new advice.
func (s *foodService) Recommendations(ctx context.Context, userID string) (*model.NutritionRecommendations, error) {
	now := s.now().UTC()

	latest, err := s.recRepo.Latest(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get stored recommendations")
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	if latest.Fresh(now) {
		s.logger.Debug().Str("user_id", userID).Msg("using stored recommendations")
		return &latest.Data, nil
	}

	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	if profile == nil {
		return nil, model.ErrUserNotFound
	}

	recs, err := s.planner.Recommendations(ctx, profile)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("recommendation generation failed")
		return nil, fmt.Errorf("%w: %v", model.ErrAnalysisFailed, err)
	}

	record := &model.RecommendationRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Data:      *recs,
		CreatedAt: now,
	}
	if err := s.recRepo.Create(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save recommendations")
		return nil, fmt.Errorf("failed to save recommendations: %w", err)
	}

	return recs, nil
}
