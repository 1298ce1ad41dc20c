package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"infinium/internal/client"
	"infinium/internal/model"

	"github.com/rs/zerolog"
)

const (
	connectionTimeout  = 5 * time.Second
	historyRefreshSize = 50
)

// API is the part of the backend client the session drives.
type API interface {
	UploadAndAnalyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResult, error)
	GetFoodHistory(ctx context.Context, limit int) ([]model.FoodAnalysisRecord, error)
	GenerateDietPlan(ctx context.Context, days int) (*model.GenerateDietPlanResult, error)
	HealthCheck(ctx context.Context) (*model.HealthStatus, error)
}

// Session connects the controller to the backend. While offline every
// backend operation fails with ErrOffline and the local dataset is used.
type Session struct {
	api      API
	ctrl     *Controller
	store    *Store
	notifier Notifier
	logger   zerolog.Logger
	offline  atomic.Bool
}

// NewSession creates a session. It starts online; call CheckConnection to
// check the backend.
func NewSession(api API, ctrl *Controller, store *Store, notifier Notifier, logger zerolog.Logger) *Session {
	return &Session{
		api:      api,
		ctrl:     ctrl,
		store:    store,
		notifier: notifier,
		logger:   logger.With().Str("component", "session").Logger(),
	}
}

// Offline reports whether the backend was unreachable at the last check.
func (s *Session) Offline() bool {
	return s.offline.Load()
}

// CheckConnection calls the backend health endpoint.
func (s *Session) CheckConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	status, err := s.api.HealthCheck(ctx)
	if err != nil {
		s.offline.Store(true)
		s.logger.Warn().Err(err).Msg("backend unreachable, working offline")
		notify(s.notifier, LevelWarning, "Backend unavailable. Working offline with local data.")
		return false
	}

	s.offline.Store(false)
	s.logger.Info().Str("status", status.Status).Str("backend", status.Backend).Msg("backend connected")
	return true
}

// AnalyzeImage sends an image for analysis, then reloads the food history.
func (s *Session) AnalyzeImage(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResult, error) {
	if s.offline.Load() {
		notify(s.notifier, LevelWarning, "Image analysis needs the backend")
		return nil, ErrOffline
	}

	notify(s.notifier, LevelInfo, "Analyzing image...")
	res, err := s.api.UploadAndAnalyze(ctx, req)
	if err != nil {
		s.fail("Image analysis failed", err)
		return nil, err
	}

	s.store.SetLastAnalysis(res)
	s.reloadHistory(ctx)
	notify(s.notifier, LevelSuccess, fmt.Sprintf("Found %d food items (%.0f kcal)",
		len(res.Analysis.FoodItems), res.Analysis.TotalCalories))
	return res, nil
}

// GenerateDietPlan asks the backend for a plan of days days, then reloads
// the food history.
func (s *Session) GenerateDietPlan(ctx context.Context, days int) (*model.GenerateDietPlanResult, error) {
	if s.offline.Load() {
		notify(s.notifier, LevelWarning, "Diet plan generation needs the backend")
		return nil, ErrOffline
	}

	notify(s.notifier, LevelInfo, "Generating diet plan...")
	res, err := s.api.GenerateDietPlan(ctx, days)
	if err != nil {
		s.fail("Diet plan generation failed", err)
		return nil, err
	}

	s.reloadHistory(ctx)
	notify(s.notifier, LevelSuccess, fmt.Sprintf("%d-day diet plan ready", res.Plan.Plan.Duration))
	return res, nil
}

// RefreshHistory replaces the food history with the server's.
func (s *Session) RefreshHistory(ctx context.Context) error {
	if s.offline.Load() {
		return ErrOffline
	}

	records, err := s.api.GetFoodHistory(ctx, historyRefreshSize)
	if err != nil {
		return fmt.Errorf("failed to refresh food history: %w", err)
	}

	s.store.ReplaceFoodHistory(records)
	s.ctrl.Refresh()
	return nil
}

func (s *Session) reloadHistory(ctx context.Context) {
	if err := s.RefreshHistory(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("food history not refreshed")
		s.ctrl.Refresh()
	}
}

// fail turns a client error into a notification.
func (s *Session) fail(prefix string, err error) {
	s.logger.Error().Err(err).Msg(prefix)

	var reqErr *client.RequestFailedError
	var netErr *client.NetworkError
	switch {
	case errors.As(err, &reqErr) && reqErr.Message != "":
		notify(s.notifier, LevelError, prefix+": "+reqErr.Message)
	case errors.As(err, &reqErr):
		notify(s.notifier, LevelError, fmt.Sprintf("%s (status %d)", prefix, reqErr.Status))
	case errors.As(err, &netErr):
		notify(s.notifier, LevelError, prefix+": backend unreachable")
	default:
		notify(s.notifier, LevelError, prefix)
	}
}
