package repository

import (
	"context"
	"errors"
	"fmt"

	"infinium/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// dietPlanRepository implements DietPlanRepository using PostgreSQL.
type dietPlanRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDietPlanRepository creates a new PostgreSQL-backed diet plan repository.
func NewDietPlanRepository(pool *pgxpool.Pool, logger zerolog.Logger) DietPlanRepository {
	return &dietPlanRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "diet_plan").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *dietPlanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Deactivate clears the active flag of every plan of the user within tx.
func (r *dietPlanRepository) Deactivate(ctx context.Context, tx pgx.Tx, userID string) error {
	tag, err := tx.Exec(ctx, `UPDATE diet_plans SET is_active = FALSE WHERE user_id = $1 AND is_active`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to deactivate diet plans")
		return fmt.Errorf("failed to deactivate diet plans: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID).
		Int64("deactivated", tag.RowsAffected()).
		Msg("previous diet plans deactivated")

	return nil
}

// Create inserts a plan within tx.
func (r *dietPlanRepository) Create(ctx context.Context, tx pgx.Tx, plan *model.DietPlan) error {
	query := `
		INSERT INTO diet_plans (id, user_id, plan_data, duration_days, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		plan.ID,
		plan.UserID,
		plan.Plan,
		plan.DurationDays,
		plan.IsActive,
		plan.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", plan.UserID).
			Str("plan_id", plan.ID.String()).
			Msg("failed to create diet plan")
		return fmt.Errorf("failed to create diet plan: %w", err)
	}

	r.logger.Debug().
		Str("user_id", plan.UserID).
		Str("plan_id", plan.ID.String()).
		Msg("diet plan created successfully")

	return nil
}

// GetActive returns nil, nil when the user has no active plan.
func (r *dietPlanRepository) GetActive(ctx context.Context, userID string) (*model.DietPlan, error) {
	query := `
		SELECT id, user_id, plan_data, duration_days, is_active, created_at
		FROM diet_plans
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC
		LIMIT 1
	`

	var p model.DietPlan
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Plan,
		&p.DurationDays,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", userID).Msg("no active diet plan")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query active diet plan")
		return nil, fmt.Errorf("failed to query active diet plan: %w", err)
	}

	return &p, nil
}

// History returns at most limit plans, newest first.
func (r *dietPlanRepository) History(ctx context.Context, userID string, limit int) ([]model.DietPlan, error) {
	query := `
		SELECT id, user_id, plan_data, duration_days, is_active, created_at
		FROM diet_plans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query diet plan history")
		return nil, fmt.Errorf("failed to query diet plan history: %w", err)
	}
	defer rows.Close()

	plans := []model.DietPlan{}
	for rows.Next() {
		var p model.DietPlan
		if err := rows.Scan(&p.ID, &p.UserID, &p.Plan, &p.DurationDays, &p.IsActive, &p.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan diet plan row")
			return nil, fmt.Errorf("failed to scan diet plan: %w", err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating diet plan rows")
		return nil, fmt.Errorf("error iterating diet plans: %w", err)
	}

	return plans, nil
}
