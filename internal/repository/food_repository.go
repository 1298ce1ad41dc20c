package repository

import (
	"context"
	"fmt"
	"time"

	"infinium/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// foodAnalysisRepository implements FoodAnalysisRepository using PostgreSQL.
type foodAnalysisRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFoodAnalysisRepository creates a new PostgreSQL-backed analysis repository.
func NewFoodAnalysisRepository(pool *pgxpool.Pool, logger zerolog.Logger) FoodAnalysisRepository {
	return &foodAnalysisRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "food_analysis").Logger(),
	}
}

// Create inserts a new analysis record.
func (r *foodAnalysisRepository) Create(ctx context.Context, rec *model.FoodAnalysisRecord) error {
	date, err := time.Parse(model.DateLayout, rec.Date)
	if err != nil {
		return fmt.Errorf("invalid analysis date %q: %w", rec.Date, err)
	}

	query := `
		INSERT INTO food_analysis (id, user_id, image_url, image_key, analysis_data, analysis_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.ImageURL,
		rec.ImageKey,
		rec.Analysis,
		date,
		rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", rec.UserID).
			Str("analysis_id", rec.ID.String()).
			Msg("failed to create food analysis")
		return fmt.Errorf("failed to create food analysis: %w", err)
	}

	r.logger.Debug().
		Str("user_id", rec.UserID).
		Str("analysis_id", rec.ID.String()).
		Int("food_items", len(rec.Analysis.FoodItems)).
		Msg("food analysis created successfully")

	return nil
}

// ListByUser returns at most limit records, newest first.
func (r *foodAnalysisRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.FoodAnalysisRecord, error) {
	query := `
		SELECT id, user_id, image_url, image_key, analysis_data, analysis_date, created_at
		FROM food_analysis
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Int("limit", limit).
			Msg("failed to query food history")
		return nil, fmt.Errorf("failed to query food history: %w", err)
	}

	return r.collect(rows)
}

// ListByDate returns every record of the given calendar date.
func (r *foodAnalysisRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]model.FoodAnalysisRecord, error) {
	query := `
		SELECT id, user_id, image_url, image_key, analysis_data, analysis_date, created_at
		FROM food_analysis
		WHERE user_id = $1 AND analysis_date = $2
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, userID, date)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("date", date.Format(model.DateLayout)).
			Msg("failed to query daily food analyses")
		return nil, fmt.Errorf("failed to query daily food analyses: %w", err)
	}

	return r.collect(rows)
}

func (r *foodAnalysisRepository) collect(rows pgx.Rows) ([]model.FoodAnalysisRecord, error) {
	defer rows.Close()

	records := []model.FoodAnalysisRecord{}
	for rows.Next() {
		var (
			rec  model.FoodAnalysisRecord
			date time.Time
		)
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.ImageURL,
			&rec.ImageKey,
			&rec.Analysis,
			&date,
			&rec.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan food analysis row")
			return nil, fmt.Errorf("failed to scan food analysis: %w", err)
		}
		rec.Date = date.Format(model.DateLayout)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating food analysis rows")
		return nil, fmt.Errorf("error iterating food analyses: %w", err)
	}

	return records, nil
}
