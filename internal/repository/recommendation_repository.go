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

// recommendationRepository implements RecommendationRepository using PostgreSQL.
type recommendationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRecommendationRepository creates a new PostgreSQL-backed recommendation repository.
func NewRecommendationRepository(pool *pgxpool.Pool, logger zerolog.Logger) RecommendationRepository {
	return &recommendationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "recommendation").Logger(),
	}
}

// Create inserts a new recommendation record.
func (r *recommendationRepository) Create(ctx context.Context, rec *model.RecommendationRecord) error {
	query := `
		INSERT INTO nutrition_recommendations (id, user_id, recommendations_data, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, rec.ID, rec.UserID, rec.Data, rec.CreatedAt); err != nil {
		r.logger.Error().Err(err).Str("user_id", rec.UserID).Msg("failed to create recommendations")
		return fmt.Errorf("failed to create recommendations: %w", err)
	}

	return nil
}

// Latest returns nil, nil when no recommendations were stored.
func (r *recommendationRepository) Latest(ctx context.Context, userID string) (*model.RecommendationRecord, error) {
	query := `
		SELECT id, user_id, recommendations_data, created_at
		FROM nutrition_recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var rec model.RecommendationRecord
	err := r.pool.QueryRow(ctx, query, userID).Scan(&rec.ID, &rec.UserID, &rec.Data, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query recommendations")
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}

	return &rec, nil
}
