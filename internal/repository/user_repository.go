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

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `id, name, email, age, gender, dietary_preferences, allergies,
		calorie_goal, fitness_goal, created_at, updated_at`

// Upsert inserts the profile or replaces the stored one with the same ID.
func (r *userRepository) Upsert(ctx context.Context, p *model.UserProfile) (*model.UserProfile, error) {
	query := `
		INSERT INTO users (id, name, email, age, gender, dietary_preferences, allergies,
			calorie_goal, fitness_goal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			dietary_preferences = EXCLUDED.dietary_preferences,
			allergies = EXCLUDED.allergies,
			calorie_goal = EXCLUDED.calorie_goal,
			fitness_goal = EXCLUDED.fitness_goal,
			updated_at = NOW()
		RETURNING ` + userColumns

	saved, err := scanUser(r.pool.QueryRow(ctx, query,
		p.ID,
		p.Name,
		p.Email,
		p.Age,
		p.Gender,
		nonNil(p.DietaryPreferences),
		nonNil(p.Allergies),
		p.CalorieGoal,
		p.FitnessGoal,
	))
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", p.ID).Msg("failed to upsert user")
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	r.logger.Debug().Str("user_id", saved.ID).Msg("user saved successfully")

	return saved, nil
}

// GetByID returns nil, nil when the user does not exist.
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	p, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", id).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return p, nil
}

func scanUser(row pgx.Row) (*model.UserProfile, error) {
	var p model.UserProfile
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Age,
		&p.Gender,
		&p.DietaryPreferences,
		&p.Allergies,
		&p.CalorieGoal,
		&p.FitnessGoal,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
