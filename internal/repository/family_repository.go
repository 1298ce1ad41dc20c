package repository

import (
	"context"
	"fmt"

	"infinium/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// familyRepository implements the FamilyRepository interface using PostgreSQL.
type familyRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFamilyRepository creates a new PostgreSQL-backed family repository.
func NewFamilyRepository(pool *pgxpool.Pool, logger zerolog.Logger) FamilyRepository {
	return &familyRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "family").Logger(),
	}
}

// Create inserts a new family member.
func (r *familyRepository) Create(ctx context.Context, m *model.FamilyMember) error {
	query := `
		INSERT INTO family_members (id, user_id, name, age, gender, relationship,
			allergies, dietary_restrictions, medical_conditions, calorie_goal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Name,
		m.Age,
		m.Gender,
		m.Relationship,
		m.Allergies,
		m.DietaryRestrictions,
		m.MedicalConditions,
		m.CalorieGoal,
		m.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", m.UserID).
			Str("member_id", m.ID).
			Msg("failed to create family member")
		return fmt.Errorf("failed to create family member: %w", err)
	}

	r.logger.Debug().
		Str("user_id", m.UserID).
		Str("member_id", m.ID).
		Msg("family member created successfully")

	return nil
}

// ListByUser returns the user's family members in insertion order.
func (r *familyRepository) ListByUser(ctx context.Context, userID string) ([]model.FamilyMember, error) {
	query := `
		SELECT id, user_id, name, age, gender, relationship, allergies,
			dietary_restrictions, medical_conditions, calorie_goal, created_at
		FROM family_members
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query family members")
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	members := []model.FamilyMember{}
	for rows.Next() {
		var m model.FamilyMember
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Name,
			&m.Age,
			&m.Gender,
			&m.Relationship,
			&m.Allergies,
			&m.DietaryRestrictions,
			&m.MedicalConditions,
			&m.CalorieGoal,
			&m.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan family member row")
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating family member rows")
		return nil, fmt.Errorf("error iterating family members: %w", err)
	}

	return members, nil
}
