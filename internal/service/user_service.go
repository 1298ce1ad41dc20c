package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"infinium/internal/model"
	"infinium/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultCalorieGoal = 2000

// userService implements UserService.
type userService struct {
	userRepo   repository.UserRepository
	familyRepo repository.FamilyRepository
	logger     zerolog.Logger
	newID      func() string
	now        func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	familyRepo repository.FamilyRepository,
	logger zerolog.Logger,
) UserService {
	return &userService{
		userRepo:   userRepo,
		familyRepo: familyRepo,
		logger:     logger.With().Str("service", "user").Logger(),
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// SaveProfile creates or updates a profile. A missing ID creates a new user.
func (s *userService) SaveProfile(ctx context.Context, req *model.UserProfileRequest) (*model.UserProfile, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, model.ErrNameRequired
	}

	goal := req.CalorieGoal
	if goal == 0 {
		goal = defaultCalorieGoal
	}
	if !model.CalorieGoalInRange(goal) {
		return nil, model.ErrInvalidCalories
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = s.newID()
	}

	profile := &model.UserProfile{
		ID:                 id,
		Name:               strings.TrimSpace(req.Name),
		Email:              strings.TrimSpace(req.Email),
		Age:                req.Age,
		Gender:             req.Gender,
		DietaryPreferences: trimTags(req.DietaryPreferences),
		Allergies:          trimTags(req.Allergies),
		CalorieGoal:        goal,
		FitnessGoal:        req.FitnessGoal,
	}

	saved, err := s.userRepo.Upsert(ctx, profile)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to save profile")
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info().Str("user_id", saved.ID).Msg("profile saved successfully")

	return saved, nil
}

// GetProfile fails with model.ErrUserNotFound when the user does not exist.
func (s *userService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, model.ErrUserNotFound
	}
	return profile, nil
}

// AddFamilyMember validates and stores a new family member.
func (s *userService) AddFamilyMember(ctx context.Context, userID string, req *model.FamilyMemberRequest) (*model.FamilyMember, error) {
	if req == nil {
		return nil, model.ErrInvalidMember
	}

	member := &model.FamilyMember{
		ID:                  s.newID(),
		UserID:              userID,
		Name:                strings.TrimSpace(req.Name),
		Age:                 req.Age,
		Gender:              strings.TrimSpace(req.Gender),
		Relationship:        strings.TrimSpace(req.Relationship),
		Allergies:           model.NormalizeTags(req.Allergies),
		DietaryRestrictions: model.NormalizeTags(req.DietaryRestrictions),
		MedicalConditions:   model.NormalizeTags(req.MedicalConditions),
		CalorieGoal:         req.CalorieGoal,
		CreatedAt:           s.now().UTC(),
	}

	if member.Name == "" || member.Gender == "" || member.Relationship == "" ||
		member.Age < model.MinMemberAge || member.Age > model.MaxMemberAge {
		return nil, model.ErrInvalidMember
	}
	if member.CalorieGoal != nil && *member.CalorieGoal <= 0 {
		return nil, model.ErrInvalidMember
	}

	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to add family member: %w", err)
	}
	if owner == nil {
		return nil, model.ErrUserNotFound
	}

	if err := s.familyRepo.Create(ctx, member); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to add family member")
		return nil, fmt.Errorf("failed to add family member: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("member_id", member.ID).
		Msg("family member added successfully")

	return member, nil
}

// FamilyMembers returns the user's family in insertion order.
func (s *userService) FamilyMembers(ctx context.Context, userID string) ([]model.FamilyMember, error) {
	members, err := s.familyRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get family members")
		return nil, fmt.Errorf("failed to get family members: %w", err)
	}
	return members, nil
}

// trimTags trims every tag and drops empty ones.
func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
