package model

import "time"

// Calorie goal bounds accepted by the profile view.
const (
	MinCalorieGoal = 1200
	MaxCalorieGoal = 4000
)

// UserProfile holds a user's identity and dietary preferences.
type UserProfile struct {
	ID                 string     `json:"id" db:"id" yaml:"id"`
	Name               string     `json:"name" db:"name" yaml:"name"`
	Email              string     `json:"email" db:"email" yaml:"email"`
	Age                *int       `json:"age,omitempty" db:"age" yaml:"age,omitempty"`
	Gender             string     `json:"gender,omitempty" db:"gender" yaml:"gender,omitempty"`
	DietaryPreferences []string   `json:"dietaryPreferences" db:"dietary_preferences" yaml:"dietaryPreferences"`
	Allergies          []string   `json:"allergies" db:"allergies" yaml:"allergies"`
	CalorieGoal        int        `json:"calorieGoal" db:"calorie_goal" yaml:"calorieGoal"`
	FitnessGoal        string     `json:"fitnessGoal,omitempty" db:"fitness_goal" yaml:"fitnessGoal,omitempty"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at" yaml:"-"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty" db:"updated_at" yaml:"-"`
}

// UserProfileRequest is the payload of POST /api/users/profile.
// A missing ID creates a new user.
type UserProfileRequest struct {
	ID                 string   `json:"id,omitempty"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Age                *int     `json:"age,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	Allergies          []string `json:"allergies"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	CalorieGoal        int      `json:"calorieGoal"`
	FitnessGoal        string   `json:"fitnessGoal,omitempty"`
}

// CalorieGoalInRange reports whether goal lies within [MinCalorieGoal, MaxCalorieGoal].
func CalorieGoalInRange(goal int) bool {
	return goal >= MinCalorieGoal && goal <= MaxCalorieGoal
}
