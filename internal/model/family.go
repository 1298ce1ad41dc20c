package model

import (
	"strings"
	"time"
)

// NoneTag stands in for an empty tag set on family members.
const NoneTag = "None"

// Age bounds for family members.
const (
	MinMemberAge = 0
	MaxMemberAge = 120
)

// FamilyMember is a household member tracked alongside the user.
type FamilyMember struct {
	ID                  string    `json:"id" db:"id" yaml:"id"`
	UserID              string    `json:"userId,omitempty" db:"user_id" yaml:"-"`
	Name                string    `json:"name" db:"name" yaml:"name"`
	Age                 int       `json:"age" db:"age" yaml:"age"`
	Gender              string    `json:"gender" db:"gender" yaml:"gender"`
	Relationship        string    `json:"relationship" db:"relationship" yaml:"relationship"`
	Allergies           []string  `json:"allergies" db:"allergies" yaml:"allergies"`
	DietaryRestrictions []string  `json:"dietaryRestrictions" db:"dietary_restrictions" yaml:"dietaryRestrictions"`
	MedicalConditions   []string  `json:"medicalConditions" db:"medical_conditions" yaml:"medicalConditions"`
	CalorieGoal         *int      `json:"calorieGoal" db:"calorie_goal" yaml:"calorieGoal,omitempty"`
	CreatedAt           time.Time `json:"createdAt,omitempty" db:"created_at" yaml:"-"`
}

// FamilyMemberRequest is the payload of POST /api/users/{userId}/family.
type FamilyMemberRequest struct {
	Name                string   `json:"name"`
	Age                 int      `json:"age"`
	Gender              string   `json:"gender"`
	Relationship        string   `json:"relationship"`
	Allergies           []string `json:"allergies"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	MedicalConditions   []string `json:"medicalConditions"`
	CalorieGoal         *int     `json:"calorieGoal,omitempty"`
}

// NormalizeTags trims every tag, drops empty ones and returns []string{NoneTag}
// when nothing is left.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{NoneTag}
	}
	return out
}

// SplitTags parses a comma-separated tag input and normalises it.
func SplitTags(input string) []string {
	return NormalizeTags(strings.Split(input, ","))
}
