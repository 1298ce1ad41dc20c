package dashboard

import (
	"strconv"
	"strings"

	"infinium/internal/model"
)

// FamilyForm is the raw input of the add-family-member form. Tag fields are
// comma-separated.
type FamilyForm struct {
	Name                string
	Age                 string
	Gender              string
	Relationship        string
	Allergies           string
	DietaryRestrictions string
	MedicalConditions   string
	CalorieGoal         string
}

// Member validates the form and builds a member with id.
func (f FamilyForm) Member(id string) (model.FamilyMember, error) {
	m := model.FamilyMember{
		ID:                  id,
		Name:                strings.TrimSpace(f.Name),
		Gender:              strings.TrimSpace(f.Gender),
		Relationship:        strings.TrimSpace(f.Relationship),
		Allergies:           model.SplitTags(f.Allergies),
		DietaryRestrictions: model.SplitTags(f.DietaryRestrictions),
		MedicalConditions:   model.SplitTags(f.MedicalConditions),
	}

	switch {
	case m.Name == "":
		return model.FamilyMember{}, invalid("name", "is required")
	case m.Gender == "":
		return model.FamilyMember{}, invalid("gender", "is required")
	case m.Relationship == "":
		return model.FamilyMember{}, invalid("relationship", "is required")
	}

	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil || age < model.MinMemberAge || age > model.MaxMemberAge {
		return model.FamilyMember{}, invalid("age", "must be a whole number between 0 and 120")
	}
	m.Age = age

	if goal := strings.TrimSpace(f.CalorieGoal); goal != "" {
		v, err := strconv.Atoi(goal)
		if err != nil || v <= 0 {
			return model.FamilyMember{}, invalid("calorieGoal", "must be a positive whole number")
		}
		m.CalorieGoal = &v
	}

	return m, nil
}
