package analysis

import (
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

const foodImagePrompt = `Analyze this food image and provide detailed information in JSON format with the following structure:
{
    "foodItems": [
        {
            "name": "food name",
            "quantity": "estimated quantity",
            "calories": estimated calories (number),
            "macros": {"protein": grams, "carbs": grams, "fat": grams},
            "allergens": ["list of potential allergens"],
            "nutritionFacts": {"fiber": grams, "sugar": grams, "sodium": mg, "vitamins": ["list of key vitamins"]}
        }
    ],
    "totalCalories": total calories for entire meal,
    "mealType": "breakfast/lunch/dinner/snack",
    "healthScore": 1-10,
    "suggestions": ["health suggestions"]
}`

var dietPlanPrompt = prompts.NewPromptTemplate(`Create a personalized {{.days}}-day diet plan for a user with the following profile:

User Profile:
- Calorie Goal: {{.calorieGoal}} calories/day
- Fitness Goal: {{.fitnessGoal}}
- Allergies: {{.allergies}}
- Dietary Preferences: {{.preferences}}
- Age: {{.age}}
- Gender: {{.gender}}

Recent Food Intake:
{{.recentIntake}}

Generate a JSON response with this structure:
{
    "plan": {
        "duration": {{.days}},
        "targetCalories": {{.calorieGoal}},
        "days": [
            {
                "day": 1,
                "meals": [
                    {
                        "type": "breakfast/lunch/dinner/snack",
                        "name": "meal name",
                        "description": "brief description",
                        "ingredients": ["ingredient1", "ingredient2"],
                        "calories": number,
                        "macros": {"protein": g, "carbs": g, "fat": g},
                        "preparation": "simple steps"
                    }
                ],
                "dayTotalCalories": number
            }
        ]
    },
    "nutritionTips": ["tip1", "tip2"],
    "hydrationReminder": "recommendation",
    "exerciseAdvice": "personalized advice",
    "weeklyObjectives": ["objective1", "objective2"]
}`, []string{"days", "calorieGoal", "fitnessGoal", "allergies", "preferences", "age", "gender", "recentIntake"})

var recommendationsPrompt = prompts.NewPromptTemplate(`Provide detailed nutritional recommendations for a {{.age}}-year-old {{.gender}} with the following:
- Goal: {{.fitnessGoal}}
- Dietary restrictions: {{.preferences}}
- Allergies: {{.allergies}}
- Daily calorie goal: {{.calorieGoal}}

Return JSON with this structure:
{
    "macroBreakdown": {
        "proteinPercentage": number,
        "carbsPercentage": number,
        "fatPercentage": number,
        "explanation": "why these percentages"
    },
    "essentialNutrients": ["list of key nutrients to focus on"],
    "foodsToEmphasize": ["foods to eat more of"],
    "foodsToAvoid": ["foods to avoid"],
    "mealTimingAdvice": "when to eat",
    "supplementSuggestions": ["supplements to consider"]
}`, []string{"age", "gender", "fitnessGoal", "preferences", "allergies", "calorieGoal"})

// joinOr joins tags with commas, or returns fallback when there are none.
func joinOr(tags []string, fallback string) string {
	if len(tags) == 0 {
		return fallback
	}
	return strings.Join(tags, ", ")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
