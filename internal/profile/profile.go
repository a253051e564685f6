package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile marks user-fixable input errors. Callers surface the
// wrapped message verbatim.
var ErrInvalidProfile = errors.New("invalid profile")

// GoalType is the user's dietary goal.
type GoalType string

const (
	GoalWeightLoss  GoalType = "weight_loss"
	GoalMuscleGain  GoalType = "muscle_gain"
	GoalMaintenance GoalType = "maintenance"
)

// Bounds for the optional numeric fields. A zero value means "not set".
const (
	MinDailyCalories = 1000
	MaxDailyCalories = 5000
	MinPrepMinutes   = 10
	MaxPrepMinutes   = 120
)

// GoalProfile is a user's validated dietary preferences. It carries no
// behavior beyond validation and normalization.
type GoalProfile struct {
	GoalType                 GoalType `json:"goal_type"`
	DietaryStyles            []string `json:"dietary_styles,omitempty"`
	Allergies                []string `json:"allergies,omitempty"`
	PreferredCuisines        []string `json:"preferred_cuisines,omitempty"`
	DailyCalorieTarget       int      `json:"daily_calorie_target,omitempty"`
	MealPrepTimeLimitMinutes int      `json:"meal_prep_time_limit_minutes,omitempty"`
}

// Validate rejects out-of-range values before any prompt is constructed.
func (p GoalProfile) Validate() error {
	switch p.GoalType {
	case GoalWeightLoss, GoalMuscleGain, GoalMaintenance:
	default:
		return fmt.Errorf("%w: unknown goal type %q", ErrInvalidProfile, p.GoalType)
	}

	if p.DailyCalorieTarget != 0 &&
		(p.DailyCalorieTarget < MinDailyCalories || p.DailyCalorieTarget > MaxDailyCalories) {
		return fmt.Errorf("%w: daily calorie target %d outside %d-%d",
			ErrInvalidProfile, p.DailyCalorieTarget, MinDailyCalories, MaxDailyCalories)
	}

	if p.MealPrepTimeLimitMinutes != 0 &&
		(p.MealPrepTimeLimitMinutes < MinPrepMinutes || p.MealPrepTimeLimitMinutes > MaxPrepMinutes) {
		return fmt.Errorf("%w: meal prep time limit %d outside %d-%d minutes",
			ErrInvalidProfile, p.MealPrepTimeLimitMinutes, MinPrepMinutes, MaxPrepMinutes)
	}

	return nil
}

// Normalized returns a copy with every tag set trimmed, lowercased and
// de-duplicated in order. Prompt construction works off the normalized form
// so identical inputs produce identical requests.
func (p GoalProfile) Normalized() GoalProfile {
	p.DietaryStyles = normalizeTags(p.DietaryStyles)
	p.Allergies = normalizeTags(p.Allergies)
	p.PreferredCuisines = normalizeTags(p.PreferredCuisines)
	return p
}

func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
