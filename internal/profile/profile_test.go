package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile GoalProfile
		wantErr bool
	}{
		{
			name:    "minimal valid",
			profile: GoalProfile{GoalType: GoalMaintenance},
		},
		{
			name: "full valid",
			profile: GoalProfile{
				GoalType:                 GoalWeightLoss,
				DietaryStyles:            []string{"vegetarian"},
				Allergies:                []string{"peanuts"},
				PreferredCuisines:        []string{"italian"},
				DailyCalorieTarget:       1800,
				MealPrepTimeLimitMinutes: 45,
			},
		},
		{
			name:    "unknown goal",
			profile: GoalProfile{GoalType: "get_swole"},
			wantErr: true,
		},
		{
			name:    "calorie target below bound",
			profile: GoalProfile{GoalType: GoalMuscleGain, DailyCalorieTarget: 900},
			wantErr: true,
		},
		{
			name:    "calorie target above bound",
			profile: GoalProfile{GoalType: GoalMuscleGain, DailyCalorieTarget: 5001},
			wantErr: true,
		},
		{
			name:    "calorie bounds inclusive",
			profile: GoalProfile{GoalType: GoalMuscleGain, DailyCalorieTarget: 5000},
		},
		{
			name:    "prep limit below bound",
			profile: GoalProfile{GoalType: GoalMaintenance, MealPrepTimeLimitMinutes: 5},
			wantErr: true,
		},
		{
			name:    "prep limit above bound",
			profile: GoalProfile{GoalType: GoalMaintenance, MealPrepTimeLimitMinutes: 121},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidProfile))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalized(t *testing.T) {
	p := GoalProfile{
		GoalType:      GoalMaintenance,
		DietaryStyles: []string{" Vegan ", "vegan", "", "Gluten-Free"},
		Allergies:     []string{"Shellfish", "shellfish "},
	}

	n := p.Normalized()

	assert.Equal(t, []string{"vegan", "gluten-free"}, n.DietaryStyles)
	assert.Equal(t, []string{"shellfish"}, n.Allergies)
	// Original is untouched.
	assert.Equal(t, []string{" Vegan ", "vegan", "", "Gluten-Free"}, p.DietaryStyles)
}
