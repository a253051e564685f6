package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungryjack/internal/profile"
)

func TestBuildRequestDeterministic(t *testing.T) {
	b := PromptBuilder{MaxDays: 7}
	prof := profile.GoalProfile{
		GoalType:           profile.GoalWeightLoss,
		DietaryStyles:      []string{"Vegetarian", " vegetarian "},
		Allergies:          []string{"Peanuts"},
		DailyCalorieTarget: 1800,
	}
	window := testRequest(3).Window

	first, err := b.BuildRequest(prof, window)
	require.NoError(t, err)
	second, err := b.BuildRequest(prof, window)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, first.Days)

	// Tags are normalized before rendering.
	assert.Equal(t, []string{"vegetarian"}, first.DietaryStyles)
	assert.Contains(t, first.Prompt, "3-day meal plan")
	assert.Contains(t, first.Prompt, "Goal: Weight Loss")
	assert.Contains(t, first.Prompt, "Allergies (must avoid): peanuts")
	assert.Contains(t, first.Prompt, "Daily Calorie Target: 1800 calories")
}

func TestBuildRequestOmitsUnsetFields(t *testing.T) {
	b := PromptBuilder{MaxDays: 7}
	req, err := b.BuildRequest(profile.GoalProfile{GoalType: profile.GoalMaintenance}, testRequest(2).Window)
	require.NoError(t, err)

	assert.NotContains(t, req.Prompt, "Allergies")
	assert.NotContains(t, req.Prompt, "Calorie Target")
	assert.NotContains(t, req.Prompt, "Preparation Time Limit")
}

func TestBuildRequestWindowValidation(t *testing.T) {
	b := PromptBuilder{MaxDays: 7}
	prof := profile.GoalProfile{GoalType: profile.GoalMaintenance}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := b.BuildRequest(prof, PlanWindow{Start: start, End: start.AddDate(0, 0, -1)})
	assert.True(t, errors.Is(err, profile.ErrInvalidProfile), "inverted window")

	_, err = b.BuildRequest(prof, PlanWindow{Start: start, End: start.AddDate(0, 0, 7)})
	assert.True(t, errors.Is(err, profile.ErrInvalidProfile), "window longer than cap")

	_, err = b.BuildRequest(prof, PlanWindow{Start: start, End: start.AddDate(0, 0, 6)})
	assert.NoError(t, err, "window at cap")
}

func TestBuildRequestRejectsInvalidProfile(t *testing.T) {
	b := PromptBuilder{MaxDays: 7}
	_, err := b.BuildRequest(profile.GoalProfile{GoalType: "bulk"}, testRequest(1).Window)
	assert.True(t, errors.Is(err, profile.ErrInvalidProfile))
}

func TestBuildRetryRequestStricter(t *testing.T) {
	b := PromptBuilder{MaxDays: 7}
	prof := profile.GoalProfile{GoalType: profile.GoalMaintenance}
	window := testRequest(2).Window

	base, err := b.BuildRequest(prof, window)
	require.NoError(t, err)
	retry, err := b.BuildRetryRequest(prof, window)
	require.NoError(t, err)

	assert.NotContains(t, base.Prompt, "previous response could not be parsed")
	assert.Contains(t, retry.Prompt, "previous response could not be parsed")
	assert.True(t, len(retry.Prompt) > len(base.Prompt))
}
