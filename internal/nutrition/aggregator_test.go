package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungryjack/internal/planner"
	"hungryjack/internal/profile"
)

func meal(calories, protein int, complete bool) *planner.Meal {
	return &planner.Meal{
		Name:         "meal",
		Calories:     calories,
		ProteinGrams: protein,
		CarbsGrams:   protein * 2,
		FatGrams:     protein / 2,
		Complete:     complete,
	}
}

func twoDayPlan() *planner.MealPlan {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return &planner.MealPlan{
		Days: []planner.DailyPlan{
			{
				Date:      start,
				Breakfast: meal(400, 20, true),
				Lunch:     meal(600, 30, true),
				Dinner:    meal(700, 40, true),
				Snacks:    []planner.Meal{*meal(200, 10, true)},
			},
			{
				Date:      start.AddDate(0, 0, 1),
				Breakfast: meal(500, 25, true),
				Lunch:     meal(0, 0, false), // incomplete, contributes nothing
				Dinner:    meal(800, 35, true),
			},
		},
	}
}

func TestAggregate(t *testing.T) {
	totals := Aggregate(twoDayPlan())

	require.Len(t, totals.Days, 2)
	assert.Equal(t, 1900, totals.Days[0].Calories)
	assert.Equal(t, 4, totals.Days[0].CompleteMeals)
	assert.Equal(t, 1300, totals.Days[1].Calories)
	assert.Equal(t, 2, totals.Days[1].CompleteMeals)

	assert.Equal(t, 3200, totals.Calories)
	assert.Equal(t, 160, totals.ProteinGrams)
	assert.Equal(t, 6, totals.CompleteMeals)
	assert.InDelta(t, 1600, totals.AverageDailyCalories(), 0.001)
}

func TestAverageExcludesDaysWithoutCompleteMeals(t *testing.T) {
	plan := twoDayPlan()
	plan.Days = append(plan.Days, planner.DailyPlan{
		Date:   plan.Days[1].Date.AddDate(0, 0, 1),
		Dinner: meal(0, 0, false),
	})

	totals := Aggregate(plan)
	require.Len(t, totals.Days, 3)
	assert.Equal(t, 0, totals.Days[2].CompleteMeals)

	// Still 3200 over two counted days, not three.
	assert.InDelta(t, 1600, totals.AverageDailyCalories(), 0.001)
}

func TestAverageZeroWhenNothingComplete(t *testing.T) {
	plan := &planner.MealPlan{
		Days: []planner.DailyPlan{{Breakfast: meal(0, 0, false)}},
	}
	assert.Zero(t, Aggregate(plan).AverageDailyCalories())
}

func TestCompareToTarget(t *testing.T) {
	totals := Aggregate(twoDayPlan()) // average 1600

	cmp, ok := CompareToTarget(totals, profile.GoalProfile{DailyCalorieTarget: 1600})
	require.True(t, ok)
	assert.True(t, cmp.WithinTolerance)
	assert.InDelta(t, 0, cmp.DeltaPercent, 0.001)

	cmp, ok = CompareToTarget(totals, profile.GoalProfile{DailyCalorieTarget: 2000})
	require.True(t, ok)
	assert.False(t, cmp.WithinTolerance)
	assert.InDelta(t, -20, cmp.DeltaPercent, 0.001)

	// 1600 vs 1530 target is +4.58%, inside the 5% band.
	cmp, ok = CompareToTarget(totals, profile.GoalProfile{DailyCalorieTarget: 1530})
	require.True(t, ok)
	assert.True(t, cmp.WithinTolerance)
	assert.Greater(t, cmp.DeltaPercent, 0.0)
}

func TestCompareToTargetNoTarget(t *testing.T) {
	_, ok := CompareToTarget(Aggregate(twoDayPlan()), profile.GoalProfile{})
	assert.False(t, ok)
}
