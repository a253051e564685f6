package shopping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungryjack/internal/planner"
)

func planWithIngredients(lines ...[]string) *planner.MealPlan {
	day := planner.DailyPlan{}
	slots := []**planner.Meal{&day.Breakfast, &day.Lunch, &day.Dinner}
	for i, ingredients := range lines {
		meal := &planner.Meal{
			ID:          "meal-" + string(rune('a'+i)),
			Name:        "meal",
			Complete:    true,
			Ingredients: ingredients,
		}
		if i < len(slots) {
			*slots[i] = meal
		} else {
			day.Snacks = append(day.Snacks, *meal)
		}
	}
	return &planner.MealPlan{ID: "plan-1", Days: []planner.DailyPlan{day}}
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder()
	require.NoError(t, err)
	return b
}

func findItem(t *testing.T, list *ShoppingList, name string) Item {
	t.Helper()
	for _, item := range list.Items {
		if item.ItemName == name {
			return item
		}
	}
	t.Fatalf("item %q not in list", name)
	return Item{}
}

func TestBuildMergesSameUnit(t *testing.T) {
	b := newTestBuilder(t)
	list, err := b.Build(planWithIngredients(
		[]string{"1 cup rice"},
		[]string{"0.5 cup rice"},
	))
	require.NoError(t, err)

	require.Len(t, list.Items, 1)
	item := list.Items[0]
	assert.Equal(t, "rice", item.ItemName)
	require.NotNil(t, item.Quantity)
	assert.InDelta(t, 1.5, *item.Quantity, 0.0001)
	assert.Equal(t, "cup", item.Unit)
	assert.Equal(t, "grains", item.Category)
	assert.False(t, item.NeedsReview)
}

func TestBuildConvertsToFirstSeenUnit(t *testing.T) {
	b := newTestBuilder(t)
	list, err := b.Build(planWithIngredients(
		[]string{"1 cup olive oil"},
		[]string{"2 tbsp olive oil"},
	))
	require.NoError(t, err)

	item := findItem(t, list, "olive oil")
	require.NotNil(t, item.Quantity)
	assert.InDelta(t, 1.125, *item.Quantity, 0.0001)
	assert.Equal(t, "cup", item.Unit)
}

func TestBuildFirstSeenUnitWinsRegardlessOfOrder(t *testing.T) {
	b := newTestBuilder(t)
	list, err := b.Build(planWithIngredients(
		[]string{"2 tbsp olive oil"},
		[]string{"1 cup olive oil"},
	))
	require.NoError(t, err)

	item := findItem(t, list, "olive oil")
	require.NotNil(t, item.Quantity)
	assert.InDelta(t, 18, *item.Quantity, 0.0001)
	assert.Equal(t, "tbsp", item.Unit)
}

func TestBuildIncompatibleUnitsFlagged(t *testing.T) {
	b := newTestBuilder(t)
	list, err := b.Build(planWithIngredients(
		[]string{"2 cloves garlic"},
		[]string{"1 oz garlic"},
	))
	require.NoError(t, err)

	item := findItem(t, list, "garlic")
	assert.Nil(t, item.Quantity)
	assert.True(t, item.NeedsReview)
	assert.Equal(t, "2 cloves + 1 oz (could not combine)", item.Note)
}

func TestBuildUnparseableQuantityCountsAsOne(t *testing.T) {
	b := newTestBuilder(t)
	list, err := b.Build(planWithIngredients(
		[]string{"salt to taste"},
	))
	require.NoError(t, err)

	item := findItem(t, list, "salt to taste")
	require.NotNil(t, item.Quantity)
	assert.Equal(t, 1.0, *item.Quantity)
	assert.True(t, item.NeedsReview)
	assert.Equal(t, "spices", item.Category)
}

func TestBuildCategoryThenAlphaOrder(t *testing.T) {
	b := newTestBuilder(t)
	list, err := b.Build(planWithIngredients(
		[]string{"1 tsp paprika", "1 cup rice", "2 chicken breasts", "1 xyzzy"},
		[]string{"1 head broccoli", "2 apples"},
	))
	require.NoError(t, err)

	var names []string
	for _, item := range list.Items {
		names = append(names, item.ItemName)
	}
	// produce alphabetical, then protein, grains, spices, other last.
	assert.Equal(t, []string{"apples", "broccoli", "chicken breasts", "rice", "paprika", "xyzzy"}, names)
	assert.Equal(t, CategoryOther, findItem(t, list, "xyzzy").Category)
}

func TestBuildDeterministic(t *testing.T) {
	b := newTestBuilder(t)
	plan := planWithIngredients(
		[]string{"1 cup rice", "2 tbsp olive oil"},
		[]string{"0.5 cup rice", "1 onion, diced"},
	)

	first, err := b.Build(plan)
	require.NoError(t, err)
	second, err := b.Build(plan)
	require.NoError(t, err)

	require.Equal(t, len(first.Items), len(second.Items))
	for i := range first.Items {
		got, want := first.Items[i], second.Items[i]
		assert.Equal(t, want.ItemName, got.ItemName)
		assert.Equal(t, want.Unit, got.Unit)
		assert.Equal(t, want.Category, got.Category)
		if want.Quantity != nil && got.Quantity != nil {
			assert.Equal(t, *want.Quantity, *got.Quantity)
		}
	}
}

func TestBuildIncludesIncompleteMeals(t *testing.T) {
	b := newTestBuilder(t)
	plan := planWithIngredients([]string{"1 cup rice"})
	plan.Days[0].Dinner = &planner.Meal{
		ID:          "incomplete-dinner",
		Complete:    false,
		Ingredients: []string{"2 cups spinach"},
	}

	list, err := b.Build(plan)
	require.NoError(t, err)
	findItem(t, list, "spinach")
}

func TestBuildEmptyPlan(t *testing.T) {
	b := newTestBuilder(t)
	_, err := b.Build(&planner.MealPlan{ID: "empty"})
	assert.True(t, errors.Is(err, ErrEmptyPlan))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2 cups", formatAmount(2, "cup"))
	assert.Equal(t, "1 cup", formatAmount(1, "cup"))
	assert.Equal(t, "2 tbsp", formatAmount(2, "tbsp"))
	assert.Equal(t, "2 pinches", formatAmount(2, "pinch"))
	assert.Equal(t, "1.5 units", formatAmount(1.5, ""))
	assert.Equal(t, "0.5 cups", formatAmount(0.5, "cup"))
}
