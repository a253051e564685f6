package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables(t *testing.T) *Tables {
	t.Helper()
	tables, err := DefaultTables()
	require.NoError(t, err)
	return tables
}

func TestParseIngredient(t *testing.T) {
	tables := testTables(t)

	tests := []struct {
		raw      string
		quantity float64
		unit     string
		item     string
		review   bool
	}{
		{raw: "2 cups broccoli florets", quantity: 2, unit: "cup", item: "broccoli florets"},
		{raw: "1 tbsp olive oil", quantity: 1, unit: "tbsp", item: "olive oil"},
		{raw: "0.5 cup rice", quantity: 0.5, unit: "cup", item: "rice"},
		{raw: "1/2 cup rice", quantity: 0.5, unit: "cup", item: "rice"},
		{raw: "1 1/2 cups flour", quantity: 1.5, unit: "cup", item: "flour"},
		{raw: "2 cups of rice", quantity: 2, unit: "cup", item: "rice"},
		{raw: "3 Tbsp. soy sauce", quantity: 3, unit: "tbsp", item: "soy sauce"},
		{raw: "1 onion, diced", quantity: 1, unit: "", item: "onion"},
		{raw: "2 cloves garlic", quantity: 2, unit: "clove", item: "garlic"},
		{raw: "200 g chicken breast", quantity: 200, unit: "g", item: "chicken breast"},
		{raw: "2 eggs", quantity: 2, unit: "", item: "eggs"},
		{raw: "salt to taste", quantity: 1, unit: "", item: "salt to taste", review: true},
		{raw: "a pinch of saffron", quantity: 1, unit: "", item: "a pinch of saffron", review: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ing := tables.ParseIngredient(tt.raw, "meal-1")

			assert.Equal(t, tt.raw, ing.RawText)
			assert.Equal(t, "meal-1", ing.MealID)
			assert.InDelta(t, tt.quantity, ing.Quantity, 0.0001)
			assert.Equal(t, tt.unit, ing.Unit)
			assert.Equal(t, tt.item, ing.ItemName)
			assert.Equal(t, tt.review, ing.NeedsReview)
		})
	}
}

func TestParseIngredientQuantityOnly(t *testing.T) {
	tables := testTables(t)

	ing := tables.ParseIngredient("2", "meal-1")
	assert.True(t, ing.NeedsReview)
	assert.Equal(t, "2", ing.ItemName)
}

func TestConvertible(t *testing.T) {
	tables := testTables(t)

	factor, ok := tables.Convertible("tbsp", "cup")
	require.True(t, ok)
	assert.InDelta(t, 1.0/16, factor, 0.0001)

	factor, ok = tables.Convertible("cup", "tsp")
	require.True(t, ok)
	assert.InDelta(t, 48, factor, 0.0001)

	factor, ok = tables.Convertible("lb", "oz")
	require.True(t, ok)
	assert.InDelta(t, 16, factor, 0.0001)

	factor, ok = tables.Convertible("kg", "g")
	require.True(t, ok)
	assert.InDelta(t, 1000, factor, 0.0001)

	// Same unit, including unit-less counts.
	factor, ok = tables.Convertible("", "")
	require.True(t, ok)
	assert.Equal(t, 1.0, factor)

	// Across families and for countables there is no conversion.
	_, ok = tables.Convertible("cup", "g")
	assert.False(t, ok)
	_, ok = tables.Convertible("clove", "oz")
	assert.False(t, ok)
	_, ok = tables.Convertible("clove", "slice")
	assert.False(t, ok)
	_, ok = tables.Convertible("", "cup")
	assert.False(t, ok)
}

func TestCategorize(t *testing.T) {
	tables := testTables(t)

	tests := map[string]string{
		"broccoli florets": "produce",
		"chicken breast":   "protein",
		"greek yogurt":     "dairy",
		"butter":           "dairy",
		"whole milk":       "dairy",
		"brown rice":       "grains",
		"olive oil":        "pantry",
		"black pepper":     "spices",
		// Longest keyword wins over a shorter match in another category.
		"bell pepper":   "produce",
		"peanut butter": "pantry",
		"almond butter": "pantry",
		"coconut milk":  "pantry",
		"xyzzy":         CategoryOther,
	}
	for item, want := range tests {
		assert.Equal(t, want, tables.Categorize(item), item)
	}
}
