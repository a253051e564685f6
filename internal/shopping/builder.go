package shopping

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"hungryjack/internal/planner"
)

// ErrEmptyPlan means the caller passed a plan with no meals at all. This is
// an integration error, not a data-quality issue; data-quality problems
// never fail the build.
var ErrEmptyPlan = errors.New("meal plan has no meals")

// Builder derives a shopping list from a meal plan. It is a pure function
// of the plan and its read-only tables, so one Builder is safe for
// concurrent use.
type Builder struct {
	tables *Tables
}

// NewBuilder creates a Builder over the embedded lookup tables.
func NewBuilder() (*Builder, error) {
	tables, err := DefaultTables()
	if err != nil {
		return nil, err
	}
	return &Builder{tables: tables}, nil
}

// NewBuilderWithTables creates a Builder over custom tables.
func NewBuilderWithTables(tables *Tables) *Builder {
	return &Builder{tables: tables}
}

// Build walks every meal in the plan, incomplete ones included since partial
// ingredient data is still useful, and consolidates the ingredient lines
// into a categorized list.
func (b *Builder) Build(plan *planner.MealPlan) (*ShoppingList, error) {
	if plan.MealCount() == 0 {
		return nil, fmt.Errorf("%w: plan %s", ErrEmptyPlan, plan.ID)
	}

	// Flatten, retaining meal provenance for diagnostics.
	var parsed []Ingredient
	for i := range plan.Days {
		for _, meal := range plan.Days[i].Meals() {
			for _, line := range meal.Ingredients {
				parsed = append(parsed, b.tables.ParseIngredient(line, meal.ID))
			}
		}
	}

	// Group by item name in first-seen order.
	groups := make(map[string][]Ingredient)
	var order []string
	for _, ing := range parsed {
		if _, seen := groups[ing.ItemName]; !seen {
			order = append(order, ing.ItemName)
		}
		groups[ing.ItemName] = append(groups[ing.ItemName], ing)
	}

	list := &ShoppingList{
		ID:         uuid.NewString(),
		MealPlanID: plan.ID,
		CreatedAt:  time.Now().UTC(),
	}
	for _, name := range order {
		list.Items = append(list.Items, b.mergeGroup(name, groups[name]))
	}

	sort.SliceStable(list.Items, func(i, j int) bool {
		ri, rj := b.tables.CategoryRank(list.Items[i].Category), b.tables.CategoryRank(list.Items[j].Category)
		if ri != rj {
			return ri < rj
		}
		return list.Items[i].ItemName < list.Items[j].ItemName
	})

	return list, nil
}

// mergeGroup combines every contribution for one item name. Quantities in
// the same or convertible units are summed into the unit of the first
// contribution; anything else refuses to merge silently and is flagged
// instead.
func (b *Builder) mergeGroup(name string, entries []Ingredient) Item {
	item := Item{
		ItemName: name,
		Category: b.tables.Categorize(name),
	}

	targetUnit := entries[0].Unit
	total := 0.0
	mergeable := true

	for _, e := range entries {
		if e.NeedsReview {
			item.NeedsReview = true
		}
		factor, ok := b.tables.Convertible(e.Unit, targetUnit)
		if !ok {
			mergeable = false
			continue
		}
		total += e.Quantity * factor
	}

	if mergeable {
		item.Quantity = &total
		item.Unit = targetUnit
		return item
	}

	// Incompatible units: leave the quantity open and spell out each
	// contribution for the shopper.
	item.NeedsReview = true
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = formatAmount(e.Quantity, e.Unit)
	}
	item.Note = strings.Join(parts, " + ") + " (could not combine)"
	return item
}

// unitsWithoutPlural are abbreviations that read wrong with a trailing "s".
var unitsWithoutPlural = map[string]bool{
	"tsp": true, "tbsp": true, "ml": true, "l": true,
	"g": true, "kg": true, "oz": true, "lb": true,
}

var irregularPlurals = map[string]string{
	"pinch": "pinches",
	"bunch": "bunches",
}

func formatAmount(qty float64, unit string) string {
	q := strconv.FormatFloat(qty, 'f', -1, 64)
	if unit == "" {
		unit = "unit"
	}
	if qty != 1 && !unitsWithoutPlural[unit] {
		if p, ok := irregularPlurals[unit]; ok {
			unit = p
		} else {
			unit += "s"
		}
	}
	return q + " " + unit
}
