package shopping

import "time"

// ShoppingList is derived from a meal plan. It is regenerated, never
// patched, whenever its plan is regenerated; only item purchase state is
// consumer-mutable.
type ShoppingList struct {
	ID         string    `json:"id"`
	MealPlanID string    `json:"meal_plan_id"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
}

// Item is one consolidated shopping list entry. ItemName is the aggregation
// key and is unique within a list. Quantity is nil when contributions used
// incompatible units; Note then lists each original amount.
type Item struct {
	ItemName    string   `json:"item_name"`
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit,omitempty"`
	Category    string   `json:"category"`
	IsPurchased bool     `json:"is_purchased"`
	Note        string   `json:"note,omitempty"`
	NeedsReview bool     `json:"needs_review,omitempty"`
}
