package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned for unknown shopping list or item lookups.
var ErrNotFound = errors.New("shopping list not found")

// Repository handles persistence of shopping lists. Items are stored as a
// JSON document per list; only the purchase flag is ever mutated in place.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores a freshly built list, replacing any previous list for the
// same meal plan. Lists are regenerated wholesale, never patched.
func (r *Repository) Save(ctx context.Context, list *ShoppingList) error {
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list items: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shopping_lists WHERE meal_plan_id = ?`, list.MealPlanID,
	); err != nil {
		return fmt.Errorf("failed to remove previous shopping list: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO shopping_lists (id, meal_plan_id, items, created_at)
		 VALUES (?, ?, ?, ?)`,
		list.ID, list.MealPlanID, string(itemsJSON), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert shopping list: %w", err)
	}

	return tx.Commit()
}

// GetByMealPlanID retrieves the shopping list derived from a meal plan.
func (r *Repository) GetByMealPlanID(ctx context.Context, mealPlanID string) (*ShoppingList, error) {
	return r.get(ctx, `SELECT id, meal_plan_id, items, created_at FROM shopping_lists WHERE meal_plan_id = ?`, mealPlanID)
}

// GetByID retrieves a shopping list by its own id.
func (r *Repository) GetByID(ctx context.Context, id string) (*ShoppingList, error) {
	return r.get(ctx, `SELECT id, meal_plan_id, items, created_at FROM shopping_lists WHERE id = ?`, id)
}

func (r *Repository) get(ctx context.Context, query, arg string) (*ShoppingList, error) {
	var (
		list      ShoppingList
		itemsJSON string
	)
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&list.ID, &list.MealPlanID, &itemsJSON, &list.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	return &list, nil
}

// SetPurchased flips the purchase flag on one item, identified by its name
// within the list.
func (r *Repository) SetPurchased(ctx context.Context, listID, itemName string, purchased bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var itemsJSON string
	err = tx.QueryRowContext(ctx,
		`SELECT items FROM shopping_lists WHERE id = ?`, listID,
	).Scan(&itemsJSON)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load shopping list %s: %w", listID, err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}

	found := false
	for i := range items {
		if items[i].ItemName == itemName {
			items[i].IsPurchased = purchased
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: item %q", ErrNotFound, itemName)
	}

	updated, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE shopping_lists SET items = ? WHERE id = ?`, string(updated), listID,
	); err != nil {
		return fmt.Errorf("failed to update shopping list %s: %w", listID, err)
	}

	return tx.Commit()
}

// DeleteByMealPlanID deletes the shopping list derived from a meal plan.
func (r *Repository) DeleteByMealPlanID(ctx context.Context, mealPlanID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_lists WHERE meal_plan_id = ?`, mealPlanID)
	return err
}
