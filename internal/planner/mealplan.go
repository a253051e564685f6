package planner

import (
	"fmt"
	"time"

	"hungryjack/internal/profile"
)

// MealSlot identifies a meal's place within a day.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// Meal is a single generated meal. Complete is false when the generation
// response was missing required fields; incomplete meals are excluded from
// calorie totals but their ingredients still feed the shopping list.
type Meal struct {
	ID              string   `json:"id"`
	Slot            MealSlot `json:"slot"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Calories        int      `json:"calories"`
	PrepTimeMinutes int      `json:"prep_time_minutes"`
	ProteinGrams    int      `json:"protein_grams,omitempty"`
	CarbsGrams      int      `json:"carbs_grams,omitempty"`
	FatGrams        int      `json:"fat_grams,omitempty"`
	Ingredients     []string `json:"ingredients,omitempty"`
	Instructions    []string `json:"instructions,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Complete        bool     `json:"complete"`
}

// DailyPlan holds one calendar day of meals. The three main slots are nil
// when the response omitted them entirely.
type DailyPlan struct {
	Date      time.Time `json:"date"`
	Breakfast *Meal     `json:"breakfast,omitempty"`
	Lunch     *Meal     `json:"lunch,omitempty"`
	Dinner    *Meal     `json:"dinner,omitempty"`
	Snacks    []Meal    `json:"snacks,omitempty"`
}

// Meals returns the day's meals in slot order.
func (d *DailyPlan) Meals() []*Meal {
	var meals []*Meal
	for _, m := range []*Meal{d.Breakfast, d.Lunch, d.Dinner} {
		if m != nil {
			meals = append(meals, m)
		}
	}
	for i := range d.Snacks {
		meals = append(meals, &d.Snacks[i])
	}
	return meals
}

// TotalCalories is derived from the day's complete meals and is never stored
// independently of them.
func (d *DailyPlan) TotalCalories() int {
	total := 0
	for _, m := range d.Meals() {
		if m.Complete {
			total += m.Calories
		}
	}
	return total
}

// MealPlan is the validated result of one generation call. It is immutable
// after creation; consumer edits live on the derived shopping list.
type MealPlan struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"user_id"`
	Days                []DailyPlan         `json:"days"`
	Goals               profile.GoalProfile `json:"goals"`
	IncompleteMealCount int                 `json:"incomplete_meal_count"`
	CreatedAt           time.Time           `json:"created_at"`
}

// MealCount counts every meal in the plan, complete or not.
func (p *MealPlan) MealCount() int {
	n := 0
	for i := range p.Days {
		n += len(p.Days[i].Meals())
	}
	return n
}

// PlanWindow is the requested date range, inclusive on both ends.
type PlanWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days covered by the window.
// Negative when End precedes Start.
func (w PlanWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// MealPlanRequest carries everything one generation call needs. It is
// transient; only the resulting MealPlan is persisted.
type MealPlanRequest struct {
	UserID  string
	Profile profile.GoalProfile
	Window  PlanWindow
}

// Validate checks the profile and the window.
func (r MealPlanRequest) Validate(maxDays int) error {
	if err := r.Profile.Validate(); err != nil {
		return err
	}
	if r.Window.End.Before(r.Window.Start) {
		return fmt.Errorf("%w: plan window ends before it starts", profile.ErrInvalidProfile)
	}
	if d := r.Window.Days(); d > maxDays {
		return fmt.Errorf("%w: plan window covers %d days, maximum is %d",
			profile.ErrInvalidProfile, d, maxDays)
	}
	return nil
}
