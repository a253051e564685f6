// Package nutrition sums per-meal nutrition into per-day and per-plan
// totals. Aggregation is a pure function over the plan: incomplete meals
// contribute nothing and days without any complete meal are excluded from
// averages.
package nutrition

import (
	"math"
	"time"

	"hungryjack/internal/planner"
	"hungryjack/internal/profile"
)

// toleranceBand is how far average daily calories may drift from the target
// before a plan is flagged, in percent.
const toleranceBand = 5.0

// DayTotals is one day's sums over its complete meals.
type DayTotals struct {
	Date          time.Time `json:"date"`
	Calories      int       `json:"calories"`
	ProteinGrams  int       `json:"protein_grams"`
	CarbsGrams    int       `json:"carbs_grams"`
	FatGrams      int       `json:"fat_grams"`
	CompleteMeals int       `json:"complete_meals"`
}

// Totals aggregates the whole plan.
type Totals struct {
	Days          []DayTotals `json:"days"`
	Calories      int         `json:"calories"`
	ProteinGrams  int         `json:"protein_grams"`
	CarbsGrams    int         `json:"carbs_grams"`
	FatGrams      int         `json:"fat_grams"`
	CompleteMeals int         `json:"complete_meals"`
}

// AverageDailyCalories divides plan calories by the number of days that have
// at least one complete meal. Zero when no day qualifies.
func (t Totals) AverageDailyCalories() float64 {
	counted := 0
	for _, d := range t.Days {
		if d.CompleteMeals > 0 {
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return float64(t.Calories) / float64(counted)
}

// Aggregate sums nutrition across the plan's complete meals.
func Aggregate(plan *planner.MealPlan) Totals {
	totals := Totals{}
	for i := range plan.Days {
		day := &plan.Days[i]
		dt := DayTotals{Date: day.Date}
		for _, m := range day.Meals() {
			if !m.Complete {
				continue
			}
			dt.Calories += m.Calories
			dt.ProteinGrams += m.ProteinGrams
			dt.CarbsGrams += m.CarbsGrams
			dt.FatGrams += m.FatGrams
			dt.CompleteMeals++
		}
		totals.Days = append(totals.Days, dt)
		totals.Calories += dt.Calories
		totals.ProteinGrams += dt.ProteinGrams
		totals.CarbsGrams += dt.CarbsGrams
		totals.FatGrams += dt.FatGrams
		totals.CompleteMeals += dt.CompleteMeals
	}
	return totals
}

// TargetComparison is advisory metadata: a plan outside tolerance is still
// returned, just flagged.
type TargetComparison struct {
	WithinTolerance bool    `json:"within_tolerance"`
	DeltaPercent    float64 `json:"delta_percent"`
}

// CompareToTarget compares average daily calories against the profile's
// target. The second return is false when the profile sets no target.
func CompareToTarget(totals Totals, p profile.GoalProfile) (TargetComparison, bool) {
	if p.DailyCalorieTarget == 0 {
		return TargetComparison{}, false
	}

	avg := totals.AverageDailyCalories()
	delta := (avg - float64(p.DailyCalorieTarget)) / float64(p.DailyCalorieTarget) * 100

	return TargetComparison{
		WithinTolerance: math.Abs(delta) <= toleranceBand,
		DeltaPercent:    delta,
	}, true
}
