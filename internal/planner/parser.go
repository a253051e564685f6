package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Warning describes a non-fatal defect found while parsing a generation
// response. Warnings are returned alongside the plan, never thrown.
type Warning struct {
	Day    int // 1-based day index within the plan window
	Slot   MealSlot
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("day %d %s: %s", w.Day, w.Slot, w.Reason)
}

// ParsePlan turns a raw generation response into a MealPlan. The service is
// not guaranteed to return strictly valid output: JSON may be wrapped in
// prose or markdown fences, fields may be missing, and key casing varies.
//
// A meal missing required fields is marked incomplete rather than failing
// the plan. The request window is authoritative: days are re-indexed against
// it and any day/date labels in the response are ignored. Total inability to
// extract a payload yields ErrUnparsableResponse; a payload with no usable
// days yields ErrGenerationFailed.
func ParsePlan(raw string, req MealPlanRequest) (*MealPlan, []Warning, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, nil, err
	}

	days, err := decodeDays(payload)
	if err != nil {
		return nil, nil, err
	}
	if len(days) == 0 {
		return nil, nil, fmt.Errorf("%w: response contained no days", ErrGenerationFailed)
	}

	windowDays := req.Window.Days()

	plan := &MealPlan{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Goals:     req.Profile.Normalized(),
		CreatedAt: time.Now().UTC(),
	}

	var warnings []Warning
	for i := 0; i < windowDays; i++ {
		day := DailyPlan{Date: req.Window.Start.AddDate(0, 0, i)}
		if i < len(days) {
			dayWarnings, incomplete := parseDay(&day, days[i], i+1)
			warnings = append(warnings, dayWarnings...)
			plan.IncompleteMealCount += incomplete
		} else {
			for _, slot := range []MealSlot{SlotBreakfast, SlotLunch, SlotDinner} {
				warnings = append(warnings, Warning{Day: i + 1, Slot: slot, Reason: "meal missing from response"})
			}
			plan.IncompleteMealCount += 3
		}
		plan.Days = append(plan.Days, day)
	}
	// Days beyond the window are dropped; the response's own labels are
	// advisory only.

	if plan.MealCount() == 0 {
		return nil, nil, fmt.Errorf("%w: no meal could be extracted from any day", ErrGenerationFailed)
	}

	return plan, warnings, nil
}

// extractJSON finds the first well-formed top-level JSON object or array in
// the raw text.
func extractJSON(raw string) (json.RawMessage, error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' && raw[i] != '[' {
			continue
		}
		var msg json.RawMessage
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		if err := dec.Decode(&msg); err == nil {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("%w: no JSON object or array found", ErrUnparsableResponse)
}

// decodeDays accepts either {"days": [...]} or a bare array of day objects.
func decodeDays(payload json.RawMessage) ([]any, error) {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}

	switch v := value.(type) {
	case []any:
		return v, nil
	case map[string]any:
		raw, ok := field(v, "days")
		if !ok {
			return nil, fmt.Errorf("%w: payload has no days array", ErrGenerationFailed)
		}
		days, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: days is not an array", ErrGenerationFailed)
		}
		return days, nil
	default:
		return nil, fmt.Errorf("%w: payload is not an object or array", ErrGenerationFailed)
	}
}

// parseDay fills one DailyPlan from a raw day entry and reports warnings and
// the number of incomplete meals.
func parseDay(day *DailyPlan, rawDay any, dayNum int) ([]Warning, int) {
	var warnings []Warning
	incomplete := 0

	dayMap, ok := rawDay.(map[string]any)
	if !ok {
		for _, slot := range []MealSlot{SlotBreakfast, SlotLunch, SlotDinner} {
			warnings = append(warnings, Warning{Day: dayNum, Slot: slot, Reason: "day entry is not an object"})
		}
		return warnings, 3
	}

	// The fixed contract nests slots under "meals"; tolerate responses that
	// put the slots directly on the day object.
	slots := dayMap
	if raw, ok := field(dayMap, "meals"); ok {
		if m, ok := raw.(map[string]any); ok {
			slots = m
		}
	}

	assign := func(slot MealSlot, dest **Meal) {
		raw, ok := field(slots, string(slot))
		if !ok {
			warnings = append(warnings, Warning{Day: dayNum, Slot: slot, Reason: "meal missing from response"})
			incomplete++
			return
		}
		meal, missing := parseMeal(raw, slot)
		if meal == nil {
			warnings = append(warnings, Warning{Day: dayNum, Slot: slot, Reason: "meal entry is not an object"})
			incomplete++
			return
		}
		if !meal.Complete {
			warnings = append(warnings, Warning{
				Day:    dayNum,
				Slot:   slot,
				Reason: "missing " + strings.Join(missing, ", "),
			})
			incomplete++
		}
		*dest = meal
	}

	assign(SlotBreakfast, &day.Breakfast)
	assign(SlotLunch, &day.Lunch)
	assign(SlotDinner, &day.Dinner)

	if raw, ok := field(slots, "snacks"); ok {
		if list, ok := raw.([]any); ok {
			for _, entry := range list {
				meal, missing := parseMeal(entry, SlotSnack)
				if meal == nil {
					warnings = append(warnings, Warning{Day: dayNum, Slot: SlotSnack, Reason: "meal entry is not an object"})
					incomplete++
					continue
				}
				if !meal.Complete {
					warnings = append(warnings, Warning{
						Day:    dayNum,
						Slot:   SlotSnack,
						Reason: "missing " + strings.Join(missing, ", "),
					})
					incomplete++
				}
				day.Snacks = append(day.Snacks, *meal)
			}
		}
	}

	return warnings, incomplete
}

// parseMeal validates one meal entry field by field. Required fields that
// are absent or uncoercible mark the meal incomplete; optional fields
// default to empty.
func parseMeal(raw any, slot MealSlot) (*Meal, []string) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, nil
	}

	meal := &Meal{ID: uuid.NewString(), Slot: slot}
	var missing []string

	if name, ok := stringField(m, "name", "title"); ok && name != "" {
		meal.Name = name
	} else {
		missing = append(missing, "name")
	}

	if desc, ok := stringField(m, "description"); ok {
		meal.Description = desc
	}

	if cal, ok := intField(m, "calories", "kcal"); ok && cal > 0 {
		meal.Calories = cal
	} else {
		missing = append(missing, "calories")
	}

	if prep, ok := intField(m, "prep_time", "prep_time_minutes", "preparation_time_minutes"); ok && prep > 0 {
		meal.PrepTimeMinutes = prep
	} else {
		missing = append(missing, "prep_time")
	}

	if ingredients, ok := stringListField(m, "ingredients"); ok {
		meal.Ingredients = ingredients
	} else {
		missing = append(missing, "ingredients")
	}

	if instructions, ok := stringListField(m, "instructions", "recipe", "steps"); ok {
		meal.Instructions = instructions
	} else {
		missing = append(missing, "instructions")
	}

	// Optional fields.
	meal.ProteinGrams, _ = intField(m, "protein_grams", "protein")
	meal.CarbsGrams, _ = intField(m, "carbs_grams", "carbs")
	meal.FatGrams, _ = intField(m, "fat_grams", "fat")
	meal.ImageURL, _ = stringField(m, "image_url", "image")
	meal.Tags, _ = stringListField(m, "tags")

	meal.Complete = len(missing) == 0
	return meal, missing
}

// field looks a key up tolerating casing and underscore/hyphen variations,
// e.g. prepTime, prep_time and Prep-Time all match "prep_time".
func field(m map[string]any, names ...string) (any, bool) {
	for _, name := range names {
		want := normalizeKey(name)
		for k, v := range m {
			if normalizeKey(k) == want {
				return v, true
			}
		}
	}
	return nil, false
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "_", "")
	k = strings.ReplaceAll(k, "-", "")
	return k
}

func stringField(m map[string]any, names ...string) (string, bool) {
	raw, ok := field(m, names...)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// intField coerces numbers and numeric strings. Strings like "450 kcal" are
// accepted by stripping the non-numeric suffix; strings with no numeric
// prefix are rejected.
func intField(m map[string]any, names ...string) (int, bool) {
	raw, ok := field(m, names...)
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case string:
		return numericPrefix(v)
	default:
		return 0, false
	}
}

func numericPrefix(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot && end > 0 {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	var f float64
	if _, err := fmt.Sscanf(s[:end], "%g", &f); err != nil {
		return 0, false
	}
	return int(f), true
}

// stringListField accepts a list of strings, tolerating scalar entries and a
// single newline-separated string (some models render instructions that way).
func stringListField(m map[string]any, names ...string) ([]string, bool) {
	raw, ok := field(m, names...)
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				s = fmt.Sprint(item)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		var out []string
		for _, line := range strings.Split(v, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}
