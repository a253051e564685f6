package planner

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"hungryjack/internal/profile"
)

//go:embed plan_prompt.md
var planPrompt string

var planPromptTmpl = template.Must(
	template.New("plan").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(planPrompt),
)

// GenerationRequest is the payload sent to the text-generation service.
// Prompt carries the rendered instruction; the structured fields are kept
// alongside it for logging and for callers that speak a structured API.
type GenerationRequest struct {
	Days               int      `json:"days"`
	GoalType           string   `json:"goal_type"`
	DietaryStyles      []string `json:"dietary_styles,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	PreferredCuisines  []string `json:"preferred_cuisines,omitempty"`
	DailyCalorieTarget int      `json:"daily_calorie_target,omitempty"`
	MealPrepTimeLimit  int      `json:"meal_prep_time_limit,omitempty"`
	Prompt             string   `json:"prompt"`
}

// PromptBuilder converts a GoalProfile and plan window into a generation
// request. It is a pure function of its inputs: the same profile and window
// always render the same request.
type PromptBuilder struct {
	// MaxDays caps the plan length to bound payload size.
	MaxDays int
}

type promptData struct {
	Days               int
	Goal               string
	DietaryStyles      []string
	Allergies          []string
	PreferredCuisines  []string
	DailyCalorieTarget int
	MealPrepTimeLimit  int
	Strict             bool
}

// BuildRequest renders the base generation request for a validated profile
// and window.
func (b PromptBuilder) BuildRequest(p profile.GoalProfile, window PlanWindow) (GenerationRequest, error) {
	req := MealPlanRequest{Profile: p, Window: window}
	if err := req.Validate(b.MaxDays); err != nil {
		return GenerationRequest{}, err
	}
	return b.render(p, window.Days(), false)
}

// BuildRetryRequest renders a stricter variant of the request used after a
// response failed to parse. Inputs are assumed already validated.
func (b PromptBuilder) BuildRetryRequest(p profile.GoalProfile, window PlanWindow) (GenerationRequest, error) {
	return b.render(p, window.Days(), true)
}

func (b PromptBuilder) render(p profile.GoalProfile, days int, strict bool) (GenerationRequest, error) {
	p = p.Normalized()

	var buf bytes.Buffer
	err := planPromptTmpl.Execute(&buf, promptData{
		Days:               days,
		Goal:               goalLabel(p.GoalType),
		DietaryStyles:      p.DietaryStyles,
		Allergies:          p.Allergies,
		PreferredCuisines:  p.PreferredCuisines,
		DailyCalorieTarget: p.DailyCalorieTarget,
		MealPrepTimeLimit:  p.MealPrepTimeLimitMinutes,
		Strict:             strict,
	})
	if err != nil {
		return GenerationRequest{}, err
	}

	return GenerationRequest{
		Days:               days,
		GoalType:           string(p.GoalType),
		DietaryStyles:      p.DietaryStyles,
		Allergies:          p.Allergies,
		PreferredCuisines:  p.PreferredCuisines,
		DailyCalorieTarget: p.DailyCalorieTarget,
		MealPrepTimeLimit:  p.MealPrepTimeLimitMinutes,
		Prompt:             buf.String(),
	}, nil
}

// goalLabel turns "weight_loss" into "Weight Loss" for the prompt text.
func goalLabel(g profile.GoalType) string {
	words := strings.Split(string(g), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
