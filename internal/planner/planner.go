package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hungryjack/internal/llm"
	"hungryjack/internal/shared"
)

// Planner runs the generation pipeline: prompt construction, the bounded
// call to the text-generation service, and response parsing. Each invocation
// is independent and stateless; concurrent calls share only the read-only
// configuration.
type Planner struct {
	textGen llm.TextGenerator
	prompts PromptBuilder
	retry   RetryPolicy
	log     *zap.Logger
}

// NewPlanner creates a new Planner instance.
func NewPlanner(textGen llm.TextGenerator, prompts PromptBuilder, retry RetryPolicy, log *zap.Logger) *Planner {
	return &Planner{
		textGen: textGen,
		prompts: prompts,
		retry:   retry,
		log:     log,
	}
}

// GenerateResult is a successful generation with its non-fatal warnings and
// per-attempt call metadata.
type GenerateResult struct {
	Plan     *MealPlan
	Warnings []Warning
	Metas    []shared.CallMeta
}

// Generate creates a meal plan for the request. Transport failures and
// unusable responses are retried per the policy, each retry with a stricter
// prompt; the returned result is non-nil even on error when at least one
// call completed, so the caller can still record usage metrics.
func (p *Planner) Generate(ctx context.Context, req MealPlanRequest) (*GenerateResult, error) {
	if err := req.Validate(p.prompts.MaxDays); err != nil {
		return nil, err
	}

	result := &GenerateResult{}
	var lastErr error

	for attempt := 1; attempt <= p.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, p.retry.Backoff(attempt-1)); err != nil {
				return result, err
			}
		}

		genReq, err := p.buildRequest(req, attempt)
		if err != nil {
			return result, err
		}

		start := time.Now()
		cctx, cancel := context.WithTimeout(ctx, p.retry.Timeout)
		resp, err := p.textGen.GenerateContent(cctx, genReq.Prompt)
		cancel()

		result.Metas = append(result.Metas, shared.CallMeta{
			Stage:   "planner",
			Attempt: attempt,
			Usage:   resp.Usage,
			Latency: time.Since(start),
		})

		if err != nil {
			// A canceled caller stops the pipeline outright.
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %v", ErrTransport, err)
			p.log.Warn("generation call failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		plan, warnings, err := ParsePlan(resp.Content, req)
		if err != nil {
			if !p.retry.Retryable(err) {
				return result, err
			}
			lastErr = err
			p.log.Warn("generation response unusable",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		if len(warnings) > 0 {
			p.log.Info("plan parsed with warnings",
				zap.Int("attempt", attempt),
				zap.Int("incomplete_meals", plan.IncompleteMealCount))
		}

		result.Plan = plan
		result.Warnings = warnings
		return result, nil
	}

	return result, fmt.Errorf("giving up after %d attempts: %w", p.retry.MaxAttempts, lastErr)
}

func (p *Planner) buildRequest(req MealPlanRequest, attempt int) (GenerationRequest, error) {
	if attempt == 1 {
		return p.prompts.BuildRequest(req.Profile, req.Window)
	}
	return p.prompts.BuildRetryRequest(req.Profile, req.Window)
}
