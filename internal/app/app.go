package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hungryjack/internal/metrics"
	"hungryjack/internal/nutrition"
	"hungryjack/internal/planner"
	"hungryjack/internal/profile"
	"hungryjack/internal/shopping"
)

// App holds the application's dependencies and exposes the pipeline
// use-cases shared by the CLI, the HTTP server and the Telegram bot.
type App struct {
	planner      *planner.Planner
	builder      *shopping.Builder
	planRepo     *planner.Repository
	listRepo     *shopping.Repository
	metricsStore *metrics.Store
	log          *zap.Logger
}

// NewApp creates and initializes a new App instance.
func NewApp(
	mealPlanner *planner.Planner,
	builder *shopping.Builder,
	planRepo *planner.Repository,
	listRepo *shopping.Repository,
	metricsStore *metrics.Store,
	log *zap.Logger,
) *App {
	return &App{
		planner:      mealPlanner,
		builder:      builder,
		planRepo:     planRepo,
		listRepo:     listRepo,
		metricsStore: metricsStore,
		log:          log,
	}
}

// PlanResult bundles a generated plan with its derived artifacts and every
// non-fatal warning collected along the way.
type PlanResult struct {
	Plan         *planner.MealPlan           `json:"plan"`
	Totals       nutrition.Totals            `json:"totals"`
	Target       *nutrition.TargetComparison `json:"target,omitempty"`
	ShoppingList *shopping.ShoppingList      `json:"shopping_list"`
	Warnings     []string                    `json:"warnings,omitempty"`
}

// GenerateMealPlan runs the full pipeline: validate, prompt, generate with
// retries, parse, aggregate, build the shopping list, persist. A canceled
// context aborts before anything is persisted.
func (a *App) GenerateMealPlan(ctx context.Context, userID string, prof profile.GoalProfile, window planner.PlanWindow) (*PlanResult, error) {
	req := planner.MealPlanRequest{UserID: userID, Profile: prof, Window: window}

	res, err := a.planner.Generate(ctx, req)
	if res != nil {
		a.recordMetas(res)
	}
	if err != nil {
		return nil, err
	}
	plan := res.Plan

	totals := nutrition.Aggregate(plan)
	result := &PlanResult{Plan: plan, Totals: totals}
	if cmp, ok := nutrition.CompareToTarget(totals, prof); ok {
		result.Target = &cmp
		if !cmp.WithinTolerance {
			a.log.Info("plan outside calorie tolerance",
				zap.String("plan_id", plan.ID),
				zap.Float64("delta_percent", cmp.DeltaPercent))
		}
	}

	list, err := a.builder.Build(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to build shopping list: %w", err)
	}
	result.ShoppingList = list

	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, w.String())
	}
	for _, item := range list.Items {
		if item.NeedsReview {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("shopping item %q needs review", item.ItemName))
		}
	}

	// Nothing partial gets stored: a canceled request ends here.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := a.planRepo.Save(ctx, plan, window); err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}
	if err := a.listRepo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}

	a.log.Info("meal plan generated",
		zap.String("plan_id", plan.ID),
		zap.String("user_id", userID),
		zap.Int("days", len(plan.Days)),
		zap.Int("incomplete_meals", plan.IncompleteMealCount),
		zap.Int("shopping_items", len(list.Items)))

	return result, nil
}

// RebuildShoppingList regenerates the list for an existing plan, replacing
// the stored one.
func (a *App) RebuildShoppingList(ctx context.Context, mealPlanID, userID string) (*shopping.ShoppingList, error) {
	plan, err := a.planRepo.GetByID(ctx, mealPlanID, userID)
	if err != nil {
		return nil, err
	}

	list, err := a.builder.Build(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to build shopping list: %w", err)
	}
	if err := a.listRepo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}
	return list, nil
}

// GetMealPlan retrieves a stored plan scoped to its owner.
func (a *App) GetMealPlan(ctx context.Context, id, userID string) (*planner.MealPlan, error) {
	return a.planRepo.GetByID(ctx, id, userID)
}

// ListMealPlans retrieves a user's most recent plans.
func (a *App) ListMealPlans(ctx context.Context, userID string, limit int) ([]*planner.MealPlan, error) {
	return a.planRepo.ListRecentByUserID(ctx, userID, limit)
}

// DeleteMealPlan removes a plan and its derived shopping list. The list
// goes first since it references the plan.
func (a *App) DeleteMealPlan(ctx context.Context, id, userID string) error {
	if _, err := a.planRepo.GetByID(ctx, id, userID); err != nil {
		return err
	}
	if err := a.listRepo.DeleteByMealPlanID(ctx, id); err != nil {
		return err
	}
	return a.planRepo.Delete(ctx, id, userID)
}

// GetShoppingList retrieves the list derived from a plan.
func (a *App) GetShoppingList(ctx context.Context, mealPlanID string) (*shopping.ShoppingList, error) {
	return a.listRepo.GetByMealPlanID(ctx, mealPlanID)
}

// GetShoppingListByID retrieves a shopping list by its own id.
func (a *App) GetShoppingListByID(ctx context.Context, id string) (*shopping.ShoppingList, error) {
	return a.listRepo.GetByID(ctx, id)
}

// SetItemPurchased toggles an item's purchase flag.
func (a *App) SetItemPurchased(ctx context.Context, listID, itemName string, purchased bool) error {
	return a.listRepo.SetPurchased(ctx, listID, itemName, purchased)
}

func (a *App) recordMetas(res *planner.GenerateResult) {
	// Metrics are best-effort and run on the background context so a
	// canceled request still gets its usage recorded.
	for _, meta := range res.Metas {
		if err := a.metricsStore.RecordMeta(context.Background(), meta); err != nil {
			a.log.Warn("failed to record metrics",
				zap.String("stage", meta.Stage),
				zap.Error(err))
		}
	}
}
