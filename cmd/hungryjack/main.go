// Command hungryjack generates a meal plan from the command line and prints
// the plan and its consolidated shopping list. It also carries small
// metrics-cleanup and metrics-usage modes for the execution metrics table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hungryjack/internal/app"
	"hungryjack/internal/config"
	"hungryjack/internal/database"
	"hungryjack/internal/metrics"
	"hungryjack/internal/planner"
	"hungryjack/internal/profile"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if len(os.Args) > 1 && os.Args[1] == "metrics-cleanup" {
		if err := runMetricsCleanup(os.Args[2:], log); err != nil {
			log.Fatal("metrics cleanup failed", zap.Error(err))
		}
		return
	}
	if len(os.Args) > 1 && os.Args[1] == "metrics-usage" {
		if err := runMetricsUsage(os.Args[2:]); err != nil {
			log.Fatal("metrics usage report failed", zap.Error(err))
		}
		return
	}

	if err := runGenerate(os.Args[1:], log); err != nil {
		log.Fatal("generation failed", zap.Error(err))
	}
}

func runGenerate(args []string, log *zap.Logger) error {
	fs := flag.NewFlagSet("hungryjack", flag.ExitOnError)
	var (
		userID   = fs.String("user", "cli", "user id to scope the plan under")
		days     = fs.Int("days", 3, "number of days to plan")
		goal     = fs.String("goal", "maintenance", "goal: weight_loss, muscle_gain or maintenance")
		calories = fs.Int("calories", 0, "daily calorie target (0 = none)")
		prep     = fs.Int("prep", 0, "meal prep time limit in minutes (0 = none)")
		diet     = fs.String("diet", "", "comma-separated dietary styles")
		allergy  = fs.String("allergies", "", "comma-separated allergies")
		cuisines = fs.String("cuisines", "", "comma-separated preferred cuisines")
		start    = fs.String("start", "", "plan start date (YYYY-MM-DD, default today)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if *start != "" {
		startDate, err = time.Parse("2006-01-02", *start)
		if err != nil {
			return fmt.Errorf("invalid -start date: %w", err)
		}
	}

	prof := profile.GoalProfile{
		GoalType:                 profile.GoalType(*goal),
		DietaryStyles:            splitCSV(*diet),
		Allergies:                splitCSV(*allergy),
		PreferredCuisines:        splitCSV(*cuisines),
		DailyCalorieTarget:       *calories,
		MealPrepTimeLimitMinutes: *prep,
	}
	window := planner.PlanWindow{Start: startDate, End: startDate.AddDate(0, 0, *days-1)}

	result, err := application.GenerateMealPlan(ctx, *userID, prof, window)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func runMetricsCleanup(args []string, log *zap.Logger) error {
	fs := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	olderThan := fs.Int("older-than", 30, "delete metrics older than this many days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := metrics.NewStore(db.SQL).Cleanup(context.Background(), *olderThan)
	if err != nil {
		return err
	}
	log.Info("metrics cleanup complete",
		zap.Int64("deleted", deleted), zap.Int("older_than_days", *olderThan))
	return nil
}

func runMetricsUsage(args []string) error {
	fs := flag.NewFlagSet("metrics-usage", flag.ExitOnError)
	days := fs.Int("days", 7, "report usage for the last N days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	usage, err := metrics.NewStore(db.SQL).GetDailyUsage(context.Background(), *days)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %10s %12s %6s\n", "day", "prompt", "completion", "calls")
	for _, u := range usage {
		fmt.Printf("%-12s %10d %12d %6d\n", u.Date, u.TotalPrompt, u.TotalCompletion, u.TotalExecution)
	}
	return nil
}

func printResult(result *app.PlanResult) {
	fmt.Printf("Meal plan %s\n", result.Plan.ID)
	for i := range result.Plan.Days {
		day := &result.Plan.Days[i]
		fmt.Printf("\n%s (%d kcal)\n", day.Date.Format("Mon 2006-01-02"), day.TotalCalories())
		for _, meal := range day.Meals() {
			name := meal.Name
			if name == "" {
				name = "(incomplete)"
			}
			fmt.Printf("  %-10s %s (%d kcal, %d min)\n", meal.Slot, name, meal.Calories, meal.PrepTimeMinutes)
		}
	}

	fmt.Printf("\nAverage daily calories: %.0f\n", result.Totals.AverageDailyCalories())
	if result.Target != nil {
		fmt.Printf("Calorie target: off by %+.1f%%", result.Target.DeltaPercent)
		if !result.Target.WithinTolerance {
			fmt.Print(" (outside tolerance)")
		}
		fmt.Println()
	}

	fmt.Println("\nShopping list:")
	category := ""
	for _, item := range result.ShoppingList.Items {
		if item.Category != category {
			category = item.Category
			fmt.Printf("\n[%s]\n", category)
		}
		switch {
		case item.Quantity == nil:
			fmt.Printf("  %s: %s\n", item.ItemName, item.Note)
		case item.Unit == "":
			fmt.Printf("  %s x%g\n", item.ItemName, *item.Quantity)
		default:
			fmt.Printf("  %g %s %s\n", *item.Quantity, item.Unit, item.ItemName)
		}
	}

	for _, w := range result.Warnings {
		fmt.Println("warning:", w)
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
