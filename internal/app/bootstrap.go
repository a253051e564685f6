package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hungryjack/internal/config"
	"hungryjack/internal/database"
	"hungryjack/internal/llm"
	"hungryjack/internal/metrics"
	"hungryjack/internal/planner"
	"hungryjack/internal/shopping"
)

// Bootstrap wires a fully configured App from config: database, generation
// client, planner and repositories. The returned cleanup closes everything
// the App holds open.
func Bootstrap(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, func() error, error) {
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	textGen, err := newTextGenerator(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	builder, err := shopping.NewBuilder()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load shopping tables: %w", err)
	}

	retry := planner.DefaultRetryPolicy()
	retry.MaxAttempts = cfg.MaxGenerationAttempts
	retry.Timeout = cfg.GenerationTimeout

	mealPlanner := planner.NewPlanner(
		textGen,
		planner.PromptBuilder{MaxDays: cfg.MaxPlanDays},
		retry,
		log,
	)

	application := NewApp(
		mealPlanner,
		builder,
		planner.NewRepository(db.SQL),
		shopping.NewRepository(db.SQL),
		metrics.NewStore(db.SQL),
		log,
	)

	cleanup := func() error {
		if closer, ok := textGen.(llm.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Warn("failed to close generation client", zap.Error(err))
			}
		}
		return db.Close()
	}

	return application, cleanup, nil
}

func newTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, error) {
	switch cfg.Provider {
	case "gemini":
		gen, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		return gen, nil
	default:
		return llm.NewGroqClient(cfg), nil
	}
}
