// Command telegram-bot runs the long-polling Telegram front end.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"hungryjack/internal/app"
	"hungryjack/internal/config"
	"hungryjack/internal/telegram"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("bot exited", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}
	if cfg.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	bot, err := telegram.NewBot(cfg, application, log)
	if err != nil {
		return err
	}

	log.Info("telegram bot running")
	bot.Run(ctx)
	return nil
}
