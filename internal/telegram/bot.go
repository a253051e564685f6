// Package telegram is a thin consumer surface over the app layer: a chat
// command triggers the same pipeline the HTTP API exposes, with the chat id
// standing in for the user id.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"hungryjack/internal/app"
	"hungryjack/internal/config"
	"hungryjack/internal/planner"
	"hungryjack/internal/profile"
	"hungryjack/internal/shopping"
)

// Bot wraps the Telegram API and the meal-plan application.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
	log *zap.Logger
}

// NewBot initializes the Telegram bot for long polling.
func NewBot(cfg *config.Config, application *app.App, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Info("telegram bot authorized", zap.String("account", api.Self.UserName))

	return &Bot{api: api, app: application, cfg: cfg, log: log}, nil
}

// Run polls for updates until ctx is canceled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.reply(msg.Chat.ID, helpText)
	case "plan":
		b.handlePlan(ctx, msg)
	case "shopping":
		b.handleShopping(ctx, msg)
	default:
		b.reply(msg.Chat.ID, "Unknown command. "+helpText)
	}
}

const helpText = `Commands:
/plan <days> [weight_loss|muscle_gain|maintenance] - generate a meal plan
/shopping - show the shopping list for your latest plan`

func (b *Bot) handlePlan(ctx context.Context, msg *tgbotapi.Message) {
	days, goal, err := parsePlanArgs(msg.CommandArguments())
	if err != nil {
		b.reply(msg.Chat.ID, err.Error())
		return
	}

	b.reply(msg.Chat.ID, fmt.Sprintf("Generating a %d-day %s plan, hold on...", days, goal))

	start := time.Now().UTC().Truncate(24 * time.Hour)
	window := planner.PlanWindow{Start: start, End: start.AddDate(0, 0, days-1)}
	userID := strconv.FormatInt(msg.Chat.ID, 10)

	result, err := b.app.GenerateMealPlan(ctx, userID, profile.GoalProfile{GoalType: goal}, window)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidProfile) {
			b.reply(msg.Chat.ID, err.Error())
			return
		}
		b.log.Warn("plan generation failed", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Generation failed, please try again in a moment.")
		return
	}

	b.reply(msg.Chat.ID, renderPlan(result))
	b.reply(msg.Chat.ID, renderShoppingList(result.ShoppingList))
}

func (b *Bot) handleShopping(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.Chat.ID, 10)

	plans, err := b.app.ListMealPlans(ctx, userID, 1)
	if err != nil || len(plans) == 0 {
		b.reply(msg.Chat.ID, "No meal plan yet. Use /plan first.")
		return
	}

	list, err := b.app.GetShoppingList(ctx, plans[0].ID)
	if err != nil {
		b.reply(msg.Chat.ID, "No shopping list found for your latest plan.")
		return
	}
	b.reply(msg.Chat.ID, renderShoppingList(list))
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Warn("failed to send telegram message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func parsePlanArgs(args string) (int, profile.GoalType, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, "", fmt.Errorf("usage: /plan <days> [goal], e.g. /plan 3 weight_loss")
	}

	days, err := strconv.Atoi(fields[0])
	if err != nil || days < 1 {
		return 0, "", fmt.Errorf("days must be a positive number, e.g. /plan 3")
	}

	goal := profile.GoalMaintenance
	if len(fields) > 1 {
		goal = profile.GoalType(fields[1])
	}
	if err := (profile.GoalProfile{GoalType: goal}).Validate(); err != nil {
		return 0, "", fmt.Errorf("goal must be weight_loss, muscle_gain or maintenance")
	}

	return days, goal, nil
}

func renderPlan(result *app.PlanResult) string {
	var sb strings.Builder
	sb.WriteString("Your meal plan:\n")
	for i := range result.Plan.Days {
		day := &result.Plan.Days[i]
		fmt.Fprintf(&sb, "\n%s (%d kcal)\n", day.Date.Format("Mon Jan 2"), day.TotalCalories())
		for _, meal := range day.Meals() {
			name := meal.Name
			if name == "" {
				name = "(incomplete)"
			}
			fmt.Fprintf(&sb, "  %s: %s\n", meal.Slot, name)
		}
	}
	if result.Plan.IncompleteMealCount > 0 {
		fmt.Fprintf(&sb, "\n%d meal(s) came back incomplete and are excluded from totals.\n",
			result.Plan.IncompleteMealCount)
	}
	return sb.String()
}

func renderShoppingList(list *shopping.ShoppingList) string {
	var sb strings.Builder
	sb.WriteString("Shopping list:\n")
	current := ""
	for _, item := range list.Items {
		if item.Category != current {
			current = item.Category
			fmt.Fprintf(&sb, "\n%s\n", strings.ToUpper(current))
		}
		switch {
		case item.Quantity == nil:
			fmt.Fprintf(&sb, "  - %s: %s\n", item.ItemName, item.Note)
		case item.Unit == "":
			fmt.Fprintf(&sb, "  - %s x%s\n", item.ItemName, trimFloat(*item.Quantity))
		default:
			fmt.Fprintf(&sb, "  - %s %s %s\n", trimFloat(*item.Quantity), item.Unit, item.ItemName)
		}
	}
	return sb.String()
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
