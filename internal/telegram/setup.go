// Package telegram binds the cleanup pipeline's platform interfaces
// (HistoryFeed, Deleter, Prompter) to the Telegram Bot API and handles
// bot setup and handler registration.
package telegram

import (
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
)

// NewTelegramBot creates a new Telegram bot instance using the
// go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

// Registration describes one handler to register with the bot.
type Registration struct {
	HandlerType bot.HandlerType
	Pattern     string
	MatchType   bot.MatchType
	Handler     bot.HandlerFunc
	Middleware  []bot.Middleware
}

// applyMiddleware wraps a handler with middleware; the first middleware in
// the slice ends up outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// RegisterHandlers registers the given handlers with the bot instance,
// applying each handler's middleware.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, registrations map[string]Registration) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	for command, reg := range registrations {
		if reg.Handler == nil {
			log.Warn("Skipping registration for nil handler", "command", command)
			continue
		}
		b.RegisterHandler(reg.HandlerType, reg.Pattern, reg.MatchType, applyMiddleware(reg.Handler, reg.Middleware))
		log.Debug("Registered handler", "command", command, "pattern", reg.Pattern)
	}

	log.Info("Registered Telegram handlers", "count", len(registrations))
	return nil
}
