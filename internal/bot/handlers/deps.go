package handlers

import (
	"context"
	"log/slog"

	"github.com/purgebot/purgebot/internal/cleanup"
	"github.com/purgebot/purgebot/internal/config"
	"github.com/purgebot/purgebot/internal/database"
	"github.com/purgebot/purgebot/internal/telegram"
)

// PermissionChecker answers whether an account holds channel-wide
// delete-messages permission. Implemented by telegram.Permissions.
type PermissionChecker interface {
	CanDeleteMessages(ctx context.Context, chatID, userID int64) (bool, error)
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger      *slog.Logger
	Config      *config.Config
	Store       database.Store
	Runner      *cleanup.Runner
	Resolver    *telegram.Resolver
	Permissions PermissionChecker

	// BotID is the bot's own account id, used by the self and bot
	// predicates and for the bot-side capability check.
	BotID int64

	// KnownCommand reports whether a token is a registered command name;
	// it backs the command-message predicate's false-positive guard.
	KnownCommand func(name string) bool
}
