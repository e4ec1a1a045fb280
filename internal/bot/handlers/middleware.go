// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RequireMessage creates a middleware that drops updates without a message
// and sender, so handlers can rely on both being present.
func RequireMessage(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				deps.Logger.WarnContext(ctx, "Dropping update without message or sender", "update_id", update.ID)
				return
			}
			next(ctx, bot, update)
		}
	}
}
