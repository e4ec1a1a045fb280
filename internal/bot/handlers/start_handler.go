package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "start")

		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Hi! Add me to a group and I'll keep it tidy. Use /help to see the cleanup commands.",
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send start message", "chat_id", update.Message.Chat.ID, "error", err)
		}
	}
}
