package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = `I delete messages in bulk. All commands except "self" need the delete-messages permission, for you and for me.

/cleanup text <substring> <count> [pinned] - delete the last <count> messages containing <substring>
/cleanup user <user> <count> [pinned] - delete the last <count> messages from a user
/cleanup after <messageId> [pinned] - delete everything after a message
/cleanup messages <count> [pinned] - delete the last <count> messages
/cleanup bot <count> [pinned] - delete my messages and command invocations
/cleanup self <count> [pattern] [pinned] - delete my own messages, optionally matching a pattern; wrap the pattern in r(...) for a regular expression

Pinned messages are kept unless the pinned flag is true. Messages older than the platform's bulk-delete window are never touched. Cleanups above 100 messages ask for confirmation.`

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "help")

		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   helpText,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send help message", "chat_id", update.Message.Chat.ID, "error", err)
		}
	}
}
