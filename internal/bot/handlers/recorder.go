package handlers

import (
	"context"
	"log/slog"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/purgebot/purgebot/internal/cleanup"
	"github.com/purgebot/purgebot/internal/database"
	"github.com/purgebot/purgebot/internal/telegram"
)

// NewRecorderHandler returns the default handler: it records every message
// the bot can see into the store (the substrate of the history feed),
// tracks pin events, and routes replies to invocations blocked on a
// confirmation. Registered as the bot's default handler so it receives
// everything no command handler claimed.
func NewRecorderHandler(logger *slog.Logger, store database.Store, waiters *telegram.ReplyWaiters) tgbot.HandlerFunc {
	log := logger.With("handler", "recorder")

	record := func(ctx context.Context, msg *models.Message) {
		row := &database.Message{
			ChatID:    msg.Chat.ID,
			MessageID: int64(msg.ID),
			Content:   msg.Text,
			Timestamp: time.Unix(int64(msg.Date), 0).UTC(),
		}
		if msg.From != nil {
			row.UserID = msg.From.ID
		}
		if err := store.SaveMessage(ctx, row); err != nil {
			log.ErrorContext(ctx, "Failed to record message",
				"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
		}

		if msg.From != nil && !msg.From.IsBot {
			user := &database.User{
				UserID:    msg.From.ID,
				Username:  msg.From.Username,
				FirstName: msg.From.FirstName,
				LastName:  msg.From.LastName,
			}
			if err := store.UpsertUser(ctx, user); err != nil {
				log.ErrorContext(ctx, "Failed to record user", "user_id", msg.From.ID, "error", err)
			}
		}
	}

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		switch {
		case update.Message != nil:
			msg := update.Message

			if msg.PinnedMessage != nil && msg.PinnedMessage.Message != nil {
				pinned := msg.PinnedMessage.Message
				if err := store.SetPinned(ctx, msg.Chat.ID, int64(pinned.ID), true); err != nil {
					log.ErrorContext(ctx, "Failed to record pin",
						"chat_id", msg.Chat.ID, "message_id", pinned.ID, "error", err)
				}
				return
			}

			record(ctx, msg)

			if msg.From != nil {
				waiters.Deliver(msg.Chat.ID, msg.From.ID, cleanup.Reply{
					MessageID: int64(msg.ID),
					Content:   msg.Text,
				})
			}

		case update.EditedMessage != nil:
			// Upsert keeps the recorded content current for substring and
			// pattern predicates.
			record(ctx, update.EditedMessage)
		}
	}
}
