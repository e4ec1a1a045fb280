package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"

	"github.com/purgebot/purgebot/internal/cleanup"
	"github.com/purgebot/purgebot/internal/database"
)

// Deleter implements the cleanup deletion primitives on top of the Bot
// API: deleteMessages for batches, deleteMessage for single removals.
// Rows for remotely deleted messages are dropped from the store so later
// scans cannot select ghosts.
type Deleter struct {
	bot    *bot.Bot
	store  database.Store
	logger *slog.Logger
}

// NewDeleter creates a Deleter bound to the given bot instance.
func NewDeleter(b *bot.Bot, store database.Store, logger *slog.Logger) *Deleter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deleter{bot: b, store: store, logger: logger.With("component", "deleter")}
}

// BulkDelete removes a batch of messages in one API call.
func (d *Deleter) BulkDelete(ctx context.Context, channelID int64, ids []int64) error {
	msgIDs := make([]int, len(ids))
	for i, id := range ids {
		msgIDs[i] = int(id)
	}

	ok, err := d.bot.DeleteMessages(ctx, &bot.DeleteMessagesParams{
		ChatID:     channelID,
		MessageIDs: msgIDs,
	})
	if err != nil {
		return classify(err)
	}
	if !ok {
		return fmt.Errorf("bulk delete rejected by platform")
	}

	d.dropRecorded(ctx, channelID, ids)
	return nil
}

// SingleDelete removes one message.
func (d *Deleter) SingleDelete(ctx context.Context, channelID, id int64) error {
	ok, err := d.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    channelID,
		MessageID: int(id),
	})
	if err != nil {
		return classify(err)
	}
	if !ok {
		return fmt.Errorf("delete rejected by platform")
	}

	d.dropRecorded(ctx, channelID, []int64{id})
	return nil
}

// dropRecorded removes local rows for remotely deleted messages. Failures
// here only delay cleanup until the retention prune; they never fail the
// deletion itself.
func (d *Deleter) dropRecorded(ctx context.Context, channelID int64, ids []int64) {
	if err := d.store.DeleteMessages(ctx, channelID, ids); err != nil {
		d.logger.WarnContext(ctx, "Failed to drop recorded rows for deleted messages",
			"chat_id", channelID, "count", len(ids), "error", err)
	}
}

// classify maps Bot API error descriptions onto the cleanup taxonomy so
// the dispatcher's failure list carries error kinds, not raw strings.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "too many requests"):
		return fmt.Errorf("%w: %v", cleanup.ErrRateLimited, err)
	case strings.Contains(msg, "not enough rights"), strings.Contains(msg, "can't be deleted"):
		return fmt.Errorf("%w: %v", cleanup.ErrPermissionDenied, err)
	case strings.Contains(msg, "not found"):
		return fmt.Errorf("%w: %v", cleanup.ErrNotFound, err)
	default:
		return err
	}
}
