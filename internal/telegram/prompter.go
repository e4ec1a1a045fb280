package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"

	"github.com/purgebot/purgebot/internal/cleanup"
	"github.com/purgebot/purgebot/internal/database"
)

// Prompter implements the confirmation gate's interactive message channel:
// send a prompt, wait for the invoking user's next message, send a notice,
// remove a message. Waiting is a cooperative suspension serviced by the
// recorder handler through the ReplyWaiters registry.
type Prompter struct {
	bot     *bot.Bot
	waiters *ReplyWaiters
	store   database.Store
	logger  *slog.Logger
}

// NewPrompter creates a Prompter bound to the given bot instance.
func NewPrompter(b *bot.Bot, waiters *ReplyWaiters, store database.Store, logger *slog.Logger) *Prompter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prompter{
		bot:     b,
		waiters: waiters,
		store:   store,
		logger:  logger.With("component", "prompter"),
	}
}

// Prompt sends the confirmation prompt and returns its message id.
func (p *Prompter) Prompt(ctx context.Context, channelID int64, text string) (int64, error) {
	msg, err := p.bot.SendMessage(ctx, &bot.SendMessageParams{ChatID: channelID, Text: text})
	if err != nil {
		return 0, fmt.Errorf("send prompt: %w", err)
	}
	return int64(msg.ID), nil
}

// AwaitReply blocks until the user's next message in the channel.
func (p *Prompter) AwaitReply(ctx context.Context, channelID, userID int64) (cleanup.Reply, error) {
	return p.waiters.Await(ctx, channelID, userID)
}

// Notify sends a plain notice message.
func (p *Prompter) Notify(ctx context.Context, channelID int64, text string) error {
	if _, err := p.bot.SendMessage(ctx, &bot.SendMessageParams{ChatID: channelID, Text: text}); err != nil {
		return fmt.Errorf("send notice: %w", err)
	}
	return nil
}

// Remove deletes a prompt artifact remotely and drops its recorded row so
// the store stays in step with the channel.
func (p *Prompter) Remove(ctx context.Context, channelID, messageID int64) error {
	ok, err := p.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    channelID,
		MessageID: int(messageID),
	})
	if err != nil {
		return fmt.Errorf("remove message: %w", err)
	}
	if !ok {
		return fmt.Errorf("remove message rejected by platform")
	}

	if err := p.store.DeleteMessages(ctx, channelID, []int64{messageID}); err != nil {
		p.logger.WarnContext(ctx, "Failed to drop recorded prompt artifact",
			"chat_id", channelID, "message_id", messageID, "error", err)
	}
	return nil
}
