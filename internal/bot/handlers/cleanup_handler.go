package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/purgebot/purgebot/internal/cleanup"
)

const (
	msgCallerNeedsPermission = "You need the permission to delete messages in this chat."
	msgBotNeedsPermission    = "I need the permission to delete messages in this chat."
	msgGroupOnly             = "This command only works in group chats."
	msgAnchorNotFound        = "Message not found."
	msgGeneralError          = "Cleanup failed. Please try again later."
)

// NewCleanupHandler returns the handler for the /cleanup command family.
func NewCleanupHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return cleanupHandler{deps}.Handle
}

type cleanupHandler struct {
	deps HandlerDeps
}

func (h cleanupHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	msg := update.Message
	log := h.deps.Logger.With("handler", "cleanup", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)

	args, err := ParseArgs(msg.Text)
	if err != nil {
		h.reply(ctx, b, msg.Chat.ID, validationText(err))
		return
	}

	req, notice, err := h.buildRequest(ctx, msg, args)
	if err != nil {
		log.WarnContext(ctx, "Cleanup request rejected", "subcommand", args.Sub, "error", err)
		h.reply(ctx, b, msg.Chat.ID, noticeFor(err))
		return
	}
	if notice != "" {
		h.reply(ctx, b, msg.Chat.ID, notice)
		return
	}

	outcome, err := h.deps.Runner.Execute(ctx, req)
	switch {
	case errors.Is(err, cleanup.ErrCancelled):
		// The gate already notified the user.
		return
	case errors.Is(err, cleanup.ErrValidation):
		h.reply(ctx, b, msg.Chat.ID, validationText(err))
		return
	case err != nil:
		log.ErrorContext(ctx, "Cleanup failed", "subcommand", args.Sub, "error", err)
		h.reply(ctx, b, msg.Chat.ID, msgGeneralError)
		return
	}

	summary := fmt.Sprintf("Deleted %d messages.", outcome.Deleted)
	if failed := len(outcome.Failures); failed > 0 {
		summary = fmt.Sprintf("Deleted %d messages (%d could not be deleted).", outcome.Deleted, failed)
	}
	h.reply(ctx, b, msg.Chat.ID, summary)
}

// buildRequest translates parsed arguments into a cleanup request,
// performing the capability checks and lookups the subcommand requires.
// A non-empty notice means the operation must not proceed and the notice
// is the complete user-facing answer.
func (h cleanupHandler) buildRequest(ctx context.Context, msg *models.Message, args *Args) (*cleanup.Request, string, error) {
	isGroup := msg.Chat.Type == models.ChatTypeGroup || msg.Chat.Type == models.ChatTypeSupergroup

	trigger := cleanup.Message{
		ID:        int64(msg.ID),
		ChannelID: msg.Chat.ID,
		AuthorID:  msg.From.ID,
		Content:   msg.Text,
		CreatedAt: time.Unix(int64(msg.Date), 0),
	}

	req := &cleanup.Request{
		ChannelID:     msg.Chat.ID,
		RequestedBy:   msg.From.ID,
		IncludePinned: args.IncludePinned,
		Before:        &cleanup.Anchor{MessageID: trigger.ID, At: trigger.CreatedAt},
	}

	// Every policy except self needs channel-wide delete permission from
	// both the caller and the bot, and only makes sense in a group. The
	// configured admin account passes the caller-side check unconditionally;
	// the bot's own permission is still required.
	if args.Sub != "self" {
		if !isGroup {
			return nil, msgGroupOnly, nil
		}
		callerCan := msg.From.ID == h.deps.Config.Telegram.AdminID
		if !callerCan {
			var err error
			callerCan, err = h.deps.Permissions.CanDeleteMessages(ctx, msg.Chat.ID, msg.From.ID)
			if err != nil {
				return nil, "", err
			}
		}
		if !callerCan {
			return nil, msgCallerNeedsPermission, nil
		}
		botCan, err := h.deps.Permissions.CanDeleteMessages(ctx, msg.Chat.ID, h.deps.BotID)
		if err != nil {
			return nil, "", err
		}
		if !botCan {
			return nil, msgBotNeedsPermission, nil
		}
		req.CanBulkDelete = true
	}

	switch args.Sub {
	case "text":
		req.TargetCount = &args.Count
		req.Trigger = &trigger
		req.Predicate = cleanup.SubstringPredicate{Text: args.Text, TriggerID: trigger.ID}

	case "user":
		userID, err := h.deps.Resolver.Resolve(ctx, args.UserRef)
		if err != nil {
			return nil, "", err
		}
		req.TargetCount = &args.Count
		req.Trigger = &trigger
		req.Predicate = cleanup.AuthorPredicate{AuthorID: userID, TriggerID: trigger.ID}

	case "after":
		anchor, err := h.deps.Store.GetMessage(ctx, msg.Chat.ID, args.MessageID)
		if err != nil {
			return nil, "", err
		}
		if anchor == nil {
			return nil, msgAnchorNotFound, nil
		}
		req.After = &cleanup.Anchor{MessageID: anchor.MessageID, At: anchor.Timestamp}
		req.Predicate = cleanup.AnchorPredicate{}

	case "messages":
		req.TargetCount = &args.Count
		req.Trigger = &trigger
		req.Predicate = cleanup.AnchorPredicate{}

	case "bot":
		req.TargetCount = &args.Count
		req.Trigger = &trigger
		req.Predicate = cleanup.CommandPredicate{
			BotID:     h.deps.BotID,
			TriggerID: trigger.ID,
			Prefixes:  []string{"/"},
			Known:     h.deps.KnownCommand,
		}

	case "self":
		pred, err := cleanup.NewSelfPredicate(h.deps.BotID, args.Pattern)
		if err != nil {
			return nil, "", err
		}
		req.TargetCount = &args.Count
		req.Predicate = pred

		// Own messages are always deletable; the bulk path additionally
		// needs channel-wide permission and falls back when absent.
		if isGroup {
			botCan, err := h.deps.Permissions.CanDeleteMessages(ctx, msg.Chat.ID, h.deps.BotID)
			if err != nil {
				return nil, "", err
			}
			req.CanBulkDelete = botCan
		}
	}

	return req, "", nil
}

func (h cleanupHandler) reply(ctx context.Context, b *tgbot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send reply", "chat_id", chatID, "error", err)
	}
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, cleanup.ErrNotFound):
		return stripSentinel(err, cleanup.ErrNotFound)
	case errors.Is(err, cleanup.ErrPermissionDenied):
		return msgCallerNeedsPermission
	case errors.Is(err, cleanup.ErrValidation):
		return validationText(err)
	default:
		return msgGeneralError
	}
}

func validationText(err error) string {
	return stripSentinel(err, cleanup.ErrValidation)
}

// stripSentinel drops the taxonomy prefix so the user sees only the
// human-readable part of the error.
func stripSentinel(err, sentinel error) string {
	text := err.Error()
	if cut, ok := strings.CutPrefix(text, sentinel.Error()+": "); ok {
		return cut
	}
	return text
}
