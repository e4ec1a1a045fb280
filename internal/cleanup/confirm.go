package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Decision is the three-way outcome of the confirmation gate.
type Decision int

const (
	DecisionConfirmed Decision = iota
	DecisionDeclined
	DecisionTimedOut
)

func (d Decision) String() string {
	switch d {
	case DecisionConfirmed:
		return "confirmed"
	case DecisionDeclined:
		return "declined"
	case DecisionTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Reply is the user's response to a confirmation prompt.
type Reply struct {
	MessageID int64
	Content   string
}

// Prompter is the interactive message channel the gate runs its protocol
// over: send a prompt, wait for the next message from a given author,
// send a notice, remove a message.
type Prompter interface {
	Prompt(ctx context.Context, channelID int64, text string) (int64, error)
	AwaitReply(ctx context.Context, channelID, userID int64) (Reply, error)
	Notify(ctx context.Context, channelID int64, text string) error
	Remove(ctx context.Context, channelID, messageID int64) error
}

// Gate asks for interactive yes/no confirmation before large cleanups.
// Requests at or below Threshold pass without a prompt. The wait carries
// an explicit timeout; expiry resolves the gate as timed out and nothing
// is deleted.
type Gate struct {
	prompter  Prompter
	threshold int
	timeout   time.Duration
	logger    *slog.Logger
}

// NewGate creates a Gate with the given count threshold and reply timeout.
func NewGate(prompter Prompter, threshold int, timeout time.Duration, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		prompter:  prompter,
		threshold: threshold,
		timeout:   timeout,
		logger:    logger.With("component", "confirmation_gate"),
	}
}

// Confirm runs the protocol for a request of the given count. A reply from
// the requesting user starting with "y" (case-insensitive) confirms, and
// the prompt and the reply are both removed best-effort. Any other reply
// declines; no reply within the timeout resolves as timed out. The
// declined and timed-out paths send a cancellation notice.
func (g *Gate) Confirm(ctx context.Context, channelID, userID int64, count int) (Decision, error) {
	if count <= g.threshold {
		return DecisionConfirmed, nil
	}

	promptID, err := g.prompter.Prompt(ctx, channelID,
		fmt.Sprintf("Are you sure you want to delete %d messages? (y/n)", count))
	if err != nil {
		return DecisionDeclined, fmt.Errorf("send confirmation prompt: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	reply, err := g.prompter.AwaitReply(waitCtx, channelID, userID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.InfoContext(ctx, "Confirmation timed out",
				"channel_id", channelID, "user_id", userID)
			g.notifyCancelled(ctx, channelID)
			return DecisionTimedOut, nil
		}
		return DecisionDeclined, fmt.Errorf("wait for confirmation: %w", err)
	}

	if !strings.HasPrefix(strings.ToLower(reply.Content), "y") {
		g.notifyCancelled(ctx, channelID)
		return DecisionDeclined, nil
	}

	// Removal failures are swallowed: the prompt artifacts are cosmetic.
	if err := g.prompter.Remove(ctx, channelID, promptID); err != nil {
		g.logger.DebugContext(ctx, "Failed to remove confirmation prompt", "error", err)
	}
	if err := g.prompter.Remove(ctx, channelID, reply.MessageID); err != nil {
		g.logger.DebugContext(ctx, "Failed to remove confirmation reply", "error", err)
	}
	return DecisionConfirmed, nil
}

func (g *Gate) notifyCancelled(ctx context.Context, channelID int64) {
	if err := g.prompter.Notify(ctx, channelID, "Cancelled."); err != nil {
		g.logger.WarnContext(ctx, "Failed to send cancellation notice", "error", err)
	}
}
