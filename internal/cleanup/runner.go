package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Runner drives one cleanup invocation end to end: validation, the
// confirmation gate, the history scan, and the deletion dispatch, strictly
// in that order. Selection and deletion never overlap; deleting while
// still paging would corrupt the feed being iterated.
type Runner struct {
	scanner    *Scanner
	dispatcher *Dispatcher
	gate       *Gate
	policy     CutoffPolicy
	now        func() time.Time
	logger     *slog.Logger
}

// NewRunner assembles a Runner from the pipeline stages.
func NewRunner(scanner *Scanner, dispatcher *Dispatcher, gate *Gate, policy CutoffPolicy, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		scanner:    scanner,
		dispatcher: dispatcher,
		gate:       gate,
		policy:     policy,
		now:        time.Now,
		logger:     logger.With("component", "cleanup_runner"),
	}
}

// Execute runs the request. It returns ErrValidation for malformed
// requests and ErrCancelled when the confirmation gate declines or times
// out (the user has already been notified in that case). Errors during
// selection abort the whole operation; errors during deletion are
// recorded in the Outcome.
func (r *Runner) Execute(ctx context.Context, req *Request) (*Outcome, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	log := r.logger.With("operation_id", opID, "channel_id", req.ChannelID, "user_id", req.RequestedBy)

	if req.TargetCount != nil {
		decision, err := r.gate.Confirm(ctx, req.ChannelID, req.RequestedBy, *req.TargetCount)
		if err != nil {
			return nil, err
		}
		if decision != DecisionConfirmed {
			log.InfoContext(ctx, "Cleanup cancelled at confirmation gate", "decision", decision.String())
			return nil, ErrCancelled
		}
	}

	// Clamp on a copy; the caller's request is read-only to the pipeline.
	cutoff := r.policy.Cutoff(r.now())
	scanReq := *req
	scanReq.After = r.policy.ClampAfter(req.After, cutoff)

	started := r.now()
	sel, err := r.scanner.Scan(ctx, &scanReq, cutoff)
	if err != nil {
		return nil, fmt.Errorf("selection failed: %w", err)
	}
	if req.Trigger != nil && !contains(sel, req.Trigger.ID) {
		sel = append(Selection{*req.Trigger}, sel...)
	}

	outcome := r.dispatcher.Run(ctx, req.ChannelID, sel, req.CanBulkDelete)
	outcome.OperationID = opID

	log.InfoContext(ctx, "Cleanup completed",
		"attempted", outcome.Attempted,
		"deleted", outcome.Deleted,
		"failed", len(outcome.Failures),
		"bulk", req.CanBulkDelete,
		"duration", r.now().Sub(started))
	return &outcome, nil
}

func validate(req *Request) error {
	if req.TargetCount != nil && *req.TargetCount <= 0 {
		return fmt.Errorf("%w: count must be positive", ErrValidation)
	}
	if req.TargetCount != nil && req.After != nil {
		return fmt.Errorf("%w: a target count cannot be combined with an after anchor", ErrValidation)
	}
	return nil
}

func contains(sel Selection, id int64) bool {
	for _, m := range sel {
		if m.ID == id {
			return true
		}
	}
	return false
}
