package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// Deleter exposes the platform's two deletion primitives. BulkDelete
// removes up to the platform batch limit of messages in one call;
// SingleDelete removes exactly one.
type Deleter interface {
	BulkDelete(ctx context.Context, channelID int64, ids []int64) error
	SingleDelete(ctx context.Context, channelID int64, id int64) error
}

// Failure records one message that could not be deleted.
type Failure struct {
	MessageID int64
	Err       error
}

// Outcome summarizes one deletion run. It is reported to the caller and
// then discarded; nothing is persisted.
type Outcome struct {
	OperationID string
	Attempted   int
	Deleted     int
	Failures    []Failure
}

// Dispatcher executes a Selection using the most efficient strategy the
// caller's capability allows: batched bulk deletion, or sequential
// rate-limited single deletion. Each deletion is attempted exactly once;
// retries are the caller's business.
type Dispatcher struct {
	deleter    Deleter
	batchLimit int
	delay      time.Duration
	sleep      func(d time.Duration)
	logger     *slog.Logger
}

// NewDispatcher creates a Dispatcher. batchLimit caps bulk-delete batch
// sizes; delay spaces out single deletions on the sequential path.
func NewDispatcher(deleter Deleter, batchLimit int, delay time.Duration, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		deleter:    deleter,
		batchLimit: batchLimit,
		delay:      delay,
		sleep:      time.Sleep,
		logger:     logger.With("component", "dispatcher"),
	}
}

// Run deletes the selection and reports what happened. Failures are
// isolated: a failed batch or item is recorded and the remaining work
// proceeds. Once Run starts there is no abort; it runs to completion.
func (d *Dispatcher) Run(ctx context.Context, channelID int64, sel Selection, canBulkDelete bool) Outcome {
	if canBulkDelete {
		return d.runBulk(ctx, channelID, sel)
	}
	return d.runSequential(ctx, channelID, sel)
}

func (d *Dispatcher) runBulk(ctx context.Context, channelID int64, sel Selection) Outcome {
	out := Outcome{Attempted: len(sel)}
	ids := sel.IDs()

	for start := 0; start < len(ids); start += d.batchLimit {
		end := min(start+d.batchLimit, len(ids))
		batch := ids[start:end]

		if err := d.deleter.BulkDelete(ctx, channelID, batch); err != nil {
			d.logger.WarnContext(ctx, "Bulk delete batch failed",
				"channel_id", channelID, "batch_size", len(batch), "error", err)
			for _, id := range batch {
				out.Failures = append(out.Failures, Failure{MessageID: id, Err: err})
			}
			continue
		}
		out.Deleted += len(batch)
	}
	return out
}

func (d *Dispatcher) runSequential(ctx context.Context, channelID int64, sel Selection) Outcome {
	out := Outcome{Attempted: len(sel)}

	for i, m := range sel {
		if i > 0 {
			d.sleep(d.delay)
		}
		if err := d.deleter.SingleDelete(ctx, channelID, m.ID); err != nil {
			d.logger.WarnContext(ctx, "Single delete failed",
				"channel_id", channelID, "message_id", m.ID, "error", err)
			out.Failures = append(out.Failures, Failure{MessageID: m.ID, Err: err})
			continue
		}
		out.Deleted++
	}
	return out
}
