package tasks

import (
	"context"
	"fmt"
	"time"
)

// newRetentionPruneTask creates the task that drops recorded messages
// older than the configured retention window, keeping the store bounded.
// Pruned rows are already past the cleanup cutoff, so nothing deletable
// is lost.
func newRetentionPruneTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "retention_prune")

	return func(ctx context.Context) error {
		cutoff := time.Now().UTC().Add(-deps.Config.Database.Retention)

		pruned, err := deps.Store.PruneMessagesBefore(ctx, cutoff)
		if err != nil {
			log.ErrorContext(ctx, "Retention prune failed", "error", err)
			return fmt.Errorf("retention prune failed: %w", err)
		}

		log.InfoContext(ctx, "Retention prune completed", "pruned", pruned, "cutoff", cutoff)
		return nil
	}
}
