// Package tasks implements purgebot's scheduled background tasks and
// their registration.
package tasks

import (
	"context"
	"log/slog"

	"github.com/purgebot/purgebot/internal/config"
	"github.com/purgebot/purgebot/internal/database"
)

// ScheduledTaskFunc is the signature of all scheduled tasks. The context
// provided by the scheduler must be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// TaskDeps contains the dependencies scheduled tasks need.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
