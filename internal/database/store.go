package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the data access interface for the recorded history.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveMessage inserts a message record, or updates its content when a
	// row for (chat_id, message_id) already exists (message edits).
	SaveMessage(ctx context.Context, message *Message) error

	// GetMessage retrieves one recorded message. Returns nil, nil when no
	// row exists.
	GetMessage(ctx context.Context, chatID, messageID int64) (*Message, error)

	// GetMessagePage retrieves up to limit messages of a chat, newest
	// first, strictly older than before and strictly newer than after
	// (nil cursors are open bounds).
	GetMessagePage(ctx context.Context, chatID int64, before, after *Cursor, limit int) ([]Message, error)

	// SetPinned flips the pinned flag on a recorded message.
	SetPinned(ctx context.Context, chatID, messageID int64, pinned bool) error

	// DeleteMessages removes recorded rows for messages that were deleted
	// remotely, so later scans cannot select ghosts.
	DeleteMessages(ctx context.Context, chatID int64, messageIDs []int64) error

	// PruneMessagesBefore drops recorded rows older than cutoff and
	// returns how many were removed.
	PruneMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// UpsertUser inserts or refreshes a seen chat member.
	UpsertUser(ctx context.Context, user *User) error

	// FindUserByUsername resolves a username (without the @) to a user.
	// Returns nil, nil when unknown.
	FindUserByUsername(ctx context.Context, username string) (*User, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore implements Store using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by the given connection pool.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return errors.New("cannot save nil message")
	}
	if message.ChatID == 0 || message.MessageID == 0 {
		return errors.New("message must have a chat_id and message_id")
	}
	if message.Timestamp.IsZero() {
		return errors.New("message must have a non-zero timestamp")
	}

	now := time.Now().UTC()
	message.CreatedAt = now
	message.UpdatedAt = now

	const query = `
		INSERT INTO messages (created_at, updated_at, chat_id, message_id, user_id, content, timestamp, pinned)
		VALUES (:created_at, :updated_at, :chat_id, :message_id, :user_id, :content, :timestamp, :pinned)
		ON CONFLICT (chat_id, message_id) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at`

	if _, err := s.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (s *sqlxStore) GetMessage(ctx context.Context, chatID, messageID int64) (*Message, error) {
	var m Message
	const query = `SELECT * FROM messages WHERE chat_id = ? AND message_id = ?`

	if err := s.db.GetContext(ctx, &m, query, chatID, messageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message %d in chat %d: %w", messageID, chatID, err)
	}
	return &m, nil
}

func (s *sqlxStore) GetMessagePage(ctx context.Context, chatID int64, before, after *Cursor, limit int) ([]Message, error) {
	var (
		conds = []string{"chat_id = ?"}
		args  = []any{chatID}
	)

	if before != nil {
		if before.MessageID != 0 {
			conds = append(conds, "(timestamp < ? OR (timestamp = ? AND message_id < ?))")
			args = append(args, before.Timestamp, before.Timestamp, before.MessageID)
		} else {
			conds = append(conds, "timestamp < ?")
			args = append(args, before.Timestamp)
		}
	}
	if after != nil {
		if after.MessageID != 0 {
			conds = append(conds, "(timestamp > ? OR (timestamp = ? AND message_id > ?))")
			args = append(args, after.Timestamp, after.Timestamp, after.MessageID)
		} else {
			conds = append(conds, "timestamp > ?")
			args = append(args, after.Timestamp)
		}
	}

	query := fmt.Sprintf(`SELECT * FROM messages WHERE %s ORDER BY timestamp DESC, message_id DESC LIMIT ?`,
		strings.Join(conds, " AND "))
	args = append(args, limit)

	var page []Message
	if err := s.db.SelectContext(ctx, &page, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get message page for chat %d: %w", chatID, err)
	}
	return page, nil
}

func (s *sqlxStore) SetPinned(ctx context.Context, chatID, messageID int64, pinned bool) error {
	const query = `UPDATE messages SET pinned = ?, updated_at = ? WHERE chat_id = ? AND message_id = ?`

	if _, err := s.db.ExecContext(ctx, query, pinned, time.Now().UTC(), chatID, messageID); err != nil {
		return fmt.Errorf("failed to set pinned flag: %w", err)
	}
	return nil
}

func (s *sqlxStore) DeleteMessages(ctx context.Context, chatID int64, messageIDs []int64) error {
	if len(messageIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM messages WHERE chat_id = ? AND message_id IN (?)`, chatID, messageIDs)
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}

func (s *sqlxStore) PruneMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune messages: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned messages: %w", err)
	}
	return pruned, nil
}

func (s *sqlxStore) UpsertUser(ctx context.Context, user *User) error {
	if user == nil || user.UserID == 0 {
		return errors.New("cannot save user without a user_id")
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `
		INSERT INTO users (created_at, updated_at, user_id, username, first_name, last_name)
		VALUES (:created_at, :updated_at, :user_id, :username, :first_name, :last_name)
		ON CONFLICT (user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			updated_at = excluded.updated_at`

	if _, err := s.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", user.UserID, err)
	}
	return nil
}

func (s *sqlxStore) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	const query = `SELECT * FROM users WHERE username = ? COLLATE NOCASE LIMIT 1`

	if err := s.db.GetContext(ctx, &u, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	return &u, nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	for _, stmt := range []string{"VACUUM", "ANALYZE", "PRAGMA optimize"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("maintenance statement %q failed: %w", stmt, err)
		}
	}
	s.logger.InfoContext(ctx, "SQL maintenance completed")
	return nil
}
