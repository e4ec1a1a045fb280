package database

import "time"

// Message is one recorded chat message. The bot records every message it
// can see; the recorded rows are the paginated history feed the cleanup
// scanner pages over, since the Bot API exposes no history endpoint.
type Message struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	ChatID    int64     `db:"chat_id"`
	MessageID int64     `db:"message_id"`
	UserID    int64     `db:"user_id"`
	Content   string    `db:"content"`
	Timestamp time.Time `db:"timestamp"`
	Pinned    bool      `db:"pinned"`
}

// User is a chat member seen by the recorder, kept for resolving
// username arguments to account ids.
type User struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	UserID    int64  `db:"user_id"`
	Username  string `db:"username"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

// Cursor is a keyset-pagination position over (timestamp, message_id).
type Cursor struct {
	Timestamp time.Time
	MessageID int64
}
