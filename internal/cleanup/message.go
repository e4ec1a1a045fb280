// Package cleanup implements the message selection-and-deletion pipeline:
// cutoff policy, selection predicates, the paginated history scanner, the
// deletion dispatcher, and the interactive confirmation gate. It is free of
// Telegram types; all platform access happens through the HistoryFeed,
// Deleter, and Prompter interfaces.
package cleanup

import "time"

// Message is a read-only snapshot of a platform message as seen by the
// scanner. The platform owns the underlying item; this package never
// mutates one, it only reads and requests deletion.
type Message struct {
	ID        int64
	ChannelID int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time
	Pinned    bool
}

// Anchor bounds a history scan. It is either a reference to a concrete
// message (MessageID set) or a bare point in time (MessageID zero).
type Anchor struct {
	MessageID int64
	At        time.Time
}

// Selection is the ordered result of a scan, newest-scanned-first. It is
// invocation-scoped: produced by one scan, consumed exactly once by the
// dispatcher, then discarded.
type Selection []Message

// IDs returns the message ids of the selection in order.
func (s Selection) IDs() []int64 {
	ids := make([]int64, len(s))
	for i, m := range s {
		ids[i] = m.ID
	}
	return ids
}

// Request describes one cleanup invocation.
//
// TargetCount nil means unbounded. Trigger, when set, is the invoking
// command message; it is always part of the resulting selection so the
// command cleans up after itself. TargetCount and After are mutually
// exclusive (rejected with ErrValidation).
type Request struct {
	ChannelID     int64
	RequestedBy   int64
	Predicate     Predicate
	TargetCount   *int
	Before        *Anchor
	After         *Anchor
	Trigger       *Message
	IncludePinned bool
	CanBulkDelete bool
}
