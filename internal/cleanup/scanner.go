package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// HistoryFeed is a reverse-chronological paginated view of a channel.
// Page returns up to limit messages newest-first, strictly older than
// before and strictly newer than after (nil bounds are open). A short or
// empty page means the feed is exhausted within the given bounds.
type HistoryFeed interface {
	Page(ctx context.Context, channelID int64, before, after *Anchor, limit int) ([]Message, error)
}

// Scanner consumes a HistoryFeed lazily and reduces it to a bounded
// Selection in a single pass. The full history is never materialized.
type Scanner struct {
	feed     HistoryFeed
	pageSize int
	logger   *slog.Logger
}

// NewScanner creates a Scanner paging the given feed in pages of pageSize.
func NewScanner(feed HistoryFeed, pageSize int, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		feed:     feed,
		pageSize: pageSize,
		logger:   logger.With("component", "scanner"),
	}
}

// Scan walks the feed newest-to-oldest and collects messages accepted by
// the request's predicate, subject to the pin rule and the cutoff.
//
// The cutoff is a hard short-circuit, not a filter: the feed is
// time-ordered, so the first message at or before the cutoff ends the
// scan. The scan also ends when TargetCount is reached or the feed is
// exhausted. A page error aborts the whole scan; no partial selection is
// ever returned as complete.
func (s *Scanner) Scan(ctx context.Context, req *Request, cutoff time.Time) (Selection, error) {
	var sel Selection
	before := req.Before

	for {
		page, err := s.feed.Page(ctx, req.ChannelID, before, req.After, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("history page: %w", err)
		}
		if len(page) == 0 {
			return sel, nil
		}

		for _, m := range page {
			if !m.CreatedAt.After(cutoff) {
				s.logger.DebugContext(ctx, "Scan reached cutoff",
					"channel_id", req.ChannelID, "selected", len(sel))
				return sel, nil
			}
			if !req.IncludePinned && m.Pinned {
				continue
			}
			if req.Predicate != nil && !req.Predicate.Match(m) {
				continue
			}
			sel = append(sel, m)
			if req.TargetCount != nil && len(sel) >= *req.TargetCount {
				return sel, nil
			}
		}

		if len(page) < s.pageSize {
			return sel, nil
		}
		last := page[len(page)-1]
		before = &Anchor{MessageID: last.ID, At: last.CreatedAt}
	}
}
