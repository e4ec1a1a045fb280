package telegram

import (
	"context"
	"fmt"

	"github.com/purgebot/purgebot/internal/cleanup"
	"github.com/purgebot/purgebot/internal/database"
)

// StoreFeed exposes the recorded message history as the cleanup scanner's
// paginated feed. The Bot API has no channel-history endpoint, so the rows
// the recorder has written are the only history there is; the interface
// stays platform-shaped so a richer backend could replace it.
type StoreFeed struct {
	store database.Store
}

// NewStoreFeed creates a HistoryFeed over the recorded history.
func NewStoreFeed(store database.Store) *StoreFeed {
	return &StoreFeed{store: store}
}

// Page returns up to limit messages of the channel, newest first, within
// the given anchors.
func (f *StoreFeed) Page(ctx context.Context, channelID int64, before, after *cleanup.Anchor, limit int) ([]cleanup.Message, error) {
	rows, err := f.store.GetMessagePage(ctx, channelID, toCursor(before), toCursor(after), limit)
	if err != nil {
		return nil, fmt.Errorf("store page: %w", err)
	}

	page := make([]cleanup.Message, len(rows))
	for i, row := range rows {
		page[i] = cleanup.Message{
			ID:        row.MessageID,
			ChannelID: row.ChatID,
			AuthorID:  row.UserID,
			Content:   row.Content,
			CreatedAt: row.Timestamp,
			Pinned:    row.Pinned,
		}
	}
	return page, nil
}

func toCursor(a *cleanup.Anchor) *database.Cursor {
	if a == nil {
		return nil
	}
	return &database.Cursor{Timestamp: a.At, MessageID: a.MessageID}
}
