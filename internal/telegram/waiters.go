package telegram

import (
	"context"
	"sync"

	"github.com/purgebot/purgebot/internal/cleanup"
)

type waiterKey struct {
	chatID int64
	userID int64
}

// ReplyWaiters routes incoming messages to invocations blocked on a reply
// from a specific user in a specific chat. One waiter per (chat, user);
// registering again replaces the previous waiter. The recorder handler
// feeds Deliver on every message it sees.
type ReplyWaiters struct {
	mu      sync.Mutex
	waiting map[waiterKey]chan cleanup.Reply
}

// NewReplyWaiters creates an empty registry.
func NewReplyWaiters() *ReplyWaiters {
	return &ReplyWaiters{waiting: make(map[waiterKey]chan cleanup.Reply)}
}

// Await blocks until the next message from userID in chatID arrives or the
// context ends.
func (w *ReplyWaiters) Await(ctx context.Context, chatID, userID int64) (cleanup.Reply, error) {
	key := waiterKey{chatID: chatID, userID: userID}
	ch := make(chan cleanup.Reply, 1)

	w.mu.Lock()
	w.waiting[key] = ch
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		if w.waiting[key] == ch {
			delete(w.waiting, key)
		}
		w.mu.Unlock()
	}()

	select {
	case reply := <-ch:
		return reply, nil
	case <-ctx.Done():
		return cleanup.Reply{}, ctx.Err()
	}
}

// Deliver hands a message to a blocked waiter, if any. It reports whether
// the message was consumed as a reply.
func (w *ReplyWaiters) Deliver(chatID, userID int64, reply cleanup.Reply) bool {
	key := waiterKey{chatID: chatID, userID: userID}

	w.mu.Lock()
	ch, ok := w.waiting[key]
	if ok {
		delete(w.waiting, key)
	}
	w.mu.Unlock()

	if !ok {
		return false
	}
	ch <- reply
	return true
}
