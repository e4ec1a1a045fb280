package telegram_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purgebot/purgebot/internal/cleanup"
	"github.com/purgebot/purgebot/internal/telegram"
)

func TestReplyWaitersDeliverToBlockedWaiter(t *testing.T) {
	t.Parallel()

	w := telegram.NewReplyWaiters()

	type result struct {
		reply cleanup.Reply
		err   error
	}
	done := make(chan result, 1)
	go func() {
		reply, err := w.Await(context.Background(), 100, 7)
		done <- result{reply, err}
	}()

	// Let Await register before delivering.
	require.Eventually(t, func() bool {
		return w.Deliver(100, 7, cleanup.Reply{MessageID: 901, Content: "yes"})
	}, time.Second, 5*time.Millisecond)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, int64(901), res.reply.MessageID)
	assert.Equal(t, "yes", res.reply.Content)
}

func TestReplyWaitersDeliverWithoutWaiter(t *testing.T) {
	t.Parallel()

	w := telegram.NewReplyWaiters()
	assert.False(t, w.Deliver(100, 7, cleanup.Reply{Content: "hello"}),
		"a message with no waiter registered is not consumed")
}

func TestReplyWaitersContextCancellation(t *testing.T) {
	t.Parallel()

	w := telegram.NewReplyWaiters()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := w.Await(ctx, 100, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	assert.False(t, w.Deliver(100, 7, cleanup.Reply{Content: "late"}),
		"an expired waiter must be deregistered")
}

func TestReplyWaitersKeysAreScoped(t *testing.T) {
	t.Parallel()

	w := telegram.NewReplyWaiters()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := w.Await(ctx, 100, 7)
		done <- err
	}()

	require.Eventually(t, func() bool {
		// Same chat, different user: must not be consumed as the reply.
		return !w.Deliver(100, 8, cleanup.Reply{Content: "yes"}) &&
			!w.Deliver(200, 7, cleanup.Reply{Content: "yes"})
	}, time.Second, 5*time.Millisecond)

	assert.Error(t, <-done, "the waiter should time out untouched")
}
