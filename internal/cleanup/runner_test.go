package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(feed HistoryFeed, deleter Deleter, prompter Prompter) *Runner {
	policy := CutoffPolicy{MaxBulkAge: 14 * 24 * time.Hour, SafetyMargin: 5 * time.Minute}
	r := NewRunner(
		NewScanner(feed, 100, nil),
		NewDispatcher(deleter, 100, time.Millisecond, nil),
		NewGate(prompter, 100, time.Second, nil),
		policy,
		nil,
	)
	r.now = func() time.Time { return scanBase }
	return r
}

func TestRunnerRejectsNonPositiveCount(t *testing.T) {
	t.Parallel()

	r := newTestRunner(&fakeFeed{}, &fakeDeleter{}, &fakePrompter{})

	count := 0
	_, err := r.Execute(context.Background(), &Request{ChannelID: 100, TargetCount: &count})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestRunnerRejectsCountWithAfterAnchor(t *testing.T) {
	t.Parallel()

	r := newTestRunner(&fakeFeed{}, &fakeDeleter{}, &fakePrompter{})

	count := 10
	req := &Request{
		ChannelID:   100,
		TargetCount: &count,
		After:       &Anchor{MessageID: 5, At: scanBase.Add(-time.Hour)},
	}
	_, err := r.Execute(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "after anchor")
}

func TestRunnerCancelsOnDeclinedGate(t *testing.T) {
	t.Parallel()

	feed := &fakeFeed{messages: history(200, 1)}
	deleter := &fakeDeleter{}
	prompter := &fakePrompter{reply: Reply{MessageID: 901, Content: "n"}}
	r := newTestRunner(feed, deleter, prompter)

	count := 150
	_, err := r.Execute(context.Background(), &Request{
		ChannelID:   100,
		RequestedBy: 1,
		Predicate:   AnchorPredicate{},
		TargetCount: &count,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.Zero(t, feed.pages, "nothing is scanned after a decline")
	assert.Empty(t, deleter.batches)
	assert.Empty(t, deleter.singles)
}

func TestRunnerSkipsGateBelowThreshold(t *testing.T) {
	t.Parallel()

	feed := &fakeFeed{messages: history(20, 1)}
	deleter := &fakeDeleter{}
	prompter := &fakePrompter{}
	r := newTestRunner(feed, deleter, prompter)

	count := 10
	out, err := r.Execute(context.Background(), &Request{
		ChannelID:     100,
		RequestedBy:   1,
		Predicate:     AnchorPredicate{},
		TargetCount:   &count,
		CanBulkDelete: true,
	})
	require.NoError(t, err)
	assert.Empty(t, prompter.prompts)
	assert.Equal(t, 10, out.Deleted)
	assert.NotEmpty(t, out.OperationID)
}

func TestRunnerPrependsTrigger(t *testing.T) {
	t.Parallel()

	// The trigger sits above the Before bound, so the scan never sees it.
	trigger := Message{ID: 999, ChannelID: 100, AuthorID: 1, Content: "/cleanup messages 5", CreatedAt: scanBase}
	feed := &fakeFeed{messages: history(20, 2)}
	deleter := &fakeDeleter{}
	r := newTestRunner(feed, deleter, &fakePrompter{})

	count := 5
	out, err := r.Execute(context.Background(), &Request{
		ChannelID:     100,
		RequestedBy:   1,
		Predicate:     AnchorPredicate{},
		TargetCount:   &count,
		Before:        &Anchor{MessageID: trigger.ID, At: trigger.CreatedAt},
		Trigger:       &trigger,
		CanBulkDelete: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, out.Attempted, "the trigger rides along with the selection")
	require.Len(t, deleter.batches, 1)
	assert.Equal(t, int64(999), deleter.batches[0][0], "trigger is deleted first")
}

func TestRunnerClampsAfterAnchorToWindow(t *testing.T) {
	t.Parallel()

	recent := history(10, 1)
	stale := Message{
		ID:        1000,
		ChannelID: 100,
		AuthorID:  1,
		Content:   "ancient",
		CreatedAt: scanBase.Add(-30 * 24 * time.Hour),
	}
	feed := &fakeFeed{messages: append(recent, stale)}
	deleter := &fakeDeleter{}
	r := newTestRunner(feed, deleter, &fakePrompter{})

	req := &Request{
		ChannelID:     100,
		RequestedBy:   1,
		Predicate:     AnchorPredicate{},
		After:         &Anchor{MessageID: stale.ID, At: stale.CreatedAt},
		CanBulkDelete: true,
	}
	out, err := r.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Deleted, "only messages inside the deletion window qualify")
	for _, batch := range deleter.batches {
		assert.NotContains(t, batch, int64(1000))
	}

	require.NotNil(t, req.After)
	assert.Equal(t, stale.ID, req.After.MessageID, "the caller's request must come back untouched")
	assert.True(t, req.After.At.Equal(stale.CreatedAt))
}

func TestRunnerScanFailureAbortsBeforeDeletion(t *testing.T) {
	t.Parallel()

	feed := &fakeFeed{messages: history(300, 1), failOn: 2}
	deleter := &fakeDeleter{}
	r := newTestRunner(feed, deleter, &fakePrompter{})

	_, err := r.Execute(context.Background(), &Request{
		ChannelID:     100,
		RequestedBy:   1,
		Predicate:     AnchorPredicate{},
		CanBulkDelete: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selection failed")
	assert.Empty(t, deleter.batches, "nothing may be deleted after a failed scan")
}
