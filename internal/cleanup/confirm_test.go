package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	prompts   []string
	notices   []string
	removed   []int64
	reply     Reply
	replyErr  error
	block     bool // AwaitReply waits for ctx expiry instead of answering
	promptErr error
}

func (f *fakePrompter) Prompt(_ context.Context, _ int64, text string) (int64, error) {
	f.prompts = append(f.prompts, text)
	if f.promptErr != nil {
		return 0, f.promptErr
	}
	return 900, nil
}

func (f *fakePrompter) AwaitReply(ctx context.Context, _, _ int64) (Reply, error) {
	if f.block {
		<-ctx.Done()
		return Reply{}, ctx.Err()
	}
	return f.reply, f.replyErr
}

func (f *fakePrompter) Notify(_ context.Context, _ int64, text string) error {
	f.notices = append(f.notices, text)
	return nil
}

func (f *fakePrompter) Remove(_ context.Context, _, messageID int64) error {
	f.removed = append(f.removed, messageID)
	return nil
}

func TestGatePassesSmallCounts(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{}
	gate := NewGate(prompter, 100, time.Second, nil)

	decision, err := gate.Confirm(context.Background(), 100, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, DecisionConfirmed, decision)
	assert.Empty(t, prompter.prompts, "no prompt at or below the threshold")
}

func TestGateConfirmsOnYes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		reply string
	}{
		{"bare y", "y"},
		{"yes", "yes"},
		{"uppercase", "YES"},
		{"mixed case", "Yeah go ahead"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			prompter := &fakePrompter{reply: Reply{MessageID: 901, Content: tc.reply}}
			gate := NewGate(prompter, 100, time.Second, nil)

			decision, err := gate.Confirm(context.Background(), 100, 1, 150)
			require.NoError(t, err)
			assert.Equal(t, DecisionConfirmed, decision)
			require.Len(t, prompter.prompts, 1)
			assert.Contains(t, prompter.prompts[0], "150")
			assert.Equal(t, []int64{900, 901}, prompter.removed,
				"prompt and reply are removed after confirmation")
		})
	}
}

func TestGateDeclinesOnAnythingElse(t *testing.T) {
	t.Parallel()

	for _, reply := range []string{"n", "no", "never", "what?"} {
		reply := reply
		t.Run(reply, func(t *testing.T) {
			t.Parallel()

			prompter := &fakePrompter{reply: Reply{MessageID: 901, Content: reply}}
			gate := NewGate(prompter, 100, time.Second, nil)

			decision, err := gate.Confirm(context.Background(), 100, 1, 150)
			require.NoError(t, err)
			assert.Equal(t, DecisionDeclined, decision)
			assert.Equal(t, []string{"Cancelled."}, prompter.notices)
			assert.Empty(t, prompter.removed)
		})
	}
}

func TestGateTimesOut(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{block: true}
	gate := NewGate(prompter, 100, 20*time.Millisecond, nil)

	decision, err := gate.Confirm(context.Background(), 100, 1, 150)
	require.NoError(t, err)
	assert.Equal(t, DecisionTimedOut, decision)
	assert.Equal(t, []string{"Cancelled."}, prompter.notices)
}

func TestGatePromptFailure(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{promptErr: context.Canceled}
	gate := NewGate(prompter, 100, time.Second, nil)

	_, err := gate.Confirm(context.Background(), 100, 1, 150)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send confirmation prompt")
}
