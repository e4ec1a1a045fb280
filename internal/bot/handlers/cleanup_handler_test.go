package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purgebot/purgebot/internal/config"
)

const (
	testAdminID = int64(42)
	testBotID   = int64(5)
)

// fakePerms grants delete-messages permission to the listed user ids.
type fakePerms struct {
	allowed map[int64]bool
}

func (f *fakePerms) CanDeleteMessages(_ context.Context, _ int64, userID int64) (bool, error) {
	return f.allowed[userID], nil
}

func newTestHandler(perms *fakePerms) cleanupHandler {
	return cleanupHandler{deps: HandlerDeps{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:      &config.Config{Telegram: config.TelegramConfig{AdminID: testAdminID}},
		Permissions: perms,
		BotID:       testBotID,
	}}
}

func groupMessage(fromID int64) *models.Message {
	return &models.Message{
		ID:   10,
		Date: 1750000000,
		Chat: models.Chat{ID: 100, Type: models.ChatTypeSupergroup},
		From: &models.User{ID: fromID},
	}
}

func TestBuildRequestPermissionChecks(t *testing.T) {
	t.Parallel()

	args := &Args{Sub: "messages", Count: 5}

	testCases := []struct {
		name       string
		fromID     int64
		allowed    map[int64]bool
		wantNotice string
	}{
		{
			name:       "caller without permission is refused",
			fromID:     7,
			allowed:    map[int64]bool{testBotID: true},
			wantNotice: msgCallerNeedsPermission,
		},
		{
			name:    "caller with permission proceeds",
			fromID:  7,
			allowed: map[int64]bool{7: true, testBotID: true},
		},
		{
			name:    "configured admin bypasses the caller check",
			fromID:  testAdminID,
			allowed: map[int64]bool{testBotID: true},
		},
		{
			name:       "admin cannot bypass a powerless bot",
			fromID:     testAdminID,
			allowed:    map[int64]bool{},
			wantNotice: msgBotNeedsPermission,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newTestHandler(&fakePerms{allowed: tc.allowed})
			req, notice, err := h.buildRequest(context.Background(), groupMessage(tc.fromID), args)
			require.NoError(t, err)
			assert.Equal(t, tc.wantNotice, notice)
			if tc.wantNotice == "" {
				require.NotNil(t, req)
				assert.True(t, req.CanBulkDelete)
			} else {
				assert.Nil(t, req)
			}
		})
	}
}

func TestBuildRequestRejectsPrivateChat(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakePerms{allowed: map[int64]bool{testAdminID: true, testBotID: true}})

	msg := groupMessage(testAdminID)
	msg.Chat.Type = models.ChatTypePrivate

	req, notice, err := h.buildRequest(context.Background(), msg, &Args{Sub: "messages", Count: 5})
	require.NoError(t, err)
	assert.Equal(t, msgGroupOnly, notice)
	assert.Nil(t, req)
}
