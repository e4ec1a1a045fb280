package telegram

import (
	"errors"
	"testing"

	"github.com/purgebot/purgebot/internal/cleanup"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "rate limited",
			err:  errors.New("telegram: Too Many Requests: retry after 5"),
			want: cleanup.ErrRateLimited,
		},
		{
			name: "missing rights",
			err:  errors.New("telegram: Bad Request: not enough rights to delete a message"),
			want: cleanup.ErrPermissionDenied,
		},
		{
			name: "undeletable message",
			err:  errors.New("telegram: Bad Request: message can't be deleted"),
			want: cleanup.ErrPermissionDenied,
		},
		{
			name: "missing message",
			err:  errors.New("telegram: Bad Request: message to delete not found"),
			want: cleanup.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := classify(tc.err)
			if !errors.Is(got, tc.want) {
				t.Errorf("classify(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestClassifyPassesUnknownThrough(t *testing.T) {
	t.Parallel()

	orig := errors.New("telegram: Internal Server Error")
	got := classify(orig)
	if got != orig {
		t.Errorf("classify() = %v, want the original error unchanged", got)
	}
	for _, sentinel := range []error{cleanup.ErrRateLimited, cleanup.ErrPermissionDenied, cleanup.ErrNotFound} {
		if errors.Is(got, sentinel) {
			t.Errorf("unknown error must not match %v", sentinel)
		}
	}
}
