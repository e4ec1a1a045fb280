package handlers_test

import (
	"errors"
	"testing"

	"github.com/purgebot/purgebot/internal/bot/handlers"
	"github.com/purgebot/purgebot/internal/cleanup"
)

func TestParseArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  handlers.Args
	}{
		{
			name:  "text with count",
			input: "/cleanup text spam 25",
			want:  handlers.Args{Sub: "text", Text: "spam", Count: 25},
		},
		{
			name:  "text with quoted substring",
			input: `/cleanup text "free crypto now" 10`,
			want:  handlers.Args{Sub: "text", Text: "free crypto now", Count: 10},
		},
		{
			name:  "text with pinned flag",
			input: "/cleanup text spam 25 true",
			want:  handlers.Args{Sub: "text", Text: "spam", Count: 25, IncludePinned: true},
		},
		{
			name:  "user by username",
			input: "/cleanup user @alice 50",
			want:  handlers.Args{Sub: "user", UserRef: "@alice", Count: 50},
		},
		{
			name:  "user by id",
			input: "/cleanup user 123456 50 false",
			want:  handlers.Args{Sub: "user", UserRef: "123456", Count: 50},
		},
		{
			name:  "after message id",
			input: "/cleanup after 4211",
			want:  handlers.Args{Sub: "after", MessageID: 4211},
		},
		{
			name:  "after with pinned",
			input: "/cleanup after 4211 true",
			want:  handlers.Args{Sub: "after", MessageID: 4211, IncludePinned: true},
		},
		{
			name:  "messages",
			input: "/cleanup messages 30",
			want:  handlers.Args{Sub: "messages", Count: 30},
		},
		{
			name:  "bot",
			input: "/cleanup bot 40 true",
			want:  handlers.Args{Sub: "bot", Count: 40, IncludePinned: true},
		},
		{
			name:  "self bare count",
			input: "/cleanup self 15",
			want:  handlers.Args{Sub: "self", Count: 15},
		},
		{
			name:  "self with pattern",
			input: "/cleanup self 15 oops",
			want:  handlers.Args{Sub: "self", Count: 15, Pattern: "oops"},
		},
		{
			name:  "self trailing bool is pinned not pattern",
			input: "/cleanup self 15 true",
			want:  handlers.Args{Sub: "self", Count: 15, IncludePinned: true},
		},
		{
			name:  "self with regex pattern and pinned",
			input: `/cleanup self 15 "r(^Error)" true`,
			want:  handlers.Args{Sub: "self", Count: 15, Pattern: "r(^Error)", IncludePinned: true},
		},
		{
			name:  "command with bot mention",
			input: "/cleanup@purgebot messages 30",
			want:  handlers.Args{Sub: "messages", Count: 30},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := handlers.ParseArgs(tc.input)
			if err != nil {
				t.Fatalf("ParseArgs(%q) returned error: %v", tc.input, err)
			}
			if *got != tc.want {
				t.Errorf("ParseArgs(%q) = %+v, want %+v", tc.input, *got, tc.want)
			}
		})
	}
}

func TestParseArgsRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"/cleanup",
		"/cleanup frobnicate 10",
		"/cleanup text spam",
		"/cleanup text spam zero",
		"/cleanup text spam -5",
		"/cleanup text spam 0",
		"/cleanup user @alice",
		"/cleanup after notanumber",
		"/cleanup after -3",
		"/cleanup messages",
		"/cleanup messages 10 maybe",
		"/cleanup bot 10 20 30",
		"/cleanup self",
		"/cleanup self ten",
	}

	for _, input := range inputs {
		input := input
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := handlers.ParseArgs(input)
			if err == nil {
				t.Fatalf("ParseArgs(%q) succeeded, want error", input)
			}
			if !errors.Is(err, cleanup.ErrValidation) {
				t.Errorf("ParseArgs(%q) error = %v, want ErrValidation", input, err)
			}
		})
	}
}

func TestKnownCommand(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		want bool
	}{
		{"cleanup", true},
		{"help", true},
		{"start", true},
		{"cleanup@purgebot", true},
		{"frobnicate", false},
		{"", false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run("name="+tc.name, func(t *testing.T) {
			t.Parallel()

			if got := handlers.KnownCommand(tc.name); got != tc.want {
				t.Errorf("KnownCommand(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}
