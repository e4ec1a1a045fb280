package cleanup

import "errors"

// Error taxonomy for cleanup operations. Errors raised during selection
// abort the whole operation; errors during deletion are recorded per unit
// of work in the Outcome and never abort sibling units.
var (
	// ErrPermissionDenied indicates the caller (or the bot) lacks the
	// capability required for the requested operation. Surfaced before
	// anything is attempted.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound indicates an anchor message or identity argument could
	// not be resolved. Surfaced before scanning begins.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the platform rejected a deletion call due
	// to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrValidation indicates a malformed request (non-positive count,
	// or a target count combined with an after anchor).
	ErrValidation = errors.New("validation error")

	// ErrCancelled indicates the confirmation gate declined or timed out;
	// nothing was deleted and the user has already been notified.
	ErrCancelled = errors.New("operation cancelled")
)
