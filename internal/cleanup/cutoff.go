package cleanup

import "time"

// CutoffPolicy computes the age boundary beyond which messages are never
// selected. The platform's bulk-delete call rejects messages older than
// MaxBulkAge; SafetyMargin pulls the boundary slightly forward so clock
// drift and pagination latency between selection and deletion cannot push
// a selected message past the ceiling.
type CutoffPolicy struct {
	MaxBulkAge   time.Duration
	SafetyMargin time.Duration
}

// Cutoff returns the boundary for the given instant. Messages with
// CreatedAt at or before it are never selected.
func (p CutoffPolicy) Cutoff(now time.Time) time.Time {
	return now.Add(-p.MaxBulkAge).Add(p.SafetyMargin)
}

// ClampAfter clamps an after-anchor so a scan never pages past the age
// ceiling. If the anchor is older than the cutoff, the result is a bare
// time anchor at the cutoff; the message reference is dropped because the
// referenced position lies outside the deletable window.
func (p CutoffPolicy) ClampAfter(a *Anchor, cutoff time.Time) *Anchor {
	if a == nil {
		return nil
	}
	if a.At.Before(cutoff) {
		return &Anchor{At: cutoff}
	}
	return a
}
