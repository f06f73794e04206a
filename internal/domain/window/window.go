// Package window computes the half-open review window bounding one run.
package window

import "time"

// DefaultWeeks is the standard review window length.
const DefaultWeeks = 1

// Window is the half-open interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// At returns the window ending at now and spanning the given number of
// weeks. The caller fixes now once per run so the whole run sees a single
// snapshot.
func At(now time.Time, weeks int) Window {
	if weeks < 1 {
		weeks = DefaultWeeks
	}
	return Window{
		From: now.AddDate(0, 0, -7*weeks),
		To:   now,
	}
}

// Contains reports whether t falls inside the window. The lower bound is
// inclusive, the upper bound exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}
