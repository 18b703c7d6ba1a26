package domain

import "time"

// Window is an absolute half-open time window [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two windows intersect.
// Touching boundaries (End == other.Start) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Duration returns the window length
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Slot represents a candidate bookable window of fixed duration
type Slot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// Window returns the slot as a Window value
func (s Slot) Window() Window {
	return Window{Start: s.Start, End: s.End}
}
