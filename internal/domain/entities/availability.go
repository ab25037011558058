package entities

import (
	"time"
)

// TimeWindow is a half-open [Start, End) query range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZeroLength reports whether the window contains no time at all.
func (w TimeWindow) IsZeroLength() bool {
	return !w.End.After(w.Start)
}

// BusyInterval is an existing commitment on a calendar, fetched from the
// calendar provider for a query window. Not persisted.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports strict interval overlap with [start, end).
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}
