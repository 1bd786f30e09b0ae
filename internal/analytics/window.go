package analytics

import (
	"iter"
	"time"

	"github.com/tejusbharadwaj/sumpwatch/internal/models"
)

// Window is a read-only view over the readings that fall inside a trailing
// time range. It can be iterated any number of times.
type Window struct {
	readings []models.Reading
	anchor   time.Time
	from     time.Time
}

// FilterWindow selects readings no older than window before the newest
// reading in the series. The anchor is the newest timestamp rather than the
// wall clock, so a stalled feed still shows its last full window instead of
// an empty tail. Input order is preserved and the input is not modified.
func FilterWindow(readings []models.Reading, window time.Duration) Window {
	if len(readings) == 0 {
		return Window{}
	}
	// Scan for the maximum instead of trusting the last element.
	anchor := readings[0].Timestamp
	for _, r := range readings[1:] {
		if r.Timestamp.After(anchor) {
			anchor = r.Timestamp
		}
	}
	return Window{
		readings: readings,
		anchor:   anchor,
		from:     anchor.Add(-window),
	}
}

// Anchor returns the reference time of the window (the newest reading).
func (w Window) Anchor() time.Time {
	return w.anchor
}

// From returns the inclusive lower bound of the window.
func (w Window) From() time.Time {
	return w.from
}

func (w Window) contains(r models.Reading) bool {
	return !r.Timestamp.Before(w.from)
}

// All yields the readings inside the window in input order.
func (w Window) All() iter.Seq[models.Reading] {
	return func(yield func(models.Reading) bool) {
		for _, r := range w.readings {
			if !w.contains(r) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of readings inside the window.
func (w Window) Len() int {
	n := 0
	for range w.All() {
		n++
	}
	return n
}

// Collect copies the window into a new slice.
func (w Window) Collect() []models.Reading {
	out := make([]models.Reading, 0, len(w.readings))
	for r := range w.All() {
		out = append(out, r)
	}
	return out
}
