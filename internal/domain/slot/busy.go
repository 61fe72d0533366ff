package slot

import (
	"errors"
	"time"
)

var ErrMalformedBusyInterval = errors.New("malformed busy interval")

// BusyInterval is a span during which the calendar owner is unavailable.
type BusyInterval struct {
	start time.Time
	end   time.Time
}

// NewBusyInterval rejects zero instants and intervals ending before they start.
func NewBusyInterval(start, end time.Time) (BusyInterval, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return BusyInterval{}, ErrMalformedBusyInterval
	}
	return BusyInterval{start: start, end: end}, nil
}

func (b BusyInterval) Start() time.Time { return b.start }
func (b BusyInterval) End() time.Time   { return b.end }

// FilterAvailable keeps the slots that overlap none of busy, in their original order.
func FilterAvailable(slots []Slot, busy []BusyInterval) []Slot {
	free := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if !conflicts(s, busy) {
			free = append(free, s)
		}
	}
	return free
}

func conflicts(s Slot, busy []BusyInterval) bool {
	for _, b := range busy {
		if s.Overlaps(b.start, b.end) {
			return true
		}
	}
	return false
}
