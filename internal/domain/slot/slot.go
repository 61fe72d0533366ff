package slot

import "time"

// Slot is the half-open interval [Start, End).
type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether [start, end) intersects s. Touching endpoints do not overlap.
func (s Slot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}

// Generate returns consecutive step-long slots between the window's start and
// end on date. A trailing remainder shorter than step is dropped. An empty or
// inverted window, or a non-positive step, yields no slots.
func Generate(date Date, w Window) []Slot {
	if w.Step <= 0 {
		return []Slot{}
	}
	start, end := w.Bounds(date)
	if !end.After(start) {
		return []Slot{}
	}

	slots := make([]Slot, 0, int(end.Sub(start)/w.Step))
	for t := start; !t.Add(w.Step).After(end); t = t.Add(w.Step) {
		slots = append(slots, Slot{Start: t, End: t.Add(w.Step)})
	}
	return slots
}

// Contains reports whether slots holds a slot with exactly the given start and end.
func Contains(slots []Slot, candidate Slot) bool {
	for _, s := range slots {
		if s.Start.Equal(candidate.Start) && s.End.Equal(candidate.End) {
			return true
		}
	}
	return false
}
