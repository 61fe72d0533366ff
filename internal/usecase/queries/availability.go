package queries

import (
	"context"
	"log/slog"
	"time"

	"coachdesk/internal/domain/slot"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/shared"
)

var ErrInvalidDate = errs.Mark(errs.New("date must be YYYY-MM-DD"), errs.ErrValidation)

type AvailabilityView struct {
	Date     string
	TimeZone string
	Slots    []slot.Slot
}

type AvailabilityQueries interface {
	FreeSlots(ctx context.Context, date string) (*AvailabilityView, error)
	FreeSlotsOn(ctx context.Context, date slot.Date) ([]slot.Slot, error)
}

type availabilityQueriesImpl struct {
	calendar shared.Calendar
	window   slot.Window
	clock    clock.Clock
}

func NewAvailabilityQueries(calendar shared.Calendar, window slot.Window, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		calendar: calendar,
		window:   window,
		clock:    clk,
	}
}

func (q *availabilityQueriesImpl) FreeSlots(ctx context.Context, date string) (*AvailabilityView, error) {
	d, err := slot.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	free, err := q.FreeSlotsOn(ctx, d)
	if err != nil {
		return nil, err
	}

	return &AvailabilityView{
		Date:     d.String(),
		TimeZone: q.window.Location.String(),
		Slots:    free,
	}, nil
}

// FreeSlotsOn returns the slots of date that have not started yet and
// overlap no busy interval. Calendar errors are never treated as "no busy time".
func (q *availabilityQueriesImpl) FreeSlotsOn(ctx context.Context, date slot.Date) ([]slot.Slot, error) {
	slots := upcoming(slot.Generate(date, q.window), q.clock.Now())
	if len(slots) == 0 {
		return slots, nil
	}

	dayStart, dayEnd := q.window.Bounds(date)
	busy, err := q.calendar.BusyIntervals(ctx, dayStart, dayEnd)
	if err != nil {
		slog.Error("failed to fetch busy intervals", "date", date.String(), "error", err.Error())
		return nil, errs.Mark(err, errs.ErrUpstream)
	}

	return slot.FilterAvailable(slots, busy), nil
}

func upcoming(slots []slot.Slot, now time.Time) []slot.Slot {
	out := slots[:0]
	for _, s := range slots {
		if s.Start.After(now) {
			out = append(out, s)
		}
	}
	return out
}
