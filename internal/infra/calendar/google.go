package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"coachdesk/internal/domain/slot"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/usecase/shared"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var (
	ErrNotConfigured = errors.New("calendar is not configured")
	ErrMalformedBusy = errors.New("calendar returned malformed busy data")
)

// GoogleCalendar reads busy time and inserts call events on one calendar.
type GoogleCalendar struct {
	svc             *gcal.Service
	calendarID      string
	timeout         time.Duration
	inviteAttendees bool
}

// New builds the calendar port. Without credentials it returns a calendar
// that fails every call, so availability is never reported on missing data.
func New(ctx context.Context, cfg config.CalendarConfig) (shared.Calendar, error) {
	if cfg.CalendarID == "" || cfg.CredentialsFile == "" {
		slog.Warn("calendar credentials not set, calendar calls will fail")
		return Unavailable{}, nil
	}

	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleCalendar{
		svc:             svc,
		calendarID:      cfg.CalendarID,
		timeout:         cfg.RequestTimeout,
		inviteAttendees: cfg.InviteAttendees,
	}, nil
}

func (g *GoogleCalendar) BusyIntervals(ctx context.Context, from, to time.Time) ([]slot.BusyInterval, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: from.UTC().Format(time.RFC3339),
		TimeMax: to.UTC().Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	return ParseBusy(g.calendarID, resp)
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, ev shared.CalendarEvent) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	event := &gcal.Event{
		Id:          ev.RequestID,
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.UTC().Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: ev.End.UTC().Format(time.RFC3339)},
	}

	call := g.svc.Events.Insert(g.calendarID, event)
	if g.inviteAttendees && ev.AttendeeEmail != "" {
		event.Attendees = []*gcal.EventAttendee{{Email: ev.AttendeeEmail}}
		call = call.SendUpdates("all")
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		// A retried insert with the same id already landed.
		if isConflict(err) && ev.RequestID != "" {
			slog.Info("calendar event already exists", "event_id", ev.RequestID)
			return ev.RequestID, nil
		}
		return "", fmt.Errorf("event insert failed: %w", err)
	}

	return created.Id, nil
}

func (g *GoogleCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	err := g.svc.Events.Delete(g.calendarID, eventID).Context(ctx).Do()
	if err != nil && !isGone(err) {
		return fmt.Errorf("event delete failed: %w", err)
	}
	return nil
}

func (g *GoogleCalendar) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// ParseBusy converts a freebusy response for calendarID into busy intervals.
// Missing calendars, per-calendar errors and unparsable periods all fail.
func ParseBusy(calendarID string, resp *gcal.FreeBusyResponse) ([]slot.BusyInterval, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedBusy)
	}
	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %q missing", ErrMalformedBusy, calendarID)
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("%w: calendar %q reported %s", ErrMalformedBusy, calendarID, cal.Errors[0].Reason)
	}

	busy := make([]slot.BusyInterval, 0, len(cal.Busy))
	for i, p := range cal.Busy {
		if p == nil {
			return nil, fmt.Errorf("%w: period %d is null", ErrMalformedBusy, i)
		}
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: period %d start: %v", ErrMalformedBusy, i, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("%w: period %d end: %v", ErrMalformedBusy, i, err)
		}
		iv, err := slot.NewBusyInterval(start, end)
		if err != nil {
			return nil, fmt.Errorf("%w: period %d: %v", ErrMalformedBusy, i, err)
		}
		busy = append(busy, iv)
	}
	return busy, nil
}

func isConflict(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone)
}

// Unavailable is used when no calendar is configured.
type Unavailable struct{}

func (Unavailable) BusyIntervals(context.Context, time.Time, time.Time) ([]slot.BusyInterval, error) {
	return nil, ErrNotConfigured
}

func (Unavailable) CreateEvent(context.Context, shared.CalendarEvent) (string, error) {
	return "", ErrNotConfigured
}

func (Unavailable) DeleteEvent(context.Context, string) error {
	return ErrNotConfigured
}
