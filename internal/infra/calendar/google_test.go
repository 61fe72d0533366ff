//go:build unit

package calendar_test

import (
	"context"
	"testing"
	"time"

	"coachdesk/internal/infra/calendar"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

func TestParseBusy(t *testing.T) {
	const calID = "coach@example.com"

	t.Run("converts periods", func(t *testing.T) {
		resp := &gcal.FreeBusyResponse{
			Calendars: map[string]gcal.FreeBusyCalendar{
				calID: {Busy: []*gcal.TimePeriod{
					{Start: "2025-03-10T10:00:00Z", End: "2025-03-10T11:00:00Z"},
					{Start: "2025-03-10T13:30:00+01:00", End: "2025-03-10T14:00:00+01:00"},
				}},
			},
		}

		busy, err := calendar.ParseBusy(calID, resp)

		require.NoError(t, err)
		require.Len(t, busy, 2)
		assert.True(t, busy[0].Start().Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)))
		assert.True(t, busy[1].End().Equal(time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)))
	})

	t.Run("no busy periods", func(t *testing.T) {
		resp := &gcal.FreeBusyResponse{
			Calendars: map[string]gcal.FreeBusyCalendar{calID: {}},
		}

		busy, err := calendar.ParseBusy(calID, resp)

		require.NoError(t, err)
		assert.Empty(t, busy)
	})

	failures := map[string]*gcal.FreeBusyResponse{
		"nil response":     nil,
		"calendar missing": {Calendars: map[string]gcal.FreeBusyCalendar{"other": {}}},
		"calendar error": {Calendars: map[string]gcal.FreeBusyCalendar{
			calID: {Errors: []*gcal.Error{{Reason: "notFound"}}},
		}},
		"unparsable start": {Calendars: map[string]gcal.FreeBusyCalendar{
			calID: {Busy: []*gcal.TimePeriod{{Start: "yesterday", End: "2025-03-10T11:00:00Z"}}},
		}},
		"end before start": {Calendars: map[string]gcal.FreeBusyCalendar{
			calID: {Busy: []*gcal.TimePeriod{{Start: "2025-03-10T11:00:00Z", End: "2025-03-10T10:00:00Z"}}},
		}},
		"null period": {Calendars: map[string]gcal.FreeBusyCalendar{
			calID: {Busy: []*gcal.TimePeriod{nil}},
		}},
	}
	for name, resp := range failures {
		t.Run(name, func(t *testing.T) {
			busy, err := calendar.ParseBusy(calID, resp)

			require.ErrorIs(t, err, calendar.ErrMalformedBusy)
			assert.Nil(t, busy)
		})
	}
}

func TestNew_WithoutCredentialsFailsClosed(t *testing.T) {
	cal, err := calendar.New(context.Background(), config.CalendarConfig{})
	require.NoError(t, err)

	_, err = cal.BusyIntervals(context.Background(), time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, calendar.ErrNotConfigured)

	_, err = cal.CreateEvent(context.Background(), shared.CalendarEvent{})
	assert.ErrorIs(t, err, calendar.ErrNotConfigured)

	assert.ErrorIs(t, cal.DeleteEvent(context.Background(), "evt-1"), calendar.ErrNotConfigured)
}
