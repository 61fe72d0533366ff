package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coachdesk/internal/domain/booking"
	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/domain/slot"
	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/queries"
	"coachdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotUnavailable = errs.ErrSlotUnavailable
	ErrAlreadyBooked   = errs.Mark(errs.New("a call is already booked with this access token"), errs.ErrSlotUnavailable)
	ErrInvalidStart    = errs.Mark(errs.New("start must be an RFC3339 timestamp"), errs.ErrValidation)
)

type BookingResult struct {
	BookingID uuid.UUID
	Email     string
	Start     time.Time
	End       time.Time
	EventID   string
}

type BookingCommands interface {
	BookCall(ctx context.Context, credentialToken string, start time.Time) (*BookingResult, error)
}

type BookingSettings struct {
	Window       slot.Window
	EventSummary string
}

type bookingCommandsImpl struct {
	uow          shared.UnitOfWork
	access       queries.AccessQueries
	availability queries.AvailabilityQueries
	calendar     shared.Calendar
	settings     BookingSettings
	clock        clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	access queries.AccessQueries,
	availability queries.AvailabilityQueries,
	calendar shared.Calendar,
	settings BookingSettings,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:          uow,
		access:       access,
		availability: availability,
		calendar:     calendar,
		settings:     settings,
		clock:        clk,
	}
}

// BookCall books the free slot starting at start for the holder of a call credential.
func (b *bookingCommandsImpl) BookCall(ctx context.Context, credentialToken string, start time.Time) (*BookingResult, error) {
	if start.IsZero() {
		return nil, ErrInvalidStart
	}

	view, err := b.access.VerifyKind(ctx, credentialToken, redemption.KindCall)
	if err != nil {
		return nil, err
	}

	window := b.settings.Window
	local := start.In(window.Location)
	candidate := slot.Slot{Start: local, End: local.Add(window.Step)}

	free, err := b.availability.FreeSlotsOn(ctx, slot.DateOf(local))
	if err != nil {
		return nil, err
	}
	if !slot.Contains(free, candidate) {
		return nil, ErrSlotUnavailable
	}

	email, err := user.NewEmail(view.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	bk, err := booking.New(view.CredentialID, email, candidate, b.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	// The event id is derived from the booking id, so a retried transaction
	// reuses the same event.
	var eventID string
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().BookingByCredentialID(ctx, view.CredentialID); derr == nil {
			return ErrAlreadyBooked
		} else if !infra.IsKind(derr, infra.KindNotFound) {
			return derr
		}

		if derr := tx.Bookings().Create(ctx, bk); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrSlotUnavailable
			}
			return derr
		}

		id, derr := b.calendar.CreateEvent(ctx, shared.CalendarEvent{
			Summary:       b.settings.EventSummary,
			Description:   "Booked via access token for " + view.Resource,
			Start:         candidate.Start,
			End:           candidate.End,
			AttendeeEmail: email.Value(),
			RequestID:     strings.ReplaceAll(bk.ID().String(), "-", ""),
		})
		if derr != nil {
			return errs.Mark(derr, errs.ErrUpstream)
		}
		eventID = id

		bk.AttachEvent(id)
		return tx.Bookings().AttachEvent(ctx, bk.ID(), id)
	})
	if err != nil {
		if eventID != "" {
			b.discardEvent(ctx, eventID)
		}
		return nil, err
	}

	slog.Info("call booked",
		"booking_id", bk.ID(),
		"start", candidate.Start.Format(time.RFC3339),
		"event_id", bk.EventID())

	return &BookingResult{
		BookingID: bk.ID(),
		Email:     email.Value(),
		Start:     candidate.Start,
		End:       candidate.End,
		EventID:   bk.EventID(),
	}, nil
}

// discardEvent removes a calendar event whose booking did not commit.
func (b *bookingCommandsImpl) discardEvent(ctx context.Context, eventID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := b.calendar.DeleteEvent(ctx, eventID); err != nil {
		slog.Error("orphaned calendar event after failed booking", "event_id", eventID, "error", err)
		return
	}
	slog.Warn("calendar event removed after failed booking", "event_id", eventID)
}
