package repository

import (
	"context"
	"time"

	"coachdesk/internal/domain/booking"
	"coachdesk/internal/domain/slot"
	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra"
	"coachdesk/internal/infra/db"
	"coachdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertBookingSQL = `
INSERT INTO call_bookings (id, credential_id, email, slot_start, slot_end, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	attachBookingEventSQL = `UPDATE call_bookings SET event_id = $2 WHERE id = $1`

	findBookingByCredentialSQL = `
SELECT id, credential_id, email, slot_start, slot_end, event_id, created_at
FROM call_bookings
WHERE credential_id = $1`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.CredentialID(),
		b.Email().Value(),
		b.Slot().Start,
		b.Slot().End,
		b.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create call booking", err)
	}
	return nil
}

func (r *BookingRepository) AttachEvent(ctx context.Context, id uuid.UUID, eventID string) error {
	tag, err := r.db.Exec(ctx, attachBookingEventSQL, id, eventID)
	if err != nil {
		return infra.WrapRepoErr("failed to attach calendar event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("call booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByCredentialID(ctx context.Context, credentialID uuid.UUID) (*booking.Booking, error) {
	var (
		id, credID uuid.UUID
		email      string
		start, end time.Time
		eventID    pgtype.Text
		createdAt  time.Time
	)
	err := r.db.QueryRow(ctx, findBookingByCredentialSQL, credentialID).
		Scan(&id, &credID, &email, &start, &end, &eventID, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("call booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find call booking", err)
	}

	em, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid email", err)
	}
	var ev string
	if p := pgconv.StringPtrFromPgtype(eventID); p != nil {
		ev = *p
	}
	return booking.Reconstruct(id, credID, em, slot.Slot{Start: start, End: end}, ev, createdAt), nil
}
