package booking

import (
	"errors"
	"time"

	"coachdesk/internal/domain/slot"
	"coachdesk/internal/domain/user"

	"github.com/google/uuid"
)

var ErrInvalidSlot = errors.New("invalid booking slot")

// Booking reserves one slot for the holder of a call credential.
// A credential books at most one call and a slot start holds at most one booking.
type Booking struct {
	id           uuid.UUID
	credentialID uuid.UUID
	email        user.Email
	slot         slot.Slot
	eventID      string
	createdAt    time.Time
}

func New(credentialID uuid.UUID, email user.Email, s slot.Slot, now time.Time) (*Booking, error) {
	if !s.End.After(s.Start) {
		return nil, ErrInvalidSlot
	}
	return &Booking{
		id:           uuid.New(),
		credentialID: credentialID,
		email:        email,
		slot:         s,
		createdAt:    now,
	}, nil
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) CredentialID() uuid.UUID { return b.credentialID }
func (b *Booking) Email() user.Email       { return b.email }
func (b *Booking) Slot() slot.Slot         { return b.slot }
func (b *Booking) EventID() string         { return b.eventID }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }

// AttachEvent records the calendar event created for this booking.
func (b *Booking) AttachEvent(eventID string) {
	b.eventID = eventID
}

// Reconstruct rebuilds a Booking from persisted state without validation.
func Reconstruct(id, credentialID uuid.UUID, email user.Email, s slot.Slot, eventID string, createdAt time.Time) *Booking {
	return &Booking{
		id:           id,
		credentialID: credentialID,
		email:        email,
		slot:         s,
		eventID:      eventID,
		createdAt:    createdAt,
	}
}
