package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshot for command read operations
type BookingSnapshot struct {
	ID           uuid.UUID
	CredentialID uuid.UUID
	Start        time.Time
	End          time.Time
	EventID      string
}

// CalendarEvent is what the booking flow asks the calendar to create.
type CalendarEvent struct {
	Summary       string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
	RequestID     string
}

// RedemptionMail carries what the mailer needs to deliver a code.
type RedemptionMail struct {
	To        string
	Code      string
	Kind      string
	Resource  string
	ExpiresAt time.Time
}
