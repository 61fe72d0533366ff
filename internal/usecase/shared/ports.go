package shared

import (
	"context"
	"time"

	"coachdesk/internal/domain/slot"
)

// Calendar is the external calendar that owns busy time and call events.
type Calendar interface {
	// BusyIntervals returns busy spans intersecting [from, to). Malformed
	// upstream data is an error, never an empty result.
	BusyIntervals(ctx context.Context, from, to time.Time) ([]slot.BusyInterval, error)
	CreateEvent(ctx context.Context, ev CalendarEvent) (string, error)
	// DeleteEvent removes an event. An already missing event is not an error.
	DeleteEvent(ctx context.Context, eventID string) error
}

type Mailer interface {
	SendRedemptionCode(ctx context.Context, mail RedemptionMail) error
}

// ObjectStorage holds downloadable products keyed by resource name.
type ObjectStorage interface {
	Exists(ctx context.Context, key string) (bool, error)
	PresignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// TokenRevoker keeps a deny-list of signed-out JWT IDs.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RateDecision is the outcome of one rate limit check.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateDecision, error)
}
