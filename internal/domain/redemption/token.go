package redemption

import (
	"errors"
	"time"

	"coachdesk/internal/domain/user"

	"github.com/google/uuid"
)

var ErrInvalidTTL = errors.New("ttl must be positive")

// Status is derived from the token's fields at a given instant.
type Status string

const (
	StatusIssued   Status = "issued"
	StatusRedeemed Status = "redeemed"
	StatusExpired  Status = "expired"
)

// Token is a single-use redemption code issued to an email address.
type Token struct {
	id        uuid.UUID
	code      Code
	email     user.Email
	kind      Kind
	resource  Resource
	expiresAt time.Time
	used      bool
	usedAt    *time.Time
	createdAt time.Time
}

// Issue creates a fresh, unused token that expires ttl after now.
func Issue(code Code, email user.Email, kind Kind, resource Resource, ttl time.Duration, now time.Time) (*Token, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	return &Token{
		id:        uuid.New(),
		code:      code,
		email:     email,
		kind:      kind,
		resource:  resource,
		expiresAt: now.Add(ttl),
		createdAt: now,
	}, nil
}

// Reconstruct rebuilds a Token from persisted state without validation.
func Reconstruct(id uuid.UUID, code Code, email user.Email, kind Kind, resource Resource, expiresAt time.Time, used bool, usedAt *time.Time, createdAt time.Time) *Token {
	return &Token{
		id:        id,
		code:      code,
		email:     email,
		kind:      kind,
		resource:  resource,
		expiresAt: expiresAt,
		used:      used,
		usedAt:    usedAt,
		createdAt: createdAt,
	}
}

func (t *Token) ID() uuid.UUID        { return t.id }
func (t *Token) Code() Code           { return t.code }
func (t *Token) Email() user.Email    { return t.email }
func (t *Token) Kind() Kind           { return t.kind }
func (t *Token) Resource() Resource   { return t.resource }
func (t *Token) ExpiresAt() time.Time { return t.expiresAt }
func (t *Token) IsUsed() bool         { return t.used }
func (t *Token) UsedAt() *time.Time   { return t.usedAt }
func (t *Token) CreatedAt() time.Time { return t.createdAt }

// IsExpiredAt reports now > expiry. A token is still redeemable at the exact expiry instant.
func (t *Token) IsExpiredAt(now time.Time) bool {
	return now.After(t.expiresAt)
}

func (t *Token) StatusAt(now time.Time) Status {
	switch {
	case t.used:
		return StatusRedeemed
	case t.IsExpiredAt(now):
		return StatusExpired
	default:
		return StatusIssued
	}
}
