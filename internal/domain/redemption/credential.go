package redemption

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"coachdesk/internal/domain/user"

	"github.com/google/uuid"
)

const credentialBytes = 32

// Credential is the bearer token handed out when a code is redeemed.
// It expires independently of the token it was minted from.
type Credential struct {
	id           uuid.UUID
	token        string
	redemptionID uuid.UUID
	email        user.Email
	expiresAt    time.Time
	redeemedAt   time.Time
}

// Mint creates a credential for a token that was just marked used.
func Mint(t *Token, ttl time.Duration, now time.Time) (*Credential, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	buf := make([]byte, credentialBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return &Credential{
		id:           uuid.New(),
		token:        hex.EncodeToString(buf),
		redemptionID: t.ID(),
		email:        t.Email(),
		expiresAt:    now.Add(ttl),
		redeemedAt:   now,
	}, nil
}

// ReconstructCredential rebuilds a Credential from persisted state.
func ReconstructCredential(id uuid.UUID, token string, redemptionID uuid.UUID, email user.Email, expiresAt, redeemedAt time.Time) *Credential {
	return &Credential{
		id:           id,
		token:        token,
		redemptionID: redemptionID,
		email:        email,
		expiresAt:    expiresAt,
		redeemedAt:   redeemedAt,
	}
}

func (c *Credential) ID() uuid.UUID           { return c.id }
func (c *Credential) Token() string           { return c.token }
func (c *Credential) RedemptionID() uuid.UUID { return c.redemptionID }
func (c *Credential) Email() user.Email       { return c.email }
func (c *Credential) ExpiresAt() time.Time    { return c.expiresAt }
func (c *Credential) RedeemedAt() time.Time   { return c.redeemedAt }

// IsValidAt reports now < expiry.
func (c *Credential) IsValidAt(now time.Time) bool {
	return now.Before(c.expiresAt)
}
