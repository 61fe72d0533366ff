package queries

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// AccessView is a credential joined with the token it was minted from.
type AccessView struct {
	CredentialID uuid.UUID  `json:"credential_id"`
	RedemptionID uuid.UUID  `json:"redemption_id"`
	Email        string     `json:"email"`
	Kind         string     `json:"kind"`
	Resource     string     `json:"resource"`
	ExpiresAt    time.Time  `json:"expires_at"`
	RedeemedAt   *time.Time `json:"redeemed_at,omitempty"`
}

// RedemptionListItem is one row of the admin token list.
type RedemptionListItem struct {
	ID                  uuid.UUID  `json:"id"`
	Code                string     `json:"code"`
	Email               string     `json:"email"`
	Kind                string     `json:"kind"`
	Resource            string     `json:"resource"`
	ExpiresAt           time.Time  `json:"expires_at"`
	Used                bool       `json:"used"`
	UsedAt              *time.Time `json:"used_at,omitempty"`
	CredentialExpiresAt *time.Time `json:"credential_expires_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// DownloadView is a time-limited link to a purchased product.
type DownloadView struct {
	URL       string    `json:"url"`
	Resource  string    `json:"resource"`
	ExpiresAt time.Time `json:"expires_at"`
}
