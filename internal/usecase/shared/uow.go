package shared

import (
	"context"
	"time"

	"coachdesk/internal/domain/booking"
	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Redemptions() RedemptionRepository
	Bookings() BookingRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the lookups commands need while deciding what to write.
// Missing rows surface as infra.KindNotFound.
type CommandReads interface {
	TokenByCode(ctx context.Context, code redemption.Code) (*redemption.Token, error)
	CredentialByRedemptionID(ctx context.Context, redemptionID uuid.UUID) (*redemption.Credential, error)
	BookingByCredentialID(ctx context.Context, credentialID uuid.UUID) (*BookingSnapshot, error)
}

type RedemptionRepository interface {
	// Create inserts an unused token. A code collision returns infra.KindDuplicateKey.
	Create(ctx context.Context, tok *redemption.Token) error
	// ClaimUnused atomically flips used=false to true for a live token and
	// returns it. No claimable row returns infra.KindNotFound.
	ClaimUnused(ctx context.Context, code redemption.Code, now time.Time) (*redemption.Token, error)
	CreateCredential(ctx context.Context, cred *redemption.Credential) error
}

type BookingRepository interface {
	// Create returns infra.KindDuplicateKey when the slot or the credential is already booked.
	Create(ctx context.Context, b *booking.Booking) error
	AttachEvent(ctx context.Context, id uuid.UUID, eventID string) error
}

type UserRepository interface {
	// Upsert creates the user or replaces password, role and active flag of the user with the same email.
	Upsert(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}
