//go:build unit || e2e

package builder

import (
	"strings"
	"time"

	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/domain/user"
	"coachdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

var BaseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type RedemptionBuilder struct {
	ID        uuid.UUID
	Code      string
	Email     string
	Kind      string
	Resource  string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

func NewRedemptionBuilder() *RedemptionBuilder {
	return &RedemptionBuilder{
		ID:        uuid.New(),
		Code:      "ABCDEFGHJKMN",
		Email:     "buyer@example.com",
		Kind:      "download",
		Resource:  "guides/starter.pdf",
		ExpiresAt: BaseTime.Add(24 * time.Hour),
		CreatedAt: BaseTime.Add(-time.Hour),
	}
}

func (b *RedemptionBuilder) With(mutate func(*RedemptionBuilder)) *RedemptionBuilder {
	mutate(b)
	return b
}

func (b *RedemptionBuilder) AsCall() *RedemptionBuilder {
	b.Kind = "call"
	b.Resource = redemption.DefaultCallResource
	return b
}

func (b *RedemptionBuilder) ExpiringAt(t time.Time) *RedemptionBuilder {
	b.ExpiresAt = t
	return b
}

func (b *RedemptionBuilder) UsedAtTime(t time.Time) *RedemptionBuilder {
	b.UsedAt = &t
	return b
}

// BuildDomain panics on invalid builder state; builders only hold test fixtures.
func (b *RedemptionBuilder) BuildDomain() *redemption.Token {
	code, err := redemption.ParseCode(b.Code)
	must(err)
	email, err := user.NewEmail(b.Email)
	must(err)
	kind, err := redemption.NewKind(b.Kind)
	must(err)
	res, err := redemption.NewResource(b.Resource)
	must(err)
	return redemption.Reconstruct(b.ID, code, email, kind, res, b.ExpiresAt, b.UsedAt != nil, b.UsedAt, b.CreatedAt)
}

func (b *RedemptionBuilder) BuildListItem() *queries.RedemptionListItem {
	return &queries.RedemptionListItem{
		ID:        b.ID,
		Code:      b.Code,
		Email:     b.Email,
		Kind:      b.Kind,
		Resource:  b.Resource,
		ExpiresAt: b.ExpiresAt,
		Used:      b.UsedAt != nil,
		UsedAt:    b.UsedAt,
		CreatedAt: b.CreatedAt,
	}
}

type AccessBuilder struct {
	CredentialID uuid.UUID
	RedemptionID uuid.UUID
	Token        string
	Email        string
	Kind         string
	Resource     string
	ExpiresAt    time.Time
	RedeemedAt   time.Time
}

func NewAccessBuilder() *AccessBuilder {
	return &AccessBuilder{
		CredentialID: uuid.New(),
		RedemptionID: uuid.New(),
		Token:        strings.Repeat("ab", 32),
		Email:        "buyer@example.com",
		Kind:         "download",
		Resource:     "guides/starter.pdf",
		ExpiresAt:    BaseTime.Add(2 * time.Hour),
		RedeemedAt:   BaseTime.Add(-time.Minute),
	}
}

func (b *AccessBuilder) AsCall() *AccessBuilder {
	b.Kind = "call"
	b.Resource = redemption.DefaultCallResource
	return b
}

func (b *AccessBuilder) ExpiringAt(t time.Time) *AccessBuilder {
	b.ExpiresAt = t
	return b
}

func (b *AccessBuilder) BuildView() *queries.AccessView {
	redeemedAt := b.RedeemedAt
	return &queries.AccessView{
		CredentialID: b.CredentialID,
		RedemptionID: b.RedemptionID,
		Email:        b.Email,
		Kind:         b.Kind,
		Resource:     b.Resource,
		ExpiresAt:    b.ExpiresAt,
		RedeemedAt:   &redeemedAt,
	}
}

func (b *AccessBuilder) BuildDomain() *redemption.Credential {
	email, err := user.NewEmail(b.Email)
	must(err)
	return redemption.ReconstructCredential(b.CredentialID, b.Token, b.RedemptionID, email, b.ExpiresAt, b.RedeemedAt)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
