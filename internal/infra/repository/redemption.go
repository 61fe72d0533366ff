package repository

import (
	"context"
	"time"

	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra"
	"coachdesk/internal/infra/db"
	"coachdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const tokenColumns = `id, code, email, kind, resource, expires_at, used, used_at, created_at`

const (
	insertTokenSQL = `
INSERT INTO redemption_tokens (` + tokenColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	// The predicate is re-evaluated after a concurrent writer commits, so at
	// most one caller gets the row back.
	claimUnusedTokenSQL = `
UPDATE redemption_tokens
SET used = true, used_at = $2
WHERE code = $1 AND used = false AND expires_at >= $2
RETURNING ` + tokenColumns

	findTokenByCodeSQL = `SELECT ` + tokenColumns + ` FROM redemption_tokens WHERE code = $1`

	insertCredentialSQL = `
INSERT INTO access_credentials (id, token, redemption_id, email, expires_at, redeemed_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	findCredentialByRedemptionIDSQL = `
SELECT id, token, redemption_id, email, expires_at, redeemed_at
FROM access_credentials
WHERE redemption_id = $1`
)

type RedemptionRepository struct {
	db db.DBTX
}

func NewRedemptionRepository(dbtx db.DBTX) *RedemptionRepository {
	return &RedemptionRepository{db: dbtx}
}

func (r *RedemptionRepository) Create(ctx context.Context, tok *redemption.Token) error {
	_, err := r.db.Exec(ctx, insertTokenSQL,
		tok.ID(),
		tok.Code().String(),
		tok.Email().Value(),
		tok.Kind().String(),
		tok.Resource().String(),
		tok.ExpiresAt(),
		tok.IsUsed(),
		pgconv.TimePtrToPgtype(tok.UsedAt()),
		tok.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create redemption token", err)
	}
	return nil
}

func (r *RedemptionRepository) ClaimUnused(ctx context.Context, code redemption.Code, now time.Time) (*redemption.Token, error) {
	tok, err := scanToken(r.db.QueryRow(ctx, claimUnusedTokenSQL, code.String(), now))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no claimable redemption token", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to claim redemption token", err)
	}
	return tok, nil
}

func (r *RedemptionRepository) FindByCode(ctx context.Context, code redemption.Code) (*redemption.Token, error) {
	tok, err := scanToken(r.db.QueryRow(ctx, findTokenByCodeSQL, code.String()))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("redemption token not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find redemption token", err)
	}
	return tok, nil
}

func (r *RedemptionRepository) CreateCredential(ctx context.Context, cred *redemption.Credential) error {
	_, err := r.db.Exec(ctx, insertCredentialSQL,
		cred.ID(),
		cred.Token(),
		cred.RedemptionID(),
		cred.Email().Value(),
		cred.ExpiresAt(),
		cred.RedeemedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create access credential", err)
	}
	return nil
}

func (r *RedemptionRepository) FindCredentialByRedemptionID(ctx context.Context, redemptionID uuid.UUID) (*redemption.Credential, error) {
	var (
		id, redID             uuid.UUID
		token, email          string
		expiresAt, redeemedAt time.Time
	)
	err := r.db.QueryRow(ctx, findCredentialByRedemptionIDSQL, redemptionID).
		Scan(&id, &token, &redID, &email, &expiresAt, &redeemedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("access credential not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find access credential", err)
	}

	em, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored credential has invalid email", err)
	}
	return redemption.ReconstructCredential(id, token, redID, em, expiresAt, redeemedAt), nil
}

func scanToken(row pgx.Row) (*redemption.Token, error) {
	var (
		id                   uuid.UUID
		code, email          string
		kind, resource       string
		expiresAt, createdAt time.Time
		used                 bool
		usedAt               pgtype.Timestamptz
	)
	if err := row.Scan(&id, &code, &email, &kind, &resource, &expiresAt, &used, &usedAt, &createdAt); err != nil {
		return nil, err
	}
	return toTokenDomain(id, code, email, kind, resource, expiresAt, used, usedAt, createdAt)
}

func toTokenDomain(id uuid.UUID, code, email, kind, resource string, expiresAt time.Time, used bool, usedAt pgtype.Timestamptz, createdAt time.Time) (*redemption.Token, error) {
	c, err := redemption.ParseCode(code)
	if err != nil {
		return nil, err
	}
	em, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	k, err := redemption.NewKind(kind)
	if err != nil {
		return nil, err
	}
	res, err := redemption.NewResource(resource)
	if err != nil {
		return nil, err
	}
	return redemption.Reconstruct(id, c, em, k, res, expiresAt, used, pgconv.TimePtrFromPgtype(usedAt), createdAt), nil
}
