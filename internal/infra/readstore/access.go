package readstore

import (
	"context"

	"coachdesk/internal/infra"
	"coachdesk/internal/infra/db"
	"coachdesk/internal/pkg/pgconv"
	"coachdesk/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

const findAccessByTokenSQL = `
SELECT c.id, c.redemption_id, c.email, t.kind, t.resource, c.expires_at, c.redeemed_at
FROM access_credentials c
JOIN redemption_tokens t ON t.id = c.redemption_id
WHERE c.token = $1`

type AccessReadStore struct {
	db db.DBTX
}

func NewAccessReadStore(dbtx db.DBTX) *AccessReadStore {
	return &AccessReadStore{db: dbtx}
}

func (r *AccessReadStore) FindByToken(ctx context.Context, token string) (*queries.AccessView, error) {
	var (
		view       queries.AccessView
		redeemedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findAccessByTokenSQL, token).Scan(
		&view.CredentialID,
		&view.RedemptionID,
		&view.Email,
		&view.Kind,
		&view.Resource,
		&view.ExpiresAt,
		&redeemedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("access credential not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find access credential", err)
	}

	view.RedeemedAt = pgconv.TimePtrFromPgtype(redeemedAt)
	return &view, nil
}

var _ queries.AccessReadStore = (*AccessReadStore)(nil)
