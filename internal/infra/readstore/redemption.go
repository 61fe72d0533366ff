package readstore

import (
	"context"
	"time"

	"coachdesk/internal/infra"
	"coachdesk/internal/infra/db"
	"coachdesk/internal/pkg/pgconv"
	"coachdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listRedemptionColumns = `
SELECT t.id, t.code, t.email, t.kind, t.resource, t.expires_at, t.used, t.used_at, c.expires_at, t.created_at
FROM redemption_tokens t
LEFT JOIN access_credentials c ON c.redemption_id = t.id`

const (
	listRedemptionsFirstPageSQL = listRedemptionColumns + `
ORDER BY t.created_at DESC, t.id DESC
LIMIT $1`

	listRedemptionsKeysetSQL = listRedemptionColumns + `
WHERE (t.created_at, t.id) < ($1, $2)
ORDER BY t.created_at DESC, t.id DESC
LIMIT $3`
)

type RedemptionReadStore struct {
	db db.DBTX
}

func NewRedemptionReadStore(dbtx db.DBTX) *RedemptionReadStore {
	return &RedemptionReadStore{db: dbtx}
}

func (r *RedemptionReadStore) ListFirstPage(ctx context.Context, limit int32) ([]*queries.RedemptionListItem, error) {
	rows, err := r.db.Query(ctx, listRedemptionsFirstPageSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list redemption tokens", err)
	}
	return collectRedemptionItems(rows)
}

func (r *RedemptionReadStore) ListKeyset(ctx context.Context, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RedemptionListItem, error) {
	rows, err := r.db.Query(ctx, listRedemptionsKeysetSQL, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list redemption tokens", err)
	}
	return collectRedemptionItems(rows)
}

func collectRedemptionItems(rows pgx.Rows) ([]*queries.RedemptionListItem, error) {
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.RedemptionListItem, error) {
		var (
			item           queries.RedemptionListItem
			usedAt, credAt pgtype.Timestamptz
		)
		if err := row.Scan(
			&item.ID,
			&item.Code,
			&item.Email,
			&item.Kind,
			&item.Resource,
			&item.ExpiresAt,
			&item.Used,
			&usedAt,
			&credAt,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.UsedAt = pgconv.TimePtrFromPgtype(usedAt)
		item.CredentialExpiresAt = pgconv.TimePtrFromPgtype(credAt)
		return &item, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan redemption tokens", err)
	}
	return items, nil
}

var _ queries.RedemptionReadStore = (*RedemptionReadStore)(nil)
