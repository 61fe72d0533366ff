package queries

import (
	"context"
	"time"

	"coachdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)

type RedemptionReadStore interface {
	ListFirstPage(ctx context.Context, limit int32) ([]*RedemptionListItem, error)
	ListKeyset(ctx context.Context, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*RedemptionListItem, error)
}

type RedemptionQueries interface {
	List(ctx context.Context, cursor *Cursor, limit int) ([]*RedemptionListItem, *Cursor, error)
}

type redemptionQueriesImpl struct {
	repo RedemptionReadStore
}

func NewRedemptionQueries(repo RedemptionReadStore) RedemptionQueries {
	return &redemptionQueriesImpl{repo: repo}
}

// List pages through tokens newest first.
func (q *redemptionQueriesImpl) List(ctx context.Context, cursor *Cursor, limit int) ([]*RedemptionListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*RedemptionListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.ListFirstPage(ctx, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.ListKeyset(ctx, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
