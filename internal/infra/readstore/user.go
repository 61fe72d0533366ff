package readstore

import (
	"context"

	"coachdesk/internal/infra"
	"coachdesk/internal/infra/db"
	"coachdesk/internal/pkg/pgconv"
	"coachdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	findUserByIDSQL = `
SELECT id, email, role, is_active, last_login
FROM users
WHERE id = $1`

	findUserByEmailSQL = `
SELECT id, email, role, is_active, last_login, password_hash
FROM users
WHERE email = lower($1)`
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{
		db: dbtx,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		view      queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).
		Scan(&view.ID, &view.Email, &view.Role, &view.IsActive, &lastLogin)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	view.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		view         queries.AuthorizedUserView
		lastLogin    pgtype.Timestamptz
		passwordHash string
	)
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email).
		Scan(&view.ID, &view.Email, &view.Role, &view.IsActive, &lastLogin, &passwordHash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	view.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &view, passwordHash, nil
}

var _ queries.UserReadStore = (*UserReadStore)(nil)
