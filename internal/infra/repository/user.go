package repository

import (
	"context"
	"time"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra"
	"coachdesk/internal/infra/db"

	"github.com/google/uuid"
)

const (
	upsertUserSQL = `
INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (email) DO UPDATE
SET password_hash = EXCLUDED.password_hash,
    role = EXCLUDED.role,
    is_active = EXCLUDED.is_active,
    updated_at = EXCLUDED.updated_at`

	updateUserLastLoginSQL = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{
		db: dbtx,
	}
}

func (r *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, upsertUserSQL,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
		u.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert user", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, updateUserLastLoginSQL, userID, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
