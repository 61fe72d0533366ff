//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const TestPassword = "password123"

var (
	hashOnce     sync.Once
	testPassHash string
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	hashOnce.Do(func() {
		h, err := password.HashPassword(TestPassword)
		require.NoError(t, err)
		testPassHash = h
	})

	userID := uuid.New()
	ctx := context.Background()
	err := db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, lower($2), $3, $4, true)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id`,
		userID, email, testPassHash, role).Scan(&userID)
	require.NoError(t, err)

	return userID
}

type TokenFixture struct {
	Code      string
	Email     string
	Kind      string
	Resource  string
	ExpiresAt time.Time
}

// InsertToken stores an unused redemption token and returns its id. The code
// is stored in canonical form, the same way Issue stores it.
func InsertToken(t *testing.T, db DBLike, f TokenFixture) uuid.UUID {
	t.Helper()

	code, err := redemption.ParseCode(f.Code)
	require.NoError(t, err)

	id := uuid.New()
	_, err = db.Exec(context.Background(), `
		INSERT INTO redemption_tokens (id, code, email, kind, resource, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, now())`,
		id, code.String(), f.Email, f.Kind, f.Resource, f.ExpiresAt)
	require.NoError(t, err)
	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
