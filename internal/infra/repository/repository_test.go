//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// db.DBTX implementation backed by testify/mock
type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

// fakeRow copies values into Scan destinations in order.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *pgtype.Timestamptz:
			*p = r.values[i].(pgtype.Timestamptz)
		}
	}
	return nil
}

func TestRedemptionRepository_ClaimUnused(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	code, err := redemption.ParseCode("ABCD-EFGH-JKMN")
	require.NoError(t, err)

	t.Run("claimed row is returned as used token", func(t *testing.T) {
		id := uuid.New()
		dbtx := new(MockDBTX)
		dbtx.On("QueryRow", mock.Anything, claimUnusedTokenSQL, []interface{}{code.String(), now}).
			Return(fakeRow{values: []any{
				id, code.String(), "client@example.com", "download", "ebook.pdf",
				now.Add(time.Hour), true, pgtype.Timestamptz{Time: now, Valid: true}, now.Add(-time.Hour),
			}})

		tok, err := NewRedemptionRepository(dbtx).ClaimUnused(context.Background(), code, now)

		require.NoError(t, err)
		assert.Equal(t, id, tok.ID())
		assert.True(t, tok.IsUsed())
		require.NotNil(t, tok.UsedAt())
		assert.Equal(t, now, *tok.UsedAt())
		assert.Equal(t, redemption.KindDownload, tok.Kind())
		dbtx.AssertExpectations(t)
	})

	t.Run("no row maps to not found", func(t *testing.T) {
		dbtx := new(MockDBTX)
		dbtx.On("QueryRow", mock.Anything, claimUnusedTokenSQL, mock.Anything).
			Return(fakeRow{err: pgx.ErrNoRows})

		_, err := NewRedemptionRepository(dbtx).ClaimUnused(context.Background(), code, now)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("driver failure maps to db failure", func(t *testing.T) {
		dbtx := new(MockDBTX)
		dbtx.On("QueryRow", mock.Anything, claimUnusedTokenSQL, mock.Anything).
			Return(fakeRow{err: assert.AnError})

		_, err := NewRedemptionRepository(dbtx).ClaimUnused(context.Background(), code, now)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestRedemptionRepository_Create(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	code, _ := redemption.GenerateCode()
	email, _ := user.NewEmail("client@example.com")
	res, _ := redemption.NewResource("ebook.pdf")
	tok, err := redemption.Issue(code, email, redemption.KindDownload, res, time.Hour, now)
	require.NoError(t, err)

	tests := []struct {
		name     string
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "unique violation", execErr: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "database error", execErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, insertTokenSQL, mock.Anything).
				Return(pgconn.NewCommandTag("INSERT 0 1"), tt.execErr)

			err := NewRedemptionRepository(dbtx).Create(context.Background(), tok)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			dbtx.AssertExpectations(t)
		})
	}
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()
	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		tag      string
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", tag: "UPDATE 1"},
		{name: "unknown user", tag: "UPDATE 0", wantKind: infra.KindNotFound},
		{name: "database error", tag: "", execErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, updateUserLastLoginSQL, []interface{}{testUserID, at}).
				Return(pgconn.NewCommandTag(tt.tag), tt.execErr)

			err := NewUserRepository(dbtx).UpdateLastLogin(context.Background(), testUserID, at)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			dbtx.AssertExpectations(t)
		})
	}
}
