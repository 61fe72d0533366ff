//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/pkg/jwt"
	"coachdesk/internal/usecase"
	sharedmock "coachdesk/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, time.Hour)
	userID := uuid.New()
	access, err := svc.GenerateAccessToken(userID, "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(userID, "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)

	t.Run("live access token yields the principal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		revoker := sharedmock.NewMockTokenRevoker(ctrl)
		revoker.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(false, nil)

		p, err := usecase.NewTokenValidator(svc, revoker).ValidateToken(context.Background(), access)

		require.NoError(t, err)
		assert.Equal(t, &usecase.Principal{UserID: userID, Email: "admin@example.com", Role: user.RoleAdmin}, p)
	})

	t.Run("revoked token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		revoker := sharedmock.NewMockTokenRevoker(ctrl)
		revoker.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := usecase.NewTokenValidator(svc, revoker).ValidateToken(context.Background(), access)
		assert.ErrorIs(t, err, usecase.ErrTokenRevoked)
	})

	t.Run("revocation outage rejects the token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		revoker := sharedmock.NewMockTokenRevoker(ctrl)
		revoker.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

		p, err := usecase.NewTokenValidator(svc, revoker).ValidateToken(context.Background(), access)
		assert.Nil(t, p)
		assert.True(t, errs.Is(err, errs.ErrUpstream))
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		revoker := sharedmock.NewMockTokenRevoker(ctrl)

		_, err := usecase.NewTokenValidator(svc, revoker).ValidateToken(context.Background(), refresh)
		assert.ErrorIs(t, err, jwt.ErrWrongTokenType)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		other, err := jwt.NewService("other-secret", time.Minute, time.Hour).GenerateAccessToken(userID, "admin@example.com", user.RoleAdmin)
		require.NoError(t, err)

		_, err = usecase.NewTokenValidator(svc, sharedmock.NewMockTokenRevoker(ctrl)).ValidateToken(context.Background(), other)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
