//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/pkg/jwt"
	"coachdesk/internal/pkg/password"
	"coachdesk/internal/usecase/commands"
	"coachdesk/internal/usecase/queries"
	"coachdesk/internal/usecase/shared"
	"coachdesk/tests/common/builder"
	queriesmock "coachdesk/tests/mock/queries"
	sharedmock "coachdesk/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	users     *sharedmock.MockUserRepository
	readStore *queriesmock.MockUserReadStore
	revoker   *sharedmock.MockTokenRevoker
	jwt       *jwt.Service
	cmds      commands.AuthCommands

	hash string
	view *queries.AuthorizedUserView
}

func (s *AuthCommandsTestSuite) SetupSuite() {
	hash, err := password.HashPassword("password123")
	s.Require().NoError(err)
	s.hash = hash
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.users = sharedmock.NewMockUserRepository(s.ctrl)
	s.readStore = queriesmock.NewMockUserReadStore(s.ctrl)
	s.revoker = sharedmock.NewMockTokenRevoker(s.ctrl)
	s.jwt = jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	s.view = builder.NewUserBuilder().BuildReadModel()

	s.tx.EXPECT().Users().Return(s.users).AnyTimes()

	s.cmds = commands.NewAuthCommands(s.uow, s.readStore, s.jwt, s.revoker, clock.NewMockClock(time.Now()))
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) expectWithin() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		})
}

func (s *AuthCommandsTestSuite) TestLogin() {
	req := builder.NewAuthBuilder().BuildDTO()

	s.Run("success: issues an access and refresh pair", func() {
		s.readStore.EXPECT().FindByEmail(gomock.Any(), "test@example.com").Return(s.view, s.hash, nil)
		s.expectWithin()
		s.users.EXPECT().UpdateLastLogin(gomock.Any(), s.view.ID, gomock.Any()).Return(nil)

		res, err := s.cmds.Login(context.Background(), req)

		s.Require().NoError(err)
		s.Equal(s.view.ID, res.UserID)
		access, err := s.jwt.ValidateToken(res.TokenPair.AccessToken, jwt.TokenTypeAccess)
		s.Require().NoError(err)
		s.Equal(s.view.Email, access.Email)
		s.Equal("admin", access.Role)
		_, err = s.jwt.ValidateToken(res.TokenPair.RefreshToken, jwt.TokenTypeRefresh)
		s.NoError(err)
	})

	s.Run("success: last-login failure does not block sign-in", func() {
		s.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(s.view, s.hash, nil)
		s.expectWithin()
		s.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		res, err := s.cmds.Login(context.Background(), req)
		s.Require().NoError(err)
		s.NotEmpty(res.TokenPair.AccessToken)
	})

	s.Run("error: unknown email looks like a bad password", func() {
		s.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).
			Return(nil, "", infra.WrapRepoErr("user", nil, infra.KindNotFound))

		_, err := s.cmds.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: wrong password", func() {
		s.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(s.view, s.hash, nil)

		wrong := builder.NewAuthBuilder().BuildDTO()
		wrong.Password = "wrong-password"
		_, err := s.cmds.Login(context.Background(), wrong)
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: inactive user", func() {
		inactive := builder.NewUserBuilder().AsInactive().BuildReadModel()
		s.readStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(inactive, s.hash, nil)

		_, err := s.cmds.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("error: malformed credentials", func() {
		bad := builder.NewAuthBuilder().BuildDTO()
		bad.Email = "nope"
		_, err := s.cmds.Login(context.Background(), bad)
		s.True(errs.Is(err, commands.ErrAuthenticationFailed))
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	newRefresh := func() string {
		tok, err := s.jwt.GenerateRefreshToken(s.view.ID, s.view.Email, user.RoleAdmin)
		s.Require().NoError(err)
		return tok
	}

	s.Run("success: rotates the pair and revokes the old refresh token", func() {
		old := newRefresh()
		claims, err := s.jwt.ValidateToken(old, jwt.TokenTypeRefresh)
		s.Require().NoError(err)

		s.revoker.EXPECT().IsRevoked(gomock.Any(), claims.ID).Return(false, nil)
		s.readStore.EXPECT().FindByID(gomock.Any(), s.view.ID).Return(s.view, nil)
		s.revoker.EXPECT().Revoke(gomock.Any(), claims.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
				s.Positive(ttl)
				return nil
			})

		pair, err := s.cmds.RefreshToken(context.Background(), old)

		s.Require().NoError(err)
		s.NotEqual(old, pair.RefreshToken)
		next, err := s.jwt.ValidateToken(pair.RefreshToken, jwt.TokenTypeRefresh)
		s.Require().NoError(err)
		s.NotEqual(claims.ID, next.ID)
	})

	s.Run("error: revoked refresh token", func() {
		s.revoker.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := s.cmds.RefreshToken(context.Background(), newRefresh())
		s.ErrorIs(err, commands.ErrTokenRevoked)
	})

	s.Run("error: revocation store outage", func() {
		s.revoker.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

		_, err := s.cmds.RefreshToken(context.Background(), newRefresh())
		s.True(errs.Is(err, errs.ErrUpstream))
	})

	s.Run("error: access token presented as refresh token", func() {
		access, err := s.jwt.GenerateAccessToken(s.view.ID, s.view.Email, user.RoleAdmin)
		s.Require().NoError(err)

		_, err = s.cmds.RefreshToken(context.Background(), access)
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("error: empty token", func() {
		_, err := s.cmds.RefreshToken(context.Background(), "")
		s.ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("error: user deactivated since login", func() {
		s.revoker.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(false, nil)
		s.readStore.EXPECT().FindByID(gomock.Any(), s.view.ID).
			Return(builder.NewUserBuilder().AsInactive().BuildReadModel(), nil)

		_, err := s.cmds.RefreshToken(context.Background(), newRefresh())
		s.ErrorIs(err, commands.ErrUserInactive)
	})
}

func (s *AuthCommandsTestSuite) TestLogout() {
	s.Run("success: revokes both tokens", func() {
		access, err := s.jwt.GenerateAccessToken(s.view.ID, s.view.Email, user.RoleAdmin)
		s.Require().NoError(err)
		refresh, err := s.jwt.GenerateRefreshToken(s.view.ID, s.view.Email, user.RoleAdmin)
		s.Require().NoError(err)

		s.revoker.EXPECT().Revoke(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		s.NoError(s.cmds.Logout(context.Background(), access, refresh))
	})

	s.Run("success: unverifiable tokens are skipped", func() {
		s.NoError(s.cmds.Logout(context.Background(), "garbage", ""))
	})

	s.Run("error: revocation store outage", func() {
		access, err := s.jwt.GenerateAccessToken(s.view.ID, s.view.Email, user.RoleAdmin)
		s.Require().NoError(err)
		s.revoker.EXPECT().Revoke(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		err = s.cmds.Logout(context.Background(), access, "")
		s.True(errs.Is(err, errs.ErrUpstream))
	})
}
