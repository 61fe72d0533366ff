package commands

import (
	"context"
	"log/slog"

	"coachdesk/internal/domain/user"
	reqdto "coachdesk/internal/handler/dto/request"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/pkg/jwt"
	"coachdesk/internal/pkg/password"
	"coachdesk/internal/usecase/queries"
	"coachdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
	ErrTokenRevoked         = errs.New("token revoked")
)

type LoginResult struct {
	UserID    uuid.UUID
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout revokes whichever of the two tokens still verify.
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	revoker    shared.TokenRevoker
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service, revoker shared.TokenRevoker, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		revoker:    revoker,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	userView, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	tokenPair, err := a.issuePair(userView)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, userView.ID, a.clock.Now())
	})
	if err != nil {
		// Login already succeeded; only the audit timestamp is lost.
		slog.Warn("failed to update last login", "user_id", userView.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:    userView.ID,
		TokenPair: tokenPair,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrTokenValidation
	}

	claims, err := a.jwtService.ValidateToken(refreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	revoked, err := a.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrUpstream)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	// Validate user still exists and is active
	userView, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil || userView == nil {
		return nil, ErrUserNotFound
	}

	if !userView.IsActive {
		return nil, ErrUserInactive
	}

	pair, err := a.issuePair(userView)
	if err != nil {
		return nil, err
	}

	// Rotation: the presented refresh token is single use.
	if err := a.revoker.Revoke(ctx, claims.ID, claims.RemainingAt(a.clock.Now())); err != nil {
		return nil, errs.Mark(err, errs.ErrUpstream)
	}

	return pair, nil
}

func (a *authCommandsImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	now := a.clock.Now()
	targets := []struct {
		token string
		typ   jwt.TokenType
	}{
		{accessToken, jwt.TokenTypeAccess},
		{refreshToken, jwt.TokenTypeRefresh},
	}

	for _, t := range targets {
		if t.token == "" {
			continue
		}
		claims, err := a.jwtService.ValidateToken(t.token, t.typ)
		if err != nil {
			// Expired or foreign tokens need no revocation.
			continue
		}
		if err := a.revoker.Revoke(ctx, claims.ID, claims.RemainingAt(now)); err != nil {
			return errs.Mark(err, errs.ErrUpstream)
		}
	}
	return nil
}

func (a *authCommandsImpl) issuePair(userView *queries.AuthorizedUserView) (*TokenPair, error) {
	role, err := user.NewRole(userView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	accessToken, err := a.jwtService.GenerateAccessToken(userView.ID, userView.Email, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userView.ID, userView.Email, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	userView, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Return same error as password mismatch to prevent user enumeration attacks
		return nil, ErrInvalidCredentials
	}

	if userView == nil {
		return nil, ErrUserNotFound
	}

	if !userView.IsActive {
		return nil, ErrUserInactive
	}

	err = password.ComparePassword(hashedPassword, credentials.Password().Value())
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return userView, nil
}
