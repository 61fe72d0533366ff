package usecase

import (
	"context"
	"errors"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/pkg/jwt"
	"coachdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrTokenRevoked = errors.New("token revoked")

// Principal is the authenticated back-office user behind a request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	revoker    shared.TokenRevoker
}

func NewTokenValidator(jwtService *jwt.Service, revoker shared.TokenRevoker) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		revoker:    revoker,
	}
}

// ValidateToken fails closed: a revocation lookup error rejects the token.
func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (*Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString, jwt.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	revoked, err := t.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrUpstream)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, err
	}

	return &Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
