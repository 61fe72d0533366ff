package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/handler/httperr"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/pkg/cookie"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errMissingToken = errors.New("access token required")
	errInvalidToken = errors.New("invalid or expired token")
	errNotAdmin     = errors.New("admin access required")
	errNoPrincipal  = errors.New("RequireAdmin used without RequireAuth")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	admin          config.AdminConfig
}

const ctxPrincipalKey = "principal"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		admin:          cfg.Admin,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerOrCookie(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		principal, err := m.tokenValidator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			// Revocation store down: fail closed with 503, not 401.
			if errs.Is(err, errs.ErrUpstream) {
				slog.Error("token revocation check unavailable", "error", err.Error())
				httperr.Abort(c, err, nil)
				return
			}
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidToken, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. Role alone is not enough: the
// email must also be on the configured allow-list.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal, "Internal server error", nil)
			return
		}

		if principal.Role != user.RoleAdmin || !m.admin.IsAllowed(principal.Email) {
			slog.Warn("admin access denied", "user_id", principal.UserID, "role", principal.Role)
			httperr.AbortWithError(c, http.StatusForbidden, errNotAdmin, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func bearerOrCookie(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// BearerOrCookieToken returns the admin access token presented with the request.
func BearerOrCookieToken(c *gin.Context) string {
	return bearerOrCookie(c)
}

func GetPrincipal(c *gin.Context) (*usecase.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*usecase.Principal)
	return p, ok && p != nil
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return uuid.Nil, false
	}
	return p.UserID, true
}
