//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/handler/middleware"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/pkg/cookie"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase"
	"coachdesk/tests/common/httptest"
	usecasemock "coachdesk/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newAuthRouter(t *testing.T, validator usecase.TokenValidator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	cfg.Admin.AllowedEmails = []string{"admin@example.com"}
	mw := middleware.NewAuthMiddleware(validator, cfg)

	r := gin.New()
	r.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String()})
	})
	r.GET("/admin", mw.RequireAuth(), mw.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/admin-misconfigured", mw.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	principal := &usecase.Principal{UserID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}

	t.Run("bearer token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		v := usecasemock.NewMockTokenValidator(ctrl)
		v.EXPECT().ValidateToken(gomock.Any(), "tok").Return(principal, nil)

		rec := httptest.PerformRequest(t, newAuthRouter(t, v), http.MethodGet, "/me", nil, "tok")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), principal.UserID.String())
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		v := usecasemock.NewMockTokenValidator(ctrl)
		v.EXPECT().ValidateToken(gomock.Any(), "from-cookie").Return(principal, nil)

		rec := httptest.PerformRequestWithCookies(t, newAuthRouter(t, v), http.MethodGet, "/me", nil,
			[]*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: "from-cookie"}}, "from-header")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rec := httptest.PerformRequest(t, newAuthRouter(t, usecasemock.NewMockTokenValidator(ctrl)), http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("rejected token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		v := usecasemock.NewMockTokenValidator(ctrl)
		v.EXPECT().ValidateToken(gomock.Any(), gomock.Any()).Return(nil, errors.New("revoked"))

		rec := httptest.PerformRequest(t, newAuthRouter(t, v), http.MethodGet, "/me", nil, "tok")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("revocation store unreachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		v := usecasemock.NewMockTokenValidator(ctrl)
		v.EXPECT().ValidateToken(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("dial tcp: connection refused"), errs.ErrUpstream))

		rec := httptest.PerformRequest(t, newAuthRouter(t, v), http.MethodGet, "/admin", nil, "tok")
		httptest.AssertErrorResponse(t, rec, http.StatusServiceUnavailable, "Upstream service unavailable")
	})
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name      string
		principal *usecase.Principal
		want      int
	}{
		{"admin on the allow-list", &usecase.Principal{UserID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}, http.StatusNoContent},
		{"allow-list match ignores case", &usecase.Principal{UserID: uuid.New(), Email: "Admin@Example.com", Role: user.RoleAdmin}, http.StatusNoContent},
		{"admin role but not allow-listed", &usecase.Principal{UserID: uuid.New(), Email: "other@example.com", Role: user.RoleAdmin}, http.StatusForbidden},
		{"allow-listed viewer", &usecase.Principal{UserID: uuid.New(), Email: "admin@example.com", Role: user.RoleViewer}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			v := usecasemock.NewMockTokenValidator(ctrl)
			v.EXPECT().ValidateToken(gomock.Any(), gomock.Any()).Return(tc.principal, nil)

			rec := httptest.PerformRequest(t, newAuthRouter(t, v), http.MethodGet, "/admin", nil, "tok")
			assert.Equal(t, tc.want, rec.Code)
		})
	}

	t.Run("without RequireAuth", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rec := httptest.PerformRequest(t, newAuthRouter(t, usecasemock.NewMockTokenValidator(ctrl)), http.MethodGet, "/admin-misconfigured", nil, "tok")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireAccessToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", middleware.RequireAccessToken(), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetAccessToken(c))
	})

	rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/x", nil, map[string]string{middleware.AccessTokenHeader: "  abc  "})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", rec.Body.String())

	rec = httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/x", nil, map[string]string{middleware.AccessTokenHeader: "   "})
	httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
}
