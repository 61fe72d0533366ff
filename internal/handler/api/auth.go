package api

import (
	"errors"
	"net/http"

	reqdto "coachdesk/internal/handler/dto/request"
	resdto "coachdesk/internal/handler/dto/response"
	"coachdesk/internal/handler/httperr"
	"coachdesk/internal/handler/middleware"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/pkg/cookie"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/pkg/jwt"
	"coachdesk/internal/usecase/commands"
	"coachdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errNotAuthenticated = errors.New("user not authenticated")

type AuthHandler struct {
	cmds       commands.AuthCommands
	q          queries.UserQueries
	jwtService *jwt.Service
	cookieCfg  config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:       cmds,
		q:          q,
		jwtService: jwtService,
		cookieCfg:  cfg.Cookie,
	}
}

// @Summary Admin login
// @Description Login with email and password. Tokens are also set as HttpOnly cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req)
	if err != nil {
		h.abortAuthError(c, err)
		return
	}

	view, err := h.q.GetCurrentUser(c.Request.Context(), result.UserID)
	if err != nil {
		h.abortAuthError(c, err)
		return
	}

	h.setCookies(c, result.TokenPair)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.TokenPair.AccessToken,
		User:        view,
	})
}

// @Summary Refresh tokens
// @Description Rotate the refresh token (cookie or body) for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest false "Refresh request"
// @Success 200 {object} resdto.RefreshResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req reqdto.RefreshRequest
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token = cookie.GetRefreshToken(c)
	}

	pair, err := h.cmds.RefreshToken(c.Request.Context(), token)
	if err != nil {
		h.abortAuthError(c, err)
		return
	}

	h.setCookies(c, pair)
	c.JSON(http.StatusOK, resdto.RefreshResponse{AccessToken: pair.AccessToken})
}

// @Summary Logout
// @Description Revoke the current access and refresh tokens and clear cookies
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	access := middleware.BearerOrCookieToken(c)
	refresh := cookie.GetRefreshToken(c)

	if err := h.cmds.Logout(c.Request.Context(), access, refresh); err != nil {
		httperr.Abort(c, err, nil)
		return
	}

	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Current admin
// @Description Get the authenticated user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNotAuthenticated, "User not authenticated", nil)
		return
	}

	view, err := h.q.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.abortAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) setCookies(c *gin.Context, pair *commands.TokenPair) {
	cookie.SetTokenCookies(c, h.cookieCfg, pair.AccessToken, pair.RefreshToken,
		h.jwtService.AccessTokenDuration(), h.jwtService.RefreshTokenDuration())
}

func (h *AuthHandler) abortAuthError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrInvalidCredentials),
		errs.Is(err, commands.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
	case errs.Is(err, commands.ErrAuthenticationFailed):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request data", nil)
	case errs.Is(err, commands.ErrUserInactive),
		errs.Is(err, queries.ErrUserInactive):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
	case errs.Is(err, queries.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
	case errs.Is(err, commands.ErrTokenValidation),
		errs.Is(err, commands.ErrTokenRevoked):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired refresh token", nil)
	default:
		httperr.Abort(c, err, nil)
	}
}
