package middleware

import (
	"errors"
	"net/http"
	"strings"

	"coachdesk/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenHeader = "X-Access-Token"
	ctxAccessTokenKey = "access_credential"
)

var errMissingAccessToken = errors.New("access credential required")

// RequireAccessToken extracts the redeemed access credential. Verification
// happens in the usecase so expiry and kind map to their own statuses.
func RequireAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(AccessTokenHeader))
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingAccessToken, "Access token required", nil)
			return
		}
		c.Set(ctxAccessTokenKey, token)
		c.Next()
	}
}

func GetAccessToken(c *gin.Context) string {
	if v, ok := c.Get(ctxAccessTokenKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
