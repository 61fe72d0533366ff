package httperr

import (
	"net/http"

	"coachdesk/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps err to a status and public message by its category.
func Abort(c *gin.Context, err error, detail any) {
	status, msg := Classify(err)
	AbortWithError(c, status, err, msg, detail)
}

var categories = []struct {
	target error
	status int
	msg    string
}{
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request"},
	{errs.ErrTokenExpired, http.StatusGone, "Code has expired"},
	{errs.ErrTokenNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrCredentialExpired, http.StatusGone, "Access has expired"},
	{errs.ErrCredentialInvalid, http.StatusUnauthorized, "Invalid access token"},
	{errs.ErrWrongKind, http.StatusForbidden, "Access token does not grant this"},
	{errs.ErrSlotUnavailable, http.StatusConflict, "Slot is no longer available"},
	{errs.ErrUpstream, http.StatusServiceUnavailable, "Upstream service unavailable"},
}

// Classify returns the HTTP status and message for err. Unknown errors are 500.
func Classify(err error) (int, string) {
	for _, c := range categories {
		if errs.Is(err, c.target) {
			return c.status, c.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}
