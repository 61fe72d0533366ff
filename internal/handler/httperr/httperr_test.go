//go:build unit

package httperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coachdesk/internal/handler/httperr"
	"coachdesk/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", errs.Mark(errs.New("bad date"), errs.ErrValidation), http.StatusBadRequest},
		{"token not found", errs.ErrTokenNotFound, http.StatusNotFound},
		{"token expired", fmt.Errorf("redeem: %w", errs.ErrTokenExpired), http.StatusGone},
		{"credential expired", errs.ErrCredentialExpired, http.StatusGone},
		{"credential invalid", errs.ErrCredentialInvalid, http.StatusUnauthorized},
		{"wrong kind", errs.ErrWrongKind, http.StatusForbidden},
		{"slot unavailable", errs.Mark(errs.New("already booked"), errs.ErrSlotUnavailable), http.StatusConflict},
		{"upstream", errs.Mark(errors.New("dial tcp"), errs.ErrUpstream), http.StatusServiceUnavailable},
		{"database", errs.ErrDatabaseOperationFailed, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := httperr.Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	httperr.Abort(c, errs.ErrTokenExpired, gin.H{"code": "EXPIRED"})

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"Code has expired"},"detail":{"code":"EXPIRED"}}`, rec.Body.String())
	assert.Len(t, c.Errors, 1)
}
