//go:build unit

package errs_test

import (
	"fmt"
	"testing"

	"coachdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIs_SeesMarks(t *testing.T) {
	base := errs.New("calendar down")
	marked := errs.Mark(base, errs.ErrUpstream)
	wrapped := fmt.Errorf("availability: %w", marked)

	assert.True(t, errs.Is(marked, errs.ErrUpstream))
	assert.True(t, errs.Is(wrapped, errs.ErrUpstream))
	assert.True(t, errs.Is(wrapped, base))
	assert.False(t, errs.Is(wrapped, errs.ErrValidation))
}

func TestMark_NilReturnsMarker(t *testing.T) {
	assert.Equal(t, errs.ErrValidation, errs.Mark(nil, errs.ErrValidation))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
}

func TestProductNotFound_ReportsAsNotFound(t *testing.T) {
	wrapped := errs.Wrap(errs.ErrProductNotFound, "stat object")

	assert.True(t, errs.Is(wrapped, errs.ErrProductNotFound))
	assert.True(t, errs.Is(wrapped, errs.ErrTokenNotFound))
}
