package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/palabras/internal/errors"
)

func TestAppError_Error(t *testing.T) {
	err := errors.NewValidationError("score", "must be between 0 and 100")
	assert.Equal(t, "VALIDATION_ERROR: validation failed for score: must be between 0 and 100", err.Error())
	assert.Equal(t, 400, err.Status)

	cause := stderrors.New("disk full")
	internal := errors.NewInternalError(cause)
	assert.Contains(t, internal.Error(), "disk full")
	assert.ErrorIs(t, internal, cause)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("record: %w", errors.NewConflictError(nil))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
	assert.Equal(t, 409, appErr.Status)

	_, ok = errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestNewRateLimitError(t *testing.T) {
	err := errors.NewRateLimitError()
	assert.Equal(t, errors.ErrCodeRateLimit, err.Code)
	assert.Equal(t, 429, err.Status)
}
