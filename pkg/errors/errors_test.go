package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneMatchesTemplate(t *testing.T) {
	err := Clone(ErrInvalidState, "Hours are not pending approval")
	require.Equal(t, "Hours are not pending approval", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "invalid state transition", ErrInvalidState.Message)
}

func TestFromErrorHidesDependencyDetails(t *testing.T) {
	appErr := FromError(fmt.Errorf("select profiles: %w", sql.ErrConnDone))
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.True(t, errors.Is(appErr, sql.ErrConnDone))
}

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", ErrForbidden)
	assert.Same(t, ErrForbidden, FromError(wrapped))
	assert.Nil(t, FromError(nil))
}
