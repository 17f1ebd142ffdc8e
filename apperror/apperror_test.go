package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode_Mapping(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, NewAuthError("x", nil).StatusCode())
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("x", nil).StatusCode())
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x", nil).StatusCode())
	assert.Equal(t, http.StatusBadRequest, NewBadRequestError("x", nil).StatusCode())
	assert.Equal(t, http.StatusBadRequest, NewValidationError(nil).StatusCode())
	assert.Equal(t, http.StatusConflict, NewConflictError("x", nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, NewDatabaseError("x", nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("x", nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, NewAppError(UnknownError, "x", nil).StatusCode())
}

func TestError_IncludesWrappedCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("failed to get user", cause)

	assert.Equal(t, "failed to get user: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestToResponse_HidesCause(t *testing.T) {
	cause := errors.New("secret internals")
	resp := NewDatabaseError("failed to get user", cause).ToResponse()

	assert.Equal(t, "failed to get user", resp.Error)
	assert.Nil(t, resp.Fields)
}

func TestValidationError_CarriesFieldMessages(t *testing.T) {
	err := NewValidationError(map[string][]string{
		"score": {"ensure this value is less than or equal to 5"},
	})

	resp := err.ToResponse()
	require.Contains(t, resp.Fields, "score")
	assert.Equal(t, []string{"ensure this value is less than or equal to 5"}, resp.Fields["score"])
	assert.True(t, IsValidationError(err))
}

func TestFromError_WrappedAppError(t *testing.T) {
	inner := NewNotFoundError("Game not found", nil)
	wrapped := fmt.Errorf("handling request: %w", inner)

	appErr, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, NotFoundError, appErr.Type)
	assert.True(t, IsNotFound(wrapped))
}

func TestFromError_PlainError(t *testing.T) {
	_, ok := FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestTypeCheckers(t *testing.T) {
	assert.True(t, IsAuthError(NewAuthError("x", nil)))
	assert.False(t, IsAuthError(NewForbiddenError("x", nil)))
	assert.True(t, IsForbidden(NewForbiddenError("x", nil)))
	assert.True(t, IsConflictError(NewConflictError("x", nil)))
	assert.False(t, IsNotFound(errors.New("nope")))
}
