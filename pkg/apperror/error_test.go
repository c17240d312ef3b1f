package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, Conflict("dup").Code)
	assert.Equal(t, http.StatusNotFound, NotFound("nope").Code)
	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("slow down").Code)
	assert.Equal(t, http.StatusBadGateway, BadGateway("upstream", nil).Code)

	var appErr *AppError
	wrapped := errors.Join(errors.New("ctx"), BadRequest("bad"))
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "bad", appErr.Message)
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", Unauthorized("Invalid credentials"))
	assert.True(t, HasCode(wrapped, http.StatusUnauthorized))
	assert.False(t, HasCode(wrapped, http.StatusForbidden))
	assert.False(t, HasCode(errors.New("plain"), http.StatusUnauthorized))
	assert.Equal(t, http.StatusServiceUnavailable, Unavailable("down", nil).Code)
}
