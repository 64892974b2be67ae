package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("domain error passes through wrapping", func(t *testing.T) {
		original := NewConflict("email already registered", nil)
		got := ToDomainError(fmt.Errorf("register: %w", original))
		require.NotNil(t, got)
		assert.Equal(t, "CONFLICT", got.Code)
		assert.Equal(t, http.StatusConflict, got.HTTPStatus)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		got := ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
		assert.Equal(t, "NOT_FOUND", got.Code)
		assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
	})

	t.Run("fiber error keeps its status", func(t *testing.T) {
		got := ToDomainError(fiber.NewError(http.StatusMethodNotAllowed, "nope"))
		assert.Equal(t, "METHOD_NOT_ALLOWED", got.Code)
		assert.Equal(t, "nope", got.Message)
		assert.Equal(t, http.StatusMethodNotAllowed, got.HTTPStatus)
	})

	t.Run("unknown error is internal and hides the cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		got := ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", got.Code)
		assert.Equal(t, "internal server error", got.Message)
		assert.ErrorIs(t, got, cause)
	})
}

func TestNewInvalidCredentials(t *testing.T) {
	got := ToDomainError(NewInvalidCredentials())
	assert.Equal(t, "INVALID_CREDENTIALS", got.Code)
	assert.Equal(t, http.StatusUnauthorized, got.HTTPStatus)
}
