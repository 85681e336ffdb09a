package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/internal/domain"
)

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.com", "ana.maria+trip@mail.example.org"}
	invalid := []string{"", "a@b", "@b.com", "a b@c.com", "a@b .com", "plain"}

	for _, s := range valid {
		assert.True(t, domain.IsEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, domain.IsEmail(s), s)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", domain.NormalizeEmail("  A@B.com\n"))
}

func TestIsURL(t *testing.T) {
	assert.True(t, domain.IsURL("https://airbnb.example/rooms/1"))
	assert.True(t, domain.IsURL("http://localhost:3333"))
	assert.False(t, domain.IsURL("airbnb.example"))
	assert.False(t, domain.IsURL("mailto:a@b.com"))
	assert.False(t, domain.IsURL("https://"))
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", domain.Invalid("email", "is invalid"))

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrRemote)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email is invalid", verr.Error())
}

func TestRemoteError(t *testing.T) {
	err := &domain.RemoteError{Op: "get trip", Err: fmt.Errorf("GET /trips/x: %w", domain.ErrNotFound)}

	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "get trip: GET /trips/x: not found", err.Error())
	assert.False(t, errors.Is(err, domain.ErrValidation))
}
