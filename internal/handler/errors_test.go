package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/tripform"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.Invalid("email", "is invalid"), http.StatusUnprocessableEntity, "validation_error"},
		{"wrapped validation", fmt.Errorf("service.X: %w", domain.Invalid("url", "is invalid")), http.StatusUnprocessableEntity, "validation_error"},
		{"remote not found", &domain.RemoteError{Op: "get trip", Err: domain.ErrNotFound}, http.StatusNotFound, "not_found"},
		{"remote", &domain.RemoteError{Op: "create trip", Err: errors.New("503")}, http.StatusBadGateway, "remote_error"},
		{"in flight", fmt.Errorf("update trip: %w", domain.ErrInFlight), http.StatusConflict, "in_flight"},
		{"unexpected step", fmt.Errorf("%w: Next in step submitted", tripform.ErrUnexpectedEvent), http.StatusConflict, "unexpected_step"},
		{"invariant", fmt.Errorf("%w: empty trip id", domain.ErrInvariant), http.StatusBadRequest, "invariant"},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, "request_too_large"},
		{"other", errors.New("disk full"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, detail := classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, detail.Code)
		})
	}
}

func TestClassify_validationCarriesField(t *testing.T) {
	_, detail := classify(domain.Invalid("name", "is required"))

	assert.Equal(t, "name", detail.Field)
	assert.Equal(t, "name is required", detail.Message)
}

func TestClassify_internalHidesCause(t *testing.T) {
	_, detail := classify(errors.New("password=hunter2"))

	assert.Equal(t, "internal server error", detail.Message)
}
