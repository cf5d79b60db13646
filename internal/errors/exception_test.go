package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Task not found", apperrors.ErrTaskNotFound, http.StatusNotFound},
		{"Invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"Inactive account", apperrors.ErrInactiveAccount, http.StatusBadRequest},
		{"Authentication failed", apperrors.ErrAuthenticationFailed, http.StatusUnauthorized},
		{"Wrapped validation", fmt.Errorf("%w: title is required", apperrors.ErrValidation), http.StatusUnprocessableEntity},
		{"Invalid pagination", apperrors.ErrInvalidPagination, http.StatusUnprocessableEntity},
		{"Too many requests", apperrors.ErrTooManyRequests, http.StatusTooManyRequests},
		{"Unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, apperrors.StatusCode(tc.err))
		})
	}
}

func TestMessageHidesInternalCause(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "internal server error", apperrors.Message(errors.New("pq: relation \"tasks\" does not exist")))
	assert.Equal(t, "validation error: title is required",
		apperrors.Message(fmt.Errorf("%w: title is required", apperrors.ErrValidation)))
	assert.True(t, apperrors.IsInternal(errors.New("boom")))
	assert.False(t, apperrors.IsInternal(apperrors.ErrTaskNotFound))
}

func TestMessageDropsDetailOfServerErrors(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: dial tcp 10.0.0.3:5432: connection refused", apperrors.ErrDatabaseUnreachable)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.StatusCode(err))
	assert.Equal(t, "database unreachable", apperrors.Message(err))
}
