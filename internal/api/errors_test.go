package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// shouldFailValidation runs the request validator and requires failure.
func shouldFailValidation(t *testing.T, v any) error {
	t.Helper()
	err := shared.Validate.Struct(v)
	require.Error(t, err)
	return err
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid_token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired_token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid_refresh", auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"wrong_token_type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"not_found", store.ErrNotFound, http.StatusNotFound},
		{"task_not_found", store.ErrTaskNotFound, http.StatusNotFound},
		{"user_not_found", store.ErrUserNotFound, http.StatusNotFound},
		{"wrapped_not_found", fmt.Errorf("lookup: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"email_exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid_entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"empty_due_date", domain.ErrEmptyDueDate, http.StatusBadRequest},
		{"invalid_priority", domain.ErrInvalidPriority, http.StatusBadRequest},
		{"wrapped_validation", fmt.Errorf("update: %w", domain.ErrEmptyTaskTitle), http.StatusBadRequest},
		{"unknown", errors.New("disk full"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"task_not_found", store.ErrTaskNotFound, "Task not found"},
		{"user_not_found", store.ErrUserNotFound, "User not found"},
		{"email_exists", store.ErrEmailExists, "Email already exists"},
		{"username_exists", store.ErrUsernameExists, "Username already exists"},
		{"invalid_token", auth.ErrInvalidToken, "Invalid token"},
		{"invalid_refresh", auth.ErrInvalidRefreshToken, "Invalid refresh token"},
		{"domain_validation", domain.ErrEmptyDueDate, "Invalid task data"},
		{"internal_details_hidden", errors.New("pq: connection refused host=10.0.0.1"),
			"An unexpected error occurred"},
		{"nil", nil, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Run("extracts_field_and_tag", func(t *testing.T) {
		err := shouldFailValidation(t, LoginRequest{Password: "x"})
		assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))
	})

	t.Run("email_tag", func(t *testing.T) {
		err := shouldFailValidation(t, LoginRequest{Email: "nope", Password: "x"})
		assert.Equal(t, "Invalid Email: invalid email format", SanitizeValidationError(err))
	})

	t.Run("oneof_tag", func(t *testing.T) {
		err := shouldFailValidation(t, CreateUserRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password123",
			Role:     "superadmin",
		})
		assert.Equal(t, "Invalid Role: invalid value", SanitizeValidationError(err))
	})

	t.Run("non_validation_error", func(t *testing.T) {
		assert.Equal(t, "Validation error",
			SanitizeValidationError(errors.New("something else")))
	})
}
