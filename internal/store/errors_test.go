package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Run("entity_specific_errors_match_generic", func(t *testing.T) {
		assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
		assert.ErrorIs(t, ErrTaskNotFound, ErrNotFound)
		assert.ErrorIs(t, ErrEmailExists, ErrDuplicate)
		assert.ErrorIs(t, ErrUsernameExists, ErrDuplicate)
	})

	t.Run("is_not_found", func(t *testing.T) {
		assert.True(t, IsNotFoundError(ErrNotFound))
		assert.True(t, IsNotFoundError(ErrTaskNotFound))
		assert.True(t, IsNotFoundError(fmt.Errorf("get task: %w", ErrTaskNotFound)))
		assert.False(t, IsNotFoundError(ErrDuplicate))
		assert.False(t, IsNotFoundError(errors.New("other")))
		assert.False(t, IsNotFoundError(nil))
	})

	t.Run("is_duplicate", func(t *testing.T) {
		assert.True(t, IsDuplicateError(ErrDuplicate))
		assert.True(t, IsDuplicateError(fmt.Errorf("create user: %w", ErrEmailExists)))
		assert.False(t, IsDuplicateError(ErrNotFound))
		assert.False(t, IsDuplicateError(nil))
	})
}
