package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	creator := uuid.New()
	dueDate := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)

	t.Run("applies_defaults", func(t *testing.T) {
		task, err := NewTask("write report", "", dueDate, "", creator)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, PriorityMedium, task.Priority)
		assert.Equal(t, StatusPending, task.Status)
		assert.Equal(t, creator, task.CreatedBy)
		require.NotNil(t, task.AssignedTo)
		assert.Equal(t, creator, *task.AssignedTo)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("keeps_explicit_priority", func(t *testing.T) {
		task, err := NewTask("urgent thing", "", dueDate, PriorityHigh, creator)
		require.NoError(t, err)
		assert.Equal(t, PriorityHigh, task.Priority)
	})

	t.Run("unique_ids", func(t *testing.T) {
		a, err := NewTask("one", "", dueDate, "", creator)
		require.NoError(t, err)
		b, err := NewTask("two", "", dueDate, "", creator)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestTaskValidate(t *testing.T) {
	creator := uuid.New()
	dueDate := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)

	valid := func() *Task {
		task, err := NewTask("ok", "desc", dueDate, PriorityLow, creator)
		require.NoError(t, err)
		return task
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{"empty_title", func(task *Task) { task.Title = "" }, ErrEmptyTaskTitle},
		{"zero_due_date", func(task *Task) { task.DueDate = time.Time{} }, ErrEmptyDueDate},
		{"bad_priority", func(task *Task) { task.Priority = "urgent" }, ErrInvalidPriority},
		{"bad_status", func(task *Task) { task.Status = "closed" }, ErrInvalidStatus},
		{"nil_creator", func(task *Task) { task.CreatedBy = uuid.Nil }, ErrEmptyCreatedBy},
		{"nil_id", func(task *Task) { task.ID = uuid.Nil }, ErrEmptyTaskID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := valid()
			tc.mutate(task)
			err := task.Validate()
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPriorityAndStatusEnums(t *testing.T) {
	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityMedium.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("critical").IsValid())

	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.True(t, StatusDone.IsValid())
	assert.False(t, Status("").IsValid())
}
