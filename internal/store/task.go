package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Pagination defaults and caps for task listing.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams carries pagination parameters for task listing.
type ListParams struct {
	Page  int
	Limit int
}

// Normalize clamps the parameters to sane values: page defaults to 1,
// limit defaults to 10 and is capped at MaxLimit.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized page/limit pair.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TaskPage is one page of tasks plus the total number of matching rows,
// from which handlers derive the page count.
type TaskPage struct {
	Tasks []*domain.Task
	Total int
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if a referenced user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of assignee.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetForUser retrieves a task by ID, scoped to tasks assigned to the
	// given user. Returns ErrTaskNotFound if the task does not exist or
	// is assigned to someone else.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// ListForUser returns one page of the tasks assigned to the given
	// user, ordered ascending by due date, plus the total match count.
	ListForUser(ctx context.Context, userID uuid.UUID, params ListParams) (*TaskPage, error)

	// Update persists all mutable fields of the task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteForUser removes a task by ID, scoped to tasks assigned to
	// the given user. Returns ErrTaskNotFound if the task does not
	// exist or is assigned to someone else.
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error

	// DeleteByAssignee removes every task assigned to the given user.
	// Used when a user is deleted. Deleting zero tasks is not an error.
	DeleteByAssignee(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
