// Package memory provides concurrency-safe in-process implementations
// of the store interfaces. It backs the handler tests and the
// no-database development mode; nothing survives a restart.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Store holds tasks and users behind a single lock so the user-delete
// cascade is atomic, mirroring the transactional behavior of the
// postgres stores.
type Store struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.Task
	users map[uuid.UUID]*domain.User
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		tasks: make(map[uuid.UUID]*domain.Task),
		users: make(map[uuid.UUID]*domain.User),
	}
}

// Ensure the store and its user view implement the store interfaces
var (
	_ store.TaskStore = (*Store)(nil)
	_ store.UserStore = userView{}
)

// WithTx implements store.TaskStore.WithTx. The memory store has no
// transactions; every operation is already atomic under the lock.
func (s *Store) WithTx(tx *sql.Tx) store.TaskStore {
	return s
}

// Create implements store.TaskStore.Create
func (s *Store) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return store.ErrDuplicate
	}
	s.tasks[task.ID] = copyTask(task)
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(task), nil
}

// GetForUser implements store.TaskStore.GetForUser
func (s *Store) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok || !assignedTo(task, userID) {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(task), nil
}

// ListForUser implements store.TaskStore.ListForUser
func (s *Store) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	params store.ListParams,
) (*store.TaskPage, error) {
	params = params.Normalize()

	s.mu.RLock()
	matching := make([]*domain.Task, 0)
	for _, task := range s.tasks {
		if assignedTo(task, userID) {
			matching = append(matching, copyTask(task))
		}
	}
	s.mu.RUnlock()

	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].DueDate.Equal(matching[j].DueDate) {
			return matching[i].DueDate.Before(matching[j].DueDate)
		}
		return matching[i].CreatedAt.Before(matching[j].CreatedAt)
	})

	total := len(matching)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	return &store.TaskPage{Tasks: matching[start:end], Total: total}, nil
}

// Update implements store.TaskStore.Update
func (s *Store) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	s.tasks[task.ID] = copyTask(task)
	return nil
}

// DeleteForUser implements store.TaskStore.DeleteForUser
func (s *Store) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || !assignedTo(task, userID) {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// DeleteByAssignee implements store.TaskStore.DeleteByAssignee
func (s *Store) DeleteByAssignee(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteByAssigneeLocked(userID)
	return nil
}

func (s *Store) deleteByAssigneeLocked(userID uuid.UUID) {
	for id, task := range s.tasks {
		if assignedTo(task, userID) {
			delete(s.tasks, id)
		}
	}
}

// CreateUser implements store.UserStore.Create via the users view.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}

	s.users[user.ID] = copyUser(user)
	return nil
}

// GetUserByID implements store.UserStore.GetByID via the users view.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return copyUser(user), nil
}

// GetUserByEmail implements store.UserStore.GetByEmail via the users view.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// ListUsers implements store.UserStore.List via the users view.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, copyUser(user))
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// DeleteUser implements store.UserStore.Delete via the users view.
// The cascade to assigned tasks happens under the same lock.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}

	s.deleteByAssigneeLocked(id)
	delete(s.users, id)
	return nil
}

// Users returns a store.UserStore view of this store. The Store cannot
// implement both interfaces directly because Create/GetByID/Delete
// differ only by entity, so the user methods are bridged through a thin
// adapter.
func (s *Store) Users() store.UserStore {
	return userView{s}
}

type userView struct{ s *Store }

func (v userView) Create(ctx context.Context, user *domain.User) error {
	return v.s.CreateUser(ctx, user)
}

func (v userView) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return v.s.GetUserByID(ctx, id)
}

func (v userView) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return v.s.GetUserByEmail(ctx, email)
}

func (v userView) List(ctx context.Context) ([]*domain.User, error) {
	return v.s.ListUsers(ctx)
}

func (v userView) Delete(ctx context.Context, id uuid.UUID) error {
	return v.s.DeleteUser(ctx, id)
}

func (v userView) WithTx(tx *sql.Tx) store.UserStore {
	return v
}

func assignedTo(task *domain.Task, userID uuid.UUID) bool {
	return task.AssignedTo != nil && *task.AssignedTo == userID
}

// copyTask returns a defensive copy so callers can never mutate the
// store's state outside the lock.
func copyTask(task *domain.Task) *domain.Task {
	c := *task
	if task.AssignedTo != nil {
		id := *task.AssignedTo
		c.AssignedTo = &id
	}
	return &c
}

func copyUser(user *domain.User) *domain.User {
	c := *user
	return &c
}
