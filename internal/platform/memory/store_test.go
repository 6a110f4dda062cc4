package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func mustUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, username+"@example.com", "hashed-password", domain.RoleUser)
	require.NoError(t, err)
	return user
}

func mustTask(t *testing.T, title string, due time.Time, creator uuid.UUID) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, "", due, "", creator)
	require.NoError(t, err)
	return task
}

func TestTaskScoping(t *testing.T) {
	ctx := context.Background()
	s := New()

	alice := uuid.New()
	bob := uuid.New()
	due := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

	task := mustTask(t, "alice task", due, alice)
	require.NoError(t, s.Create(ctx, task))

	t.Run("get_for_assignee", func(t *testing.T) {
		got, err := s.GetForUser(ctx, task.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("get_for_other_user_is_not_found", func(t *testing.T) {
		_, err := s.GetForUser(ctx, task.ID, bob)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("delete_for_other_user_is_not_found", func(t *testing.T) {
		err := s.DeleteForUser(ctx, task.ID, bob)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		// still there for the assignee
		_, err = s.GetForUser(ctx, task.ID, alice)
		assert.NoError(t, err)
	})

	t.Run("delete_for_assignee", func(t *testing.T) {
		require.NoError(t, s.DeleteForUser(ctx, task.ID, alice))
		_, err := s.GetByID(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestListForUserOrderingAndPagination(t *testing.T) {
	ctx := context.Background()
	s := New()

	alice := uuid.New()
	bob := uuid.New()
	base := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

	// 25 tasks for alice with descending insertion order but ascending
	// due dates, plus noise assigned to bob.
	for i := 24; i >= 0; i-- {
		task := mustTask(t, fmt.Sprintf("task-%02d", i), base.AddDate(0, 0, i), alice)
		require.NoError(t, s.Create(ctx, task))
	}
	for i := 0; i < 5; i++ {
		task := mustTask(t, fmt.Sprintf("noise-%d", i), base, bob)
		require.NoError(t, s.Create(ctx, task))
	}

	t.Run("orders_by_due_date_ascending", func(t *testing.T) {
		page, err := s.ListForUser(ctx, alice, store.ListParams{Page: 1, Limit: 100})
		require.NoError(t, err)
		require.Len(t, page.Tasks, 25)
		assert.Equal(t, 25, page.Total)
		for i := 1; i < len(page.Tasks); i++ {
			prev, cur := page.Tasks[i-1], page.Tasks[i]
			assert.False(t, cur.DueDate.Before(prev.DueDate),
				"task %q due before preceding task %q", cur.Title, prev.Title)
		}
	})

	t.Run("pages_are_disjoint_and_exhaustive", func(t *testing.T) {
		seen := make(map[uuid.UUID]bool)
		for page := 1; page <= 3; page++ {
			result, err := s.ListForUser(ctx, alice, store.ListParams{Page: page, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, 25, result.Total)
			for _, task := range result.Tasks {
				assert.False(t, seen[task.ID], "task %s returned twice", task.ID)
				seen[task.ID] = true
			}
		}
		assert.Len(t, seen, 25)
	})

	t.Run("last_partial_page", func(t *testing.T) {
		result, err := s.ListForUser(ctx, alice, store.ListParams{Page: 3, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, result.Tasks, 5)
	})

	t.Run("page_past_end_is_empty", func(t *testing.T) {
		result, err := s.ListForUser(ctx, alice, store.ListParams{Page: 9, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, result.Tasks)
		assert.Equal(t, 25, result.Total)
	})

	t.Run("only_assignees_tasks", func(t *testing.T) {
		result, err := s.ListForUser(ctx, bob, store.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 5, result.Total)
		for _, task := range result.Tasks {
			require.NotNil(t, task.AssignedTo)
			assert.Equal(t, bob, *task.AssignedTo)
		}
	})
}

func TestTaskUpdate(t *testing.T) {
	ctx := context.Background()
	s := New()

	alice := uuid.New()
	due := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	task := mustTask(t, "before", due, alice)
	require.NoError(t, s.Create(ctx, task))

	task.Title = "after"
	task.Status = domain.StatusDone
	require.NoError(t, s.Update(ctx, task))

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, domain.StatusDone, got.Status)

	t.Run("unknown_task", func(t *testing.T) {
		missing := mustTask(t, "ghost", due, alice)
		assert.ErrorIs(t, s.Update(ctx, missing), store.ErrTaskNotFound)
	})
}

func TestUserStoreView(t *testing.T) {
	ctx := context.Background()
	s := New()
	users := s.Users()

	alice := mustUser(t, "alice")
	require.NoError(t, users.Create(ctx, alice))

	t.Run("duplicate_email", func(t *testing.T) {
		dup, err := domain.NewUser("alice2", "alice@example.com", "hashed-password", domain.RoleUser)
		require.NoError(t, err)
		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("duplicate_username", func(t *testing.T) {
		dup, err := domain.NewUser("alice", "other@example.com", "hashed-password", domain.RoleUser)
		require.NoError(t, err)
		assert.ErrorIs(t, users.Create(ctx, dup), store.ErrUsernameExists)
	})

	t.Run("get_by_email", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = users.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("list_ordered_by_creation", func(t *testing.T) {
		bob := mustUser(t, "bob")
		bob.CreatedAt = alice.CreatedAt.Add(time.Second)
		require.NoError(t, users.Create(ctx, bob))

		all, err := users.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "alice", all[0].Username)
		assert.Equal(t, "bob", all[1].Username)
	})
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	ctx := context.Background()
	s := New()
	users := s.Users()

	alice := mustUser(t, "alice")
	bob := mustUser(t, "bob")
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	due := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Create(ctx, mustTask(t, fmt.Sprintf("a-%d", i), due, alice.ID)))
	}
	bobTask := mustTask(t, "b-0", due, bob.ID)
	require.NoError(t, s.Create(ctx, bobTask))

	require.NoError(t, users.Delete(ctx, alice.ID))

	_, err := users.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	alicePage, err := s.ListForUser(ctx, alice.ID, store.ListParams{})
	require.NoError(t, err)
	assert.Zero(t, alicePage.Total)

	// bob's task untouched
	_, err = s.GetByID(ctx, bobTask.ID)
	assert.NoError(t, err)

	t.Run("unknown_user", func(t *testing.T) {
		assert.ErrorIs(t, users.Delete(ctx, uuid.New()), store.ErrUserNotFound)
	})
}

func TestWithTxSharesState(t *testing.T) {
	ctx := context.Background()
	s := New()

	alice := uuid.New()
	due := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

	// the memory store has no transactions; WithTx hands back a view of
	// the same state
	task := mustTask(t, "tx view", due, alice)
	require.NoError(t, s.WithTx(nil).Create(ctx, task))

	_, err := s.GetByID(ctx, task.ID)
	assert.NoError(t, err)

	user := mustUser(t, "alice")
	require.NoError(t, s.Users().WithTx(nil).Create(ctx, user))

	_, err = s.Users().GetByID(ctx, user.ID)
	assert.NoError(t, err)
}

func TestCopiesAreDefensive(t *testing.T) {
	ctx := context.Background()
	s := New()

	alice := uuid.New()
	due := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	task := mustTask(t, "original", due, alice)
	require.NoError(t, s.Create(ctx, task))

	// Mutating the value we handed in must not affect the stored copy.
	task.Title = "mutated"

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)

	// Mutating a returned value must not affect the stored copy either.
	got.Title = "mutated again"
	again, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}
