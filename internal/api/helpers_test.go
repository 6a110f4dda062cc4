package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/memory"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires the handlers against the in-memory store, mirroring the
// production dependency graph.
type testEnv struct {
	mem         *memory.Store
	users       store.UserStore
	jwtService  auth.JWTService
	hasher      *auth.BcryptVerifier
	authHandler *AuthHandler
	taskHandler *TaskHandler
	userHandler *UserHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := memory.New()
	users := mem.Users()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-thats-32-characters!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	// MinCost keeps the hashing in tests fast.
	hasher := auth.NewBcryptVerifier(bcrypt.MinCost)

	return &testEnv{
		mem:         mem,
		users:       users,
		jwtService:  jwtService,
		hasher:      hasher,
		authHandler: NewAuthHandler(users, jwtService, hasher, hasher),
		taskHandler: NewTaskHandler(mem, discardLogger()),
		userHandler: NewUserHandler(users, mem, hasher, discardLogger()),
	}
}

// router builds the route tree the way cmd/server does, with the given
// user injected into the request context in place of JWT validation.
// The admin guard is the real middleware so role enforcement is part of
// what these tests exercise.
func (e *testEnv) router(user *domain.User) http.Handler {
	authMiddleware := middleware.NewAuthMiddleware(e.jwtService, e.users)

	inject := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(shared.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", e.authHandler.Register)
			r.Post("/login", e.authHandler.Login)
			r.Post("/refresh", e.authHandler.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(inject)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", e.taskHandler.List)
				r.Post("/", e.taskHandler.Create)
				r.Get("/{id}", e.taskHandler.Get)
				r.Put("/{id}", e.taskHandler.Update)
				r.Delete("/{id}", e.taskHandler.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", e.userHandler.List)
					r.Post("/", e.userHandler.Create)
					r.Delete("/{id}", e.userHandler.Delete)
					r.Put("/{id}/assign-task", e.userHandler.AssignTask)
				})
			})
		})
	})
	return r
}

// seedUser creates a user directly in the store with the password
// "password123".
func (e *testEnv) seedUser(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()

	hashed, err := e.hasher.Hash("password123")
	require.NoError(t, err)

	user, err := domain.NewUser(username, username+"@example.com", hashed, role)
	require.NoError(t, err)
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

// seedTask creates a task directly in the store, created by and assigned
// to the given user.
func (e *testEnv) seedTask(
	t *testing.T,
	title string,
	due time.Time,
	assignee uuid.UUID,
) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(title, "", due, "", assignee)
	require.NoError(t, err)
	require.NoError(t, e.mem.Create(context.Background(), task))
	return task
}

// doRequest performs a request against the handler and decodes the JSON
// response into target when one is given.
func doRequest(
	t *testing.T,
	handler http.Handler,
	method, path string,
	body any,
	target any,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if target != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
	}
	return rec
}

// errorBody decodes the {"error": ...} envelope.
func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}
