package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UserHandler handles the admin-only user-management HTTP requests.
// The router guards every route here with RequireAdmin.
type UserHandler struct {
	userStore      store.UserStore
	taskStore      store.TaskStore
	passwordHasher auth.PasswordHasher
	logger         *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userStore store.UserStore,
	taskStore store.TaskStore,
	passwordHasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userStore:      userStore,
		taskStore:      taskStore,
		passwordHasher: passwordHasher,
		logger:         logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /api/users requests.
// The password verifier is excluded from every projection.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list users", err)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, userToResponse(user))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Create handles POST /api/users requests.
// Duplicate email or username yields 400, matching the contract of this
// endpoint rather than the 409 the self-service register uses.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, hashed, domain.Role(req.Role))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data")
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if store.IsDuplicateError(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "User already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	log.Info("user created by admin",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// Delete handles DELETE /api/users/{id} requests.
// Admins cannot delete themselves. Deletion cascades to every task
// assigned to the deleted user.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	caller, ok := shared.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if userID == caller.ID {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Cannot delete yourself")
		return
	}

	if err := h.userStore.Delete(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("user deleted",
		slog.String("user_id", userID.String()),
		slog.String("deleted_by", caller.ID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// AssignTask handles PUT /api/users/{id}/assign-task requests.
// It reassigns an existing task to the target user.
func (h *UserHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req AssignTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	assignee := user.ID
	task.AssignedTo = &assignee
	task.UpdatedAt = time.Now().UTC()

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("task assigned",
		slog.String("task_id", task.ID.String()),
		slog.String("assigned_to", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Task assigned successfully",
	})
}

// parseUserID extracts and parses the user ID from the URL path.
// On failure it writes the error response and returns false.
func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}
