// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/userdir-api/internal/api/shared"
	"github.com/phrazzld/userdir-api/internal/domain"
	"github.com/phrazzld/userdir-api/internal/platform/logger"
	"github.com/phrazzld/userdir-api/internal/store"
)

// Listing defaults applied when page/limit are absent, unparsable, or
// not positive.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userStore store.UserStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userStore store.UserStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userStore: userStore,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /api/users requests.
// Supports free-text search over name and email, and offset pagination.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page := queryPositiveInt(r, "page", defaultPage)
	limit := queryPositiveInt(r, "limit", defaultLimit)
	search := r.URL.Query().Get("search")

	filter := store.ListFilter{
		Search: search,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	users, err := h.userStore.List(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list users", err)
		return
	}

	// Total count of matching users, ignoring pagination, to derive the
	// page count.
	total, err := h.userStore.Count(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list users", err)
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	log.Debug("listed users",
		slog.Int("page", page),
		slog.Int("limit", limit),
		slog.Int("count", len(users)),
		slog.Int64("total", total))

	shared.RespondWithJSON(w, r, http.StatusOK, UserListResponse{
		Users:       usersToResponse(users),
		TotalPages:  totalPages,
		CurrentPage: page,
	})
}

// GetUser handles GET /api/users/{id} requests.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathUserID(w, r, log)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, msgUserNotFound)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserEnvelope{User: userToResponse(user)})
}

// CreateUser handles POST /api/user/create requests.
// The create rule set runs first; a duplicate email is rejected by a
// pre-check, and a concurrent duplicate slipping past it is caught by the
// database uniqueness constraint and reported the same way.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequestFormat)
		return
	}

	req, violations, err := ValidateCreateUser(h.validator, body)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequestFormat)
		return
	}
	if len(violations) > 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, strings.Join(violations, ", "))
		return
	}

	_, err = h.userStore.GetByEmail(r.Context(), req.Email)
	if err == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgEmailAlreadyExists)
		return
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	user, err := domain.NewUser(req.Name, req.Email)
	if err != nil {
		// The rule set already vetted these fields; a failure here means
		// the rules and the domain disagree on email syntax.
		log.Warn("user construction failed after validation",
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, msgEmailRequired)
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if store.IsDuplicateError(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, msgEmailAlreadyExists)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateProfile handles PUT /api/users/{id} requests.
// Only fields on the update allow-list may be submitted.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathUserID(w, r, log)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequestFormat)
		return
	}

	update, violations, err := ValidateUpdateProfile(body)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequestFormat)
		return
	}
	if len(violations) > 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, strings.Join(violations, ", "))
		return
	}

	user, err := h.userStore.Update(r.Context(), id, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("user profile updated", slog.String("user_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, UserEnvelope{User: userToResponse(user)})
}

// DeleteUser handles DELETE /api/users/{id} requests.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathUserID(w, r, log)
	if !ok {
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, msgUserNotFound)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to delete user", err)
		return
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: msgUserDeleted})
}

// DeleteUsers handles POST /api/users/delete requests.
// Deletion is best-effort per id: a failed delete is logged and skipped,
// and the response reports how many users were actually removed.
func (h *UserHandler) DeleteUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DeleteUsersRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidUserIDs)
		return
	}

	ids, invalid, ok := parseUserIDs(req.UserIDs)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidUserIDs)
		return
	}
	if len(invalid) > 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf(msgInvalidUserIDsFmt, strings.Join(invalid, ", ")))
		return
	}

	deleted := 0
	for _, id := range ids {
		if err := h.userStore.Delete(r.Context(), id); err != nil {
			log.Warn("failed to delete user in bulk operation",
				slog.String("user_id", id.String()),
				slog.String("error", err.Error()))
			continue
		}
		deleted++
	}

	if deleted == 0 {
		shared.RespondWithError(w, r, http.StatusNotFound, msgNoUsersFoundToDelete)
		return
	}

	log.Info("bulk delete completed",
		slog.Int("requested", len(ids)),
		slog.Int("deleted", deleted))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf(msgUsersDeletedFmt, deleted),
	})
}

// pathUserID extracts and parses the {id} path parameter, writing a 400
// response when it is missing or malformed.
func (h *UserHandler) pathUserID(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("user ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid user ID format", slog.String("user_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidUserIDFormat)
		return uuid.Nil, false
	}

	return id, true
}

// parseUserIDs validates the raw userIds value from a bulk delete request.
// ok is false when the value is missing, not an array, or empty. Elements
// that are not well-formed UUIDs are collected in invalid, in request order,
// and reported without performing any deletion.
func parseUserIDs(raw json.RawMessage) (ids []uuid.UUID, invalid []string, ok bool) {
	if len(raw) == 0 {
		return nil, nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, nil, false
	}
	if len(elems) == 0 {
		return nil, nil, false
	}

	for _, elem := range elems {
		var s string
		if err := json.Unmarshal(elem, &s); err != nil {
			// Non-string element: report its literal JSON text.
			invalid = append(invalid, strings.TrimSpace(string(elem)))
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}
		ids = append(ids, id)
	}

	return ids, invalid, true
}

// queryPositiveInt parses a positive integer query parameter, falling back
// to def when the value is absent, unparsable, or not positive.
func queryPositiveInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
