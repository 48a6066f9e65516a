package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"docintake/internal/auth"
	"docintake/internal/domain"
	"docintake/internal/httputil"
)

const defaultListLimit = 100

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var lockedErr *domain.LockedError
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &lockedErr):
		httputil.RespondErrorWithExtras(w, http.StatusLocked, lockedErr.Error(), map[string]interface{}{
			"file_id": lockedErr.FileID,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireActor returns the caller or writes a 401.
func requireActor(w http.ResponseWriter, r *http.Request) (*auth.Actor, bool) {
	actor := httputil.GetActor(r)
	if actor == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	return actor, true
}

// requireReviewer returns the caller when it may review, or writes a 401/403.
func requireReviewer(w http.ResponseWriter, r *http.Request) (*auth.Actor, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return nil, false
	}
	if !actor.CanReview() {
		handleError(w, &domain.ForbiddenError{Message: "reviewer role required"})
		return nil, false
	}
	return actor, true
}

// requireAdmin returns the caller when it has the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.Actor, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return nil, false
	}
	if !actor.IsAdmin() {
		handleError(w, &domain.ForbiddenError{Message: "admin role required"})
		return nil, false
	}
	return actor, true
}

// pathID reads a required path parameter, writing a 400 if it is empty.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" ID is required")
		return "", false
	}
	return id, true
}

// queryBool parses a boolean query parameter; anything unparsable is false.
func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

// queryList reads a comma-separated or repeated query parameter.
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// queryLimit parses ?limit=, clamped to [1, 1000].
func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return defaultListLimit
	}
	if n > 1000 {
		return 1000
	}
	return n
}
