package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{"not found", NewNotFound("file", "EXP-1"), ErrNotFound, http.StatusNotFound},
		{"validation", &ValidationError{Message: "bad"}, ErrValidation, http.StatusBadRequest},
		{"locked", NewLocked("EXP-1"), ErrLocked, http.StatusLocked},
		{"invalid state", &InvalidStateError{Message: "archived"}, ErrInvalidState, http.StatusConflict},
		{"unauthorized", &UnauthorizedError{Message: "no token"}, ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", &ForbiddenError{Message: "reviewers only"}, ErrForbidden, http.StatusForbidden},
		{"conflict", &ConflictError{Message: "stale", ResourceType: "workspace"}, ErrConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("op: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			var httpErr HTTPError
			if !errors.As(wrapped, &httpErr) {
				t.Fatal("errors.As HTTPError failed")
			}
			if httpErr.StatusCode() != tt.status {
				t.Errorf("StatusCode() = %d, want %d", httpErr.StatusCode(), tt.status)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	nf := NewNotFound("folder", "abc")
	if nf.Error() != "folder abc not found" || nf.ResourceID != "abc" {
		t.Errorf("NewNotFound = %+v", nf)
	}
	l := NewLocked("EXP-1")
	if l.FileID != "EXP-1" || l.Error() != "file EXP-1 is locked" {
		t.Errorf("NewLocked = %+v", l)
	}
	if errors.Is(l, ErrNotFound) {
		t.Error("locked error matches ErrNotFound")
	}
}
