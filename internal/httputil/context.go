package httputil

import (
	"context"
	"net/http"

	"docintake/internal/auth"
)

// Context key type to avoid collisions
type contextKey string

const (
	actorKey contextKey = "actor"
)

// WithActor adds the authenticated caller to the request context
func WithActor(r *http.Request, actor *auth.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), actorKey, actor)
	return r.WithContext(ctx)
}

// GetActor retrieves the caller from context, returns nil if not found
func GetActor(r *http.Request) *auth.Actor {
	actor, _ := r.Context().Value(actorKey).(*auth.Actor)
	return actor
}
