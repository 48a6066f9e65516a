package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"docintake/internal/auth"
	"docintake/internal/httputil"
)

// publicPaths skip authentication.
var publicPaths = map[string]bool{
	"/health": true,
}

// AuthMiddleware verifies the Bearer token and stores the caller in the
// request context. Requests without a valid token get a 401.
func AuthMiddleware(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			actor, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithActor(r, actor))
		})
	}
}

// DevAuthMiddleware attaches a fixed actor to every request. Only used
// when no JWKS endpoint is configured.
func DevAuthMiddleware(actor auth.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := actor
			next.ServeHTTP(w, httputil.WithActor(r, &a))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
