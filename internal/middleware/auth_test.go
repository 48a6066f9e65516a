package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"docintake/internal/auth"
	"docintake/internal/httputil"
)

type fakeVerifier struct {
	tokens map[string]*auth.Actor
}

func (f *fakeVerifier) VerifyToken(token string) (*auth.Actor, error) {
	if a, ok := f.tokens[token]; ok {
		return a, nil
	}
	return nil, errors.New("bad token")
}

func (f *fakeVerifier) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// echoActor writes the caller's name, or "anonymous".
var echoActor = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if a := httputil.GetActor(r); a != nil {
		io.WriteString(w, a.Name())
		return
	}
	io.WriteString(w, "anonymous")
})

func TestAuthMiddleware(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*auth.Actor{
		"good": {ID: "u1", Email: "r@example.com", Role: auth.RoleReviewer},
	}}
	h := AuthMiddleware(verifier, testLogger())(echoActor)

	tests := []struct {
		name     string
		method   string
		path     string
		header   string
		wantCode int
		wantBody string
	}{
		{"health is public", http.MethodGet, "/health", "", http.StatusOK, "anonymous"},
		{"preflight passes", http.MethodOptions, "/api/folders", "", http.StatusOK, "anonymous"},
		{"missing header", http.MethodGet, "/api/folders", "", http.StatusUnauthorized, ""},
		{"wrong scheme", http.MethodGet, "/api/folders", "Basic abc", http.StatusUnauthorized, ""},
		{"empty token", http.MethodGet, "/api/folders", "Bearer  ", http.StatusUnauthorized, ""},
		{"rejected token", http.MethodGet, "/api/folders", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid token", http.MethodGet, "/api/folders", "bearer good", http.StatusOK, "r@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestDevAuthMiddleware(t *testing.T) {
	h := DevAuthMiddleware(auth.Actor{ID: "dev@localhost", Role: auth.RoleAdmin})(echoActor)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/folders", nil))
	if rec.Body.String() != "dev@localhost" {
		t.Errorf("body = %q, want dev actor", rec.Body.String())
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/folders", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
