package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docintake/internal/auth"
	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

func TestReviewFile(t *testing.T) {
	tests := []struct {
		name     string
		actor    *auth.Actor
		body     string
		err      error
		wantCode int
	}{
		{"no actor", nil, `{"decision":"approve"}`, nil, http.StatusUnauthorized},
		{"client forbidden", client, `{"decision":"approve"}`, nil, http.StatusForbidden},
		{"bad body", reviewer, `{`, nil, http.StatusBadRequest},
		{"locked", reviewer, `{"decision":"reject","reason":"blurry"}`, domain.NewLocked("EXP-1"), http.StatusLocked},
		{"approved", reviewer, `{"decision":"approve"}`, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := &fakeWorkspace{err: tt.err}
			h := NewFileHandler(ws, testLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/files/EXP-1/review", strings.NewReader(tt.body))
			rec := serve("POST /api/files/{id}/review", h.ReviewFile, req, tt.actor)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			if ws.review.FileID != "EXP-1" || ws.review.Actor != "reviewer@example.com" {
				t.Errorf("request = %+v", ws.review)
			}
			if ws.review.Decision != docsysSvc.DecisionApprove {
				t.Errorf("Decision = %q", ws.review.Decision)
			}
			body := decodeBody(t, rec)
			if body["revision"] != float64(2) {
				t.Errorf("revision = %v", body["revision"])
			}
			if _, ok := body["warnings"]; !ok {
				t.Error("warnings dropped from response")
			}
		})
	}
}

func TestSearchFiles(t *testing.T) {
	ws := &fakeWorkspace{}
	h := NewFileHandler(ws, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/files?q=taxi&status=Approved,Rejected&ext=pdf&category=bank-statements&include_deleted=true", nil)
	rec := serve("GET /api/files", h.SearchFiles, req, client)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %s, want empty array", rec.Body.String())
	}
	opts := ws.search
	if opts.Query != "taxi" || len(opts.Statuses) != 2 || opts.Category != models.CategoryBankStatements || !opts.IncludeDeleted {
		t.Errorf("options = %+v", opts)
	}

	ws.err = &domain.ValidationError{Message: "bad date"}
	rec = serve("GET /api/files", h.SearchFiles, httptest.NewRequest(http.MethodGet, "/api/files?from=nope", nil), client)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
