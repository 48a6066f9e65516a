package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	models "docintake/internal/domain/models/docsystem"
	"docintake/internal/domain/repositories"
)

type fakeAuditRepo struct {
	err       error
	lastLimit int
}

func (f *fakeAuditRepo) ListActivity(_ context.Context, _ string, limit int) ([]repositories.ActivityRecord, error) {
	f.lastLimit = limit
	return nil, f.err
}

func (f *fakeAuditRepo) ListUploads(_ context.Context, _ string, limit int) ([]models.UploadHistoryRow, error) {
	f.lastLimit = limit
	return nil, f.err
}

func TestAuditHandler(t *testing.T) {
	repo := &fakeAuditRepo{}
	h := NewAuditHandler("ws-test", repo, repo, testLogger())

	rec := serve("GET /api/activity", h.ListActivity, httptest.NewRequest(http.MethodGet, "/api/activity", nil), client)
	if rec.Code != http.StatusForbidden {
		t.Errorf("client status = %d, want 403", rec.Code)
	}

	rec = serve("GET /api/activity", h.ListActivity, httptest.NewRequest(http.MethodGet, "/api/activity?limit=20", nil), reviewer)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("reviewer status = %d body = %s", rec.Code, rec.Body.String())
	}
	if repo.lastLimit != 20 {
		t.Errorf("limit = %d, want 20", repo.lastLimit)
	}

	rec = serve("GET /api/uploads", h.ListUploads, httptest.NewRequest(http.MethodGet, "/api/uploads", nil), client)
	if rec.Code != http.StatusOK || repo.lastLimit != defaultListLimit {
		t.Errorf("uploads status = %d limit = %d", rec.Code, repo.lastLimit)
	}

	repo.err = errors.New("db down")
	rec = serve("GET /api/uploads", h.ListUploads, httptest.NewRequest(http.MethodGet, "/api/uploads", nil), client)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("failing repo status = %d, want 500", rec.Code)
	}
}
