package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docintake/internal/auth"
)

func TestPurgeFolder_AdminOnly(t *testing.T) {
	tests := []struct {
		name     string
		actor    *auth.Actor
		wantCode int
	}{
		{"client", client, http.StatusForbidden},
		{"reviewer", reviewer, http.StatusForbidden},
		{"admin", admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := &fakeWorkspace{}
			h := NewFolderHandler(ws, testLogger())
			req := httptest.NewRequest(http.MethodDelete, "/api/folders/fld-1/purge", nil)
			rec := serve("DELETE /api/folders/{id}/purge", h.PurgeFolder, req, tt.actor)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK && (ws.purged == nil || ws.purged.FolderID != "fld-1" || ws.purged.Actor != "a1") {
				t.Errorf("purge request = %+v", ws.purged)
			}
		})
	}
}

func TestRenameFolder(t *testing.T) {
	ws := &fakeWorkspace{}
	h := NewFolderHandler(ws, testLogger())
	req := httptest.NewRequest(http.MethodPatch, "/api/folders/fld-1", strings.NewReader(`{"name":"Q2"}`))
	rec := serve("PATCH /api/folders/{id}", h.RenameFolder, req, client)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ws.renamed.FolderID != "fld-1" || ws.renamed.Actor != "client@example.com" {
		t.Errorf("request = %+v", ws.renamed)
	}
}

func TestGetFolder_NotFound(t *testing.T) {
	h := NewFolderHandler(&fakeWorkspace{}, testLogger())
	rec := serve("GET /api/folders/{id}", h.GetFolder, httptest.NewRequest(http.MethodGet, "/api/folders/missing", nil), client)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListFolders_UnknownCategory(t *testing.T) {
	h := NewFolderHandler(&fakeWorkspace{}, testLogger())
	rec := serve("GET /api/folders", h.ListFolders, httptest.NewRequest(http.MethodGet, "/api/folders?category=payroll", nil), client)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
