package handler

import (
	"log/slog"
	"net/http"

	models "docintake/internal/domain/models/docsystem"
	"docintake/internal/domain/repositories"
	"docintake/internal/httputil"
)

// AuditHandler lists the activity and upload-history rows recorded by the sinks
type AuditHandler struct {
	workspaceID string
	activity    repositories.ActivityRepository
	uploads     repositories.UploadHistoryRepository
	logger      *slog.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(workspaceID string, activity repositories.ActivityRepository, uploads repositories.UploadHistoryRepository, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		workspaceID: workspaceID,
		activity:    activity,
		uploads:     uploads,
		logger:      logger,
	}
}

// ListActivity returns the most recent audit pairs. Reviewer only.
// GET /api/activity?limit=100
func (h *AuditHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireReviewer(w, r); !ok {
		return
	}

	records, err := h.activity.ListActivity(r.Context(), h.workspaceID, queryLimit(r))
	if err != nil {
		h.logger.Error("list activity failed", "error", err)
		handleError(w, err)
		return
	}
	if records == nil {
		records = []repositories.ActivityRecord{}
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// ListUploads returns the most recent upload-history rows
// GET /api/uploads?limit=100
func (h *AuditHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	rows, err := h.uploads.ListUploads(r.Context(), h.workspaceID, queryLimit(r))
	if err != nil {
		h.logger.Error("list uploads failed", "error", err)
		handleError(w, err)
		return
	}
	if rows == nil {
		rows = []models.UploadHistoryRow{}
	}

	httputil.RespondJSON(w, http.StatusOK, rows)
}
