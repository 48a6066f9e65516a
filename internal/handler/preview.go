package handler

import (
	"context"
	"log/slog"
	"net/http"

	docsysSvc "docintake/internal/domain/services/docsystem"
	"docintake/internal/httputil"
)

// PreviewSigner issues short-lived URLs for preview downloads and uploads.
type PreviewSigner interface {
	PreviewURL(ctx context.Context, reference string) (string, error)
	PresignUpload(ctx context.Context, workspaceID string) (string, string, error)
}

// PreviewHandler hands out presigned storage URLs
type PreviewHandler struct {
	workspace docsysSvc.Workspace
	signer    PreviewSigner
	logger    *slog.Logger
}

// NewPreviewHandler creates a new preview handler
func NewPreviewHandler(workspace docsysSvc.Workspace, signer PreviewSigner, logger *slog.Logger) *PreviewHandler {
	return &PreviewHandler{
		workspace: workspace,
		signer:    signer,
		logger:    logger,
	}
}

// GetPreviewURL returns a presigned URL for a file's preview
// GET /api/files/{id}/preview
func (h *PreviewHandler) GetPreviewURL(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	match, err := h.workspace.GetFile(id)
	if err != nil {
		handleError(w, err)
		return
	}
	if match.File.PreviewReference == "" {
		httputil.RespondError(w, http.StatusNotFound, "no preview available for file "+id)
		return
	}

	url, err := h.signer.PreviewURL(r.Context(), match.File.PreviewReference)
	if err != nil {
		h.logger.Error("presign preview failed", "file_id", id, "error", err)
		httputil.RespondError(w, http.StatusBadGateway, "preview storage unavailable")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// PresignUpload returns a storage key and a presigned PUT URL. The key is
// then sent as the content handle of an upload entry.
// POST /api/uploads/presign
func (h *PreviewHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}

	key, url, err := h.signer.PresignUpload(r.Context(), h.workspace.ID())
	if err != nil {
		h.logger.Error("presign upload failed", "error", err)
		httputil.RespondError(w, http.StatusBadGateway, "upload storage unavailable")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"content_handle": key,
		"url":            url,
	})
}
