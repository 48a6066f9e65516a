package handler

import (
	"context"
	"log/slog"
	"net/http"

	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
	"docintake/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	workspace docsysSvc.Workspace
	logger    *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(workspace docsysSvc.Workspace, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// ListFolders lists the folders of a category
// GET /api/folders?category=Expenses&include_archived=true
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		parsed, ok := models.ParseCategory(raw)
		if !ok {
			httputil.RespondError(w, http.StatusBadRequest, "unknown category: "+raw)
			return
		}
		category = parsed
	}

	folders := h.workspace.ListFolders(category, queryBool(r, "include_archived"))
	httputil.RespondJSON(w, http.StatusOK, folders)
}

// CreateFolder creates an empty folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req docsysSvc.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Actor = actor.Name()
	if req.Owner == "" {
		req.Owner = actor.Name()
	}

	result, err := h.workspace.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// GetFolder returns a folder with its files
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Folder")
	if !ok {
		return
	}

	folder, err := h.workspace.GetFolder(id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// RenameFolder renames a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "Folder")
	if !ok {
		return
	}

	var req docsysSvc.RenameFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FolderID = id
	req.Actor = actor.Name()

	h.respond(w, r, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.RenameFolder(r.Context(), &req)
	})
}

// ArchiveFolder archives a folder and soft-deletes its files
// POST /api/folders/{id}/archive
func (h *FolderHandler) ArchiveFolder(w http.ResponseWriter, r *http.Request) {
	h.folderAction(w, r, h.workspace.ArchiveFolder)
}

// RestoreFolder brings an archived folder back
// POST /api/folders/{id}/restore
func (h *FolderHandler) RestoreFolder(w http.ResponseWriter, r *http.Request) {
	h.folderAction(w, r, h.workspace.RestoreFolder)
}

// DeleteFolder removes a folder and its files
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	h.folderAction(w, r, h.workspace.DeleteFolder)
}

// PurgeFolder permanently removes an archived folder. Admin only.
// DELETE /api/folders/{id}/purge
func (h *FolderHandler) PurgeFolder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "Folder")
	if !ok {
		return
	}

	req := &docsysSvc.FolderActionRequest{FolderID: id, Actor: actor.Name()}
	h.respond(w, r, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.PermanentlyDeleteArchivedFolder(r.Context(), req)
	})
}

type folderOp func(ctx context.Context, req *docsysSvc.FolderActionRequest) (*docsysSvc.CommitResult, error)

func (h *FolderHandler) folderAction(w http.ResponseWriter, r *http.Request, op folderOp) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "Folder")
	if !ok {
		return
	}

	req := &docsysSvc.FolderActionRequest{FolderID: id, Actor: actor.Name()}
	h.respond(w, r, func() (*docsysSvc.CommitResult, error) {
		return op(r.Context(), req)
	})
}

func (h *FolderHandler) respond(w http.ResponseWriter, r *http.Request, call func() (*docsysSvc.CommitResult, error)) {
	respondCommit(w, r, h.logger, call)
}
