package handler

import (
	"log/slog"
	"net/http"

	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
	"docintake/internal/httputil"
)

// FileHandler handles file HTTP requests
type FileHandler struct {
	workspace docsysSvc.Workspace
	logger    *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(workspace docsysSvc.Workspace, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// SearchFiles filters files across folders
// GET /api/files?q=&status=&ext=&from=&to=&category=&include_archived=&include_deleted=
func (h *FileHandler) SearchFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := models.FilterOptions{
		Query:           q.Get("q"),
		Extensions:      queryList(r, "ext"),
		From:            q.Get("from"),
		To:              q.Get("to"),
		IncludeArchived: queryBool(r, "include_archived"),
		IncludeDeleted:  queryBool(r, "include_deleted"),
	}
	for _, st := range queryList(r, "status") {
		opts.Statuses = append(opts.Statuses, models.FileStatus(st))
	}
	if raw := q.Get("category"); raw != "" {
		if parsed, ok := models.ParseCategory(raw); ok {
			opts.Category = parsed
		} else {
			opts.Category = models.Category(raw)
		}
	}

	matches, err := h.workspace.SearchFiles(&opts)
	if err != nil {
		handleError(w, err)
		return
	}
	if matches == nil {
		matches = []models.FileMatch{}
	}

	httputil.RespondJSON(w, http.StatusOK, matches)
}

// GetFile returns a file with its folder summary
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	match, err := h.workspace.GetFile(id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, match)
}

// GetHistory returns the version and activity history of a file
// GET /api/files/{id}/history
func (h *FileHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	history, err := h.workspace.History(id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, history)
}

// UploadFiles adds a batch of files to a folder
// POST /api/uploads
func (h *FileHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req docsysSvc.UploadRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Actor = actor.Name()
	if req.Owner == "" {
		req.Owner = actor.Name()
	}

	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.UploadFiles(r.Context(), &req)
	})
}

// metadataPatchBody is the PATCH body for a file. A JSON null clears a
// field; an absent field is left alone.
type metadataPatchBody struct {
	Filename        httputil.OptionalString `json:"filename"`
	Class           httputil.OptionalString `json:"class"`
	Vendor          httputil.OptionalString `json:"vendor"`
	Customer        httputil.OptionalString `json:"customer"`
	PaymentMethod   httputil.OptionalString `json:"payment_method"`
	InvoiceNumber   httputil.OptionalString `json:"invoice_number"`
	InvoiceDate     httputil.OptionalString `json:"invoice_date"`
	Amount          httputil.OptionalString `json:"amount"`
	Currency        httputil.OptionalString `json:"currency"`
	AccountNumber   httputil.OptionalString `json:"account_number"`
	StatementPeriod httputil.OptionalString `json:"statement_period"`
	Confidentiality httputil.OptionalString `json:"confidentiality"`
	Priority        httputil.OptionalString `json:"priority"`
	Notes           httputil.OptionalString `json:"notes"`
	// ChangeNotes is the free-text note recorded on the version entry.
	ChangeNotes string `json:"change_notes"`
}

func patchValue(o httputil.OptionalString) *string {
	if !o.Present {
		return nil
	}
	if o.Value == nil {
		empty := ""
		return &empty
	}
	v := *o.Value
	return &v
}

func (b *metadataPatchBody) toPatch() docsysSvc.MetadataPatch {
	patch := docsysSvc.MetadataPatch{
		Filename:        patchValue(b.Filename),
		Class:           patchValue(b.Class),
		Vendor:          patchValue(b.Vendor),
		Customer:        patchValue(b.Customer),
		PaymentMethod:   patchValue(b.PaymentMethod),
		InvoiceNumber:   patchValue(b.InvoiceNumber),
		InvoiceDate:     patchValue(b.InvoiceDate),
		Amount:          patchValue(b.Amount),
		Currency:        patchValue(b.Currency),
		AccountNumber:   patchValue(b.AccountNumber),
		StatementPeriod: patchValue(b.StatementPeriod),
		Notes:           patchValue(b.Notes),
	}
	if v := patchValue(b.Confidentiality); v != nil {
		c := models.Confidentiality(*v)
		patch.Confidentiality = &c
	}
	if v := patchValue(b.Priority); v != nil {
		p := models.Priority(*v)
		patch.Priority = &p
	}
	return patch
}

// EditMetadata updates a file's metadata
// PATCH /api/files/{id}
func (h *FileHandler) EditMetadata(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	var body metadataPatchBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &docsysSvc.EditMetadataRequest{
		FileID: id,
		Patch:  body.toPatch(),
		Notes:  body.ChangeNotes,
		Actor:  actor.Name(),
	}
	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.EditMetadata(r.Context(), req)
	})
}

// DeleteFile soft-deletes a file
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	h.fileAction(w, r, func(req *docsysSvc.FileActionRequest) (*docsysSvc.CommitResult, error) {
		return h.workspace.SoftDelete(r.Context(), req)
	})
}

// RestoreFile restores a soft-deleted file
// POST /api/files/{id}/restore
func (h *FileHandler) RestoreFile(w http.ResponseWriter, r *http.Request) {
	h.fileAction(w, r, func(req *docsysSvc.FileActionRequest) (*docsysSvc.CommitResult, error) {
		return h.workspace.Restore(r.Context(), req)
	})
}

func (h *FileHandler) fileAction(w http.ResponseWriter, r *http.Request, op func(*docsysSvc.FileActionRequest) (*docsysSvc.CommitResult, error)) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	req := &docsysSvc.FileActionRequest{FileID: id, Actor: actor.Name()}
	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return op(req)
	})
}

// MoveFiles moves files to another folder
// POST /api/files/move
func (h *FileHandler) MoveFiles(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req docsysSvc.MoveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Actor = actor.Name()

	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.Move(r.Context(), &req)
	})
}

// BulkSetField sets class or priority on many files
// POST /api/files/bulk/field
func (h *FileHandler) BulkSetField(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req docsysSvc.BulkSetFieldRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Actor = actor.Name()

	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.BulkSetField(r.Context(), &req)
	})
}

// BulkDelete soft-deletes many files
// POST /api/files/bulk/delete
func (h *FileHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req docsysSvc.BulkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Actor = actor.Name()

	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.BulkSoftDelete(r.Context(), &req)
	})
}

// ResubmitFile replaces a file's content and sends it back to review
// POST /api/files/{id}/resubmit
func (h *FileHandler) ResubmitFile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	var req docsysSvc.ResubmitRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FileID = id
	req.Actor = actor.Name()

	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.Resubmit(r.Context(), &req)
	})
}

// ReviewFile records a review decision. Reviewer only.
// POST /api/files/{id}/review
func (h *FileHandler) ReviewFile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireReviewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	var req docsysSvc.ReviewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FileID = id
	req.Actor = actor.Name()

	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.Review(r.Context(), &req)
	})
}

// CommentFile sets the reviewer comment. Reviewer only.
// POST /api/files/{id}/comment
func (h *FileHandler) CommentFile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireReviewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	var req docsysSvc.CommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FileID = id
	req.Actor = actor.Name()

	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.Comment(r.Context(), &req)
	})
}

// LockFile locks a file. Reviewer only.
// POST /api/files/{id}/lock
func (h *FileHandler) LockFile(w http.ResponseWriter, r *http.Request) {
	h.lockAction(w, r, func(req *docsysSvc.LockRequest) (*docsysSvc.CommitResult, error) {
		return h.workspace.Lock(r.Context(), req)
	})
}

// UnlockFile unlocks a file. Reviewer only.
// POST /api/files/{id}/unlock
func (h *FileHandler) UnlockFile(w http.ResponseWriter, r *http.Request) {
	h.lockAction(w, r, func(req *docsysSvc.LockRequest) (*docsysSvc.CommitResult, error) {
		return h.workspace.Unlock(r.Context(), req)
	})
}

func (h *FileHandler) lockAction(w http.ResponseWriter, r *http.Request, op func(*docsysSvc.LockRequest) (*docsysSvc.CommitResult, error)) {
	actor, ok := requireReviewer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	var req docsysSvc.LockRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FileID = id
	req.Actor = actor.Name()

	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return op(&req)
	})
}

// RecordView records that the caller viewed a file
// POST /api/files/{id}/view
func (h *FileHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	h.recordAccess(w, r, models.ActivityView)
}

// RecordDownload records that the caller downloaded a file
// POST /api/files/{id}/download
func (h *FileHandler) RecordDownload(w http.ResponseWriter, r *http.Request) {
	h.recordAccess(w, r, models.ActivityDownload)
}

func (h *FileHandler) recordAccess(w http.ResponseWriter, r *http.Request, kind models.ActivityType) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	req := &docsysSvc.AccessRequest{FileID: id, Kind: kind, Actor: actor.Name()}
	respondCommit(w, r, h.logger, func() (*docsysSvc.CommitResult, error) {
		return h.workspace.RecordAccess(r.Context(), req)
	})
}
