package docsystem

import (
	models "docintake/internal/domain/models/docsystem"
)

// SkipReason explains why a requested file was left out of a bulk operation.
type SkipReason string

const (
	SkipNotFound         SkipReason = "not_found"
	SkipLocked           SkipReason = "locked"
	SkipDeleted          SkipReason = "deleted"
	SkipArchivedFolder   SkipReason = "archived_folder"
	SkipAlreadyInFolder  SkipReason = "already_in_destination"
	SkipCategoryMismatch SkipReason = "category_mismatch"
	SkipUnchanged        SkipReason = "unchanged"
	SkipInvalidValue     SkipReason = "invalid_value"
)

// Skipped is one file excluded from a bulk operation.
type Skipped struct {
	FileID string     `json:"file_id"`
	Reason SkipReason `json:"reason"`
}

// MutationResult is what a lifecycle operation hands back to the workspace.
type MutationResult struct {
	// Store is the next state. It equals the input when Changed is false.
	Store   models.DocumentStore `json:"-"`
	Changed bool                 `json:"changed"`

	// Folder is the created or affected folder, when there is one.
	Folder *models.Folder `json:"folder,omitempty"`
	// Files are the affected files after the mutation.
	Files []models.File `json:"files,omitempty"`

	Requested int       `json:"requested"`
	Affected  int       `json:"affected"`
	Skipped   []Skipped `json:"skipped,omitempty"`

	Audit         []models.AuditEntry       `json:"-"`
	Uploads       []models.UploadHistoryRow `json:"-"`
	Notifications []models.Notification     `json:"-"`
}

// CommitResult is the outcome of a committed workspace operation.
type CommitResult struct {
	*MutationResult
	Revision      int64                 `json:"revision"`
	Notifications []models.Notification `json:"notifications,omitempty"`
	// Warnings are non-fatal problems (persistence, sinks, previews).
	// The in-memory commit stands regardless.
	Warnings []string `json:"warnings,omitempty"`
}
