package docsystem

import "time"

// VersionEntry is an immutable record of a file's state after a mutation.
type VersionEntry struct {
	VersionNumber int          `json:"version_number"`
	Action        string       `json:"action"`
	PerformedBy   string       `json:"performed_by"`
	Timestamp     time.Time    `json:"timestamp"`
	Notes         string       `json:"notes,omitempty"`
	FileSnapshot  FileSnapshot `json:"file_snapshot"`
}

// FileSnapshot is the denormalized copy of a file stored on a version entry.
type FileSnapshot struct {
	Filename         string     `json:"filename"`
	Extension        string     `json:"extension"`
	Status           FileStatus `json:"status"`
	Class            string     `json:"class"`
	FolderID         string     `json:"folder_id"`
	PreviewReference string     `json:"preview_reference,omitempty"`
}

// ActivityEntry is a human-readable audit record of an action on a file.
type ActivityEntry struct {
	ID          string       `json:"id"`
	ActionType  ActivityType `json:"action_type"`
	Description string       `json:"description"`
	PerformedBy string       `json:"performed_by"`
	Timestamp   time.Time    `json:"timestamp"`
}

// AuditEntry is the (action, details) pair handed to the external activity logger.
type AuditEntry struct {
	Action  string `json:"action"`
	Details string `json:"details"`
}

// UploadHistoryRow is handed to the upload-history sink once per uploaded or
// resubmitted file.
type UploadHistoryRow struct {
	Filename    string     `json:"filename"`
	Extension   string     `json:"extension"`
	FileID      string     `json:"file_id"`
	FolderID    string     `json:"folder_id"`
	PerformedBy string     `json:"performed_by"`
	SourceTag   string     `json:"source_tag"`
	Timestamp   time.Time  `json:"timestamp"`
	Status      FileStatus `json:"status"`
}
