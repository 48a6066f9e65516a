package docsystem

import "time"

// File is one uploaded document with its review state, metadata, version
// history and activity log.
type File struct {
	FileID    string     `json:"file_id"`
	FolderID  string     `json:"folder_id"`
	Filename  string     `json:"filename"`
	Extension string     `json:"extension"`
	Size      int64      `json:"size"`
	Status    FileStatus `json:"status"`
	// PriorStatus is the status to return to when a soft-deleted file is restored.
	PriorStatus FileStatus   `json:"prior_status,omitempty"`
	Class       string       `json:"class"`
	Metadata    FileMetadata `json:"metadata"`
	Review      ReviewState  `json:"review"`

	IsDeleted bool `json:"is_deleted"`
	IsLocked  bool `json:"is_locked"`

	PreviewReference string `json:"preview_reference,omitempty"`
	// ContentHandle points at the uploaded bytes held by the upload source.
	// It is transient: never serialized, and dropped by the store codec.
	ContentHandle string `json:"-" store:"transient"`

	Versions    Ledger[VersionEntry]  `json:"versions"`
	ActivityLog Ledger[ActivityEntry] `json:"activity_log"`
	UploadInfo  UploadInfo            `json:"upload_info"`
}

// FileMetadata holds the category-specific descriptive fields.
type FileMetadata struct {
	Vendor          string          `json:"vendor,omitempty"`
	Customer        string          `json:"customer,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	InvoiceNumber   string          `json:"invoice_number,omitempty"`
	InvoiceDate     string          `json:"invoice_date,omitempty"`
	Amount          string          `json:"amount,omitempty"`
	Currency        string          `json:"currency,omitempty"`
	AccountNumber   string          `json:"account_number,omitempty"`
	StatementPeriod string          `json:"statement_period,omitempty"`
	Confidentiality Confidentiality `json:"confidentiality"`
	Priority        Priority        `json:"priority"`
	Notes           string          `json:"notes,omitempty"`
}

// ReviewState holds reviewer-authored fields.
type ReviewState struct {
	AdminComment    string     `json:"admin_comment,omitempty"`
	RequiredAction  string     `json:"required_action,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	LockReason      string     `json:"lock_reason,omitempty"`
	// UnlockedBy/UnlockedAt/UnlockReason are set by an explicit unlock and
	// cleared by the next review decision.
	UnlockedBy   string     `json:"unlocked_by,omitempty"`
	UnlockedAt   *time.Time `json:"unlocked_at,omitempty"`
	UnlockReason string     `json:"unlock_reason,omitempty"`
}

// UploadInfo records first-upload provenance and the replacement history.
type UploadInfo struct {
	UploadedBy       string        `json:"uploaded_by"`
	UploadedAt       time.Time     `json:"uploaded_at"`
	Source           string        `json:"source"`
	OriginalFilename string        `json:"original_filename"`
	Replacements     []Replacement `json:"replacements,omitempty"`
	TotalVersions    int           `json:"total_versions"`
}

// Replacement is one resubmission of a file's content.
type Replacement struct {
	PreviousFilename  string    `json:"previous_filename"`
	PreviousExtension string    `json:"previous_extension"`
	Filename          string    `json:"filename"`
	Extension         string    `json:"extension"`
	ReplacedBy        string    `json:"replaced_by"`
	ReplacedAt        time.Time `json:"replaced_at"`
	Source            string    `json:"source,omitempty"`
	Reason            string    `json:"reason,omitempty"`
}

// DisplayName is the filename with its extension.
func (f *File) DisplayName() string {
	if f.Extension == "" {
		return f.Filename
	}
	return f.Filename + "." + f.Extension
}

// Locked reports whether the file rejects content and metadata mutation.
// An approved file stays locked until it is explicitly unlocked.
func (f *File) Locked() bool {
	return f.IsLocked || (f.Status == StatusApproved && f.Review.UnlockedAt == nil)
}

// Snapshot captures the denormalized state stored on a version entry.
func (f *File) Snapshot() FileSnapshot {
	return FileSnapshot{
		Filename:         f.Filename,
		Extension:        f.Extension,
		Status:           f.Status,
		Class:            f.Class,
		FolderID:         f.FolderID,
		PreviewReference: f.PreviewReference,
	}
}
