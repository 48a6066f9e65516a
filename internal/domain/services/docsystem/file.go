package docsystem

import (
	models "docintake/internal/domain/models/docsystem"
)

// FileLifecycle holds the pure per-file operations. Like FolderLifecycle,
// every operation validates first and only then builds the next store.
type FileLifecycle interface {
	UploadFiles(store models.DocumentStore, req *UploadRequest) (*MutationResult, error)
	EditMetadata(store models.DocumentStore, req *EditMetadataRequest) (*MutationResult, error)
	SoftDelete(store models.DocumentStore, req *FileActionRequest) (*MutationResult, error)
	Restore(store models.DocumentStore, req *FileActionRequest) (*MutationResult, error)
	Move(store models.DocumentStore, req *MoveRequest) (*MutationResult, error)
	BulkSetField(store models.DocumentStore, req *BulkSetFieldRequest) (*MutationResult, error)
	BulkSoftDelete(store models.DocumentStore, req *BulkRequest) (*MutationResult, error)
	Resubmit(store models.DocumentStore, req *ResubmitRequest) (*MutationResult, error)
	Review(store models.DocumentStore, req *ReviewRequest) (*MutationResult, error)
	Comment(store models.DocumentStore, req *CommentRequest) (*MutationResult, error)
	Lock(store models.DocumentStore, req *LockRequest) (*MutationResult, error)
	Unlock(store models.DocumentStore, req *LockRequest) (*MutationResult, error)
	RecordAccess(store models.DocumentStore, req *AccessRequest) (*MutationResult, error)
}

// UploadRequest uploads a batch of items into an existing folder
// (FolderID) or into a new folder created for the batch (NewFolderName).
type UploadRequest struct {
	FolderID      string          `json:"folder_id,omitempty"`
	NewFolderName string          `json:"new_folder_name,omitempty"`
	Category      models.Category `json:"category"`
	Owner         string          `json:"owner"`
	Entries       []UploadEntry   `json:"entries"`
	Actor         string          `json:"-"`
}

// UploadEntry pairs an uploaded item with the metadata entered for it.
type UploadEntry struct {
	Item     UploadedItem   `json:"item"`
	Metadata UploadMetadata `json:"metadata"`
	// PreviewReference is resolved by the workspace before the commit.
	PreviewReference string `json:"-"`
}

// UploadMetadata is the metadata captured at upload time.
type UploadMetadata struct {
	Class           string                 `json:"class"`
	Priority        models.Priority        `json:"priority,omitempty"`
	Confidentiality models.Confidentiality `json:"confidentiality,omitempty"`
	Vendor          string                 `json:"vendor,omitempty"`
	Customer        string                 `json:"customer,omitempty"`
	PaymentMethod   string                 `json:"payment_method,omitempty"`
	InvoiceNumber   string                 `json:"invoice_number,omitempty"`
	InvoiceDate     string                 `json:"invoice_date,omitempty"`
	Amount          string                 `json:"amount,omitempty"`
	Currency        string                 `json:"currency,omitempty"`
	AccountNumber   string                 `json:"account_number,omitempty"`
	StatementPeriod string                 `json:"statement_period,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
}

// MetadataPatch lists the fields to change; nil fields are left alone.
type MetadataPatch struct {
	Filename        *string                 `json:"filename,omitempty"`
	Class           *string                 `json:"class,omitempty"`
	Vendor          *string                 `json:"vendor,omitempty"`
	Customer        *string                 `json:"customer,omitempty"`
	PaymentMethod   *string                 `json:"payment_method,omitempty"`
	InvoiceNumber   *string                 `json:"invoice_number,omitempty"`
	InvoiceDate     *string                 `json:"invoice_date,omitempty"`
	Amount          *string                 `json:"amount,omitempty"`
	Currency        *string                 `json:"currency,omitempty"`
	AccountNumber   *string                 `json:"account_number,omitempty"`
	StatementPeriod *string                 `json:"statement_period,omitempty"`
	Confidentiality *models.Confidentiality `json:"confidentiality,omitempty"`
	Priority        *models.Priority        `json:"priority,omitempty"`
	Notes           *string                 `json:"notes,omitempty"`
}

// EditMetadataRequest represents a metadata edit
type EditMetadataRequest struct {
	FileID string        `json:"-"`
	Patch  MetadataPatch `json:"patch"`
	Notes  string        `json:"notes,omitempty"`
	Actor  string        `json:"-"`
}

// FileActionRequest identifies one file for delete/restore
type FileActionRequest struct {
	FileID string `json:"-"`
	Actor  string `json:"-"`
}

// MoveRequest moves files into DestinationFolderID, or into a folder named
// CreateNew that is created as part of the same commit.
type MoveRequest struct {
	FileIDs             []string `json:"file_ids"`
	DestinationFolderID string   `json:"destination_folder_id,omitempty"`
	CreateNew           string   `json:"create_new,omitempty"`
	Actor               string   `json:"-"`
}

// BulkField names a field that can be set across many files at once.
type BulkField string

const (
	BulkFieldClass    BulkField = "class"
	BulkFieldPriority BulkField = "priority"
)

// BulkSetFieldRequest sets Field to Value on every eligible file.
type BulkSetFieldRequest struct {
	FileIDs []string  `json:"file_ids"`
	Field   BulkField `json:"field"`
	Value   string    `json:"value"`
	Actor   string    `json:"-"`
}

// BulkRequest identifies a set of files.
type BulkRequest struct {
	FileIDs []string `json:"file_ids"`
	Actor   string   `json:"-"`
}

// ResubmitRequest replaces a file's content and resets its review state.
type ResubmitRequest struct {
	FileID string       `json:"-"`
	Item   UploadedItem `json:"item"`
	Reason string       `json:"reason,omitempty"`
	Actor  string       `json:"-"`
	// PreviewReference is resolved by the workspace before the commit.
	PreviewReference string `json:"-"`
}

// ReviewDecision is a reviewer's verdict on a pending file.
type ReviewDecision string

const (
	DecisionApprove     ReviewDecision = "approve"
	DecisionReject      ReviewDecision = "reject"
	DecisionRequestInfo ReviewDecision = "request_info"
)

// ReviewRequest records a review decision. Reason is required for reject
// (rejection reason) and request_info (required action).
type ReviewRequest struct {
	FileID   string         `json:"-"`
	Decision ReviewDecision `json:"decision"`
	Reason   string         `json:"reason,omitempty"`
	Comment  string         `json:"comment,omitempty"`
	Actor    string         `json:"-"`
}

// CommentRequest sets the admin comment on a file.
type CommentRequest struct {
	FileID string `json:"-"`
	Text   string `json:"text"`
	Actor  string `json:"-"`
}

// LockRequest explicitly locks or unlocks a file.
type LockRequest struct {
	FileID string `json:"-"`
	Reason string `json:"reason"`
	Actor  string `json:"-"`
}

// AccessRequest records a view or download.
type AccessRequest struct {
	FileID string              `json:"-"`
	Kind   models.ActivityType `json:"-"` // ActivityView or ActivityDownload
	Actor  string              `json:"-"`
}
