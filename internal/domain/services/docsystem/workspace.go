package docsystem

import (
	"context"

	models "docintake/internal/domain/models/docsystem"
)

// Workspace is the single mutator over one client's DocumentStore.
// Mutations run one at a time; each returns the committed outcome.
type Workspace interface {
	// ID returns the workspace identifier used for persistence.
	ID() string

	// Snapshot returns the current committed store.
	Snapshot() models.DocumentStore

	// Load replaces the in-memory store from the snapshot repository.
	Load(ctx context.Context) error

	// Folder operations
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*CommitResult, error)
	RenameFolder(ctx context.Context, req *RenameFolderRequest) (*CommitResult, error)
	ArchiveFolder(ctx context.Context, req *FolderActionRequest) (*CommitResult, error)
	RestoreFolder(ctx context.Context, req *FolderActionRequest) (*CommitResult, error)
	DeleteFolder(ctx context.Context, req *FolderActionRequest) (*CommitResult, error)
	PermanentlyDeleteArchivedFolder(ctx context.Context, req *FolderActionRequest) (*CommitResult, error)

	// File operations
	UploadFiles(ctx context.Context, req *UploadRequest) (*CommitResult, error)
	EditMetadata(ctx context.Context, req *EditMetadataRequest) (*CommitResult, error)
	SoftDelete(ctx context.Context, req *FileActionRequest) (*CommitResult, error)
	Restore(ctx context.Context, req *FileActionRequest) (*CommitResult, error)
	Move(ctx context.Context, req *MoveRequest) (*CommitResult, error)
	BulkSetField(ctx context.Context, req *BulkSetFieldRequest) (*CommitResult, error)
	BulkSoftDelete(ctx context.Context, req *BulkRequest) (*CommitResult, error)
	Resubmit(ctx context.Context, req *ResubmitRequest) (*CommitResult, error)
	Review(ctx context.Context, req *ReviewRequest) (*CommitResult, error)
	Comment(ctx context.Context, req *CommentRequest) (*CommitResult, error)
	Lock(ctx context.Context, req *LockRequest) (*CommitResult, error)
	Unlock(ctx context.Context, req *LockRequest) (*CommitResult, error)
	RecordAccess(ctx context.Context, req *AccessRequest) (*CommitResult, error)

	// Queries
	ListFolders(category models.Category, includeArchived bool) []models.FolderSummary
	GetFolder(folderID string) (*models.Folder, error)
	GetFile(fileID string) (*models.FileMatch, error)
	History(fileID string) (*FileHistory, error)
	SearchFiles(opts *models.FilterOptions) ([]models.FileMatch, error)

	// Notifications
	Notifications(unreadOnly bool) []models.Notification
	MarkRead(id string) error
	MarkAllRead() int
	// SubscribeNotifications streams notifications as they are committed.
	// The cancel func ends the subscription and closes the channel.
	SubscribeNotifications() (<-chan models.Notification, func())
}

// FileHistory is the audit view of one file, available for deleted files too.
type FileHistory struct {
	FileID      string                 `json:"file_id"`
	Versions    []models.VersionEntry  `json:"versions"`
	ActivityLog []models.ActivityEntry `json:"activity_log"`
	UploadInfo  models.UploadInfo      `json:"upload_info"`
}
