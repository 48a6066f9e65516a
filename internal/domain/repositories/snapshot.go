package repositories

import (
	"context"
	"time"

	models "docintake/internal/domain/models/docsystem"
)

// StoredSnapshot is the serialized DocumentStore of one workspace.
type StoredSnapshot struct {
	WorkspaceID string
	Revision    int64
	Data        []byte
	UpdatedAt   time.Time
}

// SnapshotRepository persists serialized workspace stores.
type SnapshotRepository interface {
	// Load returns the latest snapshot, or domain.ErrNotFound when the
	// workspace has never been saved.
	Load(ctx context.Context, workspaceID string) (*StoredSnapshot, error)

	// Save stores snap when the persisted revision equals expectedRevision
	// (0 for a workspace that was never saved). Otherwise it returns a
	// domain.ConflictError and leaves the stored snapshot untouched.
	Save(ctx context.Context, snap *StoredSnapshot, expectedRevision int64) error
}

// UploadHistoryRepository lists upload-history rows written by the sink.
type UploadHistoryRepository interface {
	ListUploads(ctx context.Context, workspaceID string, limit int) ([]models.UploadHistoryRow, error)
}

// ActivityRepository lists audit pairs written by the activity sink.
type ActivityRepository interface {
	ListActivity(ctx context.Context, workspaceID string, limit int) ([]ActivityRecord, error)
}

// ActivityRecord is a stored audit pair.
type ActivityRecord struct {
	ID        int64             `json:"id"`
	Entry     models.AuditEntry `json:"entry"`
	CreatedAt time.Time         `json:"created_at"`
}
