package docsystem

import (
	"context"
	"time"

	models "docintake/internal/domain/models/docsystem"
)

// UploadedItem describes one file supplied by the upload source. The engine
// never reads the bytes behind ContentHandle.
type UploadedItem struct {
	Name          string `json:"name"`
	Size          int64  `json:"size"`
	ExtensionHint string `json:"extension_hint,omitempty"`
	ContentHandle string `json:"content_handle,omitempty"`
	SourceTag     string `json:"source_tag,omitempty"`
}

// PreviewGenerator turns a content handle into an opaque preview reference.
// An empty reference means no preview is available.
type PreviewGenerator interface {
	Generate(ctx context.Context, contentHandle, extension string) (string, error)
}

// UploadHistorySink receives one row per uploaded or resubmitted file.
type UploadHistorySink interface {
	RecordUpload(ctx context.Context, workspaceID string, row models.UploadHistoryRow) error
}

// ActivitySink receives the (action, details) audit pair of every mutation.
type ActivitySink interface {
	RecordActivity(ctx context.Context, workspaceID string, entry models.AuditEntry) error
}

// Clock supplies commit timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies fresh unique identifiers.
type IDGenerator interface {
	NewID() string
}
