package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	"docintake/internal/domain/repositories"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

// WorkspaceDeps are the collaborators of a workspace. Snapshots, Previews,
// Uploads and Activity are optional.
type WorkspaceDeps struct {
	Folders   docsysSvc.FolderLifecycle
	Files     docsysSvc.FileLifecycle
	Codec     *Codec
	Differ    *Differ
	Feed      *Feed
	Snapshots repositories.SnapshotRepository
	Previews  docsysSvc.PreviewGenerator
	Uploads   docsysSvc.UploadHistorySink
	Activity  docsysSvc.ActivitySink
	Clock     docsysSvc.Clock
	// DefaultCategory is assigned to stored records that carry none.
	DefaultCategory models.Category
}

// workspace serializes every mutation of one DocumentStore. Lifecycle
// operations are pure; the workspace owns the commit step and everything
// that follows it (diff, feed, sinks, persistence).
type workspace struct {
	id   string
	deps WorkspaceDeps

	mu        sync.RWMutex
	store     models.DocumentStore
	persisted int64

	logger *slog.Logger
}

// NewWorkspace creates a workspace holding an empty store. Call Load to
// read the persisted state.
func NewWorkspace(id string, deps WorkspaceDeps, logger *slog.Logger) docsysSvc.Workspace {
	if deps.DefaultCategory == "" {
		deps.DefaultCategory = models.CategoryExpenses
	}
	return &workspace{
		id:     id,
		deps:   deps,
		store:  models.DocumentStore{WorkspaceID: id, Folders: []models.Folder{}},
		logger: logger.With("workspace_id", id),
	}
}

func (w *workspace) ID() string { return w.id }

func (w *workspace) Snapshot() models.DocumentStore {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store
}

// Load replaces the in-memory store with the persisted snapshot. A
// workspace that was never saved loads as empty.
func (w *workspace) Load(ctx context.Context) error {
	if w.deps.Snapshots == nil {
		return nil
	}
	snap, err := w.deps.Snapshots.Load(ctx, w.id)
	if errors.Is(err, domain.ErrNotFound) {
		w.logger.Info("no stored snapshot, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load workspace %s: %w", w.id, err)
	}

	store, err := w.deps.Codec.Deserialize(snap.Data, w.deps.DefaultCategory)
	if err != nil {
		return fmt.Errorf("decode workspace %s: %w", w.id, err)
	}
	store.WorkspaceID = w.id
	store.Revision = snap.Revision

	w.mu.Lock()
	w.store = store
	w.persisted = snap.Revision
	w.mu.Unlock()

	w.logger.Info("workspace loaded",
		"revision", snap.Revision,
		"folders", len(store.Folders),
	)
	return nil
}

type operation func(store models.DocumentStore) (*docsysSvc.MutationResult, error)

// commit runs op against the current store and, when it changed
// something, installs the result as the next revision. Validation errors
// leave the store untouched. Sink and persistence failures become warnings.
func (w *workspace) commit(ctx context.Context, name string, op operation, warnings []string) (*docsysSvc.CommitResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	res, err := op(w.store)
	if err != nil {
		w.logger.Debug("operation rejected", "op", name, "error", err)
		return nil, err
	}
	out := &docsysSvc.CommitResult{
		MutationResult: res,
		Revision:       w.store.Revision,
		Warnings:       warnings,
	}
	if !res.Changed {
		res.Store = w.store
		return out, nil
	}

	previous := Flatten(w.store.Folders)
	next := res.Store
	next.WorkspaceID = w.id
	next.Revision = w.store.Revision + 1
	w.store = next
	res.Store = next
	out.Revision = next.Revision

	notes := make([]models.Notification, 0, len(res.Notifications))
	notes = append(notes, res.Notifications...)
	if w.deps.Differ != nil {
		notes = append(notes, w.deps.Differ.Diff(previous, Flatten(next.Folders))...)
	}
	if w.deps.Feed != nil {
		w.deps.Feed.Push(notes...)
	}
	out.Notifications = notes

	if w.deps.Activity != nil {
		for _, entry := range res.Audit {
			if err := w.deps.Activity.RecordActivity(ctx, w.id, entry); err != nil {
				w.logger.Warn("activity sink failed", "op", name, "error", err)
				out.Warnings = append(out.Warnings, "activity log: "+err.Error())
			}
		}
	}
	if w.deps.Uploads != nil {
		for _, row := range res.Uploads {
			if err := w.deps.Uploads.RecordUpload(ctx, w.id, row); err != nil {
				w.logger.Warn("upload history sink failed", "op", name, "file_id", row.FileID, "error", err)
				out.Warnings = append(out.Warnings, "upload history: "+err.Error())
			}
		}
	}
	if warning := w.persist(ctx, next); warning != "" {
		out.Warnings = append(out.Warnings, warning)
	}

	w.logger.Info("operation committed",
		"op", name,
		"revision", next.Revision,
		"affected", res.Affected,
		"notifications", len(notes),
	)
	return out, nil
}

// persist writes the store. It must be called with mu held. The in-memory
// commit stands whatever happens here.
func (w *workspace) persist(ctx context.Context, store models.DocumentStore) string {
	if w.deps.Snapshots == nil {
		return ""
	}
	data, err := w.deps.Codec.Serialize(store)
	if err != nil {
		w.logger.Error("serialize failed", "revision", store.Revision, "error", err)
		return "persistence: " + err.Error()
	}
	snap := &repositories.StoredSnapshot{
		WorkspaceID: w.id,
		Revision:    store.Revision,
		Data:        data,
	}
	if err := w.deps.Snapshots.Save(ctx, snap, w.persisted); err != nil {
		w.logger.Error("snapshot save failed",
			"revision", store.Revision,
			"expected_revision", w.persisted,
			"error", err,
		)
		return "persistence: " + err.Error()
	}
	w.persisted = store.Revision
	return ""
}

// resolvePreview asks the preview generator for a reference. Failures are
// returned as a warning and leave the file without a preview.
func (w *workspace) resolvePreview(ctx context.Context, item docsysSvc.UploadedItem) (string, string) {
	if w.deps.Previews == nil || item.ContentHandle == "" {
		return "", ""
	}
	_, ext := SplitFilename(item.Name, item.ExtensionHint)
	ref, err := w.deps.Previews.Generate(ctx, item.ContentHandle, ext)
	if err != nil {
		w.logger.Warn("preview generation failed", "name", item.Name, "error", err)
		return "", fmt.Sprintf("preview for %s: %v", item.Name, err)
	}
	return ref, ""
}

// Folder operations

func (w *workspace) CreateFolder(ctx context.Context, req *docsysSvc.CreateFolderRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "create_folder", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Folders.CreateFolder(s, req)
	}, nil)
}

func (w *workspace) RenameFolder(ctx context.Context, req *docsysSvc.RenameFolderRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "rename_folder", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Folders.RenameFolder(s, req)
	}, nil)
}

func (w *workspace) ArchiveFolder(ctx context.Context, req *docsysSvc.FolderActionRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "archive_folder", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Folders.ArchiveFolder(s, req)
	}, nil)
}

func (w *workspace) RestoreFolder(ctx context.Context, req *docsysSvc.FolderActionRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "restore_folder", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Folders.RestoreFolder(s, req)
	}, nil)
}

func (w *workspace) DeleteFolder(ctx context.Context, req *docsysSvc.FolderActionRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "delete_folder", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Folders.DeleteFolder(s, req)
	}, nil)
}

func (w *workspace) PermanentlyDeleteArchivedFolder(ctx context.Context, req *docsysSvc.FolderActionRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "purge_folder", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Folders.PermanentlyDeleteArchivedFolder(s, req)
	}, nil)
}

// File operations

// UploadFiles resolves previews before taking the commit lock.
func (w *workspace) UploadFiles(ctx context.Context, req *docsysSvc.UploadRequest) (*docsysSvc.CommitResult, error) {
	var warnings []string
	resolved := *req
	resolved.Entries = make([]docsysSvc.UploadEntry, len(req.Entries))
	for i, entry := range req.Entries {
		if entry.PreviewReference == "" {
			ref, warning := w.resolvePreview(ctx, entry.Item)
			entry.PreviewReference = ref
			if warning != "" {
				warnings = append(warnings, warning)
			}
		}
		resolved.Entries[i] = entry
	}
	return w.commit(ctx, "upload", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.UploadFiles(s, &resolved)
	}, warnings)
}

func (w *workspace) EditMetadata(ctx context.Context, req *docsysSvc.EditMetadataRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "edit_metadata", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.EditMetadata(s, req)
	}, nil)
}

func (w *workspace) SoftDelete(ctx context.Context, req *docsysSvc.FileActionRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "soft_delete", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.SoftDelete(s, req)
	}, nil)
}

func (w *workspace) Restore(ctx context.Context, req *docsysSvc.FileActionRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "restore", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.Restore(s, req)
	}, nil)
}

func (w *workspace) Move(ctx context.Context, req *docsysSvc.MoveRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "move", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.Move(s, req)
	}, nil)
}

func (w *workspace) BulkSetField(ctx context.Context, req *docsysSvc.BulkSetFieldRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "bulk_set_field", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.BulkSetField(s, req)
	}, nil)
}

func (w *workspace) BulkSoftDelete(ctx context.Context, req *docsysSvc.BulkRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "bulk_soft_delete", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.BulkSoftDelete(s, req)
	}, nil)
}

// Resubmit resolves the replacement's preview before taking the commit lock.
func (w *workspace) Resubmit(ctx context.Context, req *docsysSvc.ResubmitRequest) (*docsysSvc.CommitResult, error) {
	var warnings []string
	resolved := *req
	if resolved.PreviewReference == "" {
		ref, warning := w.resolvePreview(ctx, req.Item)
		resolved.PreviewReference = ref
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}
	return w.commit(ctx, "resubmit", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.Resubmit(s, &resolved)
	}, warnings)
}

func (w *workspace) Review(ctx context.Context, req *docsysSvc.ReviewRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "review", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.Review(s, req)
	}, nil)
}

func (w *workspace) Comment(ctx context.Context, req *docsysSvc.CommentRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "comment", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.Comment(s, req)
	}, nil)
}

func (w *workspace) Lock(ctx context.Context, req *docsysSvc.LockRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "lock", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.Lock(s, req)
	}, nil)
}

func (w *workspace) Unlock(ctx context.Context, req *docsysSvc.LockRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "unlock", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.Unlock(s, req)
	}, nil)
}

func (w *workspace) RecordAccess(ctx context.Context, req *docsysSvc.AccessRequest) (*docsysSvc.CommitResult, error) {
	return w.commit(ctx, "record_access", func(s models.DocumentStore) (*docsysSvc.MutationResult, error) {
		return w.deps.Files.RecordAccess(s, req)
	}, nil)
}

// Queries

func (w *workspace) ListFolders(category models.Category, includeArchived bool) []models.FolderSummary {
	store := w.Snapshot()
	return FilterFolders(store.Folders, category, includeArchived)
}

func (w *workspace) GetFolder(folderID string) (*models.Folder, error) {
	store := w.Snapshot()
	idx := store.FindFolder(folderID)
	if idx < 0 {
		return nil, domain.NewNotFound("folder", folderID)
	}
	folder := store.Folders[idx]
	return &folder, nil
}

func (w *workspace) GetFile(fileID string) (*models.FileMatch, error) {
	store := w.Snapshot()
	ref, err := locateFile(&store, fileID)
	if err != nil {
		return nil, err
	}
	return &models.FileMatch{Folder: ref.folder.Summary(), File: *ref.file}, nil
}

func (w *workspace) History(fileID string) (*docsysSvc.FileHistory, error) {
	store := w.Snapshot()
	ref, err := locateFile(&store, fileID)
	if err != nil {
		return nil, err
	}
	return &docsysSvc.FileHistory{
		FileID:      ref.file.FileID,
		Versions:    ref.file.Versions.Entries(),
		ActivityLog: ref.file.ActivityLog.Entries(),
		UploadInfo:  ref.file.UploadInfo,
	}, nil
}

func (w *workspace) SearchFiles(opts *models.FilterOptions) ([]models.FileMatch, error) {
	if err := opts.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	store := w.Snapshot()
	return FilterFiles(store.Folders, *opts, w.deps.Clock.Now()), nil
}

// Notifications

func (w *workspace) Notifications(unreadOnly bool) []models.Notification {
	if w.deps.Feed == nil {
		return nil
	}
	return w.deps.Feed.List(unreadOnly)
}

func (w *workspace) MarkRead(id string) error {
	if w.deps.Feed == nil || !w.deps.Feed.MarkRead(id) {
		return domain.NewNotFound("notification", id)
	}
	return nil
}

func (w *workspace) MarkAllRead() int {
	if w.deps.Feed == nil {
		return 0
	}
	return w.deps.Feed.MarkAllRead()
}

// SubscribeNotifications streams notifications committed after the call.
// Without a feed the channel is nil and never delivers.
func (w *workspace) SubscribeNotifications() (<-chan models.Notification, func()) {
	if w.deps.Feed == nil {
		return nil, func() {}
	}
	return w.deps.Feed.Subscribe(32)
}
