package sqlite

import (
	"context"
	"fmt"

	models "docintake/internal/domain/models/docsystem"
	"docintake/internal/domain/repositories"
)

// ActivityRepository is the activity sink and its reader
type ActivityRepository struct {
	store *Store
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

// RecordActivity appends one audit pair
func (r *ActivityRepository) RecordActivity(ctx context.Context, workspaceID string, entry models.AuditEntry) error {
	row := activityRow{
		WorkspaceID: workspaceID,
		Action:      entry.Action,
		Details:     entry.Details,
	}
	if err := r.store.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// ListActivity returns the newest audit pairs first
func (r *ActivityRepository) ListActivity(ctx context.Context, workspaceID string, limit int) ([]repositories.ActivityRecord, error) {
	var rows []activityRow
	err := r.store.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	out := make([]repositories.ActivityRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, repositories.ActivityRecord{
			ID:        row.ID,
			Entry:     models.AuditEntry{Action: row.Action, Details: row.Details},
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

// UploadHistoryRepository is the upload-history sink and its reader
type UploadHistoryRepository struct {
	store *Store
}

// NewUploadHistoryRepository creates a new upload history repository
func NewUploadHistoryRepository(store *Store) *UploadHistoryRepository {
	return &UploadHistoryRepository{store: store}
}

// RecordUpload appends one upload-history row
func (r *UploadHistoryRepository) RecordUpload(ctx context.Context, workspaceID string, row models.UploadHistoryRow) error {
	rec := uploadRow{
		WorkspaceID: workspaceID,
		FileID:      row.FileID,
		FolderID:    row.FolderID,
		Filename:    row.Filename,
		Extension:   row.Extension,
		PerformedBy: row.PerformedBy,
		SourceTag:   row.SourceTag,
		Status:      string(row.Status),
		UploadedAt:  row.Timestamp,
	}
	if err := r.store.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// ListUploads returns the newest rows first
func (r *UploadHistoryRepository) ListUploads(ctx context.Context, workspaceID string, limit int) ([]models.UploadHistoryRow, error) {
	var rows []uploadRow
	err := r.store.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("uploaded_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	out := make([]models.UploadHistoryRow, 0, len(rows))
	for _, rec := range rows {
		out = append(out, models.UploadHistoryRow{
			Filename:    rec.Filename,
			Extension:   rec.Extension,
			FileID:      rec.FileID,
			FolderID:    rec.FolderID,
			PerformedBy: rec.PerformedBy,
			SourceTag:   rec.SourceTag,
			Timestamp:   rec.UploadedAt,
			Status:      models.FileStatus(rec.Status),
		})
	}
	return out, nil
}
