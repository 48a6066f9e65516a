package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docintake/internal/domain"
	"docintake/internal/domain/repositories"

	"gorm.io/gorm"
)

// SnapshotRepository implements repositories.SnapshotRepository
type SnapshotRepository struct {
	store *Store
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(store *Store) *SnapshotRepository {
	return &SnapshotRepository{store: store}
}

// Load retrieves the stored snapshot of a workspace
func (r *SnapshotRepository) Load(ctx context.Context, workspaceID string) (*repositories.StoredSnapshot, error) {
	var row snapshotRow
	err := r.store.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFound("workspace", workspaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &repositories.StoredSnapshot{
		WorkspaceID: row.WorkspaceID,
		Revision:    row.Revision,
		Data:        row.Data,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// Save writes a snapshot when the stored revision equals expectedRevision
func (r *SnapshotRepository) Save(ctx context.Context, snap *repositories.StoredSnapshot, expectedRevision int64) error {
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now().UTC()
	}

	return r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := snapshotRow{
			WorkspaceID: snap.WorkspaceID,
			Revision:    snap.Revision,
			Data:        snap.Data,
			UpdatedAt:   snap.UpdatedAt,
		}

		if expectedRevision == 0 {
			var count int64
			if err := tx.Model(&snapshotRow{}).Where("workspace_id = ?", snap.WorkspaceID).Count(&count).Error; err != nil {
				return fmt.Errorf("read snapshot revision: %w", err)
			}
			if count > 0 {
				return revisionConflict(snap.WorkspaceID, expectedRevision)
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert snapshot: %w", err)
			}
			return nil
		}

		// Conditional update: zero rows means someone else moved the revision.
		res := tx.Model(&snapshotRow{}).
			Where("workspace_id = ? AND revision = ?", snap.WorkspaceID, expectedRevision).
			Updates(map[string]any{
				"revision":   row.Revision,
				"data":       row.Data,
				"updated_at": row.UpdatedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("update snapshot: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return revisionConflict(snap.WorkspaceID, expectedRevision)
		}
		return nil
	})
}

func revisionConflict(workspaceID string, expected int64) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("workspace %s was modified elsewhere (expected revision %d)", workspaceID, expected),
		ResourceType: "workspace",
		ResourceID:   workspaceID,
	}
}
