package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docintake/internal/domain"
	"docintake/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSnapshotRepository implements the SnapshotRepository interface
type PostgresSnapshotRepository struct {
	pool      *pgxpool.Pool
	tables    *TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(config *RepositoryConfig, txManager repositories.TransactionManager) repositories.SnapshotRepository {
	return &PostgresSnapshotRepository{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: txManager,
		logger:    config.Logger,
	}
}

// Load retrieves the stored snapshot of a workspace
func (r *PostgresSnapshotRepository) Load(ctx context.Context, workspaceID string) (*repositories.StoredSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT workspace_id, revision, data, updated_at
		FROM %s
		WHERE workspace_id = $1
	`, r.tables.Snapshots)

	var snap repositories.StoredSnapshot
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, workspaceID).Scan(
		&snap.WorkspaceID,
		&snap.Revision,
		&snap.Data,
		&snap.UpdatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, domain.NewNotFound("workspace", workspaceID)
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &snap, nil
}

// Save writes a snapshot under an optimistic revision check. The current
// row is locked with FOR UPDATE so concurrent writers serialize.
func (r *PostgresSnapshotRepository) Save(ctx context.Context, snap *repositories.StoredSnapshot, expectedRevision int64) error {
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now().UTC()
	}

	return r.txManager.ExecTx(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, r.pool)

		var current int64
		err := exec.QueryRow(ctx, fmt.Sprintf(`
			SELECT revision FROM %s WHERE workspace_id = $1 FOR UPDATE
		`, r.tables.Snapshots), snap.WorkspaceID).Scan(&current)

		switch {
		case isPgNoRowsError(err):
			if expectedRevision != 0 {
				return revisionConflict(snap.WorkspaceID, expectedRevision, 0)
			}
			_, err = exec.Exec(ctx, fmt.Sprintf(`
				INSERT INTO %s (workspace_id, revision, data, updated_at)
				VALUES ($1, $2, $3, $4)
			`, r.tables.Snapshots), snap.WorkspaceID, snap.Revision, snap.Data, snap.UpdatedAt)
			if err != nil {
				if isPgDuplicateError(err) {
					return revisionConflict(snap.WorkspaceID, expectedRevision, -1)
				}
				return fmt.Errorf("insert snapshot: %w", err)
			}
		case err != nil:
			return fmt.Errorf("read snapshot revision: %w", err)
		case current != expectedRevision:
			return revisionConflict(snap.WorkspaceID, expectedRevision, current)
		default:
			_, err = exec.Exec(ctx, fmt.Sprintf(`
				UPDATE %s SET revision = $2, data = $3, updated_at = $4
				WHERE workspace_id = $1
			`, r.tables.Snapshots), snap.WorkspaceID, snap.Revision, snap.Data, snap.UpdatedAt)
			if err != nil {
				return fmt.Errorf("update snapshot: %w", err)
			}
		}

		r.logger.Debug("snapshot saved",
			"workspace_id", snap.WorkspaceID,
			"revision", snap.Revision,
			"bytes", len(snap.Data),
		)
		return nil
	})
}

func revisionConflict(workspaceID string, expected, actual int64) error {
	msg := fmt.Sprintf("workspace %s was modified elsewhere (expected revision %d, found %d)", workspaceID, expected, actual)
	if actual < 0 {
		msg = fmt.Sprintf("workspace %s was created concurrently", workspaceID)
	}
	return &domain.ConflictError{
		Message:      msg,
		ResourceType: "workspace",
		ResourceID:   workspaceID,
	}
}
