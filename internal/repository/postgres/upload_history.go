package postgres

import (
	"context"
	"fmt"

	models "docintake/internal/domain/models/docsystem"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUploadHistoryRepository stores one row per uploaded or
// resubmitted file. It is both the upload-history sink and its reader.
type PostgresUploadHistoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUploadHistoryRepository creates a new upload history repository
func NewUploadHistoryRepository(config *RepositoryConfig) *PostgresUploadHistoryRepository {
	return &PostgresUploadHistoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// RecordUpload appends one upload-history row
func (r *PostgresUploadHistoryRepository) RecordUpload(ctx context.Context, workspaceID string, row models.UploadHistoryRow) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, file_id, folder_id, filename, extension, performed_by, source_tag, status, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.UploadHistory)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		workspaceID,
		row.FileID,
		row.FolderID,
		row.Filename,
		row.Extension,
		row.PerformedBy,
		row.SourceTag,
		string(row.Status),
		row.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// ListUploads returns the newest rows first
func (r *PostgresUploadHistoryRepository) ListUploads(ctx context.Context, workspaceID string, limit int) ([]models.UploadHistoryRow, error) {
	query := fmt.Sprintf(`
		SELECT file_id, folder_id, filename, extension, performed_by, source_tag, status, uploaded_at
		FROM %s
		WHERE workspace_id = $1
		ORDER BY uploaded_at DESC, id DESC
		LIMIT $2
	`, r.tables.UploadHistory)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	out := []models.UploadHistoryRow{}
	for rows.Next() {
		var row models.UploadHistoryRow
		var status string
		if err := rows.Scan(
			&row.FileID,
			&row.FolderID,
			&row.Filename,
			&row.Extension,
			&row.PerformedBy,
			&row.SourceTag,
			&status,
			&row.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		row.Status = models.FileStatus(status)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return out, nil
}
