package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunSchema creates the tables and indexes if they do not exist.
func RunSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	createSnapshots := `
		CREATE TABLE IF NOT EXISTS ` + tables.Snapshots + ` (
			workspace_id TEXT PRIMARY KEY,
			revision BIGINT NOT NULL,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createSnapshots); err != nil {
		return fmt.Errorf("create %s: %w", tables.Snapshots, err)
	}

	createActivity := `
		CREATE TABLE IF NOT EXISTS ` + tables.ActivityLog + ` (
			id BIGSERIAL PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			action TEXT NOT NULL,
			details TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createActivity); err != nil {
		return fmt.Errorf("create %s: %w", tables.ActivityLog, err)
	}

	createUploads := `
		CREATE TABLE IF NOT EXISTS ` + tables.UploadHistory + ` (
			id BIGSERIAL PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			file_id TEXT NOT NULL,
			folder_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			extension TEXT NOT NULL DEFAULT '',
			performed_by TEXT NOT NULL DEFAULT '',
			source_tag TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := pool.Exec(ctx, createUploads); err != nil {
		return fmt.Errorf("create %s: %w", tables.UploadHistory, err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `activity_workspace ON ` + tables.ActivityLog + `(workspace_id, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `uploads_workspace ON ` + tables.UploadHistory + `(workspace_id, uploaded_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `uploads_file ON ` + tables.UploadHistory + `(file_id)`,
	}
	for _, stmt := range indexes {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
