package postgres

import (
	"context"
	"fmt"
	"time"

	models "docintake/internal/domain/models/docsystem"
	"docintake/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresActivityRepository stores the (action, details) audit pairs of
// every committed mutation. It is both the activity sink and its reader.
type PostgresActivityRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(config *RepositoryConfig) *PostgresActivityRepository {
	return &PostgresActivityRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// RecordActivity appends one audit pair
func (r *PostgresActivityRepository) RecordActivity(ctx context.Context, workspaceID string, entry models.AuditEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, action, details, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.ActivityLog)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, workspaceID, entry.Action, entry.Details, time.Now().UTC()); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// ListActivity returns the newest audit pairs first
func (r *PostgresActivityRepository) ListActivity(ctx context.Context, workspaceID string, limit int) ([]repositories.ActivityRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, action, details, created_at
		FROM %s
		WHERE workspace_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, r.tables.ActivityLog)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	records := []repositories.ActivityRecord{}
	for rows.Next() {
		var rec repositories.ActivityRecord
		if err := rows.Scan(&rec.ID, &rec.Entry.Action, &rec.Entry.Details, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return records, nil
}
