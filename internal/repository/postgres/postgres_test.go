package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	if tables.Snapshots != "test_workspace_snapshots" ||
		tables.ActivityLog != "test_activity_log" ||
		tables.UploadHistory != "test_upload_history" {
		t.Errorf("tables = %+v", tables)
	}
}

func TestPgErrorHelpers(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	other := &pgconn.PgError{Code: "23503"}
	noRows := fmt.Errorf("select: %w", pgx.ErrNoRows)

	if !isPgDuplicateError(dup) {
		t.Error("wrapped unique violation not detected")
	}
	if isPgDuplicateError(other) || isPgDuplicateError(errors.New("x")) {
		t.Error("non-unique error reported as duplicate")
	}
	if !isPgNoRowsError(noRows) || isPgNoRowsError(dup) {
		t.Error("isPgNoRowsError mismatch")
	}
}
