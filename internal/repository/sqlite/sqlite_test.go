package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	"docintake/internal/domain/repositories"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "docintake.db")}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return store
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(openTestStore(t))

	if _, err := repo.Load(ctx, "ws"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Load() on empty db error = %v, want ErrNotFound", err)
	}

	steps := []struct {
		name     string
		revision int64
		expected int64
		wantErr  error
	}{
		{"first save", 1, 0, nil},
		{"second first-save conflicts", 1, 0, domain.ErrConflict},
		{"advance", 2, 1, nil},
		{"stale writer", 3, 1, domain.ErrConflict},
		{"advance again", 3, 2, nil},
	}
	for _, s := range steps {
		err := repo.Save(ctx, &repositories.StoredSnapshot{
			WorkspaceID: "ws",
			Revision:    s.revision,
			Data:        []byte(fmt.Sprintf(`{"revision":%d}`, s.revision)),
		}, s.expected)
		if s.wantErr == nil && err != nil {
			t.Fatalf("%s: Save() error = %v", s.name, err)
		}
		if s.wantErr != nil && !errors.Is(err, s.wantErr) {
			t.Fatalf("%s: Save() error = %v, want %v", s.name, err, s.wantErr)
		}
	}

	snap, err := repo.Load(ctx, "ws")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.Revision != 3 || string(snap.Data) != `{"revision":3}` {
		t.Errorf("snapshot = rev %d data %s", snap.Revision, snap.Data)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}

	if _, err := repo.Load(ctx, "other"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("other workspace error = %v, want ErrNotFound", err)
	}
}

func TestActivityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(openTestStore(t))

	for _, action := range []string{"Uploaded", "Approved", "Locked"} {
		if err := repo.RecordActivity(ctx, "ws", models.AuditEntry{Action: action, Details: "EXP-1"}); err != nil {
			t.Fatalf("RecordActivity() error = %v", err)
		}
	}
	if err := repo.RecordActivity(ctx, "other", models.AuditEntry{Action: "Uploaded"}); err != nil {
		t.Fatal(err)
	}

	records, err := repo.ListActivity(ctx, "ws", 2)
	if err != nil {
		t.Fatalf("ListActivity() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Entry.Action != "Locked" || records[1].Entry.Action != "Approved" {
		t.Errorf("order = %s, %s; want newest first", records[0].Entry.Action, records[1].Entry.Action)
	}
}

func TestUploadHistoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUploadHistoryRepository(openTestStore(t))
	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	rows := []models.UploadHistoryRow{
		{FileID: "EXP-1", FolderID: "f", Filename: "a", Extension: "pdf", Status: models.StatusPendingReview, Timestamp: base},
		{FileID: "EXP-2", FolderID: "f", Filename: "b", Extension: "png", Status: models.StatusPendingReview, Timestamp: base.Add(time.Hour)},
	}
	for _, row := range rows {
		if err := repo.RecordUpload(ctx, "ws", row); err != nil {
			t.Fatalf("RecordUpload() error = %v", err)
		}
	}

	got, err := repo.ListUploads(ctx, "ws", 10)
	if err != nil {
		t.Fatalf("ListUploads() error = %v", err)
	}
	if len(got) != 2 || got[0].FileID != "EXP-2" {
		t.Fatalf("uploads = %+v, want EXP-2 first", got)
	}
	if got[1].Status != models.StatusPendingReview || got[1].Extension != "pdf" {
		t.Errorf("row = %+v", got[1])
	}
	if !got[1].Timestamp.Equal(base) {
		t.Errorf("Timestamp = %v, want %v", got[1].Timestamp, base)
	}
}
