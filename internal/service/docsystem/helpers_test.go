package docsystem

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"docintake/internal/config"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// seqIDs hands out "id-1", "id-2", ...
type seqIDs struct {
	n int
}

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires the lifecycle services against a fake clock and ids.
type testEnv struct {
	clock    *fakeClock
	ids      *seqIDs
	schemas  models.SchemaSet
	recorder *Recorder
	folders  docsysSvc.FolderLifecycle
	files    docsysSvc.FileLifecycle
}

func newTestEnv() *testEnv {
	clock := newFakeClock()
	ids := &seqIDs{}
	schemas := config.DefaultCategorySchemas()
	recorder := NewRecorder(clock, ids)
	logger := testLogger()
	return &testEnv{
		clock:    clock,
		ids:      ids,
		schemas:  schemas,
		recorder: recorder,
		folders:  NewFolderService(recorder, clock, ids, logger),
		files:    NewFileService(recorder, clock, ids, schemas, logger),
	}
}

func emptyStore() models.DocumentStore {
	return models.DocumentStore{WorkspaceID: "ws-test", Folders: []models.Folder{}}
}

// createFolder adds a folder and returns the next store and the folder id.
func (e *testEnv) createFolder(t *testing.T, store models.DocumentStore, name string, category models.Category) (models.DocumentStore, string) {
	t.Helper()
	res, err := e.folders.CreateFolder(store, &docsysSvc.CreateFolderRequest{
		Name:     name,
		Category: category,
		Owner:    "client@example.com",
		Actor:    "client@example.com",
	})
	if err != nil {
		t.Fatalf("CreateFolder(%q) error = %v", name, err)
	}
	return res.Store, res.Folder.ID
}

// upload adds files to an existing folder using the first class its
// category schema allows.
func (e *testEnv) upload(t *testing.T, store models.DocumentStore, folderID string, names ...string) (models.DocumentStore, []string) {
	t.Helper()
	idx := store.FindFolder(folderID)
	if idx < 0 {
		t.Fatalf("upload: folder %s not found", folderID)
	}
	category := store.Folders[idx].Category
	class := e.schemas.For(category).Classes[0]

	entries := make([]docsysSvc.UploadEntry, len(names))
	for i, name := range names {
		entries[i] = docsysSvc.UploadEntry{
			Item:     docsysSvc.UploadedItem{Name: name, Size: 1024},
			Metadata: docsysSvc.UploadMetadata{Class: class},
		}
	}
	res, err := e.files.UploadFiles(store, &docsysSvc.UploadRequest{
		FolderID: folderID,
		Category: category,
		Entries:  entries,
		Actor:    "client@example.com",
	})
	if err != nil {
		t.Fatalf("UploadFiles() error = %v", err)
	}
	ids := make([]string, len(res.Files))
	for i, f := range res.Files {
		ids[i] = f.FileID
	}
	return res.Store, ids
}

// seed builds a store with one expenses folder holding the named files.
func (e *testEnv) seed(t *testing.T, names ...string) (models.DocumentStore, string, []string) {
	t.Helper()
	store, folderID := e.createFolder(t, emptyStore(), "March receipts", models.CategoryExpenses)
	store, ids := e.upload(t, store, folderID, names...)
	return store, folderID, ids
}

func mustFile(t *testing.T, store models.DocumentStore, fileID string) (models.Folder, models.File) {
	t.Helper()
	fi, ji, ok := store.LocateFile(fileID)
	if !ok {
		t.Fatalf("file %s not found in store", fileID)
	}
	return store.Folders[fi], store.Folders[fi].Files[ji]
}

func mustFolder(t *testing.T, store models.DocumentStore, folderID string) models.Folder {
	t.Helper()
	idx := store.FindFolder(folderID)
	if idx < 0 {
		t.Fatalf("folder %s not found in store", folderID)
	}
	return store.Folders[idx]
}

func strPtr(s string) *string { return &s }
