package docsystem

import (
	"errors"
	"strings"
	"testing"
	"time"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

// ============================================================================
// Upload
// ============================================================================

func TestUploadFiles_IntoExistingFolder(t *testing.T) {
	env := newTestEnv()
	store, folderID := env.createFolder(t, emptyStore(), "March receipts", models.CategoryExpenses)

	res, err := env.files.UploadFiles(store, &docsysSvc.UploadRequest{
		FolderID: folderID,
		Category: models.CategoryExpenses,
		Actor:    "client@example.com",
		Entries: []docsysSvc.UploadEntry{
			{
				Item:     docsysSvc.UploadedItem{Name: "Taxi 12.PDF", Size: 2048, SourceTag: "email"},
				Metadata: docsysSvc.UploadMetadata{Class: "Travel", Vendor: " Yellow Cab "},
			},
			{
				Item:     docsysSvc.UploadedItem{Name: "lunch.jpg", Size: 512},
				Metadata: docsysSvc.UploadMetadata{Class: "Meals", Priority: "urgent"},
			},
		},
	})
	if err != nil {
		t.Fatalf("UploadFiles() error = %v", err)
	}
	if res.Affected != 2 || len(res.Files) != 2 {
		t.Fatalf("Affected = %d, files = %d, want 2", res.Affected, len(res.Files))
	}

	first := res.Files[0]
	if first.Filename != "Taxi 12" || first.Extension != "pdf" {
		t.Errorf("name = %q.%q, want Taxi 12.pdf", first.Filename, first.Extension)
	}
	if first.Status != models.StatusPendingReview {
		t.Errorf("Status = %s, want PendingReview", first.Status)
	}
	if first.Metadata.Vendor != "Yellow Cab" {
		t.Errorf("Vendor = %q, want trimmed", first.Metadata.Vendor)
	}
	if first.UploadInfo.Source != "email" {
		t.Errorf("Source = %q, want email", first.UploadInfo.Source)
	}
	if !strings.HasPrefix(first.FileID, "EXP-") {
		t.Errorf("FileID = %q, want EXP- prefix", first.FileID)
	}
	if first.FileID == res.Files[1].FileID {
		t.Error("uploaded files share an id")
	}
	if v, ok := first.Versions.Latest(); !ok || v.VersionNumber != 1 || v.Action != "Uploaded" {
		t.Errorf("first version = %+v, want version 1 Uploaded", v)
	}
	if first.UploadInfo.TotalVersions != 1 {
		t.Errorf("TotalVersions = %d, want 1", first.UploadInfo.TotalVersions)
	}
	if res.Files[1].Metadata.Priority != models.PriorityUrgent {
		t.Errorf("Priority = %s, want Urgent", res.Files[1].Metadata.Priority)
	}
	if first.Metadata.Priority != models.PriorityNormal {
		t.Errorf("default Priority = %s, want Normal", first.Metadata.Priority)
	}

	if len(res.Uploads) != 2 {
		t.Errorf("upload rows = %d, want 2", len(res.Uploads))
	}
	if len(res.Notifications) != 1 || res.Notifications[0].Type != models.NotificationUpload {
		t.Errorf("notifications = %+v, want one upload notification", res.Notifications)
	}
	if n := len(mustFolder(t, store, folderID).Files); n != 0 {
		t.Errorf("input folder has %d files after upload", n)
	}
}

func TestUploadFiles_CreatesFolder(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name     string
		newName  string
		wantName string
	}{
		{name: "named", newName: "Client drop", wantName: "Client drop"},
		{name: "default name", wantName: "Sales Upload 2024-03-15 09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.files.UploadFiles(emptyStore(), &docsysSvc.UploadRequest{
				NewFolderName: tt.newName,
				Category:      models.CategorySales,
				Actor:         "client",
				Entries: []docsysSvc.UploadEntry{{
					Item:     docsysSvc.UploadedItem{Name: "inv.pdf"},
					Metadata: docsysSvc.UploadMetadata{Class: "Invoice"},
				}},
			})
			if err != nil {
				t.Fatalf("UploadFiles() error = %v", err)
			}
			if len(res.Store.Folders) != 1 {
				t.Fatalf("folders = %d, want 1", len(res.Store.Folders))
			}
			folder := res.Store.Folders[0]
			if folder.FolderName != tt.wantName {
				t.Errorf("FolderName = %q, want %q", folder.FolderName, tt.wantName)
			}
			if folder.Owner != "client" {
				t.Errorf("Owner = %q, want actor", folder.Owner)
			}
			if res.Audit[0].Action != "Folder Created" {
				t.Errorf("first audit = %q, want Folder Created", res.Audit[0].Action)
			}
		})
	}
}

func TestUploadFiles_Rejections(t *testing.T) {
	env := newTestEnv()
	store, folderID := env.createFolder(t, emptyStore(), "Expenses", models.CategoryExpenses)
	archivedStore, archivedID := env.createFolder(t, store, "Old", models.CategoryExpenses)
	res, err := env.folders.ArchiveFolder(archivedStore, &docsysSvc.FolderActionRequest{FolderID: archivedID})
	if err != nil {
		t.Fatalf("ArchiveFolder() error = %v", err)
	}
	archivedStore = res.Store

	good := docsysSvc.UploadEntry{Item: docsysSvc.UploadedItem{Name: "a.pdf"}, Metadata: docsysSvc.UploadMetadata{Class: "Travel"}}

	tests := []struct {
		name    string
		store   models.DocumentStore
		req     docsysSvc.UploadRequest
		wantErr error
	}{
		{
			name:    "no entries",
			store:   store,
			req:     docsysSvc.UploadRequest{FolderID: folderID, Category: models.CategoryExpenses},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "one bad class rejects the batch",
			store: store,
			req: docsysSvc.UploadRequest{FolderID: folderID, Category: models.CategoryExpenses, Entries: []docsysSvc.UploadEntry{
				good,
				{Item: docsysSvc.UploadedItem{Name: "b.pdf"}, Metadata: docsysSvc.UploadMetadata{Class: "Invoice"}},
			}},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "missing class",
			store: store,
			req: docsysSvc.UploadRequest{FolderID: folderID, Category: models.CategoryExpenses, Entries: []docsysSvc.UploadEntry{
				{Item: docsysSvc.UploadedItem{Name: "b.pdf"}},
			}},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "negative size",
			store: store,
			req: docsysSvc.UploadRequest{FolderID: folderID, Category: models.CategoryExpenses, Entries: []docsysSvc.UploadEntry{
				{Item: docsysSvc.UploadedItem{Name: "b.pdf", Size: -1}, Metadata: docsysSvc.UploadMetadata{Class: "Travel"}},
			}},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown folder",
			store:   store,
			req:     docsysSvc.UploadRequest{FolderID: "missing", Category: models.CategoryExpenses, Entries: []docsysSvc.UploadEntry{good}},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "category mismatch",
			store:   store,
			req:     docsysSvc.UploadRequest{FolderID: folderID, Category: models.CategorySales, Entries: []docsysSvc.UploadEntry{{Item: good.Item, Metadata: docsysSvc.UploadMetadata{Class: "Invoice"}}}},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "archived folder",
			store:   archivedStore,
			req:     docsysSvc.UploadRequest{FolderID: archivedID, Category: models.CategoryExpenses, Entries: []docsysSvc.UploadEntry{good}},
			wantErr: domain.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.files.UploadFiles(tt.store, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UploadFiles() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ============================================================================
// Metadata, delete and restore
// ============================================================================

func TestEditMetadata(t *testing.T) {
	env := newTestEnv()
	store, _, ids := env.seed(t, "taxi.pdf")
	id := ids[0]

	t.Run("records only changed fields", func(t *testing.T) {
		res, err := env.files.EditMetadata(store, &docsysSvc.EditMetadataRequest{
			FileID: id,
			Actor:  "client",
			Notes:  "fixed vendor",
			Patch: docsysSvc.MetadataPatch{
				Vendor: strPtr("Yellow Cab"),
				Class:  strPtr("Travel"),
			},
		})
		if err != nil {
			t.Fatalf("EditMetadata() error = %v", err)
		}
		_, f := mustFile(t, res.Store, id)
		if f.Metadata.Vendor != "Yellow Cab" {
			t.Errorf("Vendor = %q", f.Metadata.Vendor)
		}
		v, _ := f.Versions.Latest()
		if v.VersionNumber != 2 || v.Notes != "fixed vendor" {
			t.Errorf("latest version = %+v, want version 2 with notes", v)
		}
		a, _ := f.ActivityLog.Latest()
		if a.ActionType != models.ActivityEdit {
			t.Errorf("activity type = %s, want edit", a.ActionType)
		}
		if strings.Contains(a.Description, "Expense type") {
			t.Errorf("unchanged class recorded: %q", a.Description)
		}
		if !strings.Contains(a.Description, "Vendor") {
			t.Errorf("description %q does not mention Vendor", a.Description)
		}
	})

	t.Run("no change is rejected", func(t *testing.T) {
		_, err := env.files.EditMetadata(store, &docsysSvc.EditMetadataRequest{
			FileID: id,
			Patch:  docsysSvc.MetadataPatch{Class: strPtr("Travel")},
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("class outside schema", func(t *testing.T) {
		_, err := env.files.EditMetadata(store, &docsysSvc.EditMetadataRequest{
			FileID: id,
			Patch:  docsysSvc.MetadataPatch{Class: strPtr("Invoice")},
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("filename sanitized", func(t *testing.T) {
		res, err := env.files.EditMetadata(store, &docsysSvc.EditMetadataRequest{
			FileID: id,
			Patch:  docsysSvc.MetadataPatch{Filename: strPtr("2024/03 taxi")},
		})
		if err != nil {
			t.Fatalf("EditMetadata() error = %v", err)
		}
		if got := res.Files[0].Filename; got != "2024-03 taxi" {
			t.Errorf("Filename = %q, want %q", got, "2024-03 taxi")
		}
	})

	t.Run("unknown file", func(t *testing.T) {
		_, err := env.files.EditMetadata(store, &docsysSvc.EditMetadataRequest{
			FileID: "EXP-NOPE-0001",
			Patch:  docsysSvc.MetadataPatch{Vendor: strPtr("x")},
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestSoftDeleteAndRestore(t *testing.T) {
	env := newTestEnv()
	store, _, ids := env.seed(t, "a.pdf")
	id := ids[0]

	// Move the file to InfoRequested so restore has a non-default status to return to.
	reviewed, err := env.files.Review(store, &docsysSvc.ReviewRequest{
		FileID: id, Decision: docsysSvc.DecisionRequestInfo, Reason: "need receipt", Actor: "reviewer",
	})
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	deleted, err := env.files.SoftDelete(reviewed.Store, &docsysSvc.FileActionRequest{FileID: id, Actor: "client"})
	if err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	_, f := mustFile(t, deleted.Store, id)
	if !f.IsDeleted || f.Status != models.StatusDeleted {
		t.Errorf("after delete: IsDeleted=%v Status=%s", f.IsDeleted, f.Status)
	}

	t.Run("deleted file is immutable", func(t *testing.T) {
		_, err := env.files.EditMetadata(deleted.Store, &docsysSvc.EditMetadataRequest{
			FileID: id, Patch: docsysSvc.MetadataPatch{Vendor: strPtr("x")},
		})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("error = %v, want ErrInvalidState", err)
		}
	})

	t.Run("restore returns prior status", func(t *testing.T) {
		restored, err := env.files.Restore(deleted.Store, &docsysSvc.FileActionRequest{FileID: id})
		if err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		_, f := mustFile(t, restored.Store, id)
		if f.IsDeleted || f.Status != models.StatusInfoRequested {
			t.Errorf("after restore: IsDeleted=%v Status=%s, want InfoRequested", f.IsDeleted, f.Status)
		}
		if f.Versions.Len() != 4 {
			t.Errorf("versions = %d, want 4", f.Versions.Len())
		}
	})

	t.Run("restore of live file fails", func(t *testing.T) {
		_, err := env.files.Restore(store, &docsysSvc.FileActionRequest{FileID: id})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("error = %v, want ErrInvalidState", err)
		}
	})
}

// ============================================================================
// Review, lock and unlock
// ============================================================================

func TestReview(t *testing.T) {
	tests := []struct {
		name       string
		req        docsysSvc.ReviewRequest
		wantStatus models.FileStatus
		wantLocked bool
		wantErr    error
	}{
		{
			name:       "approve locks",
			req:        docsysSvc.ReviewRequest{Decision: docsysSvc.DecisionApprove, Comment: "looks good"},
			wantStatus: models.StatusApproved,
			wantLocked: true,
		},
		{
			name:       "reject with reason",
			req:        docsysSvc.ReviewRequest{Decision: docsysSvc.DecisionReject, Reason: "blurry"},
			wantStatus: models.StatusRejected,
		},
		{
			name:    "reject without reason",
			req:     docsysSvc.ReviewRequest{Decision: docsysSvc.DecisionReject},
			wantErr: domain.ErrValidation,
		},
		{
			name:       "request info",
			req:        docsysSvc.ReviewRequest{Decision: docsysSvc.DecisionRequestInfo, Reason: "add VAT number"},
			wantStatus: models.StatusInfoRequested,
		},
		{
			name:    "unknown decision",
			req:     docsysSvc.ReviewRequest{Decision: "escalate"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			store, _, ids := env.seed(t, "a.pdf")
			tt.req.FileID = ids[0]
			tt.req.Actor = "reviewer@example.com"

			res, err := env.files.Review(store, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Review() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Review() error = %v", err)
			}
			_, f := mustFile(t, res.Store, ids[0])
			if f.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", f.Status, tt.wantStatus)
			}
			if f.Locked() != tt.wantLocked {
				t.Errorf("Locked() = %v, want %v", f.Locked(), tt.wantLocked)
			}
			if f.Review.ReviewedBy != "reviewer@example.com" || f.Review.ReviewedAt == nil {
				t.Errorf("review stamp missing: %+v", f.Review)
			}
			a, _ := f.ActivityLog.Latest()
			if a.ActionType != models.ActivityStatus {
				t.Errorf("activity type = %s, want status", a.ActionType)
			}
		})
	}
}

func TestReview_RejectedAwaitsResubmission(t *testing.T) {
	env := newTestEnv()
	store, _, ids := env.seed(t, "a.pdf")

	rejected, err := env.files.Review(store, &docsysSvc.ReviewRequest{FileID: ids[0], Decision: docsysSvc.DecisionReject, Reason: "wrong file"})
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	_, err = env.files.Review(rejected.Store, &docsysSvc.ReviewRequest{FileID: ids[0], Decision: docsysSvc.DecisionApprove})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("second review error = %v, want ErrInvalidState", err)
	}
}

func TestLockEnforcement(t *testing.T) {
	env := newTestEnv()
	store, _, ids := env.seed(t, "a.pdf")
	id := ids[0]

	approved, err := env.files.Review(store, &docsysSvc.ReviewRequest{FileID: id, Decision: docsysSvc.DecisionApprove})
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	locked := []struct {
		name string
		call func(models.DocumentStore) error
	}{
		{"edit", func(s models.DocumentStore) error {
			_, err := env.files.EditMetadata(s, &docsysSvc.EditMetadataRequest{FileID: id, Patch: docsysSvc.MetadataPatch{Vendor: strPtr("x")}})
			return err
		}},
		{"delete", func(s models.DocumentStore) error {
			_, err := env.files.SoftDelete(s, &docsysSvc.FileActionRequest{FileID: id})
			return err
		}},
		{"resubmit", func(s models.DocumentStore) error {
			_, err := env.files.Resubmit(s, &docsysSvc.ResubmitRequest{FileID: id, Item: docsysSvc.UploadedItem{Name: "b.pdf"}})
			return err
		}},
	}
	for _, tt := range locked {
		t.Run(tt.name+" on approved file", func(t *testing.T) {
			err := tt.call(approved.Store)
			if !errors.Is(err, domain.ErrLocked) {
				t.Fatalf("error = %v, want ErrLocked", err)
			}
			var lockedErr *domain.LockedError
			if !errors.As(err, &lockedErr) || lockedErr.FileID != id {
				t.Errorf("LockedError.FileID = %v, want %s", lockedErr, id)
			}
		})
	}

	t.Run("comment allowed while locked", func(t *testing.T) {
		res, err := env.files.Comment(approved.Store, &docsysSvc.CommentRequest{FileID: id, Text: "filed under Q1"})
		if err != nil {
			t.Fatalf("Comment() error = %v", err)
		}
		if res.Files[0].Review.AdminComment != "filed under Q1" {
			t.Errorf("AdminComment = %q", res.Files[0].Review.AdminComment)
		}
	})

	t.Run("unlock reopens for edits", func(t *testing.T) {
		env.clock.advance(time.Hour)
		unlocked, err := env.files.Unlock(approved.Store, &docsysSvc.LockRequest{FileID: id, Reason: "amount corrected", Actor: "reviewer"})
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}
		_, f := mustFile(t, unlocked.Store, id)
		if f.Locked() {
			t.Fatal("file still locked after unlock")
		}
		if f.Review.UnlockReason != "amount corrected" || f.Review.UnlockedBy != "reviewer" {
			t.Errorf("unlock stamp = %+v", f.Review)
		}
		if _, err := env.files.EditMetadata(unlocked.Store, &docsysSvc.EditMetadataRequest{FileID: id, Patch: docsysSvc.MetadataPatch{Vendor: strPtr("x")}}); err != nil {
			t.Errorf("EditMetadata() after unlock error = %v", err)
		}
	})

	t.Run("unlock requires reason", func(t *testing.T) {
		_, err := env.files.Unlock(approved.Store, &docsysSvc.LockRequest{FileID: id})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("unlock of open file fails", func(t *testing.T) {
		_, err := env.files.Unlock(store, &docsysSvc.LockRequest{FileID: id, Reason: "x"})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("error = %v, want ErrInvalidState", err)
		}
	})

	t.Run("explicit lock", func(t *testing.T) {
		res, err := env.files.Lock(store, &docsysSvc.LockRequest{FileID: id, Reason: "under audit"})
		if err != nil {
			t.Fatalf("Lock() error = %v", err)
		}
		_, f := mustFile(t, res.Store, id)
		if !f.IsLocked || f.Review.LockReason != "under audit" {
			t.Errorf("lock state = %v %q", f.IsLocked, f.Review.LockReason)
		}
		if _, err := env.files.Lock(res.Store, &docsysSvc.LockRequest{FileID: id, Reason: "again"}); !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("second Lock() error = %v, want ErrInvalidState", err)
		}
	})
}

func TestComment_UnchangedTextIsNoOp(t *testing.T) {
	env := newTestEnv()
	store, _, ids := env.seed(t, "a.pdf")

	first, err := env.files.Comment(store, &docsysSvc.CommentRequest{FileID: ids[0], Text: "check date"})
	if err != nil {
		t.Fatalf("Comment() error = %v", err)
	}
	second, err := env.files.Comment(first.Store, &docsysSvc.CommentRequest{FileID: ids[0], Text: " check date "})
	if err != nil {
		t.Fatalf("second Comment() error = %v", err)
	}
	if second.Changed {
		t.Error("Changed = true for identical comment")
	}
}

// ============================================================================
// Resubmission
// ============================================================================

func TestResubmit_ResetsReviewState(t *testing.T) {
	env := newTestEnv()
	store, _, ids := env.seed(t, "scan.jpg")
	id := ids[0]

	rejected, err := env.files.Review(store, &docsysSvc.ReviewRequest{FileID: id, Decision: docsysSvc.DecisionReject, Reason: "unreadable"})
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	env.clock.advance(24 * time.Hour)
	res, err := env.files.Resubmit(rejected.Store, &docsysSvc.ResubmitRequest{
		FileID: id,
		Item:   docsysSvc.UploadedItem{Name: "scan-hires.PNG", Size: 4096, SourceTag: "mobile"},
		Reason: "better scan",
		Actor:  "client",
	})
	if err != nil {
		t.Fatalf("Resubmit() error = %v", err)
	}

	_, f := mustFile(t, res.Store, id)
	if f.FileID != id {
		t.Errorf("FileID changed to %s", f.FileID)
	}
	if f.Status != models.StatusPendingReview {
		t.Errorf("Status = %s, want PendingReview", f.Status)
	}
	if f.Review.RejectionReason != "" {
		t.Errorf("RejectionReason = %q, want cleared", f.Review.RejectionReason)
	}
	if f.Filename != "scan-hires" || f.Extension != "png" {
		t.Errorf("name = %s.%s", f.Filename, f.Extension)
	}
	if len(f.UploadInfo.Replacements) != 1 {
		t.Fatalf("replacements = %d, want 1", len(f.UploadInfo.Replacements))
	}
	r := f.UploadInfo.Replacements[0]
	if r.PreviousFilename != "scan" || r.PreviousExtension != "jpg" || r.Reason != "better scan" {
		t.Errorf("replacement = %+v", r)
	}
	if !r.ReplacedAt.Equal(env.clock.Now()) {
		t.Errorf("ReplacedAt = %v, want %v", r.ReplacedAt, env.clock.Now())
	}
	a, _ := f.ActivityLog.Latest()
	if a.ActionType != models.ActivityReplacement {
		t.Errorf("activity type = %s, want replacement", a.ActionType)
	}
	if len(res.Uploads) != 1 || res.Uploads[0].SourceTag != "mobile" {
		t.Errorf("upload rows = %+v", res.Uploads)
	}

	_, orig := mustFile(t, rejected.Store, id)
	if len(orig.UploadInfo.Replacements) != 0 {
		t.Error("input store gained a replacement")
	}
}

// ============================================================================
// Access
// ============================================================================

func TestRecordAccess(t *testing.T) {
	env := newTestEnv()
	store, _, ids := env.seed(t, "a.pdf")

	deleted, err := env.files.SoftDelete(store, &docsysSvc.FileActionRequest{FileID: ids[0]})
	if err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	res, err := env.files.RecordAccess(deleted.Store, &docsysSvc.AccessRequest{FileID: ids[0], Kind: models.ActivityDownload, Actor: "auditor"})
	if err != nil {
		t.Fatalf("RecordAccess() error = %v", err)
	}
	_, before := mustFile(t, deleted.Store, ids[0])
	_, after := mustFile(t, res.Store, ids[0])
	if after.Versions.Len() != before.Versions.Len() {
		t.Errorf("versions %d -> %d, access must not add a version", before.Versions.Len(), after.Versions.Len())
	}
	if after.ActivityLog.Len() != before.ActivityLog.Len()+1 {
		t.Errorf("activity %d -> %d, want one more", before.ActivityLog.Len(), after.ActivityLog.Len())
	}
	if len(res.Audit) != 0 {
		t.Errorf("access produced audit entries: %+v", res.Audit)
	}

	_, err = env.files.RecordAccess(store, &docsysSvc.AccessRequest{FileID: ids[0], Kind: models.ActivityEdit})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("non-access kind error = %v, want ErrValidation", err)
	}
}
