package docsystem_test

import (
	"testing"
	"time"

	"docintake/internal/domain/models/docsystem"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   docsystem.Category
		wantOK bool
	}{
		{"Expenses", docsystem.CategoryExpenses, true},
		{"sales", docsystem.CategorySales, true},
		{"bank statements", docsystem.CategoryBankStatements, true},
		{"Bank-Statements", docsystem.CategoryBankStatements, true},
		{"payroll", "", false},
	}
	for _, tt := range tests {
		got, ok := docsystem.ParseCategory(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   docsystem.FileStatus
		wantOK bool
	}{
		{"PendingReview", docsystem.StatusPendingReview, true},
		{"Pending Review", docsystem.StatusPendingReview, true},
		{"pending", docsystem.StatusPendingReview, true},
		{"Info Requested", docsystem.StatusInfoRequested, true},
		{"approved", docsystem.StatusApproved, true},
		{"Unknown", "", false},
	}
	for _, tt := range tests {
		got, ok := docsystem.ParseStatus(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFile_Locked(t *testing.T) {
	unlockedAt := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		file docsystem.File
		want bool
	}{
		{
			name: "pending is open",
			file: docsystem.File{Status: docsystem.StatusPendingReview},
		},
		{
			name: "explicit lock",
			file: docsystem.File{Status: docsystem.StatusPendingReview, IsLocked: true},
			want: true,
		},
		{
			name: "approved locks implicitly",
			file: docsystem.File{Status: docsystem.StatusApproved},
			want: true,
		},
		{
			name: "approved then unlocked",
			file: docsystem.File{
				Status: docsystem.StatusApproved,
				Review: docsystem.ReviewState{UnlockedAt: &unlockedAt},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.Locked(); got != tt.want {
				t.Errorf("Locked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFolder_Token(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"3f2a9c1e-0000-4000-8000-000000000000", "3F2A9C"},
		{"fld-ab", "AB"},
		{"", "XXXXXX"},
	}
	for _, tt := range tests {
		f := docsystem.Folder{ID: tt.id}
		if got := f.Token(); got != tt.want {
			t.Errorf("Token(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestFolder_Summary(t *testing.T) {
	f := docsystem.Folder{
		ID:         "f1",
		FolderName: "Q1",
		Files: []docsystem.File{
			{FileID: "a"},
			{FileID: "b", IsDeleted: true},
			{FileID: "c"},
		},
	}
	s := f.Summary()
	if s.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", s.FileCount)
	}
	if s.ActiveCount != 2 {
		t.Errorf("ActiveCount = %d, want 2", s.ActiveCount)
	}
}

func TestDocumentStore_CloneIsolatesFolders(t *testing.T) {
	store := docsystem.DocumentStore{Folders: []docsystem.Folder{{ID: "a", FolderName: "One"}}}
	next := store.Clone()
	next.Folders[0].FolderName = "Two"

	if store.Folders[0].FolderName != "One" {
		t.Errorf("original folder renamed to %q", store.Folders[0].FolderName)
	}
}
