package docsystem

import (
	models "docintake/internal/domain/models/docsystem"
)

// FolderLifecycle holds the pure folder operations. Each one takes the
// current store and returns a MutationResult carrying the next store; the
// input store is never modified.
type FolderLifecycle interface {
	CreateFolder(store models.DocumentStore, req *CreateFolderRequest) (*MutationResult, error)
	RenameFolder(store models.DocumentStore, req *RenameFolderRequest) (*MutationResult, error)
	ArchiveFolder(store models.DocumentStore, req *FolderActionRequest) (*MutationResult, error)
	RestoreFolder(store models.DocumentStore, req *FolderActionRequest) (*MutationResult, error)
	DeleteFolder(store models.DocumentStore, req *FolderActionRequest) (*MutationResult, error)
	PermanentlyDeleteArchivedFolder(store models.DocumentStore, req *FolderActionRequest) (*MutationResult, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
	Owner    string          `json:"owner"`
	Actor    string          `json:"-"` // Set by handler from auth context
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	FolderID string `json:"-"`
	Name     string `json:"name"`
	Actor    string `json:"-"`
}

// FolderActionRequest identifies a folder for archive/restore/delete
type FolderActionRequest struct {
	FolderID string `json:"-"`
	Actor    string `json:"-"`
}
