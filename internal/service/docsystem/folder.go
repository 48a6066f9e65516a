package docsystem

import (
	"fmt"
	"log/slog"
	"strings"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

type folderService struct {
	recorder *Recorder
	clock    docsysSvc.Clock
	ids      docsysSvc.IDGenerator
	logger   *slog.Logger
}

// NewFolderService creates the folder lifecycle manager
func NewFolderService(
	recorder *Recorder,
	clock docsysSvc.Clock,
	ids docsysSvc.IDGenerator,
	logger *slog.Logger,
) docsysSvc.FolderLifecycle {
	return &folderService{
		recorder: recorder,
		clock:    clock,
		ids:      ids,
		logger:   logger,
	}
}

// CreateFolder creates a new, active folder in a category
func (s *folderService) CreateFolder(store models.DocumentStore, req *docsysSvc.CreateFolderRequest) (*docsysSvc.MutationResult, error) {
	if err := validateCreateFolderRequest(req); err != nil {
		return nil, err
	}

	folder := newFolder(s.ids, s.clock, req.Name, req.Category, req.Owner)

	next := store.Clone()
	next.Folders = append(next.Folders, folder)

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.FolderName,
		"category", folder.Category,
	)

	return &docsysSvc.MutationResult{
		Store:     next,
		Changed:   true,
		Folder:    &folder,
		Requested: 1,
		Affected:  1,
		Audit: []models.AuditEntry{{
			Action:  "Folder Created",
			Details: fmt.Sprintf("Created folder %q in %s", folder.FolderName, folder.Category.DisplayName()),
		}},
	}, nil
}

// newFolder builds a folder value without committing it anywhere.
func newFolder(ids docsysSvc.IDGenerator, clock docsysSvc.Clock, name string, category models.Category, owner string) models.Folder {
	return models.Folder{
		ID:         ids.NewID(),
		FolderName: strings.TrimSpace(name),
		Category:   category,
		Owner:      strings.TrimSpace(owner),
		CreatedAt:  clock.Now().UTC(),
		Archived:   false,
		Files:      []models.File{},
	}
}

// RenameFolder renames an active folder. Archived folders are read-only.
func (s *folderService) RenameFolder(store models.DocumentStore, req *docsysSvc.RenameFolderRequest) (*docsysSvc.MutationResult, error) {
	idx := store.FindFolder(req.FolderID)
	if idx < 0 {
		return nil, domain.NewNotFound("folder", req.FolderID)
	}
	if err := validateFolderName(req.Name); err != nil {
		return nil, err
	}
	current := store.Folders[idx]
	if current.Archived {
		return nil, &domain.InvalidStateError{
			Message: fmt.Sprintf("folder %q is archived and cannot be renamed", current.FolderName),
		}
	}

	newName := strings.TrimSpace(req.Name)
	oldName := current.FolderName
	if newName == oldName {
		return &docsysSvc.MutationResult{Store: store, Folder: &current, Requested: 1}, nil
	}

	next := store.Clone()
	folder := current.Clone()
	folder.FolderName = newName
	next.Folders[idx] = folder

	s.logger.Info("folder renamed",
		"id", folder.ID,
		"old_name", oldName,
		"new_name", newName,
	)

	return &docsysSvc.MutationResult{
		Store:     next,
		Changed:   true,
		Folder:    &folder,
		Requested: 1,
		Affected:  1,
		Audit: []models.AuditEntry{{
			Action:  "Folder Renamed",
			Details: fmt.Sprintf("Renamed folder %q to %q", oldName, newName),
		}},
	}, nil
}

// ArchiveFolder hides a folder from the active view and records an
// archive entry on every file it contains.
func (s *folderService) ArchiveFolder(store models.DocumentStore, req *docsysSvc.FolderActionRequest) (*docsysSvc.MutationResult, error) {
	return s.setArchived(store, req, true)
}

// RestoreFolder reverses ArchiveFolder.
func (s *folderService) RestoreFolder(store models.DocumentStore, req *docsysSvc.FolderActionRequest) (*docsysSvc.MutationResult, error) {
	return s.setArchived(store, req, false)
}

func (s *folderService) setArchived(store models.DocumentStore, req *docsysSvc.FolderActionRequest, archived bool) (*docsysSvc.MutationResult, error) {
	idx := store.FindFolder(req.FolderID)
	if idx < 0 {
		return nil, domain.NewNotFound("folder", req.FolderID)
	}
	current := store.Folders[idx]
	if current.Archived == archived {
		state := "active"
		if archived {
			state = "archived"
		}
		return nil, &domain.InvalidStateError{
			Message: fmt.Sprintf("folder %q is already %s", current.FolderName, state),
		}
	}

	mutation := Mutation{
		Action:      "Folder Restored",
		ActionType:  models.ActivityRestore,
		Description: fmt.Sprintf("Restored because folder %q was restored", current.FolderName),
		PerformedBy: req.Actor,
	}
	audit := models.AuditEntry{
		Action:  "Folder Restored",
		Details: fmt.Sprintf("Restored folder %q (%d files)", current.FolderName, len(current.Files)),
	}
	if archived {
		mutation.Action = "Folder Archived"
		mutation.ActionType = models.ActivityArchive
		mutation.Description = fmt.Sprintf("Archived because folder %q was archived", current.FolderName)
		audit = models.AuditEntry{
			Action:  "Folder Archived",
			Details: fmt.Sprintf("Archived folder %q (%d files)", current.FolderName, len(current.Files)),
		}
	}

	next := store.Clone()
	folder := current.Clone()
	folder.Archived = archived
	// Files inherit the archived state from the folder; only their history changes.
	for i := range folder.Files {
		folder.Files[i] = s.recorder.RecordMutation(folder.Files[i], mutation)
	}
	next.Folders[idx] = folder

	s.logger.Info("folder archive state changed",
		"id", folder.ID,
		"name", folder.FolderName,
		"archived", archived,
		"file_count", len(folder.Files),
	)

	return &docsysSvc.MutationResult{
		Store:     next,
		Changed:   true,
		Folder:    &folder,
		Files:     folder.Files,
		Requested: len(folder.Files),
		Affected:  len(folder.Files),
		Audit:     []models.AuditEntry{audit},
	}, nil
}

// DeleteFolder removes a folder and every file in it. There is no soft
// delete for folders; callers confirm before invoking it.
func (s *folderService) DeleteFolder(store models.DocumentStore, req *docsysSvc.FolderActionRequest) (*docsysSvc.MutationResult, error) {
	idx := store.FindFolder(req.FolderID)
	if idx < 0 {
		return nil, domain.NewNotFound("folder", req.FolderID)
	}
	return s.remove(store, idx, "Folder Deleted"), nil
}

// PermanentlyDeleteArchivedFolder removes an archived folder and its files.
func (s *folderService) PermanentlyDeleteArchivedFolder(store models.DocumentStore, req *docsysSvc.FolderActionRequest) (*docsysSvc.MutationResult, error) {
	idx := store.FindFolder(req.FolderID)
	if idx < 0 {
		return nil, domain.NewNotFound("folder", req.FolderID)
	}
	if !store.Folders[idx].Archived {
		return nil, &domain.InvalidStateError{
			Message: fmt.Sprintf("folder %q is not archived", store.Folders[idx].FolderName),
		}
	}
	return s.remove(store, idx, "Folder Permanently Deleted"), nil
}

func (s *folderService) remove(store models.DocumentStore, idx int, action string) *docsysSvc.MutationResult {
	removed := store.Folders[idx]

	next := store
	next.Folders = make([]models.Folder, 0, len(store.Folders)-1)
	next.Folders = append(next.Folders, store.Folders[:idx]...)
	next.Folders = append(next.Folders, store.Folders[idx+1:]...)

	s.logger.Info("folder deleted",
		"id", removed.ID,
		"name", removed.FolderName,
		"file_count", len(removed.Files),
		"action", action,
	)

	return &docsysSvc.MutationResult{
		Store:     next,
		Changed:   true,
		Folder:    &removed,
		Files:     removed.Files,
		Requested: 1,
		Affected:  1,
		Audit: []models.AuditEntry{{
			Action:  action,
			Details: fmt.Sprintf("Deleted folder %q and %d files", removed.FolderName, len(removed.Files)),
		}},
	}
}
