package docsystem

import (
	"fmt"
	"strings"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

// sameFolderError is returned when every requested file already lives in
// the destination. It matches both ErrValidation and ErrInvalidState.
type sameFolderError struct {
	domain.ValidationError
}

func (e *sameFolderError) Is(target error) bool {
	return target == domain.ErrValidation || target == domain.ErrInvalidState
}

func newSameFolderError(folder *models.Folder) error {
	return &sameFolderError{domain.ValidationError{
		Message: fmt.Sprintf("files are already in folder %q", folder.FolderName),
	}}
}

// Move relocates files into an existing folder or into a new folder created
// in the same commit. Ineligible files are skipped and stay where they are.
func (s *fileService) Move(store models.DocumentStore, req *docsysSvc.MoveRequest) (*docsysSvc.MutationResult, error) {
	destID := strings.TrimSpace(req.DestinationFolderID)
	newName := strings.TrimSpace(req.CreateNew)
	switch {
	case destID == "" && newName == "":
		return nil, &domain.ValidationError{Message: "a destination folder or a new folder name is required"}
	case destID != "" && newName != "":
		return nil, &domain.ValidationError{Message: "choose either an existing destination or a new folder, not both"}
	}
	if newName != "" {
		if err := validateFolderName(newName); err != nil {
			return nil, err
		}
	}

	plan, err := planBulk(&store, req.FileIDs)
	if err != nil {
		return nil, err
	}

	var dest *models.Folder
	destIdx := -1
	if destID != "" {
		destIdx = store.FindFolder(destID)
		if destIdx < 0 {
			return nil, domain.NewNotFound("folder", destID)
		}
		dest = &store.Folders[destIdx]
		if sameFolder(&store, req.FileIDs, dest.ID) {
			return nil, newSameFolderError(dest)
		}
		if dest.Archived {
			return nil, &domain.InvalidStateError{
				Message: fmt.Sprintf("destination folder %q is archived", dest.FolderName),
			}
		}
	}

	var category models.Category
	var owner string
	switch {
	case dest != nil:
		category, owner = dest.Category, dest.Owner
	case len(plan.targets) > 0:
		category, owner = plan.targets[0].ref.folder.Category, plan.targets[0].ref.folder.Owner
	}

	eligible := make([]bulkTarget, 0, len(plan.targets))
	for _, t := range plan.targets {
		switch {
		case dest != nil && t.ref.folder.ID == dest.ID:
			plan.skip(t.file.FileID, docsysSvc.SkipAlreadyInFolder)
		case t.ref.folder.Category != category:
			plan.skip(t.file.FileID, docsysSvc.SkipCategoryMismatch)
		default:
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return unchangedResult(store, plan), nil
	}

	editor := newStoreEditor(store)
	var audit []models.AuditEntry
	if dest == nil {
		folder := newFolder(s.ids, s.clock, newName, category, owner)
		destIdx = editor.addFolder(folder)
		audit = append(audit, models.AuditEntry{
			Action:  "Folder Created",
			Details: fmt.Sprintf("Created folder %q in %s", folder.FolderName, category.DisplayName()),
		})
	}
	target := editor.folder(destIdx)

	removals := make(map[int]map[string]struct{})
	files := make([]models.File, 0, len(eligible))
	for _, t := range eligible {
		from := t.ref.folder.FolderName
		file := s.recorder.RecordMutation(t.file, Mutation{
			Action:      "File Moved",
			ActionType:  models.ActivityMove,
			Description: fmt.Sprintf("Moved from %q to %q", from, target.FolderName),
			PerformedBy: req.Actor,
			Patch: func(f *models.File) {
				f.FolderID = target.ID
			},
		})
		if removals[t.ref.folderIdx] == nil {
			removals[t.ref.folderIdx] = make(map[string]struct{})
		}
		removals[t.ref.folderIdx][file.FileID] = struct{}{}
		files = append(files, file)
	}
	for idx, ids := range removals {
		editor.removeFiles(idx, ids)
	}
	target = editor.folder(destIdx)
	target.Files = append(target.Files, files...)

	s.logger.Info("files moved",
		"destination", target.ID,
		"requested", plan.requested,
		"moved", len(files),
		"skipped", len(plan.skipped),
	)

	audit = append(audit, models.AuditEntry{
		Action:  "Files Moved",
		Details: fmt.Sprintf("Moved %d files to %q", len(files), target.FolderName),
	})
	result := *target
	return &docsysSvc.MutationResult{
		Store:     editor.result(),
		Changed:   true,
		Folder:    &result,
		Files:     files,
		Requested: plan.requested,
		Affected:  len(files),
		Skipped:   plan.skipped,
		Audit:     audit,
	}, nil
}

// sameFolder reports whether every requested file that exists is already
// in folderID.
func sameFolder(store *models.DocumentStore, fileIDs []string, folderID string) bool {
	found := false
	for _, id := range fileIDs {
		fi, _, ok := store.LocateFile(strings.TrimSpace(id))
		if !ok {
			continue
		}
		if store.Folders[fi].ID != folderID {
			return false
		}
		found = true
	}
	return found
}
