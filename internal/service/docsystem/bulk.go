package docsystem

import (
	"fmt"
	"strings"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

// bulkTarget is a resolved, eligible file of a bulk operation.
type bulkTarget struct {
	ref  fileRef
	file models.File
}

// bulkPlan splits requested ids into eligible targets and skipped ids.
type bulkPlan struct {
	requested int
	found     int
	targets   []bulkTarget
	skipped   []docsysSvc.Skipped
}

func (p *bulkPlan) skip(fileID string, reason docsysSvc.SkipReason) {
	p.skipped = append(p.skipped, docsysSvc.Skipped{FileID: fileID, Reason: reason})
}

// planBulk resolves file ids against the store. Duplicate ids are counted
// once. Eligibility goes through a Selection, so locked and deleted files
// are skipped exactly as the UI would refuse to select them.
func planBulk(store *models.DocumentStore, fileIDs []string) (*bulkPlan, error) {
	if err := validateFileIDs(fileIDs); err != nil {
		return nil, err
	}
	plan := &bulkPlan{}
	sel := NewSelection()
	seen := make(map[string]struct{}, len(fileIDs))
	for _, id := range fileIDs {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		plan.requested++

		ref, err := locateFile(store, id)
		if err != nil {
			plan.skip(id, docsysSvc.SkipNotFound)
			continue
		}
		plan.found++
		switch {
		case ref.folder.Archived:
			plan.skip(id, docsysSvc.SkipArchivedFolder)
		case !sel.Select(ref.file):
			if ref.file.IsDeleted {
				plan.skip(id, docsysSvc.SkipDeleted)
			} else {
				plan.skip(id, docsysSvc.SkipLocked)
			}
		default:
			plan.targets = append(plan.targets, bulkTarget{ref: ref, file: *ref.file})
		}
	}
	if plan.found == 0 {
		return nil, &domain.NotFoundError{
			Message:      "none of the requested files exist",
			ResourceType: "file",
		}
	}
	return plan, nil
}

// unchangedResult reports a bulk operation that touched nothing.
func unchangedResult(store models.DocumentStore, plan *bulkPlan) *docsysSvc.MutationResult {
	return &docsysSvc.MutationResult{
		Store:     store,
		Requested: plan.requested,
		Skipped:   plan.skipped,
	}
}

// BulkSetField sets one field on every eligible file. Files that cannot
// take the value are skipped; the rest are committed together.
func (s *fileService) BulkSetField(store models.DocumentStore, req *docsysSvc.BulkSetFieldRequest) (*docsysSvc.MutationResult, error) {
	value := strings.TrimSpace(req.Value)
	var priority models.Priority
	switch req.Field {
	case docsysSvc.BulkFieldClass:
		if value == "" {
			return nil, &domain.ValidationError{Message: "class value is required"}
		}
	case docsysSvc.BulkFieldPriority:
		p, ok := models.ParsePriority(value)
		if !ok {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown priority %q", req.Value)}
		}
		priority = p
	default:
		return nil, &domain.ValidationError{Message: fmt.Sprintf("field %q cannot be bulk updated", req.Field)}
	}

	plan, err := planBulk(&store, req.FileIDs)
	if err != nil {
		return nil, err
	}

	type change struct {
		target bulkTarget
		from   string
		to     string
		patch  func(*models.File)
	}
	var changes []change
	for _, t := range plan.targets {
		switch req.Field {
		case docsysSvc.BulkFieldClass:
			if !s.schemas.For(t.ref.folder.Category).AllowsClass(value) {
				plan.skip(t.file.FileID, docsysSvc.SkipInvalidValue)
				continue
			}
			if t.file.Class == value {
				plan.skip(t.file.FileID, docsysSvc.SkipUnchanged)
				continue
			}
			changes = append(changes, change{t, t.file.Class, value, func(f *models.File) { f.Class = value }})
		case docsysSvc.BulkFieldPriority:
			if t.file.Metadata.Priority == priority {
				plan.skip(t.file.FileID, docsysSvc.SkipUnchanged)
				continue
			}
			changes = append(changes, change{t, string(t.file.Metadata.Priority), string(priority), func(f *models.File) { f.Metadata.Priority = priority }})
		}
	}
	if len(changes) == 0 {
		return unchangedResult(store, plan), nil
	}

	label := "Class"
	if req.Field == docsysSvc.BulkFieldPriority {
		label = "Priority"
	}
	notes := fmt.Sprintf("Bulk update (%d files)", len(changes))
	editor := newStoreEditor(store)
	files := make([]models.File, 0, len(changes))
	for _, c := range changes {
		file := s.recorder.RecordMutation(c.target.file, Mutation{
			Action:      "Bulk Update",
			ActionType:  models.ActivityEdit,
			Description: fieldChange{label: label, from: c.from, to: c.to}.String(),
			PerformedBy: req.Actor,
			Notes:       notes,
			Patch:       c.patch,
		})
		editor.setFile(c.target.ref.folderIdx, c.target.ref.fileIdx, file)
		files = append(files, file)
	}

	s.logger.Info("bulk field update",
		"field", req.Field,
		"requested", plan.requested,
		"affected", len(files),
		"skipped", len(plan.skipped),
	)

	return &docsysSvc.MutationResult{
		Store:     editor.result(),
		Changed:   true,
		Files:     files,
		Requested: plan.requested,
		Affected:  len(files),
		Skipped:   plan.skipped,
		Audit: []models.AuditEntry{{
			Action:  "Bulk Update",
			Details: fmt.Sprintf("Set %s to %q on %d files", strings.ToLower(label), value, len(files)),
		}},
	}, nil
}

// BulkSoftDelete soft-deletes every eligible file.
func (s *fileService) BulkSoftDelete(store models.DocumentStore, req *docsysSvc.BulkRequest) (*docsysSvc.MutationResult, error) {
	plan, err := planBulk(&store, req.FileIDs)
	if err != nil {
		return nil, err
	}
	if len(plan.targets) == 0 {
		return unchangedResult(store, plan), nil
	}

	mutation := softDeleteMutation(req.Actor, fmt.Sprintf("Bulk delete (%d files)", len(plan.targets)))
	editor := newStoreEditor(store)
	files := make([]models.File, 0, len(plan.targets))
	for _, t := range plan.targets {
		file := s.recorder.RecordMutation(t.file, mutation)
		editor.setFile(t.ref.folderIdx, t.ref.fileIdx, file)
		files = append(files, file)
	}

	s.logger.Info("bulk soft delete",
		"requested", plan.requested,
		"affected", len(files),
		"skipped", len(plan.skipped),
	)

	return &docsysSvc.MutationResult{
		Store:     editor.result(),
		Changed:   true,
		Files:     files,
		Requested: plan.requested,
		Affected:  len(files),
		Skipped:   plan.skipped,
		Audit: []models.AuditEntry{{
			Action:  "Bulk Delete",
			Details: fmt.Sprintf("Deleted %d files", len(files)),
		}},
	}, nil
}
