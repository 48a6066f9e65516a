package docsystem

import (
	"fmt"
	"log/slog"
	"strings"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

// fileService implements the FileLifecycle interface
type fileService struct {
	recorder *Recorder
	clock    docsysSvc.Clock
	ids      docsysSvc.IDGenerator
	schemas  models.SchemaSet
	logger   *slog.Logger
}

// NewFileService creates the file lifecycle manager
func NewFileService(
	recorder *Recorder,
	clock docsysSvc.Clock,
	ids docsysSvc.IDGenerator,
	schemas models.SchemaSet,
	logger *slog.Logger,
) docsysSvc.FileLifecycle {
	return &fileService{
		recorder: recorder,
		clock:    clock,
		ids:      ids,
		schemas:  schemas,
		logger:   logger,
	}
}

// commitOne replaces a single file in the store and builds the result.
func (s *fileService) commitOne(store models.DocumentStore, ref fileRef, file models.File, audit models.AuditEntry) *docsysSvc.MutationResult {
	editor := newStoreEditor(store)
	editor.setFile(ref.folderIdx, ref.fileIdx, file)
	next := editor.result()
	folder := next.Folders[ref.folderIdx]
	return &docsysSvc.MutationResult{
		Store:     next,
		Changed:   true,
		Folder:    &folder,
		Files:     []models.File{file},
		Requested: 1,
		Affected:  1,
		Audit:     []models.AuditEntry{audit},
	}
}

// EditMetadata applies a metadata patch to a mutable file. Only fields whose
// values change are recorded; a patch that changes nothing is rejected.
func (s *fileService) EditMetadata(store models.DocumentStore, req *docsysSvc.EditMetadataRequest) (*docsysSvc.MutationResult, error) {
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}
	if err := IsMutable(ref.file, ref.folder); err != nil {
		return nil, err
	}

	changes, apply, err := metadataChanges(ref.file, &req.Patch, s.schemas.For(ref.folder.Category))
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, &domain.ValidationError{Message: "no fields changed"}
	}

	description := describeChanges(changes)
	file := s.recorder.RecordMutation(*ref.file, Mutation{
		Action:      "Metadata Updated",
		ActionType:  models.ActivityEdit,
		Description: description,
		PerformedBy: req.Actor,
		Notes:       strings.TrimSpace(req.Notes),
		Patch:       apply,
	})

	s.logger.Debug("file metadata updated",
		"file_id", file.FileID,
		"fields", len(changes),
	)

	return s.commitOne(store, ref, file, models.AuditEntry{
		Action:  "Metadata Updated",
		Details: fmt.Sprintf("%s: %s", file.DisplayName(), description),
	}), nil
}

// SoftDelete marks a file deleted. The file stays in its folder and can be
// restored with its prior status.
func (s *fileService) SoftDelete(store models.DocumentStore, req *docsysSvc.FileActionRequest) (*docsysSvc.MutationResult, error) {
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}
	if err := IsMutable(ref.file, ref.folder); err != nil {
		return nil, err
	}

	file := s.recorder.RecordMutation(*ref.file, softDeleteMutation(req.Actor, ""))

	s.logger.Info("file soft deleted", "file_id", file.FileID, "folder_id", file.FolderID)

	return s.commitOne(store, ref, file, models.AuditEntry{
		Action:  "File Deleted",
		Details: fmt.Sprintf("Deleted %s from %q", file.DisplayName(), ref.folder.FolderName),
	}), nil
}

func softDeleteMutation(actor, notes string) Mutation {
	return Mutation{
		Action:      "File Deleted",
		ActionType:  models.ActivityDelete,
		Description: "File moved to trash",
		PerformedBy: actor,
		Notes:       notes,
		Patch: func(f *models.File) {
			f.IsDeleted = true
			f.PriorStatus = f.Status
			f.Status = models.StatusDeleted
		},
	}
}

// Restore reverses SoftDelete.
func (s *fileService) Restore(store models.DocumentStore, req *docsysSvc.FileActionRequest) (*docsysSvc.MutationResult, error) {
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}
	if ref.folder.Archived {
		return nil, &domain.InvalidStateError{
			Message: fmt.Sprintf("folder %q is archived", ref.folder.FolderName),
		}
	}
	if !ref.file.IsDeleted {
		return nil, &domain.InvalidStateError{
			Message: fmt.Sprintf("file %s is not deleted", ref.file.FileID),
		}
	}

	file := s.recorder.RecordMutation(*ref.file, Mutation{
		Action:      "File Restored",
		ActionType:  models.ActivityRestore,
		Description: "File restored from trash",
		PerformedBy: req.Actor,
		Patch: func(f *models.File) {
			f.IsDeleted = false
			f.Status = f.PriorStatus
			if f.Status == "" || f.Status == models.StatusDeleted {
				f.Status = models.StatusPendingReview
			}
			f.PriorStatus = ""
		},
	})

	s.logger.Info("file restored", "file_id", file.FileID, "status", file.Status)

	return s.commitOne(store, ref, file, models.AuditEntry{
		Action:  "File Restored",
		Details: fmt.Sprintf("Restored %s in %q", file.DisplayName(), ref.folder.FolderName),
	}), nil
}

// Resubmit replaces a file's content. The review state is reset so the new
// content goes back into the review queue.
func (s *fileService) Resubmit(store models.DocumentStore, req *docsysSvc.ResubmitRequest) (*docsysSvc.MutationResult, error) {
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}
	if err := IsMutable(ref.file, ref.folder); err != nil {
		return nil, err
	}
	if err := validateFilename(strings.TrimSpace(req.Item.Name)); err != nil {
		return nil, err
	}
	if req.Item.Size < 0 {
		return nil, &domain.ValidationError{Message: "size cannot be negative"}
	}

	now := s.clock.Now().UTC()
	base, ext := SplitFilename(req.Item.Name, req.Item.ExtensionHint)
	source := sourceTag(req.Item.SourceTag)
	reason := strings.TrimSpace(req.Reason)
	previous := *ref.file

	replacement := models.Replacement{
		PreviousFilename:  previous.Filename,
		PreviousExtension: previous.Extension,
		Filename:          base,
		Extension:         ext,
		ReplacedBy:        req.Actor,
		ReplacedAt:        now,
		Source:            source,
		Reason:            reason,
	}

	description := fmt.Sprintf("Replaced %s with %s", previous.DisplayName(), joinName(base, ext))
	file := s.recorder.RecordMutation(previous, Mutation{
		Action:            "File Replaced",
		ActionType:        models.ActivityReplacement,
		Description:       description,
		PerformedBy:       req.Actor,
		Notes:             reason,
		TimestampOverride: &now,
		Patch: func(f *models.File) {
			f.Filename = base
			f.Extension = ext
			f.Size = req.Item.Size
			f.ContentHandle = req.Item.ContentHandle
			f.PreviewReference = req.PreviewReference
			f.Status = models.StatusPendingReview
			f.Review.RejectionReason = ""
			f.Review.RequiredAction = ""
			f.Review.UnlockedBy = ""
			f.Review.UnlockedAt = nil
			f.Review.UnlockReason = ""
			replacements := make([]models.Replacement, 0, len(f.UploadInfo.Replacements)+1)
			replacements = append(replacements, f.UploadInfo.Replacements...)
			f.UploadInfo.Replacements = append(replacements, replacement)
		},
	})

	s.logger.Info("file resubmitted",
		"file_id", file.FileID,
		"previous", previous.DisplayName(),
		"current", file.DisplayName(),
	)

	result := s.commitOne(store, ref, file, models.AuditEntry{
		Action:  "File Replaced",
		Details: description,
	})
	result.Uploads = []models.UploadHistoryRow{uploadRow(&file, req.Actor, source, now)}
	return result, nil
}

// Review records a reviewer decision on a file awaiting review. An approved
// file is only reviewable again after an explicit unlock.
func (s *fileService) Review(store models.DocumentStore, req *docsysSvc.ReviewRequest) (*docsysSvc.MutationResult, error) {
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}
	if err := IsMutable(ref.file, ref.folder); err != nil {
		return nil, err
	}
	current := ref.file
	if current.Status != models.StatusPendingReview && current.Status != models.StatusApproved {
		return nil, &domain.InvalidStateError{
			Message: fmt.Sprintf("file %s is %s and awaits resubmission", current.FileID, current.Status),
		}
	}

	var (
		status     models.FileStatus
		action     string
		reasonSet  func(*models.ReviewState, string)
		reasonName string
	)
	switch req.Decision {
	case docsysSvc.DecisionApprove:
		status, action = models.StatusApproved, "Approved"
	case docsysSvc.DecisionReject:
		status, action, reasonName = models.StatusRejected, "Rejected", "rejection reason"
		reasonSet = func(r *models.ReviewState, v string) { r.RejectionReason = v }
	case docsysSvc.DecisionRequestInfo:
		status, action, reasonName = models.StatusInfoRequested, "Information Requested", "required action"
		reasonSet = func(r *models.ReviewState, v string) { r.RequiredAction = v }
	default:
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown review decision %q", req.Decision)}
	}
	reason := strings.TrimSpace(req.Reason)
	if reasonSet != nil {
		if err := validateReason(reason, reasonName); err != nil {
			return nil, err
		}
	}
	comment := strings.TrimSpace(req.Comment)

	now := s.clock.Now().UTC()
	description := fmt.Sprintf("Status changed from %s to %s", current.Status, status)
	if reason != "" {
		description += ": " + reason
	}

	file := s.recorder.RecordMutation(*current, Mutation{
		Action:            action,
		ActionType:        models.ActivityStatus,
		Description:       description,
		PerformedBy:       req.Actor,
		Notes:             comment,
		TimestampOverride: &now,
		Patch: func(f *models.File) {
			f.Status = status
			f.Review.ReviewedBy = req.Actor
			f.Review.ReviewedAt = &now
			f.Review.UnlockedBy = ""
			f.Review.UnlockedAt = nil
			f.Review.UnlockReason = ""
			f.Review.RejectionReason = ""
			f.Review.RequiredAction = ""
			if reasonSet != nil {
				reasonSet(&f.Review, reason)
			}
			if comment != "" {
				f.Review.AdminComment = comment
			}
			if status == models.StatusApproved {
				f.IsLocked = true
			}
		},
	})

	s.logger.Info("file reviewed",
		"file_id", file.FileID,
		"decision", req.Decision,
		"status", file.Status,
	)

	return s.commitOne(store, ref, file, models.AuditEntry{
		Action:  action,
		Details: fmt.Sprintf("%s: %s", file.DisplayName(), description),
	}), nil
}

// Comment sets the admin comment. Comments are allowed on locked files.
func (s *fileService) Comment(store models.DocumentStore, req *docsysSvc.CommentRequest) (*docsysSvc.MutationResult, error) {
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}
	if err := checkReviewable(ref); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(req.Text)
	if err := validateReason(text, "comment"); err != nil {
		return nil, err
	}
	if text == ref.file.Review.AdminComment {
		folder := *ref.folder
		return &docsysSvc.MutationResult{Store: store, Folder: &folder, Files: []models.File{*ref.file}, Requested: 1}, nil
	}

	file := s.recorder.RecordMutation(*ref.file, Mutation{
		Action:      "Comment Added",
		ActionType:  models.ActivityEdit,
		Description: fmt.Sprintf("Comment: %s", text),
		PerformedBy: req.Actor,
		Patch: func(f *models.File) {
			f.Review.AdminComment = text
		},
	})

	return s.commitOne(store, ref, file, models.AuditEntry{
		Action:  "Comment Added",
		Details: fmt.Sprintf("%s: %s", file.DisplayName(), text),
	}), nil
}

// Lock explicitly locks a file against edits.
func (s *fileService) Lock(store models.DocumentStore, req *docsysSvc.LockRequest) (*docsysSvc.MutationResult, error) {
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}
	if err := checkReviewable(ref); err != nil {
		return nil, err
	}
	if ref.file.Locked() {
		return nil, &domain.InvalidStateError{
			Message: fmt.Sprintf("file %s is already locked", ref.file.FileID),
		}
	}
	reason := strings.TrimSpace(req.Reason)
	if err := validateReason(reason, "lock reason"); err != nil {
		return nil, err
	}

	file := s.recorder.RecordMutation(*ref.file, Mutation{
		Action:      "File Locked",
		ActionType:  models.ActivityStatus,
		Description: "Locked: " + reason,
		PerformedBy: req.Actor,
		Patch: func(f *models.File) {
			f.IsLocked = true
			f.Review.LockReason = reason
		},
	})

	s.logger.Info("file locked", "file_id", file.FileID)

	return s.commitOne(store, ref, file, models.AuditEntry{
		Action:  "File Locked",
		Details: fmt.Sprintf("%s: %s", file.DisplayName(), reason),
	}), nil
}

// Unlock reopens a locked or approved file for edits and re-review. The
// unlock reason is required and kept until the next review decision.
func (s *fileService) Unlock(store models.DocumentStore, req *docsysSvc.LockRequest) (*docsysSvc.MutationResult, error) {
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}
	if err := checkReviewable(ref); err != nil {
		return nil, err
	}
	if !ref.file.Locked() {
		return nil, &domain.InvalidStateError{
			Message: fmt.Sprintf("file %s is not locked", ref.file.FileID),
		}
	}
	reason := strings.TrimSpace(req.Reason)
	if err := validateReason(reason, "unlock reason"); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	file := s.recorder.RecordMutation(*ref.file, Mutation{
		Action:            "File Unlocked",
		ActionType:        models.ActivityStatus,
		Description:       "Unlocked: " + reason,
		PerformedBy:       req.Actor,
		TimestampOverride: &now,
		Patch: func(f *models.File) {
			f.IsLocked = false
			f.Review.LockReason = ""
			f.Review.UnlockedBy = req.Actor
			f.Review.UnlockedAt = &now
			f.Review.UnlockReason = reason
		},
	})

	s.logger.Info("file unlocked", "file_id", file.FileID)

	return s.commitOne(store, ref, file, models.AuditEntry{
		Action:  "File Unlocked",
		Details: fmt.Sprintf("%s: %s", file.DisplayName(), reason),
	}), nil
}

// RecordAccess appends a view or download entry to the activity log.
// Access is allowed on any file, including locked and deleted ones.
func (s *fileService) RecordAccess(store models.DocumentStore, req *docsysSvc.AccessRequest) (*docsysSvc.MutationResult, error) {
	if !req.Kind.Observational() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("%q is not an access kind", req.Kind)}
	}
	ref, err := locateFile(&store, req.FileID)
	if err != nil {
		return nil, err
	}

	verb := "Viewed"
	if req.Kind == models.ActivityDownload {
		verb = "Downloaded"
	}
	file := s.recorder.RecordActivityOnly(*ref.file, req.Kind, verb+" "+ref.file.DisplayName(), req.Actor)

	editor := newStoreEditor(store)
	editor.setFile(ref.folderIdx, ref.fileIdx, file)
	next := editor.result()
	folder := next.Folders[ref.folderIdx]
	return &docsysSvc.MutationResult{
		Store:     next,
		Changed:   true,
		Folder:    &folder,
		Files:     []models.File{file},
		Requested: 1,
		Affected:  1,
	}, nil
}

// checkReviewable rejects review-state changes on files that are deleted or
// live in an archived folder. Locks do not apply.
func checkReviewable(ref fileRef) error {
	if ref.folder.Archived {
		return &domain.InvalidStateError{
			Message: fmt.Sprintf("folder %q is archived", ref.folder.FolderName),
		}
	}
	if ref.file.IsDeleted {
		return &domain.InvalidStateError{
			Message: fmt.Sprintf("file %s is deleted", ref.file.FileID),
		}
	}
	return nil
}

func sourceTag(tag string) string {
	if tag = strings.TrimSpace(tag); tag != "" {
		return tag
	}
	return "web upload"
}

func joinName(base, ext string) string {
	if ext == "" {
		return base
	}
	return base + "." + ext
}
