package docsystem

import (
	"fmt"
	"strings"
	"time"

	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

// UploadFiles adds a batch of items to an existing folder or to a folder
// created for the batch. The batch is all-or-nothing: any invalid entry
// rejects the whole upload before the store is touched.
func (s *fileService) UploadFiles(store models.DocumentStore, req *docsysSvc.UploadRequest) (*docsysSvc.MutationResult, error) {
	if err := validateUploadRequest(req); err != nil {
		return nil, err
	}
	schema := s.schemas.For(req.Category)

	metadata := make([]models.FileMetadata, len(req.Entries))
	classes := make([]string, len(req.Entries))
	for i, entry := range req.Entries {
		class := strings.TrimSpace(entry.Metadata.Class)
		if !schema.AllowsClass(class) {
			err := invalidClassError(schema, class)
			return nil, &domain.ValidationError{Message: fmt.Sprintf("item %d: %s", i+1, err.Error())}
		}
		md, err := uploadMetadata(entry.Metadata, schema)
		if err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("item %d: %s", i+1, err.Error())}
		}
		classes[i] = class
		metadata[i] = md
	}

	owner := strings.TrimSpace(req.Owner)
	if owner == "" {
		owner = req.Actor
	}

	editor := newStoreEditor(store)
	var folderIdx int
	created := false
	if req.FolderID != "" {
		folderIdx = store.FindFolder(req.FolderID)
		if folderIdx < 0 {
			return nil, domain.NewNotFound("folder", req.FolderID)
		}
		target := &store.Folders[folderIdx]
		if target.Archived {
			return nil, &domain.InvalidStateError{
				Message: fmt.Sprintf("folder %q is archived", target.FolderName),
			}
		}
		if target.Category != req.Category {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("folder %q belongs to %s, not %s",
					target.FolderName, target.Category.DisplayName(), req.Category.DisplayName()),
			}
		}
	} else {
		name := strings.TrimSpace(req.NewFolderName)
		if name == "" {
			name = defaultUploadFolderName(req.Category, s.clock.Now())
		}
		folderIdx = editor.addFolder(newFolder(s.ids, s.clock, name, req.Category, owner))
		created = true
	}
	folder := editor.folder(folderIdx)

	now := s.clock.Now().UTC()
	alloc := newFileIDAllocator(store.Folders)
	files := make([]models.File, 0, len(req.Entries))
	rows := make([]models.UploadHistoryRow, 0, len(req.Entries))
	audit := make([]models.AuditEntry, 0, len(req.Entries)+1)
	if created {
		audit = append(audit, models.AuditEntry{
			Action:  "Folder Created",
			Details: fmt.Sprintf("Created folder %q in %s", folder.FolderName, folder.Category.DisplayName()),
		})
	}

	for i, entry := range req.Entries {
		item := entry.Item
		base, ext := SplitFilename(item.Name, item.ExtensionHint)
		source := sourceTag(item.SourceTag)

		file := models.File{
			FileID:           alloc.allocate(folder),
			FolderID:         folder.ID,
			Filename:         base,
			Extension:        ext,
			Size:             item.Size,
			Status:           models.StatusPendingReview,
			Class:            classes[i],
			Metadata:         metadata[i],
			PreviewReference: entry.PreviewReference,
			ContentHandle:    item.ContentHandle,
			UploadInfo: models.UploadInfo{
				UploadedBy:       req.Actor,
				UploadedAt:       now,
				Source:           source,
				OriginalFilename: strings.TrimSpace(item.Name),
			},
		}
		file = s.recorder.RecordMutation(file, Mutation{
			Action:            "Uploaded",
			ActionType:        models.ActivityUpload,
			Description:       "Uploaded via " + source,
			PerformedBy:       req.Actor,
			TimestampOverride: &now,
		})

		folder.Files = append(folder.Files, file)
		files = append(files, file)
		rows = append(rows, uploadRow(&file, req.Actor, source, now))
		audit = append(audit, models.AuditEntry{
			Action:  "File Uploaded",
			Details: fmt.Sprintf("Uploaded %s to %q", file.DisplayName(), folder.FolderName),
		})
	}

	s.logger.Info("files uploaded",
		"folder_id", folder.ID,
		"folder_created", created,
		"count", len(files),
	)

	result := *folder
	return &docsysSvc.MutationResult{
		Store:     editor.result(),
		Changed:   true,
		Folder:    &result,
		Files:     files,
		Requested: len(req.Entries),
		Affected:  len(files),
		Audit:     audit,
		Uploads:   rows,
		Notifications: []models.Notification{{
			ID:        s.ids.NewID(),
			Type:      models.NotificationUpload,
			Message:   fmt.Sprintf("%d file(s) uploaded to %q", len(files), folder.FolderName),
			Timestamp: now,
			Priority:  models.PriorityInfo,
			LinkTarget: models.LinkTarget{
				Category: folder.Category,
				FolderID: folder.ID,
			},
		}},
	}, nil
}

// uploadMetadata resolves the entered metadata, filling defaults from the schema.
func uploadMetadata(in docsysSvc.UploadMetadata, schema models.CategorySchema) (models.FileMetadata, error) {
	priority := schema.DefaultPriority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if in.Priority != "" {
		p, ok := models.ParsePriority(string(in.Priority))
		if !ok {
			return models.FileMetadata{}, fmt.Errorf("unknown priority %q", in.Priority)
		}
		priority = p
	}
	confidentiality := models.ConfidentialityInternal
	if in.Confidentiality != "" {
		c, ok := models.ParseConfidentiality(string(in.Confidentiality))
		if !ok {
			return models.FileMetadata{}, fmt.Errorf("unknown confidentiality %q", in.Confidentiality)
		}
		confidentiality = c
	}
	return models.FileMetadata{
		Vendor:          strings.TrimSpace(in.Vendor),
		Customer:        strings.TrimSpace(in.Customer),
		PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
		InvoiceNumber:   strings.TrimSpace(in.InvoiceNumber),
		InvoiceDate:     strings.TrimSpace(in.InvoiceDate),
		Amount:          strings.TrimSpace(in.Amount),
		Currency:        strings.TrimSpace(in.Currency),
		AccountNumber:   strings.TrimSpace(in.AccountNumber),
		StatementPeriod: strings.TrimSpace(in.StatementPeriod),
		Confidentiality: confidentiality,
		Priority:        priority,
		Notes:           strings.TrimSpace(in.Notes),
	}, nil
}

func defaultUploadFolderName(category models.Category, now time.Time) string {
	return fmt.Sprintf("%s Upload %s", category.DisplayName(), now.UTC().Format("2006-01-02 15:04"))
}

func uploadRow(file *models.File, actor, source string, ts time.Time) models.UploadHistoryRow {
	return models.UploadHistoryRow{
		Filename:    file.Filename,
		Extension:   file.Extension,
		FileID:      file.FileID,
		FolderID:    file.FolderID,
		PerformedBy: actor,
		SourceTag:   source,
		Timestamp:   ts,
		Status:      file.Status,
	}
}
