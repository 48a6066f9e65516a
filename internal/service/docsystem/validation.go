package docsystem

import (
	"errors"
	"fmt"
	"strings"

	"docintake/internal/config"
	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// IsMutable reports whether a file's content and metadata may change.
// Mutability is derived from the file and its parent folder; an archived
// folder makes every file in it read-only without touching the files.
func IsMutable(file *models.File, folder *models.Folder) error {
	if folder.Archived {
		return &domain.InvalidStateError{
			Message: fmt.Sprintf("folder %q is archived", folder.FolderName),
		}
	}
	if file.Locked() {
		return domain.NewLocked(file.FileID)
	}
	if file.IsDeleted {
		return &domain.InvalidStateError{
			Message: fmt.Sprintf("file %s is deleted", file.FileID),
		}
	}
	return nil
}

// validationError converts an ozzo validation failure into a domain error.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	return &domain.ValidationError{Message: err.Error()}
}

func validateFolderName(name string) error {
	return validationError(validation.Validate(strings.TrimSpace(name),
		validation.Required.Error("folder name is required"),
		validation.RuneLength(1, config.MaxFolderNameLength),
	))
}

func validateCreateFolderRequest(req *docsysSvc.CreateFolderRequest) error {
	if err := validateFolderName(req.Name); err != nil {
		return err
	}
	if !req.Category.Valid() {
		return &domain.ValidationError{Message: fmt.Sprintf("unknown category %q", req.Category)}
	}
	return nil
}

func validateUploadRequest(req *docsysSvc.UploadRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Entries, validation.Required.Error("at least one item is required")),
		validation.Field(&req.Category, validation.Required, validation.By(func(value interface{}) error {
			if c, _ := value.(models.Category); !c.Valid() {
				return fmt.Errorf("unknown category %q", c)
			}
			return nil
		})),
	)
	if err != nil {
		return validationError(err)
	}
	if req.FolderID == "" && req.NewFolderName != "" {
		if err := validateFolderName(req.NewFolderName); err != nil {
			return err
		}
	}
	for i, entry := range req.Entries {
		item := entry.Item
		err := validation.ValidateStruct(&item,
			validation.Field(&item.Name,
				validation.Required.Error("item name is required"),
				validation.RuneLength(1, config.MaxFilenameLength),
			),
			validation.Field(&item.Size, validation.Min(int64(0))),
		)
		if err != nil {
			return &domain.ValidationError{Message: fmt.Sprintf("item %d: %v", i+1, err)}
		}
	}
	return nil
}

func validateReason(reason, what string) error {
	return validationError(validation.Validate(strings.TrimSpace(reason),
		validation.Required.Error(what+" is required"),
		validation.RuneLength(1, config.MaxReasonLength),
	))
}

func validateFilename(name string) error {
	return validationError(validation.Validate(name,
		validation.Required.Error("filename is required"),
		validation.RuneLength(1, config.MaxFilenameLength),
	))
}

func validateFileIDs(ids []string) error {
	return validationError(validation.Validate(ids,
		validation.Required.Error("at least one file id is required"),
		validation.Length(1, config.MaxBulkFiles),
	))
}
