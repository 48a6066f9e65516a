package docsystem

import (
	"strings"
	"time"

	models "docintake/internal/domain/models/docsystem"
)

// FilterFiles returns the files matching opts, in folder then file order.
// It is a pure function of its inputs; now is used only to clamp the date range.
func FilterFiles(folders []models.Folder, opts models.FilterOptions, now time.Time) []models.FileMatch {
	opts.ApplyDefaults()
	dates := opts.ResolveDates(now)
	query := strings.ToLower(opts.Query)

	statuses := make(map[models.FileStatus]struct{}, len(opts.Statuses))
	for _, st := range opts.Statuses {
		if parsed, ok := models.ParseStatus(string(st)); ok {
			statuses[parsed] = struct{}{}
		}
	}
	extensions := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		if ext != "" {
			extensions[ext] = struct{}{}
		}
	}

	var out []models.FileMatch
	for i := range folders {
		folder := &folders[i]
		if opts.Category != "" && folder.Category != opts.Category {
			continue
		}
		if folder.Archived && !opts.IncludeArchived {
			continue
		}
		folderMatches := query != "" && strings.Contains(strings.ToLower(folder.FolderName), query)
		for j := range folder.Files {
			file := &folder.Files[j]
			if file.IsDeleted && !opts.IncludeDeleted {
				continue
			}
			if len(statuses) > 0 {
				if _, ok := statuses[file.Status]; !ok {
					continue
				}
			}
			if len(extensions) > 0 {
				if _, ok := extensions[file.Extension]; !ok {
					continue
				}
			}
			if !dates.Contains(file.UploadInfo.UploadedAt) {
				continue
			}
			if query != "" && !folderMatches && !fileMatchesQuery(file, query) {
				continue
			}
			out = append(out, models.FileMatch{Folder: folder.Summary(), File: *file})
		}
	}
	return out
}

func fileMatchesQuery(file *models.File, query string) bool {
	for _, s := range []string{file.FileID, file.DisplayName(), file.Class} {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

// FilterFolders returns the folders of a category. Archived folders are
// included only when includeArchived is set. An empty category matches all.
func FilterFolders(folders []models.Folder, category models.Category, includeArchived bool) []models.FolderSummary {
	out := make([]models.FolderSummary, 0, len(folders))
	for i := range folders {
		f := &folders[i]
		if category != "" && f.Category != category {
			continue
		}
		if f.Archived && !includeArchived {
			continue
		}
		out = append(out, f.Summary())
	}
	return out
}

// Flatten lists every non-deleted file across all folders, keyed material
// for the notification diff.
func Flatten(folders []models.Folder) []models.FlatFile {
	var out []models.FlatFile
	for i := range folders {
		folder := &folders[i]
		for j := range folder.Files {
			file := &folder.Files[j]
			if file.IsDeleted {
				continue
			}
			out = append(out, models.FlatFile{
				FileID:         file.FileID,
				Filename:       file.DisplayName(),
				FolderID:       folder.ID,
				Category:       folder.Category,
				Status:         file.Status,
				AdminComment:   file.Review.AdminComment,
				RequiredAction: file.Review.RequiredAction,
			})
		}
	}
	return out
}
