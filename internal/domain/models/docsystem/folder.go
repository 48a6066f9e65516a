package docsystem

import (
	"strings"
	"time"
)

// Folder is a named container of files inside one category. A folder owns
// its files exclusively; a file is in exactly one folder at a time.
type Folder struct {
	ID         string    `json:"id"`
	FolderName string    `json:"folder_name"`
	Category   Category  `json:"category"`
	Owner      string    `json:"owner"`
	CreatedAt  time.Time `json:"created_at"`
	Archived   bool      `json:"archived"`
	Files      []File    `json:"files"`
}

// Token is the short folder code embedded in file ids.
func (f *Folder) Token() string {
	id := strings.ToUpper(strings.ReplaceAll(f.ID, "-", ""))
	id = strings.TrimPrefix(id, "FLD")
	if len(id) > 6 {
		id = id[:6]
	}
	if id == "" {
		return "XXXXXX"
	}
	return id
}

// FindFile returns the index of the file with the given id, or -1.
func (f *Folder) FindFile(fileID string) int {
	for i := range f.Files {
		if f.Files[i].FileID == fileID {
			return i
		}
	}
	return -1
}

// ActiveFiles returns the files that are not soft-deleted.
func (f *Folder) ActiveFiles() []File {
	out := make([]File, 0, len(f.Files))
	for _, file := range f.Files {
		if !file.IsDeleted {
			out = append(out, file)
		}
	}
	return out
}

// Clone returns a copy of the folder whose Files slice can be modified
// without affecting the original. File values share immutable ledgers.
func (f Folder) Clone() Folder {
	if f.Files != nil {
		files := make([]File, len(f.Files))
		copy(files, f.Files)
		f.Files = files
	}
	return f
}

// FolderSummary is a folder without its files.
type FolderSummary struct {
	ID         string    `json:"id"`
	FolderName string    `json:"folder_name"`
	Category   Category  `json:"category"`
	Owner      string    `json:"owner"`
	CreatedAt  time.Time `json:"created_at"`
	Archived   bool      `json:"archived"`
	FileCount  int       `json:"file_count"`
	// ActiveCount excludes soft-deleted files.
	ActiveCount int `json:"active_count"`
}

// Summary returns the folder's summary.
func (f *Folder) Summary() FolderSummary {
	active := 0
	for i := range f.Files {
		if !f.Files[i].IsDeleted {
			active++
		}
	}
	return FolderSummary{
		ID:          f.ID,
		FolderName:  f.FolderName,
		Category:    f.Category,
		Owner:       f.Owner,
		CreatedAt:   f.CreatedAt,
		Archived:    f.Archived,
		FileCount:   len(f.Files),
		ActiveCount: active,
	}
}
