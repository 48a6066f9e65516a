package docsystem

import (
	"fmt"
	"strconv"
	"strings"

	models "docintake/internal/domain/models/docsystem"
)

// SplitFilename separates an uploaded name into base name and extension.
// The extension hint wins when present. Extensions are lower-cased and
// carry no leading dot.
//
// Examples:
//   - SplitFilename("Invoice 42.PDF", "") → ("Invoice 42", "pdf")
//   - SplitFilename("statement", "csv") → ("statement", "csv")
//   - SplitFilename(".env", "") → (".env", "")
func SplitFilename(name, extensionHint string) (string, string) {
	name = SanitizeFilename(strings.TrimSpace(name))
	hint := normalizeExtension(extensionHint)

	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 && i < len(name)-1 {
		base, ext = name[:i], normalizeExtension(name[i+1:])
	}

	switch {
	case hint == "":
		return base, ext
	case ext == hint:
		return base, hint
	default:
		// Hint disagrees with the suffix: keep the full name as the base.
		return name, hint
	}
}

// SanitizeFilename replaces path separators so a filename can never be
// read as a path.
func SanitizeFilename(name string) string {
	return strings.NewReplacer("/", "-", "\\", "-").Replace(name)
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// fileIDPrefix returns "<CAT>-<FOLDERTOKEN>-" for a folder.
func fileIDPrefix(folder *models.Folder) string {
	return fmt.Sprintf("%s-%s-", folder.Category.Token(), folder.Token())
}

// fileIDAllocator hands out human-readable file ids unique across the
// whole store. The sequence continues from the highest sequence already
// used with the same prefix, so ids are never reused after a delete.
type fileIDAllocator struct {
	used map[string]struct{}
	next map[string]int
}

func newFileIDAllocator(folders []models.Folder) *fileIDAllocator {
	a := &fileIDAllocator{
		used: make(map[string]struct{}),
		next: make(map[string]int),
	}
	for _, folder := range folders {
		for _, file := range folder.Files {
			a.reserve(file.FileID)
		}
	}
	return a
}

// reserve marks id as taken and advances the sequence for its prefix.
func (a *fileIDAllocator) reserve(id string) {
	a.used[id] = struct{}{}
	i := strings.LastIndex(id, "-")
	if i < 0 {
		return
	}
	seq, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return
	}
	prefix := id[:i+1]
	if seq >= a.next[prefix] {
		a.next[prefix] = seq + 1
	}
}

func (a *fileIDAllocator) taken(id string) bool {
	_, ok := a.used[id]
	return ok
}

// allocate returns the next free id for the folder.
func (a *fileIDAllocator) allocate(folder *models.Folder) string {
	prefix := fileIDPrefix(folder)
	seq := a.next[prefix]
	if seq < 1 {
		seq = 1
	}
	for {
		id := fmt.Sprintf("%s%04d", prefix, seq)
		seq++
		if !a.taken(id) {
			a.next[prefix] = seq
			a.used[id] = struct{}{}
			return id
		}
	}
}
