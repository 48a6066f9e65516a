package docsystem

import (
	"docintake/internal/domain"
	models "docintake/internal/domain/models/docsystem"
)

// storeEditor builds the next store from the current one. Folders are
// cloned on first write, so the input store is never modified and
// untouched folders keep sharing their file slices.
type storeEditor struct {
	store  models.DocumentStore
	cloned map[int]bool
}

func newStoreEditor(store models.DocumentStore) *storeEditor {
	return &storeEditor{
		store:  store.Clone(),
		cloned: make(map[int]bool),
	}
}

// folder returns a writable pointer to the folder at index i.
func (e *storeEditor) folder(i int) *models.Folder {
	if !e.cloned[i] {
		e.store.Folders[i] = e.store.Folders[i].Clone()
		e.cloned[i] = true
	}
	return &e.store.Folders[i]
}

func (e *storeEditor) setFile(folderIdx, fileIdx int, file models.File) {
	e.folder(folderIdx).Files[fileIdx] = file
}

// removeFiles drops the given file ids from the folder at index i.
func (e *storeEditor) removeFiles(i int, ids map[string]struct{}) {
	folder := e.folder(i)
	kept := make([]models.File, 0, len(folder.Files))
	for _, f := range folder.Files {
		if _, drop := ids[f.FileID]; !drop {
			kept = append(kept, f)
		}
	}
	folder.Files = kept
}

// addFolder appends a folder and returns its index.
func (e *storeEditor) addFolder(folder models.Folder) int {
	e.store.Folders = append(e.store.Folders, folder)
	i := len(e.store.Folders) - 1
	e.cloned[i] = true
	return i
}

func (e *storeEditor) result() models.DocumentStore {
	return e.store
}

// fileRef locates a file inside a store.
type fileRef struct {
	folderIdx int
	fileIdx   int
	folder    *models.Folder
	file      *models.File
}

// locateFile resolves a file id against a store.
func locateFile(store *models.DocumentStore, fileID string) (fileRef, error) {
	fi, ji, ok := store.LocateFile(fileID)
	if !ok {
		return fileRef{}, domain.NewNotFound("file", fileID)
	}
	return fileRef{
		folderIdx: fi,
		fileIdx:   ji,
		folder:    &store.Folders[fi],
		file:      &store.Folders[fi].Files[ji],
	}, nil
}
