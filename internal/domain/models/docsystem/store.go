package docsystem

// DocumentStore is the complete normalized state of one client workspace.
// It is the unit the engine commits and the caller persists.
type DocumentStore struct {
	WorkspaceID string   `json:"workspace_id"`
	Revision    int64    `json:"revision"`
	Folders     []Folder `json:"folders"`
}

// FindFolder returns the index of the folder with the given id, or -1.
func (s *DocumentStore) FindFolder(folderID string) int {
	for i := range s.Folders {
		if s.Folders[i].ID == folderID {
			return i
		}
	}
	return -1
}

// LocateFile returns the folder and file indexes of a file id.
func (s *DocumentStore) LocateFile(fileID string) (folderIdx, fileIdx int, ok bool) {
	for i := range s.Folders {
		if j := s.Folders[i].FindFile(fileID); j >= 0 {
			return i, j, true
		}
	}
	return -1, -1, false
}

// FoldersIn returns the folders of one category.
func (s *DocumentStore) FoldersIn(category Category) []Folder {
	var out []Folder
	for _, f := range s.Folders {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a store whose folder slice can be replaced element-wise
// without affecting the receiver.
func (s DocumentStore) Clone() DocumentStore {
	if s.Folders != nil {
		folders := make([]Folder, len(s.Folders))
		copy(folders, s.Folders)
		s.Folders = folders
	}
	return s
}
