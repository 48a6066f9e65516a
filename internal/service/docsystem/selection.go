package docsystem

import (
	models "docintake/internal/domain/models/docsystem"
)

// Selectable reports whether a file may take part in a bulk operation.
// Locked and deleted files are never selectable.
func Selectable(file *models.File) bool {
	return !file.Locked() && !file.IsDeleted
}

// Selection is an ordered set of file ids chosen for a bulk operation.
// The zero value is not usable; call NewSelection.
type Selection struct {
	ids   map[string]struct{}
	order []string
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Select adds a file if it is selectable and reports whether it is now selected.
func (s *Selection) Select(file *models.File) bool {
	if !Selectable(file) {
		return false
	}
	if _, ok := s.ids[file.FileID]; !ok {
		s.ids[file.FileID] = struct{}{}
		s.order = append(s.order, file.FileID)
	}
	return true
}

// Deselect removes a file id.
func (s *Selection) Deselect(fileID string) {
	if _, ok := s.ids[fileID]; !ok {
		return
	}
	delete(s.ids, fileID)
	for i, id := range s.order {
		if id == fileID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle flips a file's membership and returns the new state. Toggling a
// file that is not selectable is a no-op.
func (s *Selection) Toggle(file *models.File) bool {
	if s.Contains(file.FileID) {
		s.Deselect(file.FileID)
		return false
	}
	return s.Select(file)
}

// SelectAllVisible selects every selectable file in visible. When all of
// them are already selected it clears them instead.
func (s *Selection) SelectAllVisible(visible []models.FileMatch) {
	all := true
	for i := range visible {
		f := &visible[i].File
		if Selectable(f) && !s.Contains(f.FileID) {
			all = false
			break
		}
	}
	for i := range visible {
		f := &visible[i].File
		if all {
			s.Deselect(f.FileID)
		} else {
			s.Select(f)
		}
	}
}

// Contains reports whether fileID is selected.
func (s *Selection) Contains(fileID string) bool {
	_, ok := s.ids[fileID]
	return ok
}

// Len returns the number of selected files.
func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
	s.order = nil
}
