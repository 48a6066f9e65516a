package docsystem

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format accepted for date-range bounds.
const DateLayout = "2006-01-02"

// FilterOptions configures a query over folders and files.
// Zero values mean "no constraint" for every field.
type FilterOptions struct {
	// Query is a case-insensitive substring matched against folder name,
	// file id, filename and class.
	Query string

	// Statuses limits results to files in any of these statuses.
	Statuses []FileStatus

	// Extensions limits results to files with any of these extensions
	// (case-insensitive, leading dot ignored).
	Extensions []string

	// From and To bound the upload date inclusively. Empty or unparsable
	// bounds are unbounded; To is clamped to today.
	From string
	To   string

	// Category optionally restricts results to one category.
	Category Category

	// IncludeArchived includes files in archived folders.
	IncludeArchived bool

	// IncludeDeleted includes soft-deleted files.
	IncludeDeleted bool
}

// DateRange is a resolved inclusive range. A nil bound is unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ApplyDefaults normalizes the option values. Extensions are rebuilt into a
// fresh slice so a caller sharing the backing array is left untouched.
func (opts *FilterOptions) ApplyDefaults() {
	opts.Query = strings.TrimSpace(opts.Query)
	if opts.Extensions == nil {
		return
	}
	exts := make([]string, len(opts.Extensions))
	for i, ext := range opts.Extensions {
		exts[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}
	opts.Extensions = exts
}

// Validate checks that enumerated values are known.
func (opts *FilterOptions) Validate() error {
	if opts.Category != "" && !opts.Category.Valid() {
		return fmt.Errorf("unknown category: %q", opts.Category)
	}
	for _, st := range opts.Statuses {
		if _, ok := ParseStatus(string(st)); !ok {
			return fmt.Errorf("unknown status: %q", st)
		}
	}
	return nil
}

// ResolveDates parses From/To relative to now. Bounds that are empty or
// fail to parse are left nil. To is clamped so it never exceeds today, and
// covers the whole of its day.
func (opts *FilterOptions) ResolveDates(now time.Time) DateRange {
	var r DateRange
	loc := now.Location()
	if t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(opts.From), loc); err == nil {
		r.From = &t
	}
	if t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(opts.To), loc); err == nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		if t.After(today) {
			t = today
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		r.To = &end
	}
	return r
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// FileMatch pairs a matched file with a summary of its parent folder.
type FileMatch struct {
	Folder FolderSummary `json:"folder"`
	File   File          `json:"file"`
}
