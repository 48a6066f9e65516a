package docsystem

import (
	"time"

	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

// Mutation describes one accepted change to a file.
type Mutation struct {
	Action      string // version label, e.g. "Metadata Updated"
	ActionType  models.ActivityType
	Description string
	PerformedBy string
	Notes       string
	// TimestampOverride replaces the clock reading (used by migrations).
	TimestampOverride *time.Time
	// Patch is applied to the copy of the file before the version snapshot
	// is taken. It may be nil for history-only entries (archive cascade).
	Patch func(f *models.File)
}

// Recorder is the only writer of version history and activity logs.
// Every committed file mutation goes through RecordMutation, so each
// commit adds exactly one version entry and one activity entry.
type Recorder struct {
	clock docsysSvc.Clock
	ids   docsysSvc.IDGenerator
}

// NewRecorder creates a new recorder
func NewRecorder(clock docsysSvc.Clock, ids docsysSvc.IDGenerator) *Recorder {
	return &Recorder{clock: clock, ids: ids}
}

// RecordMutation returns file merged with m.Patch plus one new version entry
// (snapshotting the merged state) and one new activity entry.
func (r *Recorder) RecordMutation(file models.File, m Mutation) models.File {
	ts := r.timestamp(m.TimestampOverride)

	next := file
	if m.Patch != nil {
		m.Patch(&next)
	}

	number := 1
	if last, ok := next.Versions.Latest(); ok {
		number = last.VersionNumber + 1
	}

	next.Versions = next.Versions.Append(models.VersionEntry{
		VersionNumber: number,
		Action:        m.Action,
		PerformedBy:   m.PerformedBy,
		Timestamp:     ts,
		Notes:         m.Notes,
		FileSnapshot:  next.Snapshot(),
	})
	next.ActivityLog = next.ActivityLog.Append(models.ActivityEntry{
		ID:          r.ids.NewID(),
		ActionType:  m.ActionType,
		Description: m.Description,
		PerformedBy: m.PerformedBy,
		Timestamp:   ts,
	})
	next.UploadInfo.TotalVersions = next.Versions.Len()

	return next
}

// RecordActivityOnly appends an activity entry for an observational event
// (view, download). No version entry is created and no field changes.
func (r *Recorder) RecordActivityOnly(file models.File, actionType models.ActivityType, description, performedBy string) models.File {
	next := file
	next.ActivityLog = next.ActivityLog.Append(models.ActivityEntry{
		ID:          r.ids.NewID(),
		ActionType:  actionType,
		Description: description,
		PerformedBy: performedBy,
		Timestamp:   r.timestamp(nil),
	})
	return next
}

func (r *Recorder) timestamp(override *time.Time) time.Time {
	if override != nil {
		return override.UTC()
	}
	return r.clock.Now().UTC()
}
