package docsystem

import (
	"testing"
	"time"

	models "docintake/internal/domain/models/docsystem"
)

func TestRecorder_RecordMutation(t *testing.T) {
	clock := newFakeClock()
	r := NewRecorder(clock, &seqIDs{})

	file := models.File{FileID: "EXP-A-0001", Filename: "taxi", Status: models.StatusPendingReview}
	first := r.RecordMutation(file, Mutation{
		Action:      "Uploaded",
		ActionType:  models.ActivityUpload,
		Description: "Uploaded via web upload",
		PerformedBy: "client",
	})

	clock.advance(time.Minute)
	second := r.RecordMutation(first, Mutation{
		Action:      "Metadata Updated",
		ActionType:  models.ActivityEdit,
		Description: "Updated Filename",
		PerformedBy: "client",
		Notes:       "typo",
		Patch:       func(f *models.File) { f.Filename = "cab" },
	})

	if file.Versions.Len() != 0 || file.ActivityLog.Len() != 0 {
		t.Error("input file gained history")
	}
	if first.Versions.Len() != 1 {
		t.Errorf("first versions = %d, want 1", first.Versions.Len())
	}
	if second.Versions.Len() != 2 || second.ActivityLog.Len() != 2 {
		t.Fatalf("second history = %d versions / %d activity, want 2/2", second.Versions.Len(), second.ActivityLog.Len())
	}

	v, _ := second.Versions.Latest()
	if v.VersionNumber != 2 {
		t.Errorf("VersionNumber = %d, want 2", v.VersionNumber)
	}
	if v.FileSnapshot.Filename != "cab" {
		t.Errorf("snapshot filename = %q, want patched value", v.FileSnapshot.Filename)
	}
	if v.Notes != "typo" {
		t.Errorf("Notes = %q", v.Notes)
	}
	if !v.Timestamp.Equal(clock.Now()) {
		t.Errorf("Timestamp = %v, want %v", v.Timestamp, clock.Now())
	}
	if second.UploadInfo.TotalVersions != 2 {
		t.Errorf("TotalVersions = %d, want 2", second.UploadInfo.TotalVersions)
	}
	a0, a1 := second.ActivityLog.At(0), second.ActivityLog.At(1)
	if a0.ID == a1.ID {
		t.Error("activity entries share an id")
	}
	if first.Filename != "taxi" {
		t.Errorf("earlier value changed to %q", first.Filename)
	}
}

func TestRecorder_VersionNumbersContinueFromLatest(t *testing.T) {
	r := NewRecorder(newFakeClock(), &seqIDs{})
	file := models.File{
		Versions: models.NewLedger(models.VersionEntry{VersionNumber: 7}),
	}
	next := r.RecordMutation(file, Mutation{Action: "Edit"})
	v, _ := next.Versions.Latest()
	if v.VersionNumber != 8 {
		t.Errorf("VersionNumber = %d, want 8", v.VersionNumber)
	}
}

func TestRecorder_TimestampOverride(t *testing.T) {
	r := NewRecorder(newFakeClock(), &seqIDs{})
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 3600))
	next := r.RecordMutation(models.File{}, Mutation{Action: "Migrated", TimestampOverride: &at})

	v, _ := next.Versions.Latest()
	if !v.Timestamp.Equal(at) || v.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp = %v, want %v in UTC", v.Timestamp, at)
	}
}

func TestRecorder_RecordActivityOnly(t *testing.T) {
	r := NewRecorder(newFakeClock(), &seqIDs{})
	file := models.File{Filename: "taxi"}
	next := r.RecordActivityOnly(file, models.ActivityView, "Viewed taxi", "auditor")

	if next.Versions.Len() != 0 {
		t.Errorf("versions = %d, want 0", next.Versions.Len())
	}
	a, ok := next.ActivityLog.Latest()
	if !ok || a.ActionType != models.ActivityView || a.PerformedBy != "auditor" {
		t.Errorf("activity = %+v", a)
	}
}
