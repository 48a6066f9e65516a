package docsystem

import (
	"testing"

	models "docintake/internal/domain/models/docsystem"
)

func TestDiffer_Diff(t *testing.T) {
	base := models.FlatFile{
		FileID:   "EXP-A-0001",
		Filename: "taxi.pdf",
		FolderID: "A",
		Category: models.CategoryExpenses,
		Status:   models.StatusPendingReview,
	}
	with := func(mut func(*models.FlatFile)) models.FlatFile {
		f := base
		mut(&f)
		return f
	}

	type want struct {
		typ      models.NotificationType
		priority models.NotificationPriority
	}
	tests := []struct {
		name     string
		previous []models.FlatFile
		current  []models.FlatFile
		want     []want
	}{
		{
			name:     "approval",
			previous: []models.FlatFile{base},
			current:  []models.FlatFile{with(func(f *models.FlatFile) { f.Status = models.StatusApproved })},
			want:     []want{{models.NotificationApproved, models.PriorityInfo}},
		},
		{
			name:     "rejection is critical",
			previous: []models.FlatFile{base},
			current:  []models.FlatFile{with(func(f *models.FlatFile) { f.Status = models.StatusRejected })},
			want:     []want{{models.NotificationRejected, models.PriorityCritical}},
		},
		{
			name:     "info request with required action",
			previous: []models.FlatFile{base},
			current: []models.FlatFile{with(func(f *models.FlatFile) {
				f.Status = models.StatusInfoRequested
				f.RequiredAction = "add VAT id"
			})},
			want: []want{
				{models.NotificationInfo, models.PriorityImportant},
				{models.NotificationInfo, models.PriorityImportant},
			},
		},
		{
			name:     "back to pending is a comment",
			previous: []models.FlatFile{with(func(f *models.FlatFile) { f.Status = models.StatusRejected })},
			current:  []models.FlatFile{base},
			want:     []want{{models.NotificationComment, models.PriorityInfo}},
		},
		{
			name:     "new comment",
			previous: []models.FlatFile{base},
			current:  []models.FlatFile{with(func(f *models.FlatFile) { f.AdminComment = "thanks" })},
			want:     []want{{models.NotificationComment, models.PriorityInfo}},
		},
		{
			name:     "cleared comment is silent",
			previous: []models.FlatFile{with(func(f *models.FlatFile) { f.AdminComment = "thanks" })},
			current:  []models.FlatFile{base},
		},
		{
			name:    "new file is silent",
			current: []models.FlatFile{base},
		},
		{
			name:     "unchanged",
			previous: []models.FlatFile{base},
			current:  []models.FlatFile{base},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiffer(newFakeClock(), &seqIDs{})
			got := d.Diff(tt.previous, tt.current)
			if len(got) != len(tt.want) {
				t.Fatalf("Diff() returned %d notifications, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, n := range got {
				if n.Type != tt.want[i].typ || n.Priority != tt.want[i].priority {
					t.Errorf("notification %d = (%s, %s), want (%s, %s)", i, n.Type, n.Priority, tt.want[i].typ, tt.want[i].priority)
				}
				if n.LinkTarget.FileID != base.FileID || n.LinkTarget.FolderID != base.FolderID {
					t.Errorf("notification %d link = %+v", i, n.LinkTarget)
				}
				if n.Read {
					t.Errorf("notification %d is already read", i)
				}
			}
		})
	}
}

func TestFeed(t *testing.T) {
	feed := NewFeed(3)
	feed.Push(
		models.Notification{ID: "1"},
		models.Notification{ID: "2"},
	)
	feed.Push(
		models.Notification{ID: "3"},
		models.Notification{ID: "4"},
	)

	list := feed.List(false)
	if len(list) != 3 {
		t.Fatalf("List() len = %d, want 3", len(list))
	}
	for i, want := range []string{"4", "3", "2"} {
		if list[i].ID != want {
			t.Errorf("List()[%d] = %s, want %s", i, list[i].ID, want)
		}
	}

	if !feed.MarkRead("3") {
		t.Error("MarkRead(3) = false")
	}
	if feed.MarkRead("1") {
		t.Error("MarkRead(1) = true for an evicted notification")
	}
	if got := len(feed.List(true)); got != 2 {
		t.Errorf("unread = %d, want 2", got)
	}
	if n := feed.MarkAllRead(); n != 2 {
		t.Errorf("MarkAllRead() = %d, want 2", n)
	}
	if feed.Unread() != 0 {
		t.Errorf("Unread() = %d, want 0", feed.Unread())
	}
}

func TestFeed_Subscribe(t *testing.T) {
	feed := NewFeed(10)
	ch, cancel := feed.Subscribe(1)

	feed.Push(models.Notification{ID: "a"}, models.Notification{ID: "b"})
	got := <-ch
	if got.ID != "a" {
		t.Errorf("first delivered = %s, want a (oldest first)", got.ID)
	}
	select {
	case n := <-ch:
		t.Errorf("slow subscriber received %s beyond its buffer", n.ID)
	default:
	}
	if len(feed.List(false)) != 2 {
		t.Error("dropped delivery also dropped from the feed")
	}

	if feed.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", feed.Subscribers())
	}
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel open after cancel")
	}
	if feed.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after cancel", feed.Subscribers())
	}
	feed.Push(models.Notification{ID: "c"})
}
