package docsystem

import (
	"fmt"
	"sync"

	models "docintake/internal/domain/models/docsystem"
	docsysSvc "docintake/internal/domain/services/docsystem"
)

// Differ turns the change between two flattened snapshots into
// notifications.
type Differ struct {
	clock docsysSvc.Clock
	ids   docsysSvc.IDGenerator
}

// NewDiffer creates a snapshot differ
func NewDiffer(clock docsysSvc.Clock, ids docsysSvc.IDGenerator) *Differ {
	return &Differ{clock: clock, ids: ids}
}

// Diff compares previous and current by file id. Only files present in
// both snapshots are considered; new files never notify here. Output is in
// current-snapshot order.
func (d *Differ) Diff(previous, current []models.FlatFile) []models.Notification {
	before := make(map[string]*models.FlatFile, len(previous))
	for i := range previous {
		before[previous[i].FileID] = &previous[i]
	}

	now := d.clock.Now().UTC()
	var out []models.Notification
	emit := func(f *models.FlatFile, typ models.NotificationType, priority models.NotificationPriority, msg string) {
		out = append(out, models.Notification{
			ID:        d.ids.NewID(),
			Type:      typ,
			Message:   msg,
			Timestamp: now,
			Priority:  priority,
			LinkTarget: models.LinkTarget{
				Category: f.Category,
				FolderID: f.FolderID,
				FileID:   f.FileID,
			},
		})
	}

	for i := range current {
		cur := &current[i]
		prev, ok := before[cur.FileID]
		if !ok {
			continue
		}
		if cur.Status != prev.Status {
			typ, priority := statusNotification(cur.Status)
			emit(cur, typ, priority, statusMessage(cur))
		}
		if cur.AdminComment != prev.AdminComment && cur.AdminComment != "" {
			emit(cur, models.NotificationComment, models.PriorityInfo,
				fmt.Sprintf("New comment on %s: %s", cur.Filename, cur.AdminComment))
		}
		if cur.RequiredAction != prev.RequiredAction && cur.RequiredAction != "" {
			emit(cur, models.NotificationInfo, models.PriorityImportant,
				fmt.Sprintf("Information requested for %s: %s", cur.Filename, cur.RequiredAction))
		}
	}
	return out
}

func statusNotification(status models.FileStatus) (models.NotificationType, models.NotificationPriority) {
	switch status {
	case models.StatusApproved:
		return models.NotificationApproved, models.PriorityInfo
	case models.StatusRejected:
		return models.NotificationRejected, models.PriorityCritical
	case models.StatusInfoRequested:
		return models.NotificationInfo, models.PriorityImportant
	}
	return models.NotificationComment, models.PriorityInfo
}

func statusMessage(f *models.FlatFile) string {
	switch f.Status {
	case models.StatusApproved:
		return fmt.Sprintf("%s was approved", f.Filename)
	case models.StatusRejected:
		return fmt.Sprintf("%s was rejected", f.Filename)
	case models.StatusInfoRequested:
		return fmt.Sprintf("More information is needed for %s", f.Filename)
	}
	return fmt.Sprintf("%s is now %s", f.Filename, f.Status)
}

// Feed is a bounded, newest-first list of notifications. It is safe for
// concurrent use.
type Feed struct {
	mu    sync.Mutex
	items []models.Notification
	limit int

	subs   map[int]chan models.Notification
	nextID int
}

// NewFeed creates a feed that keeps at most limit notifications.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 1
	}
	return &Feed{limit: limit}
}

// Push adds notifications, evicting the oldest beyond the limit.
func (f *Feed) Push(items ...models.Notification) {
	if len(items) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make([]models.Notification, 0, len(items)+len(f.items))
	for i := len(items) - 1; i >= 0; i-- {
		next = append(next, items[i])
	}
	next = append(next, f.items...)
	if len(next) > f.limit {
		next = next[:f.limit]
	}
	f.items = next

	// Subscribers that fall behind miss notifications; List still has them.
	for _, n := range items {
		for _, ch := range f.subs {
			select {
			case ch <- n:
			default:
			}
		}
	}
}

// Subscribe returns a channel that receives every notification pushed
// after the call, oldest first. The returned cancel func closes the
// channel and must be called once the caller stops reading.
func (f *Feed) Subscribe(buffer int) (<-chan models.Notification, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subs == nil {
		f.subs = make(map[int]chan models.Notification)
	}
	id := f.nextID
	f.nextID++
	ch := make(chan models.Notification, buffer)
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of open subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// List returns the notifications newest first.
func (f *Feed) List(unreadOnly bool) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Notification, 0, len(f.items))
	for _, n := range f.items {
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out
}

// MarkRead marks one notification read and reports whether it exists.
func (f *Feed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead marks every notification read and returns how many changed.
func (f *Feed) MarkAllRead() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for i := range f.items {
		if !f.items[i].Read {
			f.items[i].Read = true
			n++
		}
	}
	return n
}

// Unread returns the number of unread notifications.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}
