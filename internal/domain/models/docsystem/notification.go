package docsystem

import "time"

// NotificationType classifies a change notification.
type NotificationType string

const (
	NotificationApproved NotificationType = "approved"
	NotificationRejected NotificationType = "rejected"
	NotificationInfo     NotificationType = "info"
	NotificationComment  NotificationType = "comment"
	NotificationUpload   NotificationType = "upload"
)

// NotificationPriority ranks how prominently a notification is surfaced.
type NotificationPriority string

const (
	PriorityCritical  NotificationPriority = "critical"
	PriorityImportant NotificationPriority = "important"
	PriorityInfo      NotificationPriority = "info"
)

// LinkTarget points a notification at the category/folder/file it concerns.
type LinkTarget struct {
	Category Category `json:"category"`
	FolderID string   `json:"folder_id"`
	FileID   string   `json:"file_id,omitempty"`
}

// Notification is an ephemeral change notice; it is not part of the
// persisted document model.
type Notification struct {
	ID         string               `json:"id"`
	Type       NotificationType     `json:"type"`
	Message    string               `json:"message"`
	Timestamp  time.Time            `json:"timestamp"`
	Read       bool                 `json:"read"`
	Priority   NotificationPriority `json:"priority"`
	LinkTarget LinkTarget           `json:"link_target"`
}

// FlatFile is one entry of a flattened snapshot used for diffing.
type FlatFile struct {
	FileID         string     `json:"file_id"`
	Filename       string     `json:"filename"`
	FolderID       string     `json:"folder_id"`
	Category       Category   `json:"category"`
	Status         FileStatus `json:"status"`
	AdminComment   string     `json:"admin_comment,omitempty"`
	RequiredAction string     `json:"required_action,omitempty"`
}
