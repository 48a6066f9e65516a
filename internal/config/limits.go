package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxFilenameLength is the maximum length for an uploaded file name,
	// extension included.
	MaxFilenameLength = 255

	// MaxReasonLength bounds free-text reasons (rejection, unlock, lock,
	// information requests, admin comments).
	MaxReasonLength = 2000

	// MaxBulkFiles is the largest number of file ids accepted by a single
	// bulk operation (move, bulk field set, bulk delete).
	MaxBulkFiles = 500

	// DefaultNotificationFeedSize is how many notifications the workspace
	// keeps in memory when NOTIFICATION_FEED_SIZE is not set.
	DefaultNotificationFeedSize = 200
)
