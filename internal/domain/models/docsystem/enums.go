package docsystem

import "strings"

// Category is the document workspace a folder belongs to.
type Category string

const (
	CategoryExpenses       Category = "Expenses"
	CategorySales          Category = "Sales"
	CategoryBankStatements Category = "BankStatements"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryExpenses, CategorySales, CategoryBankStatements}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryExpenses, CategorySales, CategoryBankStatements:
		return true
	}
	return false
}

// Token is the short prefix used in human-readable file ids.
func (c Category) Token() string {
	switch c {
	case CategoryExpenses:
		return "EXP"
	case CategorySales:
		return "SAL"
	case CategoryBankStatements:
		return "BNK"
	}
	return "DOC"
}

// DisplayName is the label used in generated folder names ("Bank Statements").
func (c Category) DisplayName() string {
	if c == CategoryBankStatements {
		return "Bank Statements"
	}
	return string(c)
}

// ParseCategory accepts the canonical value and the loose spellings found in
// older stored records ("expenses", "bank statements", "bank-statements").
func ParseCategory(s string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "expenses", "expense":
		return CategoryExpenses, true
	case "sales", "sale":
		return CategorySales, true
	case "bankstatements", "bankstatement", "bank":
		return CategoryBankStatements, true
	}
	return "", false
}

// FileStatus is the review state of a file.
type FileStatus string

const (
	StatusPendingReview FileStatus = "PendingReview"
	StatusApproved      FileStatus = "Approved"
	StatusRejected      FileStatus = "Rejected"
	StatusInfoRequested FileStatus = "InfoRequested"
	StatusDeleted       FileStatus = "Deleted"
)

// ParseStatus maps stored status strings, including legacy display labels
// ("Pending Review", "Info Requested"), onto a FileStatus.
func ParseStatus(s string) (FileStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "pendingreview", "pending", "submitted":
		return StatusPendingReview, true
	case "approved":
		return StatusApproved, true
	case "rejected":
		return StatusRejected, true
	case "inforequested", "info", "moreinforequired":
		return StatusInfoRequested, true
	case "deleted":
		return StatusDeleted, true
	}
	return "", false
}

// Priority is the processing priority of a file.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// ParsePriority is case-insensitive; unknown values report false.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, true
	case "normal", "medium":
		return PriorityNormal, true
	case "high":
		return PriorityHigh, true
	case "urgent", "critical":
		return PriorityUrgent, true
	}
	return "", false
}

// Confidentiality is the handling level of a file.
type Confidentiality string

const (
	ConfidentialityPublic       Confidentiality = "Public"
	ConfidentialityInternal     Confidentiality = "Internal"
	ConfidentialityConfidential Confidentiality = "Confidential"
)

// ParseConfidentiality is case-insensitive; unknown values report false.
func ParseConfidentiality(s string) (Confidentiality, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return ConfidentialityPublic, true
	case "internal", "standard":
		return ConfidentialityInternal, true
	case "confidential", "restricted":
		return ConfidentialityConfidential, true
	}
	return "", false
}

// ActivityType classifies activity-log entries.
type ActivityType string

const (
	ActivityUpload      ActivityType = "upload"
	ActivityView        ActivityType = "view"
	ActivityDownload    ActivityType = "download"
	ActivityEdit        ActivityType = "edit"
	ActivityDelete      ActivityType = "delete"
	ActivityRestore     ActivityType = "restore"
	ActivityArchive     ActivityType = "archive"
	ActivityMove        ActivityType = "move"
	ActivityReplacement ActivityType = "replacement"
	ActivityStatus      ActivityType = "status"
)

// Observational reports whether the activity type never changes file state.
func (t ActivityType) Observational() bool {
	return t == ActivityView || t == ActivityDownload
}
