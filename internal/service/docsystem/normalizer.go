package docsystem

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	models "docintake/internal/domain/models/docsystem"

	"github.com/google/uuid"
)

// normalizerNamespace seeds the name-based UUIDs synthesized for records
// that arrive without identifiers.
var normalizerNamespace = uuid.MustParse("6f1c9a52-3d0e-5b7a-9e41-2c8d7f0b6a13")

// recordKind tags a raw record after the shape check.
type recordKind int

const (
	recordUnrecognized recordKind = iota
	recordFolder
	recordLegacyFile
)

func (k recordKind) String() string {
	switch k {
	case recordFolder:
		return "folder"
	case recordLegacyFile:
		return "legacy_file"
	}
	return "unrecognized"
}

// parsedRecord is the result of classifying one raw record. Business logic
// only ever sees this sum type, never the raw shape.
type parsedRecord struct {
	kind recordKind
	obj  rawObject
}

// parseRecord classifies a raw record. A record carrying a files array is a
// folder, as is one carrying only a folder name. A record with a file id or
// filename and no files array is a legacy bare file, even when it names its
// folder. Anything else is unrecognized.
func parseRecord(raw json.RawMessage) parsedRecord {
	obj, ok := decodeObject(raw)
	if !ok {
		return parsedRecord{kind: recordUnrecognized}
	}
	fileKeys := obj.has("fileId", "file_id", "filename", "fileName", "file_name")
	switch {
	case obj.has("files"):
		return parsedRecord{kind: recordFolder, obj: obj}
	case obj.has("folderName", "folder_name") && !fileKeys:
		return parsedRecord{kind: recordFolder, obj: obj}
	case fileKeys || obj.has("name"):
		return parsedRecord{kind: recordLegacyFile, obj: obj}
	}
	return parsedRecord{kind: recordUnrecognized, obj: obj}
}

// Normalizer converts stored records of any known shape into canonical
// folders. It never fails: malformed values degrade to defaults.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a record normalizer
func NewNormalizer(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// MigrationFolderName is the name of the folder that collects legacy bare
// files of a category.
func MigrationFolderName(category models.Category) string {
	return fmt.Sprintf("Migrated %s Files", category.DisplayName())
}

// MigrationFolderID is the deterministic id of a category's migration folder.
func MigrationFolderID(category models.Category) string {
	return uuid.NewSHA1(normalizerNamespace, []byte("migration/"+string(category))).String()
}

// Normalize converts records into canonical folders. Folders without a
// category are assigned category. Legacy bare files are grouped into one
// migration folder per category. Normalizing the output again yields an
// equal structure.
func (n *Normalizer) Normalize(records []json.RawMessage, category models.Category) []models.Folder {
	parsed := make([]parsedRecord, 0, len(records))
	for i, raw := range records {
		rec := parseRecord(raw)
		if rec.kind == recordUnrecognized {
			n.logger.Warn("dropping unrecognized record", "index", i, "category", category)
			continue
		}
		parsed = append(parsed, rec)
	}

	alloc := newFileIDAllocator(nil)
	for _, rec := range parsed {
		for _, id := range explicitFileIDs(rec) {
			alloc.reserve(id)
		}
	}
	assigned := make(map[string]struct{})

	folders := make([]models.Folder, 0, len(parsed))
	folderIdx := make(map[string]int)
	var legacy []parsedRecord
	for _, rec := range parsed {
		if rec.kind == recordLegacyFile {
			legacy = append(legacy, rec)
			continue
		}
		folder := n.normalizeFolder(rec.obj, category, alloc, assigned)
		if i, dup := folderIdx[folder.ID]; dup {
			n.logger.Warn("merging duplicate folder id", "folder_id", folder.ID)
			folders[i].Files = append(folders[i].Files, folder.Files...)
			continue
		}
		folderIdx[folder.ID] = len(folders)
		folders = append(folders, folder)
	}

	for _, rec := range legacy {
		cat := category
		if c, ok := models.ParseCategory(rec.obj.str("category")); ok {
			cat = c
		}
		id := MigrationFolderID(cat)
		i, ok := folderIdx[id]
		if !ok {
			folders = append(folders, models.Folder{
				ID:         id,
				FolderName: MigrationFolderName(cat),
				Category:   cat,
				Owner:      rec.obj.str("uploadedBy", "uploaded_by", "owner", "ownerName"),
				Files:      []models.File{},
			})
			i = len(folders) - 1
			folderIdx[id] = i
		}
		file := n.normalizeFile(rec.obj, &folders[i], alloc, assigned)
		folders[i].Files = append(folders[i].Files, file)
		if folders[i].CreatedAt.IsZero() || file.UploadInfo.UploadedAt.Before(folders[i].CreatedAt) {
			if !file.UploadInfo.UploadedAt.IsZero() {
				folders[i].CreatedAt = file.UploadInfo.UploadedAt
			}
		}
	}

	if len(legacy) > 0 {
		n.logger.Info("migrated legacy file records", "count", len(legacy), "category", category)
	}
	return folders
}

func explicitFileIDs(rec parsedRecord) []string {
	if rec.kind == recordLegacyFile {
		if id := rec.obj.str("fileId", "file_id", "id"); id != "" {
			return []string{id}
		}
		return nil
	}
	var ids []string
	for _, raw := range rec.obj.array("files") {
		if obj, ok := decodeObject(raw); ok {
			if id := obj.str("fileId", "file_id", "id"); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (n *Normalizer) normalizeFolder(obj rawObject, category models.Category, alloc *fileIDAllocator, assigned map[string]struct{}) models.Folder {
	cat := category
	if c, ok := models.ParseCategory(obj.str("category")); ok {
		cat = c
	}
	name := firstNonEmpty(obj.str("folderName", "folder_name", "name"), "Untitled Folder")
	createdAt, _ := obj.timestamp("createdAt", "created_at", "dateCreated")

	id := obj.str("id", "folderId", "folder_id")
	if id == "" {
		id = synthesizeID("folder", string(cat), name, createdAt)
	}

	folder := models.Folder{
		ID:         id,
		FolderName: name,
		Category:   cat,
		Owner:      obj.str("owner", "ownerName", "owner_name", "createdBy", "created_by"),
		CreatedAt:  createdAt,
		Archived:   obj.boolean("archived", "isArchived", "is_archived"),
		Files:      []models.File{},
	}
	for _, raw := range obj.array("files") {
		fileObj, ok := decodeObject(raw)
		if !ok {
			n.logger.Warn("dropping malformed file record", "folder_id", folder.ID)
			continue
		}
		folder.Files = append(folder.Files, n.normalizeFile(fileObj, &folder, alloc, assigned))
	}
	return folder
}

// synthesizeID derives a stable id from the available data. With nothing
// to derive from it falls back to a random id.
func synthesizeID(kind string, parts ...any) string {
	var b strings.Builder
	b.WriteString(kind)
	meaningful := false
	for _, p := range parts {
		s := fmt.Sprint(p)
		if t, ok := p.(time.Time); ok {
			if t.IsZero() {
				continue
			}
			s = t.UTC().Format(time.RFC3339Nano)
		}
		if s == "" {
			continue
		}
		meaningful = true
		b.WriteString("/")
		b.WriteString(s)
	}
	if !meaningful {
		return uuid.NewString()
	}
	return uuid.NewSHA1(normalizerNamespace, []byte(b.String())).String()
}

func (n *Normalizer) normalizeFile(obj rawObject, folder *models.Folder, alloc *fileIDAllocator, assigned map[string]struct{}) models.File {
	md := obj.object("metadata")
	review := obj.object("review")
	info := obj.object("uploadInfo", "upload_info")
	// Legacy rows keep metadata and review fields at the top level.
	field := func(src rawObject, keys ...string) string {
		return firstNonEmpty(src.str(keys...), obj.str(keys...))
	}

	id := obj.str("fileId", "file_id", "id")
	if _, dup := assigned[id]; id == "" || dup {
		if id != "" {
			n.logger.Warn("reassigning duplicate file id", "file_id", id, "folder_id", folder.ID)
		}
		id = alloc.allocate(folder)
	}
	assigned[id] = struct{}{}

	filename, extension := splitStoredName(obj)
	if filename == "" {
		filename = id
	}

	status, ok := models.ParseStatus(obj.str("status"))
	if !ok {
		status = models.StatusPendingReview
	}
	prior, _ := models.ParseStatus(obj.str("priorStatus", "prior_status"))
	deleted := obj.boolean("isDeleted", "is_deleted", "deleted") || status == models.StatusDeleted
	if deleted && status != models.StatusDeleted {
		prior, status = status, models.StatusDeleted
	}
	if !deleted {
		prior = ""
	}

	priority, ok := models.ParsePriority(field(md, "priority"))
	if !ok {
		priority = models.PriorityNormal
	}
	confidentiality, ok := models.ParseConfidentiality(field(md, "confidentiality", "confidentialityLevel"))
	if !ok {
		confidentiality = models.ConfidentialityInternal
	}

	file := models.File{
		FileID:      id,
		FolderID:    folder.ID,
		Filename:    filename,
		Extension:   extension,
		Size:        obj.integer("size", "fileSize", "file_size"),
		Status:      status,
		PriorStatus: prior,
		Class: field(md, "class", "documentClass", "document_class", "expenseType", "expense_type",
			"salesType", "sales_type", "statementType", "statement_type"),
		Metadata: models.FileMetadata{
			Vendor:          field(md, "vendor", "vendorName", "vendor_name"),
			Customer:        field(md, "customer", "customerName", "customer_name"),
			PaymentMethod:   field(md, "paymentMethod", "payment_method"),
			InvoiceNumber:   field(md, "invoiceNumber", "invoice_number"),
			InvoiceDate:     field(md, "invoiceDate", "invoice_date"),
			Amount:          field(md, "amount"),
			Currency:        field(md, "currency"),
			AccountNumber:   field(md, "accountNumber", "account_number"),
			StatementPeriod: field(md, "statementPeriod", "statement_period"),
			Confidentiality: confidentiality,
			Priority:        priority,
			Notes:           field(md, "notes", "description"),
		},
		Review: models.ReviewState{
			AdminComment:    field(review, "adminComment", "admin_comment", "comment"),
			RequiredAction:  field(review, "requiredAction", "required_action"),
			RejectionReason: field(review, "rejectionReason", "rejection_reason"),
			ReviewedBy:      field(review, "reviewedBy", "reviewed_by"),
			ReviewedAt:      firstTime(review.timePtr("reviewedAt", "reviewed_at"), obj.timePtr("reviewedAt", "reviewed_at")),
			LockReason:      field(review, "lockReason", "lock_reason"),
			UnlockedBy:      field(review, "unlockedBy", "unlocked_by"),
			UnlockedAt:      firstTime(review.timePtr("unlockedAt", "unlocked_at"), obj.timePtr("unlockedAt", "unlocked_at")),
			UnlockReason:    field(review, "unlockReason", "unlock_reason"),
		},
		IsDeleted:        deleted,
		IsLocked:         obj.boolean("isLocked", "is_locked", "locked"),
		PreviewReference: obj.str("previewReference", "preview_reference", "preview", "previewUrl"),
	}
	// Approval locks unless an explicit unlock is on record.
	if file.Status == models.StatusApproved && file.Review.UnlockedAt == nil {
		file.IsLocked = true
	}

	uploadedAt, ok := firstTimestamp(info, obj, "uploadedAt", "uploaded_at", "uploadDate", "upload_date", "date")
	versions := n.normalizeVersions(obj.array("versions"))
	if !ok {
		if len(versions) > 0 {
			uploadedAt = versions[0].Timestamp
		} else {
			uploadedAt = folder.CreatedAt
		}
	}
	uploadedBy := field(info, "uploadedBy", "uploaded_by", "uploader")
	if uploadedBy == "" && len(versions) > 0 {
		uploadedBy = versions[0].PerformedBy
	}
	source := firstNonEmpty(field(info, "source", "sourceTag", "source_tag"), "migration")

	file.UploadInfo = models.UploadInfo{
		UploadedBy:       uploadedBy,
		UploadedAt:       uploadedAt,
		Source:           source,
		OriginalFilename: firstNonEmpty(info.str("originalFilename", "original_filename", "originalName"), file.DisplayName()),
		Replacements:     normalizeReplacements(info.array("replacements")),
	}

	if len(versions) == 0 {
		versions = []models.VersionEntry{{
			VersionNumber: 1,
			Action:        "Uploaded",
			PerformedBy:   uploadedBy,
			Timestamp:     uploadedAt,
			FileSnapshot:  file.Snapshot(),
		}}
	}
	file.Versions = models.NewLedger(versions...)
	file.UploadInfo.TotalVersions = len(versions)

	activity := n.normalizeActivity(obj.array("activityLog", "activity_log", "activity"), id)
	if len(activity) == 0 {
		activity = []models.ActivityEntry{{
			ID:          synthesizeID("activity", id, 0),
			ActionType:  models.ActivityUpload,
			Description: "Uploaded via " + source,
			PerformedBy: uploadedBy,
			Timestamp:   uploadedAt,
		}}
	}
	file.ActivityLog = models.NewLedger(activity...)

	return file
}

// isCanonicalFile reports whether a file record carries the keys the codec
// always writes. Its name fields are then taken as stored.
func isCanonicalFile(obj rawObject) bool {
	return obj.has("file_id") && obj.has("extension") && obj.has("upload_info")
}

// splitStoredName resolves the base name and extension of a file record.
// Canonical records keep both verbatim. Legacy records without any
// extension field split the filename on its last dot; an explicit legacy
// extension strips a matching suffix from the filename.
func splitStoredName(obj rawObject) (string, string) {
	name := obj.str("filename", "fileName", "file_name", "name")
	if isCanonicalFile(obj) {
		return SanitizeFilename(name), normalizeExtension(obj.str("extension"))
	}
	extKeys := []string{"extension", "ext", "fileExtension", "file_extension"}
	if !obj.has(extKeys...) {
		return SplitFilename(name, "")
	}
	ext := normalizeExtension(obj.str(extKeys...))
	if ext == "" {
		return SanitizeFilename(strings.TrimSpace(name)), ""
	}
	return SplitFilename(name, ext)
}

// normalizeVersions renumbers entries 1..n in stored order.
func (n *Normalizer) normalizeVersions(items []json.RawMessage) []models.VersionEntry {
	out := make([]models.VersionEntry, 0, len(items))
	for _, raw := range items {
		obj, ok := decodeObject(raw)
		if !ok {
			continue
		}
		ts, _ := obj.timestamp("timestamp", "date", "createdAt", "created_at")
		entry := models.VersionEntry{
			VersionNumber: len(out) + 1,
			Action:        firstNonEmpty(obj.str("action"), "Updated"),
			PerformedBy:   obj.str("performedBy", "performed_by", "user"),
			Timestamp:     ts,
			Notes:         obj.str("notes"),
		}
		if snap, ok := obj.lookup("fileSnapshot", "file_snapshot", "snapshot"); ok {
			if s, ok := decodeObject(snap); ok {
				status, _ := models.ParseStatus(s.str("status"))
				entry.FileSnapshot = models.FileSnapshot{
					Filename:         s.str("filename", "fileName"),
					Extension:        normalizeExtension(s.str("extension")),
					Status:           status,
					Class:            s.str("class"),
					FolderID:         s.str("folderId", "folder_id"),
					PreviewReference: s.str("previewReference", "preview_reference"),
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

func (n *Normalizer) normalizeActivity(items []json.RawMessage, fileID string) []models.ActivityEntry {
	out := make([]models.ActivityEntry, 0, len(items))
	for i, raw := range items {
		obj, ok := decodeObject(raw)
		if !ok {
			continue
		}
		ts, _ := obj.timestamp("timestamp", "date")
		actionType := models.ActivityType(strings.ToLower(obj.str("actionType", "action_type", "type")))
		if !knownActivity(actionType) {
			actionType = models.ActivityEdit
		}
		out = append(out, models.ActivityEntry{
			ID:          firstNonEmpty(obj.str("id"), synthesizeID("activity", fileID, i)),
			ActionType:  actionType,
			Description: obj.str("description", "details"),
			PerformedBy: obj.str("performedBy", "performed_by", "user"),
			Timestamp:   ts,
		})
	}
	return out
}

func normalizeReplacements(items []json.RawMessage) []models.Replacement {
	var out []models.Replacement
	for _, raw := range items {
		obj, ok := decodeObject(raw)
		if !ok {
			continue
		}
		ts, _ := obj.timestamp("replacedAt", "replaced_at", "timestamp")
		out = append(out, models.Replacement{
			PreviousFilename:  obj.str("previousFilename", "previous_filename"),
			PreviousExtension: normalizeExtension(obj.str("previousExtension", "previous_extension")),
			Filename:          obj.str("filename", "fileName"),
			Extension:         normalizeExtension(obj.str("extension")),
			ReplacedBy:        obj.str("replacedBy", "replaced_by"),
			ReplacedAt:        ts,
			Source:            obj.str("source"),
			Reason:            obj.str("reason"),
		})
	}
	return out
}

func knownActivity(t models.ActivityType) bool {
	switch t {
	case models.ActivityUpload, models.ActivityView, models.ActivityDownload, models.ActivityEdit,
		models.ActivityDelete, models.ActivityRestore, models.ActivityArchive, models.ActivityMove,
		models.ActivityReplacement, models.ActivityStatus:
		return true
	}
	return false
}

func firstTime(values ...*time.Time) *time.Time {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstTimestamp(primary, fallback rawObject, keys ...string) (time.Time, bool) {
	if t, ok := primary.timestamp(keys...); ok {
		return t, true
	}
	return fallback.timestamp(keys...)
}
