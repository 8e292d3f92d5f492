package models

import (
	"time"
)

// DocumentStatus tracks where a document sits in the enhancement workflow.
type DocumentStatus string

const (
	// StatusUploaded means the source file is stored but no transform has run.
	StatusUploaded DocumentStatus = "uploaded"
	// StatusProcessing means a transform submission is in flight.
	StatusProcessing DocumentStatus = "processing"
	// StatusReady means processed content is available for review.
	StatusReady DocumentStatus = "ready"
	// StatusFailed means the last transform attempt failed; the upload and
	// guideline selection are intact so the user can resubmit.
	StatusFailed DocumentStatus = "failed"
)

type Document struct {
	ID          string         `json:"id" db:"id"`
	UserID      string         `json:"user_id" db:"user_id"`
	JournalName string         `json:"journal_name" db:"journal_name"`
	Language    string         `json:"language" db:"language"`
	FileName    string         `json:"file_name" db:"file_name"`
	MimeType    string         `json:"mime_type" db:"mime_type"`
	FileSize    int64          `json:"file_size" db:"file_size"`
	ObjectKey   string         `json:"-" db:"object_key"` // MinIO key of the uploaded source
	Status      DocumentStatus `json:"status" db:"status"`

	// OriginalContent is the text extracted from the uploaded file.
	// Immutable: no operation in this backend ever rewrites it.
	OriginalContent string `json:"original_content" db:"original_content"`

	// ProcessedContent is the transform service output, the initial
	// corrected version. Never mutated in place; edits live in the
	// review controller's edit session until saved.
	ProcessedContent string `json:"processed_content" db:"processed_content"`

	// SavedContent is the last explicitly persisted edit, empty until the
	// first save. Download/export prefers it over ProcessedContent.
	SavedContent string `json:"saved_content,omitempty" db:"saved_content"`

	GuidelinesApplied *GuidelineProfile `json:"guidelines_applied,omitempty" db:"guidelines_applied"`
	AISuggestions     []string          `json:"ai_suggestions,omitempty" db:"ai_suggestions"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewContent returns the content the review surface should start from:
// the last saved edit when one exists, otherwise the transform output.
func (d *Document) ReviewContent() string {
	if d.SavedContent != "" {
		return d.SavedContent
	}
	return d.ProcessedContent
}
