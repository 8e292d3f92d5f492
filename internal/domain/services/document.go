package services

import (
	"context"
	"io"

	"guidesync/internal/domain/models"
)

// DocumentService handles document upload, retrieval, and persistence of
// reviewed edits.
type DocumentService interface {
	// Upload validates the file locally (type, size) before any storage
	// or network call, stores the source object, and creates the
	// document row with a server-assigned id.
	Upload(ctx context.Context, req *UploadRequest) (*models.Document, error)

	// GetDocument retrieves a document scoped to its owner.
	GetDocument(ctx context.Context, userID, documentID string) (*models.Document, error)

	// ListDocuments returns the user's documents, newest first.
	ListDocuments(ctx context.Context, userID string, limit, offset int) ([]models.Document, error)

	// PersistContent writes a finalized content string for the document.
	// History held by the review controller is explicitly not cleared by
	// a save; this only updates the persisted baseline.
	PersistContent(ctx context.Context, userID, documentID, content string) error
}

// UploadRequest carries one uploaded source file plus its metadata.
type UploadRequest struct {
	UserID      string
	FileName    string
	MimeType    string
	Size        int64
	Body        io.Reader
	JournalName string
	Language    string

	// ExtractedText is the plain text pulled from the file by the upload
	// pipeline; it becomes the document's immutable original_content.
	ExtractedText string
}
