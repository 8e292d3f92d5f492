package repositories

import (
	"context"

	"guidesync/internal/domain/models"
)

// DocumentRepository is the persistence gateway for documents.
type DocumentRepository interface {
	// Create inserts a new document row and fills in the server-assigned
	// id and timestamps.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document scoped to its owner.
	GetByID(ctx context.Context, id, userID string) (*models.Document, error)

	// ListByUser returns the user's documents, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Document, error)

	// SetTransformResult records transform output and flips the document
	// to ready. Never touches original_content.
	SetTransformResult(ctx context.Context, id string, result *models.TransformResult) error

	// SetStatus updates only the workflow status column.
	SetStatus(ctx context.Context, id string, status models.DocumentStatus) error

	// PersistContent writes an explicit save of edited content into
	// saved_content. Processed and original content are untouched.
	PersistContent(ctx context.Context, id, userID, content string) error
}
