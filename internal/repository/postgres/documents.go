package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/repositories"
)

// DocumentRepository implements the persistence gateway over Postgres.
type DocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &DocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = `id, user_id, journal_name, language, file_name, mime_type, file_size,
		object_key, status, original_content, processed_content, saved_content,
		guidelines_applied, ai_suggestions, created_at, updated_at`

// Create inserts a new document row and fills in the server-assigned id
// and timestamps.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, journal_name, language, file_name, mime_type,
			file_size, object_key, status, original_content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.ID,
		doc.UserID,
		doc.JournalName,
		doc.Language,
		doc.FileName,
		doc.MimeType,
		doc.FileSize,
		doc.ObjectKey,
		doc.Status,
		doc.OriginalContent,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("document %s: %w", doc.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID, scoped to its owner.
func (r *DocumentRepository) GetByID(ctx context.Context, id, userID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, userID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.JournalName,
		&doc.Language,
		&doc.FileName,
		&doc.MimeType,
		&doc.FileSize,
		&doc.ObjectKey,
		&doc.Status,
		&doc.OriginalContent,
		&doc.ProcessedContent,
		&doc.SavedContent,
		&doc.GuidelinesApplied,
		&doc.AISuggestions,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// ListByUser returns the user's documents, newest first.
func (r *DocumentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, documentColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.JournalName,
			&doc.Language,
			&doc.FileName,
			&doc.MimeType,
			&doc.FileSize,
			&doc.ObjectKey,
			&doc.Status,
			&doc.OriginalContent,
			&doc.ProcessedContent,
			&doc.SavedContent,
			&doc.GuidelinesApplied,
			&doc.AISuggestions,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// SetTransformResult records transform output and flips the document to
// ready. original_content is deliberately not in the SET list.
func (r *DocumentRepository) SetTransformResult(ctx context.Context, id string, result *models.TransformResult) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET processed_content = $2,
			guidelines_applied = $3,
			ai_suggestions = $4,
			status = $5,
			updated_at = now()
		WHERE id = $1
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		id,
		result.ProcessedContent,
		result.GuidelinesApplied,
		result.Suggestions,
		models.StatusReady,
	)
	if err != nil {
		return fmt.Errorf("set transform result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}

	return nil
}

// SetStatus updates only the workflow status column.
func (r *DocumentRepository) SetStatus(ctx context.Context, id string, status models.DocumentStatus) error {
	query := fmt.Sprintf(`
		UPDATE %s SET status = $2, updated_at = now() WHERE id = $1
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}

	return nil
}

// PersistContent writes an explicit save into saved_content.
func (r *DocumentRepository) PersistContent(ctx context.Context, id, userID, content string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET saved_content = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, userID, content)
	if err != nil {
		return &domain.PersistenceError{Message: fmt.Sprintf("persist content: %v", err)}
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}

	r.logger.Info("content persisted", "document_id", id, "bytes", len(content))
	return nil
}
