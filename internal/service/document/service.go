// Package document implements the upload and retrieval side of the
// enhancement workflow: local validation, source-object storage, and the
// persisted baseline for reviewed edits.
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"guidesync/internal/config"
	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/repositories"
	"guidesync/internal/domain/services"
	"guidesync/internal/upload"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type documentService struct {
	repo   repositories.DocumentRepository
	store  repositories.ObjectStore
	logger *slog.Logger
}

// NewService creates the document service on top of the document repository
// and the object store.
func NewService(repo repositories.DocumentRepository, store repositories.ObjectStore, logger *slog.Logger) services.DocumentService {
	return &documentService{
		repo:   repo,
		store:  store,
		logger: logger.With("component", "document_service"),
	}
}

func validateUploadRequest(req *services.UploadRequest) error {
	err := validation.Errors{
		"user_id":      validation.Validate(req.UserID, validation.Required),
		"journal_name": validation.Validate(req.JournalName, validation.Length(0, config.MaxJournalNameLength)),
		"text":         validation.Validate(req.ExtractedText, validation.Length(0, config.MaxDocumentBytes)),
	}.Filter()
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

func (s *documentService) Upload(ctx context.Context, req *services.UploadRequest) (*models.Document, error) {
	if req.MimeType == "" {
		req.MimeType = upload.MimeTypeForFile(req.FileName)
	}

	// All validation is local and runs before any storage call.
	if err := upload.ValidateMeta(req.FileName, req.MimeType, req.Size); err != nil {
		return nil, err
	}
	if err := validateUploadRequest(req); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, config.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload body: %w", err)
	}
	if int64(len(body)) > config.MaxUploadBytes {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("file exceeds the %dMB size limit", config.MaxUploadBytes>>20),
		}
	}

	if req.MimeType == upload.MimePDF {
		info, err := upload.InspectPDF(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		s.logger.Debug("pdf inspected", "file_name", req.FileName, "pages", info.PageCount)
	}

	id := uuid.New().String()
	objectKey := fmt.Sprintf("documents/%s/%s/%s", req.UserID, id, sanitizeFileName(req.FileName))

	if err := s.store.Put(ctx, objectKey, bytes.NewReader(body), int64(len(body)), req.MimeType); err != nil {
		return nil, fmt.Errorf("storing source file: %w", err)
	}

	doc := &models.Document{
		ID:              id,
		UserID:          req.UserID,
		JournalName:     req.JournalName,
		Language:        req.Language,
		FileName:        req.FileName,
		MimeType:        req.MimeType,
		FileSize:        int64(len(body)),
		ObjectKey:       objectKey,
		Status:          models.StatusUploaded,
		OriginalContent: req.ExtractedText,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		// The row is the source of truth; orphaned objects are removed
		// best-effort.
		if rmErr := s.store.Remove(context.WithoutCancel(ctx), objectKey); rmErr != nil {
			s.logger.Warn("orphaned upload object", "object_key", objectKey, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info("document uploaded",
		"document_id", doc.ID,
		"user_id", req.UserID,
		"file_name", req.FileName,
		"size", doc.FileSize)
	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, userID, documentID string) (*models.Document, error) {
	if documentID == "" {
		return nil, &domain.ValidationError{Message: "document id is required"}
	}
	return s.repo.GetByID(ctx, documentID, userID)
}

func (s *documentService) ListDocuments(ctx context.Context, userID string, limit, offset int) ([]models.Document, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *documentService) PersistContent(ctx context.Context, userID, documentID, content string) error {
	if len(content) > config.MaxDocumentBytes {
		return &domain.ValidationError{
			Message: fmt.Sprintf("content exceeds the %dMB document limit", config.MaxDocumentBytes>>20),
		}
	}
	if err := s.repo.PersistContent(ctx, documentID, userID, content); err != nil {
		return err
	}
	s.logger.Info("content persisted", "document_id", documentID, "bytes", len(content))
	return nil
}

// sanitizeFileName keeps object keys flat: path separators in a client
// file name must not create nested keys.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "upload"
	}
	return name
}
