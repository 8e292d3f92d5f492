package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/services"
)

type reviewService struct {
	documents services.DocumentService
	logger    *slog.Logger

	mu          sync.RWMutex
	controllers map[string]*controller // review ID -> controller
	byDocument  map[string]string      // document ID -> open review ID
}

// NewService creates the review service. Controllers live in memory only;
// closing one (or restarting the process) discards any unsaved history.
func NewService(documents services.DocumentService, logger *slog.Logger) services.ReviewService {
	return &reviewService{
		documents:   documents,
		logger:      logger.With("component", "review_service"),
		controllers: make(map[string]*controller),
		byDocument:  make(map[string]string),
	}
}

func (s *reviewService) OpenDocument(ctx context.Context, userID, documentID string) (*models.ReviewSnapshot, error) {
	// Opening is idempotent: a second open of the same document returns
	// the existing controller instead of resetting its session.
	s.mu.RLock()
	if reviewID, ok := s.byDocument[documentID]; ok {
		ctrl := s.controllers[reviewID]
		s.mu.RUnlock()
		if ctrl.userID != userID {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", documentID)}
		}
		return ctrl.Snapshot(), nil
	}
	s.mu.RUnlock()

	doc, err := s.documents.GetDocument(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.StatusReady {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("document %s is %s, not ready for review", documentID, doc.Status)}
	}

	ctrl := newController(
		uuid.New().String(),
		doc.ID,
		userID,
		doc.OriginalContent,
		doc.ReviewContent(),
		func(ctx context.Context, content string) error {
			return s.documents.PersistContent(ctx, userID, documentID, content)
		},
		s.logger,
	)

	s.mu.Lock()
	// Lost the race to another open of the same document: keep the winner.
	if reviewID, ok := s.byDocument[documentID]; ok {
		existing := s.controllers[reviewID]
		s.mu.Unlock()
		return existing.Snapshot(), nil
	}
	s.controllers[ctrl.id] = ctrl
	s.byDocument[documentID] = ctrl.id
	s.mu.Unlock()

	s.logger.Info("review opened", "review_id", ctrl.id, "document_id", documentID)
	return ctrl.Snapshot(), nil
}

// get looks up an open controller, scoped to its owner. Foreign reviews
// read as not-found rather than forbidden.
func (s *reviewService) get(userID, reviewID string) (*controller, error) {
	s.mu.RLock()
	ctrl, ok := s.controllers[reviewID]
	s.mu.RUnlock()
	if !ok || ctrl.userID != userID {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("review %s not found", reviewID)}
	}
	return ctrl, nil
}

func (s *reviewService) Snapshot(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error) {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return nil, err
	}
	return ctrl.Snapshot(), nil
}

func (s *reviewService) SetViewMode(ctx context.Context, userID, reviewID string, mode models.ViewMode) (*models.ReviewSnapshot, error) {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return nil, err
	}
	return ctrl.SetViewMode(mode), nil
}

func (s *reviewService) ToggleEdit(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error) {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return nil, err
	}
	return ctrl.ToggleEdit(), nil
}

func (s *reviewService) ToggleDiffHighlight(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error) {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return nil, err
	}
	return ctrl.ToggleDiffHighlight(), nil
}

func (s *reviewService) Edit(ctx context.Context, userID, reviewID, content string) (*models.ReviewSnapshot, error) {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return nil, err
	}
	return ctrl.Edit(content)
}

func (s *reviewService) Undo(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error) {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return nil, err
	}
	return ctrl.Undo(), nil
}

func (s *reviewService) Redo(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error) {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return nil, err
	}
	return ctrl.Redo(), nil
}

func (s *reviewService) Save(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error) {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return nil, err
	}
	return ctrl.Save(ctx)
}

func (s *reviewService) Close(ctx context.Context, userID, reviewID string) error {
	ctrl, err := s.get(userID, reviewID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.controllers, reviewID)
	delete(s.byDocument, ctrl.documentID)
	s.mu.Unlock()

	s.logger.Info("review closed", "review_id", reviewID, "document_id", ctrl.documentID)
	return nil
}
