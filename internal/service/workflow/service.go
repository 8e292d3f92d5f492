// Package workflow sequences the enhancement pipeline: uploaded document
// plus resolved guideline profile in, transform submission with live
// progress out. It owns the interstitial states between upload and the
// review surface.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"guidesync/internal/config"
	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/repositories"
	"guidesync/internal/domain/services"
	"guidesync/internal/service/transform"
)

// workflowService implements the WorkflowService interface
type workflowService struct {
	docRepo    repositories.DocumentRepository
	registry   *transform.ProviderRegistry
	guidelines services.GuidelineService
	provider   string
	timeout    time.Duration
	logger     *slog.Logger

	mu       sync.Mutex
	inflight map[string]*submission       // keyed by document ID
	searches map[string]*searchCoordinator // keyed by user ID
	debounce time.Duration
}

// submission is one in-flight transform.
type submission struct {
	tracker *progressTracker
	cancel  context.CancelFunc
}

// NewService creates a new workflow service.
func NewService(
	docRepo repositories.DocumentRepository,
	registry *transform.ProviderRegistry,
	guidelines services.GuidelineService,
	cfg *config.Config,
	logger *slog.Logger,
) services.WorkflowService {
	return &workflowService{
		docRepo:    docRepo,
		registry:   registry,
		guidelines: guidelines,
		provider:   cfg.DefaultProvider,
		timeout:    cfg.TransformTimeout,
		logger:     logger,
		inflight:   make(map[string]*submission),
		searches:   make(map[string]*searchCoordinator),
		debounce:   defaultDebounce,
	}
}

// Submit sends the document to the transform service. Returns immediately;
// the transform runs in the background and is observed via Subscribe.
func (s *workflowService) Submit(ctx context.Context, userID, documentID string, profile models.GuidelineProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: guideline profile: %v", domain.ErrValidation, err)
	}

	doc, err := s.docRepo.GetByID(ctx, documentID, userID)
	if err != nil {
		return err
	}
	if doc.OriginalContent == "" {
		return &domain.ValidationError{Message: "document has no extracted text to transform"}
	}

	provider, err := s.registry.GetProvider(s.provider)
	if err != nil {
		return &domain.TransformError{Message: fmt.Sprintf("transform provider unavailable: %v", err)}
	}

	s.mu.Lock()
	if _, exists := s.inflight[documentID]; exists {
		s.mu.Unlock()
		return &domain.ValidationError{Message: "a transform is already in progress for this document"}
	}

	// The submission outlives the HTTP request that started it.
	runCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	sub := &submission{
		tracker: newProgressTracker(documentID),
		cancel:  cancel,
	}
	s.inflight[documentID] = sub
	s.mu.Unlock()

	if err := s.docRepo.SetStatus(ctx, documentID, models.StatusProcessing); err != nil {
		s.finish(documentID, sub)
		cancel()
		return err
	}

	go s.run(runCtx, sub, provider, doc, profile)

	s.logger.Info("transform submitted",
		"document_id", documentID,
		"provider", s.provider,
		"journal", doc.JournalName,
	)

	return nil
}

// run executes one transform submission to completion.
func (s *workflowService) run(
	ctx context.Context,
	sub *submission,
	provider services.TransformProvider,
	doc *models.Document,
	profile models.GuidelineProfile,
) {
	defer sub.cancel()
	defer s.finish(doc.ID, sub)

	req := &services.TransformRequest{
		DocumentID:    doc.ID,
		SourceContent: doc.OriginalContent,
		Profile:       profile,
		Language:      doc.Language,
	}

	result, err := provider.Transform(ctx, req, sub.tracker.Report)
	if err != nil {
		s.fail(doc.ID, sub, fmt.Sprintf("transform failed: %v", err))
		return
	}

	shaped, err := transform.ShapeResult(&transform.RawResult{
		ProcessedContent: result.ProcessedContent,
		Suggestions:      result.Suggestions,
	}, profile)
	if err != nil {
		s.fail(doc.ID, sub, err.Error())
		return
	}

	// Persistence uses a fresh context: the submission context may be
	// near its deadline, and losing a finished result to that would force
	// a pointless resubmission.
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer saveCancel()

	if err := s.docRepo.SetTransformResult(saveCtx, doc.ID, shaped); err != nil {
		s.fail(doc.ID, sub, fmt.Sprintf("store transform result: %v", err))
		return
	}

	sub.tracker.Complete()
	s.logger.Info("transform complete",
		"document_id", doc.ID,
		"suggestions", len(shaped.Suggestions),
	)
}

// fail marks the submission failed. The document row keeps its upload and
// guideline selection so the user can resubmit without re-uploading. The
// status write gets its own context: the run context is often the thing
// that just expired.
func (s *workflowService) fail(documentID string, sub *submission, msg string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.docRepo.SetStatus(ctx, documentID, models.StatusFailed); err != nil {
		s.logger.Warn("failed to mark document failed", "document_id", documentID, "error", err)
	}
	sub.tracker.Fail(msg)
	s.logger.Warn("transform failed", "document_id", documentID, "reason", msg)
}

// finish removes the submission from the in-flight set.
func (s *workflowService) finish(documentID string, sub *submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[documentID] == sub {
		delete(s.inflight, documentID)
	}
}

// Subscribe returns progress events for a document's in-flight submission.
// With nothing in flight the channel is already closed; the subscriber
// sees an immediate end of stream instead of a hung spinner.
func (s *workflowService) Subscribe(documentID string) (<-chan models.ProgressEvent, func()) {
	s.mu.Lock()
	sub, ok := s.inflight[documentID]
	s.mu.Unlock()

	if !ok {
		ch := make(chan models.ProgressEvent)
		close(ch)
		return ch, func() {}
	}

	return sub.tracker.Subscribe()
}

// SearchGuidelines starts a debounced custom-URL guideline search for the
// user and returns its token.
func (s *workflowService) SearchGuidelines(ctx context.Context, userID, query string) (services.SearchToken, error) {
	if query == "" {
		return 0, &domain.ValidationError{Message: "search query is required"}
	}

	s.mu.Lock()
	coordinator, ok := s.searches[userID]
	if !ok {
		coordinator = newSearchCoordinator(s.guidelines.ResolveByURL, s.debounce, s.logger)
		s.searches[userID] = coordinator
	}
	s.mu.Unlock()

	// The resolver call outlives this request; detach it from the
	// request context.
	return coordinator.Search(context.WithoutCancel(ctx), query), nil
}

// SearchResult reports the outcome for the given token.
func (s *workflowService) SearchResult(token services.SearchToken) (*models.GuidelineProfile, error, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, coordinator := range s.searches {
		if profile, err, ok := coordinator.Result(token); ok {
			return profile, err, ok
		}
	}
	return nil, nil, false
}
