// Package review implements the comparison/review surface: per-document
// controllers that own an edit session, view-mode and highlight toggles,
// and serialized saves back to the persistence gateway.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/editor"
	"guidesync/internal/textutil"
)

// persistFunc writes the current content for a document. Supplied by the
// service so the controller stays ignorant of repositories.
type persistFunc func(ctx context.Context, content string) error

// controller is the state machine behind one open review. It owns the
// document's edit session exclusively; every action runs under mu, which
// also serializes saves per document.
type controller struct {
	id         string
	documentID string
	userID     string

	mu sync.Mutex

	session         *editor.Session
	originalContent string

	viewMode      models.ViewMode
	editing       bool
	diffHighlight bool
	saving        bool

	persist persistFunc
	logger  *slog.Logger
}

func newController(id, documentID, userID, originalContent, reviewContent string, persist persistFunc, logger *slog.Logger) *controller {
	return &controller{
		id:              id,
		documentID:      documentID,
		userID:          userID,
		session:         editor.NewSession(reviewContent),
		originalContent: originalContent,
		viewMode:        models.ViewSplit,
		persist:         persist,
		logger:          logger,
	}
}

// snapshot builds the read model. Callers must hold mu.
func (c *controller) snapshot() *models.ReviewSnapshot {
	state := models.ReviewReady
	switch {
	case c.saving:
		state = models.ReviewSaving
	case c.editing:
		state = models.ReviewEditing
	}

	snap := &models.ReviewSnapshot{
		ID:                   c.id,
		DocumentID:           c.documentID,
		State:                state,
		ViewMode:             c.viewMode,
		EditingEnabled:       c.editing,
		DiffHighlightEnabled: c.diffHighlight,
		OriginalContent:      c.originalContent,
		CurrentContent:       c.session.Content(),
		Dirty:                c.session.Dirty(),
		CanUndo:              c.session.CanUndo(),
		CanRedo:              c.session.CanRedo(),
		WordCount:            textutil.CountWords(c.session.Content()),
	}
	if c.diffHighlight {
		snap.Diff = computeDiff(c.originalContent, c.session.Content())
	}
	return snap
}

func (c *controller) Snapshot() *models.ReviewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *controller) SetViewMode(mode models.ViewMode) *models.ReviewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	// View mode is orthogonal to editing: the session is untouched.
	c.viewMode = mode
	return c.snapshot()
}

func (c *controller) ToggleEdit() *models.ReviewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Leaving edit mode keeps the session and its history intact, so
	// re-entering resumes exactly where the user left off.
	c.editing = !c.editing
	return c.snapshot()
}

func (c *controller) ToggleDiffHighlight() *models.ReviewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diffHighlight = !c.diffHighlight
	return c.snapshot()
}

func (c *controller) Edit(content string) (*models.ReviewSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editing {
		return nil, &domain.ValidationError{Message: "editing is not enabled for this review"}
	}
	c.session.Commit(content)
	return c.snapshot(), nil
}

func (c *controller) Undo() *models.ReviewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Undo()
	return c.snapshot()
}

func (c *controller) Redo() *models.ReviewSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Redo()
	return c.snapshot()
}

// Save persists the current content. mu is held for the whole round trip,
// so saves for one document can never interleave; a clean session short-
// circuits, which coalesces a save queued up behind an identical one. On
// failure the session is left exactly as it was, so retry loses nothing.
func (c *controller) Save(ctx context.Context) (*models.ReviewSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.Dirty() {
		return c.snapshot(), nil
	}

	c.saving = true
	err := c.persist(ctx, c.session.Content())
	c.saving = false
	if err != nil {
		c.logger.Error("review save failed",
			"review_id", c.id,
			"document_id", c.documentID,
			"error", err)
		return nil, &domain.PersistenceError{Message: fmt.Sprintf("saving document %s: %v", c.documentID, err)}
	}

	c.session.MarkSaved()
	return c.snapshot(), nil
}
