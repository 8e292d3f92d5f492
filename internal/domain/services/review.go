package services

import (
	"context"

	"guidesync/internal/domain/models"
)

// ReviewService manages open comparison/review controllers. One controller
// owns one document's edit session exclusively; sessions are in-memory and
// discarded on close unless explicitly saved.
type ReviewService interface {
	// OpenDocument creates (or returns the already-open) controller for a
	// ready document and initializes its edit session from the review
	// content.
	OpenDocument(ctx context.Context, userID, documentID string) (*models.ReviewSnapshot, error)

	// Snapshot returns the current read model of an open controller.
	Snapshot(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error)

	// SetViewMode switches split/original-only/corrected-only rendering.
	// Orthogonal to editing: never resets the edit session.
	SetViewMode(ctx context.Context, userID, reviewID string, mode models.ViewMode) (*models.ReviewSnapshot, error)

	// ToggleEdit enables or disables the editable surface. Leaving edit
	// mode keeps uncommitted history intact.
	ToggleEdit(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error)

	// ToggleDiffHighlight flips the cosmetic change markers.
	ToggleDiffHighlight(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error)

	// Edit commits new content into the edit session's history.
	Edit(ctx context.Context, userID, reviewID, content string) (*models.ReviewSnapshot, error)

	// Undo and Redo move the history cursor; boundary calls are no-ops.
	Undo(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error)
	Redo(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error)

	// Save persists the current content. Serialized per document; a failed
	// save leaves the session untouched so retry never loses edits.
	Save(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error)

	// Close discards the controller and its unsaved history.
	Close(ctx context.Context, userID, reviewID string) error
}
