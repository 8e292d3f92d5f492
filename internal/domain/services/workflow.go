package services

import (
	"context"

	"guidesync/internal/domain/models"
)

// WorkflowService sequences upload → guideline → transform → ready and
// owns the interstitial states in between.
type WorkflowService interface {
	// Submit sends a document plus its resolved guideline profile to the
	// transform service. Returns immediately; progress and completion are
	// observed via Subscribe. A second submit while one is in flight for
	// the same document is rejected.
	Submit(ctx context.Context, userID, documentID string, profile models.GuidelineProfile) error

	// Subscribe returns a channel of progress events for a document's
	// in-flight submission. The channel closes after the terminal event.
	// Unsubscribe must be called when the observer detaches; events after
	// detach are dropped, never a crash.
	Subscribe(documentID string) (<-chan models.ProgressEvent, func())

	// SearchGuidelines starts a debounced custom-URL guideline search.
	// The returned token identifies the request; only the most recent
	// token's result is ever applied.
	SearchGuidelines(ctx context.Context, userID, query string) (SearchToken, error)

	// SearchResult reports the outcome for the given token, or ok=false
	// while still pending or when the token has been superseded.
	SearchResult(token SearchToken) (*models.GuidelineProfile, error, bool)
}

// SearchToken identifies one guideline search request for stale-result
// rejection.
type SearchToken uint64
