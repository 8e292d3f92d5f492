package services

import (
	"context"

	"guidesync/internal/domain/models"
)

// GuidelineResolver is the external lookup service contract:
// a journal name or URL in, a structured profile out.
type GuidelineResolver interface {
	ResolveGuidelines(ctx context.Context, journalNameOrURL string) (*models.GuidelineProfile, error)
}

// GuidelineService exposes the two supported guideline-selection paths:
// picking from the pre-seeded catalog (synchronous) and resolving an
// arbitrary journal URL (asynchronous, cached).
type GuidelineService interface {
	// ListJournals returns the known-journal catalog.
	ListJournals(ctx context.Context) ([]models.JournalEntry, error)

	// ResolveByName resolves synchronously from the catalog.
	ResolveByName(ctx context.Context, journalName string) (*models.GuidelineProfile, error)

	// ResolveByURL resolves a custom journal URL via the external
	// resolver, consulting the cache first.
	ResolveByURL(ctx context.Context, journalURL string) (*models.GuidelineProfile, error)
}
