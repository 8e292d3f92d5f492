package repositories

import (
	"context"

	"guidesync/internal/domain/models"
)

// JournalRepository stores the known-journal catalog.
type JournalRepository interface {
	// Upsert inserts or replaces one catalog entry keyed by journal name.
	Upsert(ctx context.Context, entry *models.JournalEntry) error

	// List returns the full catalog ordered by name.
	List(ctx context.Context) ([]models.JournalEntry, error)

	// GetByName returns one catalog entry.
	GetByName(ctx context.Context, name string) (*models.JournalEntry, error)
}
