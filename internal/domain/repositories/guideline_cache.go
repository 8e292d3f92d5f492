package repositories

import (
	"context"
	"time"

	"guidesync/internal/domain/models"
)

// GuidelineCache is a read-through cache for resolver results keyed by
// normalized journal URL. The resolver stays the source of truth; a miss
// is not an error.
type GuidelineCache interface {
	// Get returns the cached profile, or (nil, nil) on a miss.
	Get(ctx context.Context, journalURL string) (*models.GuidelineProfile, error)

	// Set stores a resolved profile with the given TTL.
	Set(ctx context.Context, journalURL string, profile *models.GuidelineProfile, ttl time.Duration) error
}
