// Package guideline implements the two guideline-selection paths:
// synchronous lookup in the pre-seeded journal catalog and asynchronous
// resolution of arbitrary journal URLs through the external resolver.
package guideline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"guidesync/internal/config"
	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/repositories"
	"guidesync/internal/domain/services"
)

// guidelineService implements the GuidelineService interface
type guidelineService struct {
	journalRepo repositories.JournalRepository
	resolver    services.GuidelineResolver
	cache       repositories.GuidelineCache
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// NewService creates a new guideline service. cache may be nil, in which
// case every custom-URL lookup goes straight to the resolver.
func NewService(
	journalRepo repositories.JournalRepository,
	resolver services.GuidelineResolver,
	cache repositories.GuidelineCache,
	logger *slog.Logger,
) services.GuidelineService {
	return &guidelineService{
		journalRepo: journalRepo,
		resolver:    resolver,
		cache:       cache,
		cacheTTL:    config.GuidelineCacheTTLMinutes * time.Minute,
		logger:      logger,
	}
}

// ListJournals returns the known-journal catalog.
func (s *guidelineService) ListJournals(ctx context.Context) ([]models.JournalEntry, error) {
	return s.journalRepo.List(ctx)
}

// ResolveByName resolves synchronously from the catalog. Unknown names are
// a not-found, not a resolver round-trip.
func (s *guidelineService) ResolveByName(ctx context.Context, journalName string) (*models.GuidelineProfile, error) {
	journalName = strings.TrimSpace(journalName)
	if err := validation.Validate(journalName,
		validation.Required,
		validation.Length(1, config.MaxJournalNameLength),
	); err != nil {
		return nil, fmt.Errorf("%w: journal name: %v", domain.ErrValidation, err)
	}

	entry, err := s.journalRepo.GetByName(ctx, journalName)
	if err != nil {
		return nil, err
	}

	profile := entry.Profile
	return &profile, nil
}

// ResolveByURL resolves a custom journal URL via the external resolver,
// consulting the Redis cache first. Cache failures degrade to a resolver
// call rather than failing the lookup.
func (s *guidelineService) ResolveByURL(ctx context.Context, journalURL string) (*models.GuidelineProfile, error) {
	journalURL = strings.TrimSpace(journalURL)
	if err := validation.Validate(journalURL,
		validation.Required,
		validation.Length(1, config.MaxJournalURLLength),
		is.URL,
	); err != nil {
		return nil, fmt.Errorf("%w: journal url: %v", domain.ErrValidation, err)
	}

	key := normalizeURL(journalURL)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("guideline cache read failed", "url", key, "error", err)
		} else if cached != nil {
			s.logger.Debug("guideline cache hit", "url", key)
			return cached, nil
		}
	}

	profile, err := s.resolver.ResolveGuidelines(ctx, journalURL)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, profile, s.cacheTTL); err != nil {
			s.logger.Warn("guideline cache write failed", "url", key, "error", err)
		}
	}

	s.logger.Info("guideline profile resolved",
		"url", key,
		"citation_style", profile.CitationStyle,
		"rules", len(profile.Rules),
	)

	return profile, nil
}

// normalizeURL canonicalizes cache keys: scheme-insensitive, no trailing
// slash, lowercase host treatment is left to the resolver.
func normalizeURL(raw string) string {
	key := strings.TrimSuffix(raw, "/")
	key = strings.TrimPrefix(key, "http://")
	key = strings.TrimPrefix(key, "https://")
	return key
}
