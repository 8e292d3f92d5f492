package guideline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeJournalRepo is an in-memory catalog.
type fakeJournalRepo struct {
	entries map[string]models.JournalEntry
}

func (f *fakeJournalRepo) Upsert(ctx context.Context, entry *models.JournalEntry) error {
	f.entries[entry.Name] = *entry
	return nil
}

func (f *fakeJournalRepo) List(ctx context.Context) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeJournalRepo) GetByName(ctx context.Context, name string) (*models.JournalEntry, error) {
	e, ok := f.entries[name]
	if !ok {
		return nil, &domain.NotFoundError{Message: "journal not in catalog"}
	}
	return &e, nil
}

// fakeResolver counts calls and returns a canned profile.
type fakeResolver struct {
	calls   atomic.Int64
	profile *models.GuidelineProfile
	err     error
}

func (f *fakeResolver) ResolveGuidelines(ctx context.Context, journalNameOrURL string) (*models.GuidelineProfile, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

// fakeCache is a map-backed GuidelineCache.
type fakeCache struct {
	data map[string]*models.GuidelineProfile
}

func (f *fakeCache) Get(ctx context.Context, url string) (*models.GuidelineProfile, error) {
	return f.data[url], nil
}

func (f *fakeCache) Set(ctx context.Context, url string, p *models.GuidelineProfile, ttl time.Duration) error {
	f.data[url] = p
	return nil
}

func apaProfile() *models.GuidelineProfile {
	return &models.GuidelineProfile{
		CitationStyle: "APA",
		Font:          "Times New Roman",
		Spacing:       "double",
		MaxWords:      8000,
	}
}

func TestResolveByNameFromCatalog(t *testing.T) {
	repo := &fakeJournalRepo{entries: map[string]models.JournalEntry{
		"Nature": {Name: "Nature", Profile: *apaProfile()},
	}}
	svc := NewService(repo, &fakeResolver{}, nil, testLogger())

	profile, err := svc.ResolveByName(context.Background(), "Nature")
	if err != nil {
		t.Fatalf("ResolveByName failed: %v", err)
	}
	if profile.CitationStyle != "APA" {
		t.Errorf("citation style = %q, want APA", profile.CitationStyle)
	}
}

func TestResolveByNameUnknownJournal(t *testing.T) {
	repo := &fakeJournalRepo{entries: map[string]models.JournalEntry{}}
	resolver := &fakeResolver{profile: apaProfile()}
	svc := NewService(repo, resolver, nil, testLogger())

	_, err := svc.ResolveByName(context.Background(), "Unknown Journal")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if resolver.calls.Load() != 0 {
		t.Error("catalog miss must not trigger a resolver call")
	}
}

func TestResolveByURLUsesCache(t *testing.T) {
	cache := &fakeCache{data: map[string]*models.GuidelineProfile{}}
	resolver := &fakeResolver{profile: apaProfile()}
	svc := NewService(&fakeJournalRepo{}, resolver, cache, testLogger())

	ctx := context.Background()
	url := "https://journal.example.org/authors"

	// First call hits the resolver and fills the cache.
	if _, err := svc.ResolveByURL(ctx, url); err != nil {
		t.Fatalf("ResolveByURL failed: %v", err)
	}
	if got := resolver.calls.Load(); got != 1 {
		t.Fatalf("resolver calls = %d, want 1", got)
	}

	// Second call is served from cache.
	if _, err := svc.ResolveByURL(ctx, url); err != nil {
		t.Fatalf("ResolveByURL failed: %v", err)
	}
	if got := resolver.calls.Load(); got != 1 {
		t.Errorf("resolver calls = %d, want 1 (cache hit expected)", got)
	}
}

func TestResolveByURLNormalizesCacheKey(t *testing.T) {
	cache := &fakeCache{data: map[string]*models.GuidelineProfile{}}
	resolver := &fakeResolver{profile: apaProfile()}
	svc := NewService(&fakeJournalRepo{}, resolver, cache, testLogger())

	ctx := context.Background()
	if _, err := svc.ResolveByURL(ctx, "https://journal.example.org/authors/"); err != nil {
		t.Fatalf("ResolveByURL failed: %v", err)
	}
	if _, err := svc.ResolveByURL(ctx, "http://journal.example.org/authors"); err != nil {
		t.Fatalf("ResolveByURL failed: %v", err)
	}

	if got := resolver.calls.Load(); got != 1 {
		t.Errorf("resolver calls = %d, want 1 (scheme and trailing slash should share a key)", got)
	}
}

func TestResolveByURLRejectsBadInput(t *testing.T) {
	svc := NewService(&fakeJournalRepo{}, &fakeResolver{profile: apaProfile()}, nil, testLogger())

	tests := []string{"", "   ", "not a url"}
	for _, url := range tests {
		if _, err := svc.ResolveByURL(context.Background(), url); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ResolveByURL(%q) error = %v, want ErrValidation", url, err)
		}
	}
}

func TestResolveByURLResolverFailurePropagates(t *testing.T) {
	resolver := &fakeResolver{err: &domain.ResolutionError{Message: "lookup failed"}}
	svc := NewService(&fakeJournalRepo{}, resolver, nil, testLogger())

	_, err := svc.ResolveByURL(context.Background(), "https://journal.example.org")
	if !errors.Is(err, domain.ErrResolution) {
		t.Errorf("error = %v, want ErrResolution", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journals.yaml")
	content := `journals:
  - name: Nature
    publisher: Springer Nature
    url: https://www.nature.com
    profile:
      citation_style: Nature
      font: Times New Roman
      spacing: double
      max_words: 5000
      rules:
        - "Title under 90 characters"
  - name: IEEE Transactions
    profile:
      citation_style: IEEE
      font: Arial
      spacing: single
      max_words: 9000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Profile.CitationStyle != "Nature" {
		t.Errorf("citation style = %q, want Nature", entries[0].Profile.CitationStyle)
	}
}

func TestLoadCatalogRejectsIncompleteProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journals.yaml")
	content := `journals:
  - name: Broken
    profile:
      citation_style: ""
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalog(path); err == nil {
		t.Error("expected error for incomplete profile")
	}
}
