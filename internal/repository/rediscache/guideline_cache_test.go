package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"guidesync/internal/domain/models"
)

func setupTestCache(t *testing.T) (*GuidelineCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	cache, err := NewGuidelineCache("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create guideline cache: %v", err)
	}
	return cache, s
}

func TestSetAndGetProfile(t *testing.T) {
	cache, s := setupTestCache(t)
	defer cache.Close()
	defer s.Close()

	ctx := context.Background()
	profile := &models.GuidelineProfile{
		CitationStyle: "APA",
		Font:          "Times New Roman",
		Spacing:       "double",
		MaxWords:      8000,
		Rules:         []string{"Abstract under 250 words"},
		Source:        "https://journal.example.org/authors",
		Confidence:    0.82,
	}

	if err := cache.Set(ctx, "https://journal.example.org/authors", profile, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "https://journal.example.org/authors")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached profile, got nil")
	}
	if got.CitationStyle != profile.CitationStyle {
		t.Errorf("citation style = %q, want %q", got.CitationStyle, profile.CitationStyle)
	}
	if got.MaxWords != profile.MaxWords {
		t.Errorf("max words = %d, want %d", got.MaxWords, profile.MaxWords)
	}
	if len(got.Rules) != 1 {
		t.Errorf("rules length = %d, want 1", len(got.Rules))
	}
}

func TestGetMissReturnsNilNil(t *testing.T) {
	cache, s := setupTestCache(t)
	defer cache.Close()
	defer s.Close()

	got, err := cache.Get(context.Background(), "https://never-resolved.example.org")
	if err != nil {
		t.Fatalf("Get on miss returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Get on miss = %+v, want nil", got)
	}
}

func TestEntryExpires(t *testing.T) {
	cache, s := setupTestCache(t)
	defer cache.Close()
	defer s.Close()

	ctx := context.Background()
	profile := &models.GuidelineProfile{CitationStyle: "IEEE", Font: "Arial", Spacing: "single"}

	if err := cache.Set(ctx, "https://j.example.org", profile, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	s.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "https://j.example.org")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("expected expired entry to behave like a miss")
	}
}

func TestCorruptEntryBehavesLikeMiss(t *testing.T) {
	cache, s := setupTestCache(t)
	defer cache.Close()
	defer s.Close()

	s.Set("guideline:https://bad.example.org", "{not json")

	got, err := cache.Get(context.Background(), "https://bad.example.org")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("corrupt entry should behave like a miss")
	}
}
