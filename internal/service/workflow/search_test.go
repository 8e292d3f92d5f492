package workflow

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"guidesync/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// waitFor polls cond until it is true or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

// blockingResolver resolves per-query profiles, optionally holding a query
// until released.
type blockingResolver struct {
	mu       sync.Mutex
	profiles map[string]*models.GuidelineProfile
	gates    map[string]chan struct{}
	calls    atomic.Int64
}

func newBlockingResolver() *blockingResolver {
	return &blockingResolver{
		profiles: make(map[string]*models.GuidelineProfile),
		gates:    make(map[string]chan struct{}),
	}
}

func (r *blockingResolver) set(query string, profile *models.GuidelineProfile, gated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[query] = profile
	if gated {
		r.gates[query] = make(chan struct{})
	}
}

func (r *blockingResolver) release(query string) {
	r.mu.Lock()
	gate := r.gates[query]
	r.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

func (r *blockingResolver) resolve(ctx context.Context, query string) (*models.GuidelineProfile, error) {
	r.calls.Add(1)
	r.mu.Lock()
	gate := r.gates[query]
	profile := r.profiles[query]
	r.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return profile, nil
}

func TestDebounceCoalescesRapidInput(t *testing.T) {
	resolver := newBlockingResolver()
	resolver.set("url-c", &models.GuidelineProfile{CitationStyle: "C"}, false)

	c := newSearchCoordinator(resolver.resolve, 20*time.Millisecond, testLogger())

	ctx := context.Background()
	c.Search(ctx, "url-a")
	c.Search(ctx, "url-b")
	token := c.Search(ctx, "url-c")

	waitFor(t, func() bool {
		_, _, ok := c.Result(token)
		return ok
	})

	// Only the final query after the quiet period may reach the resolver.
	if got := resolver.calls.Load(); got != 1 {
		t.Errorf("resolver calls = %d, want 1", got)
	}

	profile, err, _ := c.Result(token)
	if err != nil {
		t.Fatalf("Result returned error: %v", err)
	}
	if profile.CitationStyle != "C" {
		t.Errorf("citation style = %q, want C", profile.CitationStyle)
	}
}

func TestStaleInFlightResultDiscarded(t *testing.T) {
	// Search A issues, search B issues while A is in flight, A resolves
	// after B: state must reflect B's result, never A's.
	resolver := newBlockingResolver()
	resolver.set("url-a", &models.GuidelineProfile{CitationStyle: "A"}, true)
	resolver.set("url-b", &models.GuidelineProfile{CitationStyle: "B"}, false)

	c := newSearchCoordinator(resolver.resolve, time.Millisecond, testLogger())
	ctx := context.Background()

	tokenA := c.Search(ctx, "url-a")

	// Let A's debounce fire and its resolver call block on the gate.
	waitFor(t, func() bool { return resolver.calls.Load() >= 1 })

	tokenB := c.Search(ctx, "url-b")

	waitFor(t, func() bool {
		_, _, ok := c.Result(tokenB)
		return ok
	})

	// Now A's in-flight call completes, late.
	resolver.release("url-a")

	// Give the stale completion a moment to (incorrectly) apply.
	time.Sleep(20 * time.Millisecond)

	profile, err, ok := c.Result(tokenB)
	if !ok || err != nil {
		t.Fatalf("Result(tokenB) = %v, %v, %v", profile, err, ok)
	}
	if profile.CitationStyle != "B" {
		t.Errorf("citation style = %q, want B (stale A must not apply)", profile.CitationStyle)
	}

	// The superseded token never completes.
	if _, _, ok := c.Result(tokenA); ok {
		t.Error("superseded token must never produce a result")
	}
}

func TestResultPendingBeforeResolution(t *testing.T) {
	resolver := newBlockingResolver()
	resolver.set("url-a", &models.GuidelineProfile{CitationStyle: "A"}, true)
	defer resolver.release("url-a")

	c := newSearchCoordinator(resolver.resolve, time.Millisecond, testLogger())
	token := c.Search(context.Background(), "url-a")

	if _, _, ok := c.Result(token); ok {
		t.Error("Result should report pending before the resolver completes")
	}
}
