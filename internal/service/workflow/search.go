package workflow

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"guidesync/internal/domain/models"
	"guidesync/internal/domain/services"
)

// defaultDebounce is the quiet period after the last keystroke before a
// resolver request is actually issued.
const defaultDebounce = 400 * time.Millisecond

// resolveFunc performs the actual guideline lookup for a query.
type resolveFunc func(ctx context.Context, query string) (*models.GuidelineProfile, error)

// searchOutcome is the stored result for a completed, non-superseded token.
type searchOutcome struct {
	profile *models.GuidelineProfile
	err     error
}

// searchCoordinator implements debounced guideline search with explicit
// request tokens. Every call supersedes the previous one: only the most
// recent token's resolver result is ever stored, so a stale in-flight
// response can never clobber a newer one — the token comparison on
// completion is the whole mechanism, no timer closures involved.
type searchCoordinator struct {
	mu       sync.Mutex
	resolve  resolveFunc
	debounce time.Duration
	logger   *slog.Logger

	latest   services.SearchToken
	timer    *time.Timer
	outcomes map[services.SearchToken]searchOutcome
}

// tokenCounter mints globally unique search tokens so a token identifies
// its request across all coordinators.
var tokenCounter atomic.Uint64

func newSearchCoordinator(resolve resolveFunc, debounce time.Duration, logger *slog.Logger) *searchCoordinator {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &searchCoordinator{
		resolve:  resolve,
		debounce: debounce,
		logger:   logger,
		outcomes: make(map[services.SearchToken]searchOutcome),
	}
}

// Search registers a new query and returns its token. The resolver call
// fires only after the debounce window passes without another Search;
// rapid repeated input therefore costs one request, not one per keystroke.
func (c *searchCoordinator) Search(ctx context.Context, query string) services.SearchToken {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := services.SearchToken(tokenCounter.Add(1))
	c.latest = token

	// Superseding invalidates everything older, including stored outcomes.
	c.outcomes = make(map[services.SearchToken]searchOutcome)

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.fire(ctx, token, query)
	})

	return token
}

// fire issues the resolver call for a debounced query. By the time it
// runs the token may already be stale; checked both before the call (to
// skip useless work) and after (to reject a stale result that raced a
// newer one).
func (c *searchCoordinator) fire(ctx context.Context, token services.SearchToken, query string) {
	c.mu.Lock()
	if token != c.latest {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	profile, err := c.resolve(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.latest {
		// A newer search was issued while this one was in flight.
		// Its result must not be applied, no matter when it arrives.
		c.logger.Debug("discarding stale guideline search result", "token", uint64(token))
		return
	}

	c.outcomes[token] = searchOutcome{profile: profile, err: err}
}

// Result reports the outcome for a token. ok is false while the request
// is still pending or when the token has been superseded; superseded
// tokens never complete.
func (c *searchCoordinator) Result(token services.SearchToken) (*models.GuidelineProfile, error, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	outcome, ok := c.outcomes[token]
	if !ok {
		return nil, nil, false
	}
	return outcome.profile, outcome.err, true
}
