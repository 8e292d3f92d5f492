package workflow

import (
	"sync"

	"guidesync/internal/domain/models"
)

// progressTracker fans transform progress out to subscribers while
// enforcing the display invariants: percentages only ever ratchet upward
// (out-of-order and duplicate reports are dropped), and a terminal event
// always wins over any pending percentage. Events offered to a slow or
// detached subscriber are dropped, never blocked on.
type progressTracker struct {
	mu         sync.Mutex
	documentID string
	current    int
	done       bool
	subs       map[int]chan models.ProgressEvent
	nextSubID  int
}

func newProgressTracker(documentID string) *progressTracker {
	return &progressTracker{
		documentID: documentID,
		subs:       make(map[int]chan models.ProgressEvent),
	}
}

// Report applies an incremental percentage. Values at or below the running
// maximum, or outside 0..100, are no-ops. Reports after the terminal event
// are dropped.
func (t *progressTracker) Report(percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done || percent <= t.current || percent < 0 || percent > 100 {
		return
	}
	t.current = percent

	t.broadcast(models.ProgressEvent{
		DocumentID: t.documentID,
		Percent:    t.current,
	})
}

// Percent returns the current displayed progress.
func (t *progressTracker) Percent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Complete emits the terminal success event and closes all subscriptions.
func (t *progressTracker) Complete() {
	t.finish(models.ProgressEvent{Percent: 100, Done: true})
}

// Fail emits the terminal failure event and closes all subscriptions.
func (t *progressTracker) Fail(msg string) {
	t.finish(models.ProgressEvent{Done: true, Error: msg})
}

func (t *progressTracker) finish(event models.ProgressEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return
	}
	t.done = true
	if event.Percent == 0 {
		event.Percent = t.current
	}
	t.current = event.Percent
	event.DocumentID = t.documentID

	t.broadcast(event)
	for id, ch := range t.subs {
		close(ch)
		delete(t.subs, id)
	}
}

// broadcast offers the event to every subscriber without blocking.
// Callers must hold t.mu.
func (t *progressTracker) broadcast(event models.ProgressEvent) {
	for _, ch := range t.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not draining; dropping is safe because the
			// percentage is monotonic and the terminal event is retried
			// by channel close.
		}
	}
}

// Subscribe registers an observer. The returned cancel function detaches
// it; events arriving after detach are discarded.
func (t *progressTracker) Subscribe() (<-chan models.ProgressEvent, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan models.ProgressEvent, 16)

	if t.done {
		close(ch)
		return ch, func() {}
	}

	id := t.nextSubID
	t.nextSubID++
	t.subs[id] = ch

	// Replay the running maximum so late subscribers start at the right
	// percentage instead of zero.
	if t.current > 0 {
		ch <- models.ProgressEvent{DocumentID: t.documentID, Percent: t.current}
	}

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if sub, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}
