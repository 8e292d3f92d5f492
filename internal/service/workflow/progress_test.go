package workflow

import (
	"testing"

	"guidesync/internal/domain/models"
)

func TestProgressMonotonicMax(t *testing.T) {
	// Reports [10, 5, 40] must display as [10, 10, 40].
	tracker := newProgressTracker("doc-1")

	tracker.Report(10)
	if got := tracker.Percent(); got != 10 {
		t.Errorf("Percent() = %d, want 10", got)
	}

	tracker.Report(5)
	if got := tracker.Percent(); got != 10 {
		t.Errorf("Percent() after out-of-order report = %d, want 10", got)
	}

	tracker.Report(40)
	if got := tracker.Percent(); got != 40 {
		t.Errorf("Percent() = %d, want 40", got)
	}
}

func TestProgressDuplicateAndOutOfRangeDropped(t *testing.T) {
	tracker := newProgressTracker("doc-1")

	tracker.Report(30)
	tracker.Report(30)
	tracker.Report(-5)
	tracker.Report(250)

	if got := tracker.Percent(); got != 30 {
		t.Errorf("Percent() = %d, want 30", got)
	}
}

func TestCompletionWinsOverPendingProgress(t *testing.T) {
	tracker := newProgressTracker("doc-1")
	tracker.Report(60)
	tracker.Complete()

	// A progress report arriving after completion is a no-op.
	tracker.Report(70)
	if got := tracker.Percent(); got != 100 {
		t.Errorf("Percent() after completion = %d, want 100", got)
	}
}

func TestSubscribeReceivesEventsAndCloseOnTerminal(t *testing.T) {
	tracker := newProgressTracker("doc-1")
	ch, cancel := tracker.Subscribe()
	defer cancel()

	tracker.Report(25)
	event := <-ch
	if event.Percent != 25 || event.Done {
		t.Errorf("event = %+v, want percent 25, not done", event)
	}

	tracker.Complete()
	event = <-ch
	if !event.Done || event.Percent != 100 {
		t.Errorf("terminal event = %+v, want done at 100", event)
	}

	// Channel closes after the terminal event.
	if _, open := <-ch; open {
		t.Error("channel should be closed after terminal event")
	}
}

func TestSubscribeReplaysRunningMaximum(t *testing.T) {
	tracker := newProgressTracker("doc-1")
	tracker.Report(55)

	ch, cancel := tracker.Subscribe()
	defer cancel()

	event := <-ch
	if event.Percent != 55 {
		t.Errorf("replayed percent = %d, want 55", event.Percent)
	}
}

func TestCancelDetachesSubscriber(t *testing.T) {
	tracker := newProgressTracker("doc-1")
	ch, cancel := tracker.Subscribe()

	// Detaching mid-flight must not panic later reports.
	cancel()
	tracker.Report(80)
	tracker.Complete()

	// The channel was closed by cancel; any buffered reads drain to zero values.
	for range ch {
	}
}

func TestFailEmitsErrorEvent(t *testing.T) {
	tracker := newProgressTracker("doc-1")
	ch, cancel := tracker.Subscribe()
	defer cancel()

	tracker.Report(40)
	<-ch

	tracker.Fail("transform timed out")

	var terminal models.ProgressEvent
	for event := range ch {
		terminal = event
	}
	if !terminal.Done || terminal.Error != "transform timed out" {
		t.Errorf("terminal = %+v, want done with error", terminal)
	}
}

func TestSubscribeAfterTerminalReturnsClosedChannel(t *testing.T) {
	tracker := newProgressTracker("doc-1")
	tracker.Complete()

	ch, cancel := tracker.Subscribe()
	defer cancel()

	if _, open := <-ch; open {
		t.Error("subscription after terminal event should be closed immediately")
	}
}
