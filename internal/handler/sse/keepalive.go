package sse

import (
	"log/slog"
	"time"
)

// KeepAliveWriter is the slice of Stream the keep-alive loop needs,
// kept narrow so tests can run without a real connection.
type KeepAliveWriter interface {
	WriteKeepAlive() error
}

// TickerKeepAlive sends keep-alive pings at a fixed interval until
// stopped or until a write fails (connection gone).
type TickerKeepAlive struct {
	interval time.Duration
	done     chan struct{}
}

func NewTickerKeepAlive(interval time.Duration) *TickerKeepAlive {
	return &TickerKeepAlive{
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins the ping loop. The returned channel closes when the loop
// exits, whether by Stop or by a failed write.
func (k *TickerKeepAlive) Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{} {
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := writer.WriteKeepAlive(); err != nil {
					logger.Debug("keep-alive write failed, client gone", "error", err)
					return
				}
			case <-k.done:
				return
			}
		}
	}()

	return stopped
}

// Stop terminates the ping loop. Safe to call more than once.
func (k *TickerKeepAlive) Stop() {
	select {
	case <-k.done:
	default:
		close(k.done)
	}
}
