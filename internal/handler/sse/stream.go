// Package sse wraps Server-Sent Events plumbing for the progress stream:
// an event writer over http.ResponseWriter plus a ticker-based keep-alive.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Config holds SSE connection settings.
type Config struct {
	// KeepAliveInterval is how often comment pings are sent so proxies
	// do not time out an idle stream.
	KeepAliveInterval time.Duration
}

// DefaultConfig returns settings safe behind common reverse proxies.
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 10 * time.Second,
	}
}

// Stream writes SSE frames for one client connection. Callers must not
// use it from more than one goroutine; the keep-alive ticker is driven
// from the handler goroutine via the strategy in keepalive.go.
type Stream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewStream prepares the response for event streaming and returns the
// writer. Fails when the ResponseWriter cannot flush (no streaming
// support in the chain).
func NewStream(w http.ResponseWriter) (*Stream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no") // disable nginx buffering

	return &Stream{w: w, flusher: flusher}, nil
}

// WriteEvent sends one named event with a JSON payload and flushes it.
func (s *Stream) WriteEvent(name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", name, err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return fmt.Errorf("writing %s event: %w", name, err)
	}
	s.flusher.Flush()
	return nil
}

// WriteKeepAlive sends an SSE comment line. Comments are ignored by
// clients but keep the connection warm.
func (s *Stream) WriteKeepAlive() error {
	if _, err := fmt.Fprint(s.w, ": keepalive\n\n"); err != nil {
		return fmt.Errorf("write keepalive failed: %w", err)
	}
	s.flusher.Flush()
	return nil
}
