// README: Server-sent event emitter for a single subscriber; writes after close are dropped.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Emitter writes `data: <json>\n\n` frames to one client.
type Emitter struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	ctx     context.Context
	opened  bool
	closed  bool
}

// New binds an emitter to a response. ctx should be the request context so a
// disconnected client turns further sends into no-ops.
func New(ctx context.Context, w http.ResponseWriter) *Emitter {
	f, _ := w.(http.Flusher)
	return &Emitter{w: w, flusher: f, ctx: ctx}
}

// Open writes the event-stream headers. It is called implicitly by the first Send.
func (e *Emitter) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openLocked()
}

func (e *Emitter) openLocked() {
	if e.opened || e.closed {
		return
	}
	h := e.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	e.w.WriteHeader(http.StatusOK)
	e.opened = true
	e.flush()
}

// Send writes one frame and flushes. It reports false, without writing, once
// the emitter is closed, the client is gone, or a previous write failed.
func (e *Emitter) Send(v any) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	if e.ctx != nil && e.ctx.Err() != nil {
		e.closed = true
		return false
	}
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	e.openLocked()
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", data); err != nil {
		e.closed = true
		return false
	}
	e.flush()
	return true
}

// Close marks the stream finished. Safe to call more than once.
func (e *Emitter) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

func (e *Emitter) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Emitter) flush() {
	if e.flusher != nil {
		e.flusher.Flush()
	}
}
