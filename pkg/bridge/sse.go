package bridge

import (
	"fmt"
	"io"
	"net/http"
)

// SSEWriter writes the Server-Sent-Events wire format used by navigation
// prefetch: one "data" event per resolved query, closed by a terminal
// "done" event. The done frame is sent even when every query failed or
// timed out; the client falls back to fetching live.
type SSEWriter struct {
	w       io.Writer
	flusher http.Flusher
}

// NewSSEWriter prepares w for an SSE response. When w is an
// http.ResponseWriter the content type and cache headers are set and each
// frame is flushed immediately.
func NewSSEWriter(w io.Writer) *SSEWriter {
	if rw, ok := w.(http.ResponseWriter); ok {
		rw.Header().Set("Content-Type", "text/event-stream")
		rw.Header().Set("Cache-Control", "no-cache")
		rw.Header().Set("Connection", "keep-alive")
	}
	flusher, _ := w.(http.Flusher)
	return &SSEWriter{w: w, flusher: flusher}
}

// Data writes one "event: data" frame holding the serialized value.
func (s *SSEWriter) Data(v any) error {
	payload, err := SafeSerialize(v)
	if err != nil {
		return err
	}
	return s.frame("data", payload)
}

// Done writes the terminal "event: done" frame.
func (s *SSEWriter) Done() error {
	return s.frame("done", "{}")
}

func (s *SSEWriter) frame(event, payload string) error {
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
