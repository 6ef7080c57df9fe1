package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verso-dev/verso/pkg/vdom"
)

// DefaultStreamDeadline bounds how long a stream stays open waiting for
// pending boundaries after the synchronous HTML has been flushed.
const DefaultStreamDeadline = 10 * time.Second

// slotCounter allocates placeholder ids. Process-wide and monotonic: ids
// stay unique within a response even across interleaved streams. Reset
// exists for deterministic tests only.
var slotCounter atomic.Int64

func nextSlotID() int64 {
	return slotCounter.Add(1)
}

// ResetSlotCounter resets the placeholder id counter. Tests only.
func ResetSlotCounter() {
	slotCounter.Store(0)
}

// StreamOptions configures a StreamRenderer.
type StreamOptions struct {
	// Deadline is the hard cap on waiting for pending boundaries.
	// Boundaries that miss it never get a chunk; their slot keeps
	// showing the fallback. Defaults to DefaultStreamDeadline.
	Deadline time.Duration

	// Nonce, when set, is added as the nonce attribute on every inline
	// swap script.
	Nonce string
}

// StreamRenderer walks a tree synchronously, emitting placeholders for
// boundaries that have not settled, then appends template+swap chunks as
// each boundary resolves. Chunk order is resolution order, not source
// order.
type StreamRenderer struct {
	opts StreamOptions
	r    *Renderer
}

// NewStreamRenderer creates a StreamRenderer.
func NewStreamRenderer(opts StreamOptions) *StreamRenderer {
	if opts.Deadline <= 0 {
		opts.Deadline = DefaultStreamDeadline
	}
	return &StreamRenderer{opts: opts, r: NewRenderer()}
}

// pendingSlot pairs an allocated slot id with the future that will fill it.
type pendingSlot struct {
	id     int64
	future *vdom.Future
}

// Pending is the set of unresolved boundaries left behind by RenderShell,
// to be flushed later with StreamPending.
type Pending struct {
	slots []pendingSlot
}

// Len reports how many boundaries are still waiting for a chunk.
func (p *Pending) Len() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Render streams the tree to w. It returns after every pending boundary
// has produced a chunk, failed, or missed the deadline. A boundary
// failure produces an inert error chunk and never aborts the stream.
func (s *StreamRenderer) Render(ctx context.Context, w io.Writer, node *vdom.VNode) error {
	flusher, _ := w.(http.Flusher)

	pending, err := s.RenderShell(w, node)
	if err != nil {
		return err
	}
	if flusher != nil {
		flusher.Flush()
	}
	_, err = s.StreamPending(ctx, w, pending)
	return err
}

// RenderShell writes the synchronous part of the tree to w: settled
// boundaries inline, unsettled ones as fallback placeholders. The returned
// Pending feeds StreamPending once the caller has flushed whatever
// surrounds the shell.
func (s *StreamRenderer) RenderShell(w io.Writer, node *vdom.VNode) (*Pending, error) {
	var pending []pendingSlot
	var buf bytes.Buffer
	if err := s.writeNode(&buf, node, false, &pending); err != nil {
		return nil, err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return nil, err
	}
	return &Pending{slots: pending}, nil
}

// StreamPending waits on the shell's unresolved boundaries and appends one
// chunk per settled boundary, in resolution order. Returns the number of
// chunks written once every boundary has produced a chunk, failed, or
// missed the deadline.
func (s *StreamRenderer) StreamPending(ctx context.Context, w io.Writer, p *Pending) (int, error) {
	if p.Len() == 0 {
		return 0, nil
	}
	flusher, _ := w.(http.Flusher)
	return s.streamPending(ctx, w, flusher, p.slots)
}

// streamPending resolves all pending boundaries concurrently and appends
// one chunk per settled boundary, serialized onto w by a mutex.
func (s *StreamRenderer) streamPending(ctx context.Context, w io.Writer, flusher http.Flusher, pending []pendingSlot) (int, error) {
	deadline, cancel := context.WithTimeout(ctx, s.opts.Deadline)
	defer cancel()

	var mu sync.Mutex
	var written int
	var g errgroup.Group
	for _, slot := range pending {
		slot := slot
		g.Go(func() error {
			resolved, err := slot.future.Wait(deadline)
			if err != nil {
				if !slot.future.Settled() {
					// Deadline elapsed before the boundary settled;
					// the slot keeps its fallback for this request.
					return nil
				}
				// Settled in the same instant; take the real result.
				resolved, err = slot.future.Result()
			}

			var content bytes.Buffer
			if err != nil {
				content.WriteString(boundaryErrorMarker)
			} else if werr := s.r.WriteNode(&content, resolved); werr != nil {
				content.Reset()
				content.WriteString(boundaryErrorMarker)
			}

			chunk := s.chunk(slot.id, content.String())
			mu.Lock()
			defer mu.Unlock()
			if _, werr := io.WriteString(w, chunk); werr != nil {
				return werr
			}
			written++
			if flusher != nil {
				flusher.Flush()
			}
			return nil
		})
	}
	err := g.Wait()
	return written, err
}

// boundaryErrorMarker is the inert content emitted for a failed boundary.
const boundaryErrorMarker = "<!--v-error-->"

// chunk builds the template + swap script for one resolved slot.
func (s *StreamRenderer) chunk(id int64, html string) string {
	nonce := ""
	if s.opts.Nonce != "" {
		nonce = fmt.Sprintf(` nonce="%s"`, EscapeAttr(s.opts.Nonce))
	}
	return fmt.Sprintf(
		`<template id="v-tmpl-%d">%s</template>`+
			`<script%s>(function(){var s=document.getElementById("v-slot-%d");`+
			`var t=document.getElementById("v-tmpl-%d");`+
			`if(s&&t){s.replaceWith(t.content);t.remove();}})();</script>`,
		id, html, nonce, id, id,
	)
}

// writeNode mirrors Renderer's walk but emits a placeholder for every
// boundary that has not already settled.
func (s *StreamRenderer) writeNode(w io.Writer, node *vdom.VNode, rawText bool, pending *[]pendingSlot) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case vdom.KindBoundary:
		return s.writeBoundary(w, node, pending)
	case vdom.KindElement:
		if _, err := io.WriteString(w, "<"+node.Tag); err != nil {
			return err
		}
		if err := s.r.writeAttrs(w, node); err != nil {
			return err
		}
		if isVoidElement(node.Tag) {
			_, err := io.WriteString(w, ">")
			return err
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		raw := isRawTextElement(node.Tag)
		for _, child := range node.Children {
			if err := s.writeNode(w, child, raw, pending); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+node.Tag+">")
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := s.writeNode(w, child, rawText, pending); err != nil {
				return err
			}
		}
		return nil
	default:
		return s.r.writeNode(w, node, rawText)
	}
}

func (s *StreamRenderer) writeBoundary(w io.Writer, node *vdom.VNode, pending *[]pendingSlot) error {
	// Settled boundaries inline directly: resolved content on success,
	// fallback on failure. No slot, no chunk.
	if node.Future == nil || node.Future.Settled() {
		return s.r.writeBoundary(w, node)
	}

	id := nextSlotID()
	if _, err := fmt.Fprintf(w, `<div id="v-slot-%d">`, id); err != nil {
		return err
	}
	if err := s.r.WriteNode(w, node.Fallback); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</div>"); err != nil {
		return err
	}
	*pending = append(*pending, pendingSlot{id: id, future: node.Future})
	return nil
}
