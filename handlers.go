package verso

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/verso-dev/verso/pkg/bridge"
	"github.com/verso-dev/verso/pkg/middleware"
	"github.com/verso-dev/verso/pkg/render"
	"github.com/verso-dev/verso/pkg/ssr"
)

// =============================================================================
// Page Handlers
// =============================================================================

// renderBuffered serves a fully buffered page: the complete document is
// assembled in memory and written in one response. Queries that missed
// their await window render as fallbacks; the client refetches them.
func (a *App) renderBuffered(w http.ResponseWriter, r *http.Request, page Page) {
	res, err := a.renderer.Render(r.Context(), page, r.URL)
	if err != nil {
		a.logger.Error("page render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	middleware.RecordPendingQueries(len(res.Pending))

	scripts := bridge.BootstrapScript(a.config.ScriptNonce)
	doc := a.template.Execute(res.HTML, res.CSS, scripts)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc))
}

// renderStream serves a streaming page: the shell flushes immediately
// with fallbacks in place, then suspense chunks and data pushes are
// appended as late queries settle, and the document closes when all of
// them have settled or the stream deadline passes.
func (a *App) renderStream(w http.ResponseWriter, r *http.Request, page Page) {
	res, err := a.renderer.Render(r.Context(), page, r.URL)
	if err != nil {
		a.logger.Error("page render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	middleware.RecordPendingQueries(len(res.Pending))

	streamer := render.NewStreamRenderer(render.StreamOptions{
		Deadline: a.config.StreamDeadline,
		Nonce:    a.config.ScriptNonce,
	})

	var shell bytes.Buffer
	pending, err := streamer.RenderShell(&shell, res.Tree)
	if err != nil {
		a.logger.Error("shell render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	prefix, suffix := a.template.Split(shell.String(), res.CSS)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(prefix)); err != nil {
		return
	}
	if _, err := w.Write([]byte(bridge.BootstrapScript(a.config.ScriptNonce))); err != nil {
		return
	}
	flush(w)

	chunks, err := streamer.StreamPending(r.Context(), w, pending)
	if err != nil {
		a.logger.Debug("stream aborted", "path", r.URL.Path, "error", err)
		return
	}
	for i := 0; i < chunks; i++ {
		middleware.RecordChunk()
	}

	a.pushLateData(r.Context(), w, res)

	w.Write([]byte(suffix))
	flush(w)
}

// pushLateData waits for the render's late queries within the stream
// deadline and appends one data push per successful settle, in settle
// order. Each query is awaited independently so one stuck query cannot
// hold back the others. Failures and deadline misses are skipped; the
// client fetches those live.
func (a *App) pushLateData(ctx context.Context, w http.ResponseWriter, res *ssr.Result) {
	if len(res.Pending) == 0 {
		return
	}
	deadline := a.config.StreamDeadline
	if deadline <= 0 {
		deadline = render.DefaultStreamDeadline
	}
	waitCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	var mu sync.Mutex
	var g errgroup.Group
	for _, q := range res.Pending {
		q := q
		g.Go(func() error {
			select {
			case <-q.Done():
			case <-waitCtx.Done():
				return nil
			}
			value, err := q.Result()
			if err != nil {
				a.logger.Debug("late query failed", "key", q.Key, "error", err)
				return nil
			}
			chunk, err := bridge.DataChunk(q.Key, value, a.config.ScriptNonce)
			if err != nil {
				a.logger.Error("data chunk serialize failed", "key", q.Key, "error", err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			res.Data[q.Key] = value
			if _, err := w.Write([]byte(chunk)); err != nil {
				return err
			}
			flush(w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Debug("late data push aborted", "error", err)
	}
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// =============================================================================
// Prefetch
// =============================================================================

// handlePrefetch serves GET /_verso/prefetch?path=/target: it runs the
// discovery pass for the target page, awaits its queries, and streams one
// SSE data frame per successful query before the terminal done frame. Any
// failure degrades to a bare done frame; the client falls back to
// fetching live after navigation.
func (a *App) handlePrefetch(w http.ResponseWriter, r *http.Request) {
	middleware.RecordPrefetch()

	target := r.URL.Query().Get("path")
	if target == "" {
		target = "/"
	}
	u, err := url.Parse(target)
	if err != nil {
		http.Error(w, "bad path", http.StatusBadRequest)
		return
	}

	sse := bridge.NewSSEWriter(w)

	page := a.pageFor(u.Path)
	if page == nil {
		sse.Done()
		return
	}

	queries, err := a.renderer.Discover(r.Context(), page, u)
	if err != nil {
		a.logger.Error("prefetch discover failed", "path", u.Path, "error", err)
		sse.Done()
		return
	}

	for _, q := range queries {
		if q.Disabled() || !q.Settled() {
			continue
		}
		value, qerr := q.Result()
		if qerr != nil {
			continue
		}
		if werr := sse.Data(map[string]any{"key": q.Key, "data": value}); werr != nil {
			return
		}
	}
	sse.Done()
}

// pageFor resolves a concrete request path to its registered page factory
// through the router's pattern matching.
func (a *App) pageFor(path string) Page {
	rctx := chi.NewRouteContext()
	if !a.router.Match(rctx, http.MethodGet, path) {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.pages[rctx.RoutePattern()]
}

// =============================================================================
// Live Updates
// =============================================================================

// handleLive upgrades GET /_verso/live to a WebSocket and keeps the
// connection registered with the hub until the client goes away. The
// server never expects client frames; the read loop exists to detect
// disconnects.
func (a *App) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Debug("live upgrade failed", "error", err)
		return
	}
	a.live.add(conn)
	defer func() {
		a.live.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
