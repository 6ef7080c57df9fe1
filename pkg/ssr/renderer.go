package ssr

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verso-dev/verso/pkg/dom"
	"github.com/verso-dev/verso/pkg/render"
	"github.com/verso-dev/verso/pkg/vdom"
)

// AppFunc is the application factory: a zero-argument function returning
// the component tree for the current ambient state. It is called twice
// per request (discovery, then final render) and must be safe to call
// twice without duplicating side effects beyond re-registering the same
// logical queries.
type AppFunc func() *vdom.VNode

// Config configures a Renderer.
type Config struct {
	// Logger receives render diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// QueryTimeout is the render-wide default for queries that specify
	// none. Zero keeps the package default.
	QueryTimeout time.Duration

	// GlobalCSS is theme/global CSS prepended to every render's
	// collected styles.
	GlobalCSS []string
}

// Renderer runs the two-pass render.
//
// All full renders in the process are serialized through one mutex: the
// node shim, the ambient request context, and the timeout override are
// globally stored because component code expects browser-style ambient
// globals, and two interleaved renders would corrupt them. Throughput on
// this path is one render at a time; do not parallelize it.
type Renderer struct {
	logger       *slog.Logger
	queryTimeout time.Duration
	globalCSS    []string
}

// renderMu serializes end-to-end renders. The next render starts only
// after the previous one's cleanup has fully run.
var renderMu sync.Mutex

// NewRenderer creates a Renderer.
func NewRenderer(cfg Config) *Renderer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		logger:       logger,
		queryTimeout: cfg.QueryTimeout,
		globalCSS:    cfg.GlobalCSS,
	}
}

// Result is the outcome of a two-pass render.
type Result struct {
	// HTML is the serialized second-pass tree.
	HTML string

	// Tree is the second-pass tree itself, for callers that stream it
	// instead of using HTML.
	Tree *vdom.VNode

	// CSS is the deduplicated global plus component-injected styles.
	CSS []string

	// Pending holds queries that lost their race and are not disabled:
	// their data, once it settles, is still deliverable to the client
	// by the streaming path. Fast queries never appear here - they were
	// already inlined into HTML.
	Pending []*Query

	// Data receives late-resolved query values as the streaming path
	// delivers them. Empty for buffered renders.
	Data map[string]any

	// Errors are the non-fatal errors collected during the render.
	Errors []error
}

// Render runs the full two-pass render for the app factory at the given
// URL. A synchronous panic in the factory is fatal for the request and is
// returned as an error; query failures and timeouts are not.
func (r *Renderer) Render(ctx context.Context, app AppFunc, u *url.URL) (res *Result, err error) {
	renderMu.Lock()
	defer renderMu.Unlock()

	start := time.Now()
	doc := dom.NewDocument()
	doc.SetLocation(u)
	dom.Install(doc)
	if r.queryTimeout > 0 {
		SetTimeoutOverride(r.queryTimeout)
	}
	defer func() {
		// Teardown runs on every path, error or not. The shim is
		// replaced, never deleted, so a fetch settling after cleanup
		// touches an empty tree instead of nil.
		ClearTimeoutOverride()
		dom.Reset()
	}()

	rc := NewRequestContext(u)
	runErr := RunWithContext(rc, func() error {
		// Pass 1: discovery. The tree is discarded; its purpose is the
		// query registrations it triggers.
		if _, perr := callApp(app); perr != nil {
			return perr
		}

		queries := rc.Queries()
		awaitAll(ctx, queries)
		rc.ClearQueries()

		// Pass 2: final render with resolved data visible.
		tree, perr := callApp(app)
		if perr != nil {
			return perr
		}

		html, serr := render.NewRenderer().Serialize(tree)
		if serr != nil {
			return serr
		}

		res = &Result{
			HTML: html,
			Tree: tree,
			CSS:  dedupeCSS(r.globalCSS, doc.Styles()),
			Data: make(map[string]any),
		}
		for _, q := range queries {
			if !q.Resolved() && !q.Disabled() {
				res.Pending = append(res.Pending, q)
			}
		}
		res.Errors = rc.Errors()
		return nil
	})
	if runErr != nil {
		r.logger.Error("render failed", "url", u.String(), "error", runErr)
		return nil, runErr
	}

	r.logger.Debug("render complete",
		"url", u.String(),
		"duration", time.Since(start),
		"pending", len(res.Pending),
		"errors", len(res.Errors),
	)
	return res, nil
}

// Discover runs only the discovery pass and the await phase, returning
// the registered queries with their settled state. Used by navigation
// prefetch, which wants data rather than HTML.
func (r *Renderer) Discover(ctx context.Context, app AppFunc, u *url.URL) ([]*Query, error) {
	renderMu.Lock()
	defer renderMu.Unlock()

	doc := dom.NewDocument()
	doc.SetLocation(u)
	dom.Install(doc)
	if r.queryTimeout > 0 {
		SetTimeoutOverride(r.queryTimeout)
	}
	defer func() {
		ClearTimeoutOverride()
		dom.Reset()
	}()

	rc := NewRequestContext(u)
	var queries []*Query
	runErr := RunWithContext(rc, func() error {
		if _, perr := callApp(app); perr != nil {
			return perr
		}
		queries = rc.Queries()
		awaitAll(ctx, queries)
		return nil
	})
	if runErr != nil {
		return nil, runErr
	}
	return queries, nil
}

// awaitAll awaits every query in parallel with settle-all semantics: one
// slow or failing query neither blocks nor fails the others.
func awaitAll(ctx context.Context, queries []*Query) {
	if len(queries) == 0 {
		return
	}
	var g errgroup.Group
	for _, q := range queries {
		q := q
		g.Go(func() error {
			q.Await(ctx)
			return nil
		})
	}
	// Workers never return errors; Wait is a join.
	_ = g.Wait()
}

// callApp invokes the app factory, converting a panic into an error so a
// broken component cannot take the process down or leak a locked render.
func callApp(app AppFunc) (tree *vdom.VNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ssr: app factory panic: %v", r)
		}
	}()
	return app(), nil
}

// dedupeCSS merges style groups preserving first-seen order.
func dedupeCSS(groups ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, css := range group {
			if css == "" {
				continue
			}
			if _, dup := seen[css]; dup {
				continue
			}
			seen[css] = struct{}{}
			out = append(out, css)
		}
	}
	return out
}
