package ssr

import (
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// RequestContext is the per-request isolated state of one render: the
// request URL, the registered data queries, and any non-fatal errors
// collected along the way. It lives for exactly one render call and is
// discarded in the render's cleanup path.
type RequestContext struct {
	url *url.URL

	mu      sync.Mutex
	queries []*Query
	known   map[string]*Query
	errs    []error
}

// NewRequestContext creates a context for the given request URL.
func NewRequestContext(u *url.URL) *RequestContext {
	if u == nil {
		u = &url.URL{Path: "/"}
	}
	return &RequestContext{
		url:   u,
		known: make(map[string]*Query),
	}
}

// URL returns the request URL.
func (rc *RequestContext) URL() *url.URL { return rc.url }

func (rc *RequestContext) register(q *Query) {
	if q == nil || q.Key == "" {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	// Re-registration of a known key is ignored: the second render pass
	// re-runs component registration logic, and resolution state from
	// the first pass must win.
	if _, ok := rc.known[q.Key]; ok {
		return
	}
	rc.known[q.Key] = q
	rc.queries = append(rc.queries, q)
}

// Queries returns the queries registered since the last clear.
func (rc *RequestContext) Queries() []*Query {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]*Query, len(rc.queries))
	copy(out, rc.queries)
	return out
}

// ClearQueries empties the active query list while remembering the keys,
// so the second pass cannot double-accumulate the same logical queries.
func (rc *RequestContext) ClearQueries() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.queries = nil
}

// CollectError records a non-fatal render error.
func (rc *RequestContext) CollectError(err error) {
	if err == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.errs = append(rc.errs, err)
}

// Errors returns the collected non-fatal errors.
func (rc *RequestContext) Errors() []error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]error, len(rc.errs))
	copy(out, rc.errs)
	return out
}

// =============================================================================
// Ambient context
// =============================================================================

// The ambient slot holds the context of the in-flight render. Renders are
// serialized by the renderer's mutex, so one slot suffices; query fetch
// goroutines may read it concurrently, hence the atomic pointer.
var ambient atomic.Pointer[RequestContext]

// RunWithContext installs rc as the ambient context for the dynamic
// extent of fn, including any asynchronous work fn awaits, and tears it
// down when fn returns or panics.
func RunWithContext(rc *RequestContext, fn func() error) error {
	ambient.Store(rc)
	defer ambient.Store(nil)
	return fn()
}

// Current returns the ambient request context, or nil outside a render.
func Current() *RequestContext {
	return ambient.Load()
}

// RegisterQuery appends a query to the current context. Outside a render
// it is a silent no-op: the same component code legitimately runs in
// non-SSR contexts where there is nothing to register with.
func RegisterQuery(q *Query) {
	if rc := Current(); rc != nil {
		rc.register(q)
	}
}

// CollectError records a non-fatal error on the current context; no-op
// outside a render.
func CollectError(err error) {
	if rc := Current(); rc != nil {
		rc.CollectError(err)
	}
}

// =============================================================================
// Timeout override
// =============================================================================

// DefaultQueryTimeout applies to queries that specify no timeout when no
// render-wide override is in effect.
const DefaultQueryTimeout = 5 * time.Second

// timeoutOverride is the process-wide default set around a render.
var timeoutOverride atomic.Int64

// SetTimeoutOverride installs a render-wide default query timeout.
func SetTimeoutOverride(d time.Duration) {
	timeoutOverride.Store(int64(d))
}

// ClearTimeoutOverride removes the render-wide default.
func ClearTimeoutOverride() {
	timeoutOverride.Store(0)
}

func currentTimeoutOverride() (time.Duration, bool) {
	v := timeoutOverride.Load()
	if v <= 0 {
		return 0, false
	}
	return time.Duration(v), true
}
