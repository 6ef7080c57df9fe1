// Package verso is a server-side rendering framework: components build a
// virtual tree against a browser-like document shim, declare their data
// dependencies as async queries, and the renderer races those queries
// against per-query timeouts across two render passes. Fast data is
// inlined into the HTML; slow data arrives through streamed suspense
// chunks, script pushes, or a prefetch event stream.
//
// Usage:
//
//	app := verso.New(verso.DefaultConfig())
//	app.Page("/", func() *vdom.VNode {
//	    return vdom.El("h1", "Hello")
//	})
//	http.ListenAndServe(":8080", app)
package verso

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verso-dev/verso/pkg/bridge"
	"github.com/verso-dev/verso/pkg/middleware"
	"github.com/verso-dev/verso/pkg/ssr"
)

// Page is an application page factory: a zero-argument function returning
// the component tree for the current ambient document and request context.
// It is called twice per request, so it must be safe to re-run.
type Page = ssr.AppFunc

// App is the main Verso application entry point. It wraps the renderer,
// the page routes, the prefetch and live-update endpoints, and static
// file serving into a single http.Handler.
type App struct {
	router   chi.Router
	renderer *ssr.Renderer
	template *ssr.Template
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	pages map[string]Page

	live *liveHub

	config Config
	logger *slog.Logger
}

// New creates a new Verso application with the given configuration.
// It panics if the configured template is invalid: an app without a
// usable shell cannot serve anything.
func New(cfg Config) *App {
	if cfg.Static.Prefix == "" {
		cfg.Static.Prefix = DefaultStaticConfig().Prefix
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsConfig().Path
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := loadAppTemplate(cfg)
	if err != nil {
		panic("verso: " + err.Error())
	}

	app := &App{
		router:   chi.NewRouter(),
		renderer: ssr.NewRenderer(ssr.Config{
			Logger:       logger,
			QueryTimeout: cfg.QueryTimeout,
			GlobalCSS:    cfg.GlobalCSS,
		}),
		template: tmpl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		pages:  make(map[string]Page),
		live:   newLiveHub(logger),
		config: cfg,
		logger: logger,
	}

	if cfg.Metrics.Enabled {
		app.router.Use(middleware.Prometheus())
		app.router.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	app.router.Get("/_verso/prefetch", app.handlePrefetch)
	app.router.Get("/_verso/live", app.handleLive)

	if cfg.Static.Dir != "" {
		prefix := strings.TrimSuffix(cfg.Static.Prefix, "/")
		fs := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Static.Dir)))
		app.router.Handle(prefix+"/*", fs)
	}

	return app
}

func loadAppTemplate(cfg Config) (*ssr.Template, error) {
	switch {
	case cfg.TemplatePath != "":
		return ssr.LoadTemplate(cfg.TemplatePath)
	case cfg.Template != "":
		return ssr.ParseTemplate(cfg.Template)
	default:
		return ssr.ParseTemplate(ssr.DefaultTemplate)
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// Page registers a page factory at the given chi route pattern.
//
//	app.Page("/", pages.Index)
//	app.Page("/projects/{id}", pages.Project)
//
// The factory reads the matched URL from the ambient document location.
func (a *App) Page(pattern string, page Page) {
	a.mu.Lock()
	a.pages[pattern] = page
	a.mu.Unlock()

	if a.config.Streaming {
		a.router.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
			a.renderStream(w, r, page)
		})
		return
	}
	a.router.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		a.renderBuffered(w, r, page)
	})
}

// Use adds net/http middleware to the router chain. Must be called
// before the first Page registration.
func (a *App) Use(mw ...func(http.Handler) http.Handler) {
	a.router.Use(mw...)
}

// =============================================================================
// http.Handler Implementation
// =============================================================================

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router returns the underlying chi router for advanced configuration.
// Most apps won't need this.
func (a *App) Router() chi.Router {
	return a.router
}

// Config returns the app configuration.
func (a *App) Config() Config {
	return a.config
}

// Push broadcasts a key/value pair to every connected live client. The
// value crosses the wire as a script-safe JSON data frame and surfaces in
// the browser through the same data event used by streamed pushes.
func (a *App) Push(key string, value any) {
	a.live.broadcast(key, value)
}

// Run starts an HTTP server on addr and blocks until it fails.
//
//	app := verso.New(cfg)
//	app.Page("/", pages.Index)
//	app.Run(":8080")
func (a *App) Run(addr string) error {
	a.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, a)
}

// =============================================================================
// Live hub
// =============================================================================

// liveHub tracks open live-update WebSocket connections and fans
// broadcast frames out to them.
type liveHub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	logger *slog.Logger
}

func newLiveHub(logger *slog.Logger) *liveHub {
	return &liveHub{
		conns:  make(map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

func (h *liveHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	middleware.RecordLiveConnect()
}

func (h *liveHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, open := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()
	if open {
		middleware.RecordLiveDisconnect()
	}
}

// broadcast sends one data frame to every connection. A write failure
// drops that connection; the rest keep receiving.
func (h *liveHub) broadcast(key string, value any) {
	frame, err := bridge.SafeSerialize(map[string]any{"key": key, "value": value})
	if err != nil {
		h.logger.Error("live broadcast serialize failed", "key", key, "error", err)
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			h.logger.Debug("live client dropped", "error", err)
			c.Close()
			h.remove(c)
		}
	}
}
