package verso

import (
	"log/slog"
	"time"
)

// =============================================================================
// Configuration Types
// =============================================================================

// Config is the main application configuration.
// This is the user-friendly entry point for configuring a Verso app.
type Config struct {
	// TemplatePath is the path to the HTML app shell. The shell must
	// contain an <!--ssr-outlet--> comment or a <div id="app"> element,
	// a </head> and a </body>. When empty, Template is consulted; when
	// both are empty, a minimal built-in shell is used.
	TemplatePath string

	// Template is the HTML app shell as a string. Ignored when
	// TemplatePath is set.
	Template string

	// GlobalCSS is theme CSS prepended to every page's collected styles.
	GlobalCSS []string

	// QueryTimeout is the render-wide default await budget for data
	// queries that specify none. Zero keeps the package default (5s).
	QueryTimeout time.Duration

	// Streaming enables out-of-order streaming responses: the shell is
	// flushed immediately and suspense boundaries arrive as chunks.
	// When false, every page is fully buffered.
	Streaming bool

	// StreamDeadline is the hard cap on how long a streaming response
	// stays open waiting for late boundaries and query data. Zero keeps
	// the render package default (10s).
	StreamDeadline time.Duration

	// ScriptNonce, when set, is added as the nonce attribute on every
	// inline script the framework emits. Set it per-deployment when a
	// CSP is in play.
	ScriptNonce string

	// Static configures static file serving.
	Static StaticConfig

	// Metrics configures the Prometheus endpoint and middleware.
	Metrics MetricsConfig

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// StaticConfig configures static file serving.
type StaticConfig struct {
	// Dir is the directory containing static files (e.g., "public").
	// Empty disables static serving.
	Dir string

	// Prefix is the URL path prefix for static files (e.g., "/static").
	// Default: "/static".
	Prefix string
}

// MetricsConfig configures the Prometheus surface.
type MetricsConfig struct {
	// Enabled turns on the request metrics middleware and the scrape
	// endpoint.
	Enabled bool

	// Path is the scrape endpoint path. Default: "/_verso/metrics".
	Path string
}

// =============================================================================
// Default Configurations
// =============================================================================

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Streaming: true,
		Static:    DefaultStaticConfig(),
		Metrics:   DefaultMetricsConfig(),
	}
}

// DefaultStaticConfig returns a StaticConfig with sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		Prefix: "/static",
	}
}

// DefaultMetricsConfig returns a MetricsConfig with sensible defaults.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: false,
		Path:    "/_verso/metrics",
	}
}
