// Package middleware provides HTTP middleware for Verso applications.
//
// The middleware here is standard net/http middleware (func(http.Handler)
// http.Handler) and composes with chi's Use chain:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus())
//	r.Use(middleware.OpenTelemetry())
//
// Prometheus collects render counters, latency histograms and streaming
// gauges; OpenTelemetry wraps each request in a server span. Both are
// optional and default to the global registry / tracer provider.
package middleware
