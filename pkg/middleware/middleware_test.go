package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// The metrics singleton spans tests, so they share one registry.
var testRegistry = prometheus.NewRegistry()

func metricValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := testRegistry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	metric:
		for _, m := range fam.GetMetric() {
			for k, v := range labels {
				found := false
				for _, lp := range m.GetLabel() {
					if lp.GetName() == k && lp.GetValue() == v {
						found = true
						break
					}
				}
				if !found {
					continue metric
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
		}
	}
	return 0
}

func TestPrometheusMiddlewareCountsRequests(t *testing.T) {
	mw := Prometheus(WithRegistry(testRegistry))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	got := metricValue(t, "verso_renders_total", map[string]string{
		"path":   "/dashboard",
		"status": "200",
	})
	if got != 2 {
		t.Errorf("renders_total = %v, want 2", got)
	}
}

func TestPrometheusMiddlewareCountsErrors(t *testing.T) {
	mw := Prometheus(WithRegistry(testRegistry))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	if got := metricValue(t, "verso_render_errors_total", map[string]string{"path": "/broken"}); got != 1 {
		t.Errorf("render_errors_total = %v, want 1", got)
	}
	if got := metricValue(t, "verso_renders_total", map[string]string{
		"path":   "/broken",
		"status": "500",
	}); got != 1 {
		t.Errorf("renders_total{500} = %v, want 1", got)
	}
}

func TestLiveConnectionGauge(t *testing.T) {
	_ = Prometheus(WithRegistry(testRegistry)) // ensure initialized

	before := metricValue(t, "verso_live_connections", nil)
	RecordLiveConnect()
	RecordLiveConnect()
	RecordLiveDisconnect()
	after := metricValue(t, "verso_live_connections", nil)
	if after-before != 1 {
		t.Errorf("live_connections delta = %v, want 1", after-before)
	}
}

func TestOpenTelemetryMiddlewarePassesThrough(t *testing.T) {
	mw := OpenTelemetry(WithTracerName("test"))
	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))

	if !called {
		t.Fatal("wrapped handler not called")
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestOpenTelemetryFilterSkips(t *testing.T) {
	mw := OpenTelemetry(WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("filtered request should still be served, got %d", rec.Code)
	}
}
