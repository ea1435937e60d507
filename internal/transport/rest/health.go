package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

// pinger defines the minimal interface for component health checks.
type pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to the pinger interface.
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx).
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type component struct {
	name     string
	check    pinger
	critical bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	components []component
	version    string
}

// NewHealthHandler creates a HealthHandler. The database is always a
// critical component.
func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{
		components: []component{{name: "database", check: db, critical: true}},
		version:    version,
	}
}

// WithOptional adds a component whose failure degrades, but does not fail,
// the health status. The lookup cache is one.
func (h *HealthHandler) WithOptional(name string, check pinger) *HealthHandler {
	h.components = append(h.components, component{name: name, check: check})
	return h
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 when every critical component answers,
// 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.check(r.Context())
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component latency and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.check(r.Context())
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// check returns "ok", "degraded" (an optional component is down) or "down"
// (a critical component is down).
func (h *HealthHandler) check(ctx context.Context) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	overall := "ok"
	components := make(map[string]CompStatus, len(h.components))
	for _, c := range h.components {
		start := time.Now()
		err := c.check.Ping(ctx)
		latency := time.Since(start)

		if err == nil {
			components[c.name] = CompStatus{Status: "ok", Latency: latency.String()}
			continue
		}

		components[c.name] = CompStatus{Status: "down"}
		switch {
		case c.critical:
			overall = "down"
		case overall == "ok":
			overall = "degraded"
		}
	}
	return overall, components
}
