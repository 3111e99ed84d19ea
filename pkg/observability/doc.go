// Package observability provides structured logging, Prometheus metrics,
// health probes, and graceful shutdown for the todos service.
//
// # Logging
//
// Logger wraps log/slog with a JSON handler. Request handlers obtain a
// request-scoped logger via FromContext, which carries the request ID
// injected by the middleware chain.
//
// # Metrics
//
// NewMetrics registers HTTP, auth, and business counters on a Prometheus
// registry. The registry is exposed on GET /metrics.
//
// # Health
//
// HealthChecker exposes a trivial liveness probe and a readiness probe
// that pings the storage backend.
package observability
