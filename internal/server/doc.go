// Package server provides the MCP server context, health probes and the
// Prometheus metrics server for zoomchat.
//
// # Key Components
//
// ServerContext carries the shared Zoom client, the read-only flag and the
// instrumentation hooks (metrics recorder, audit logger) down to tool
// handlers. It owns a cancellable context so a shutdown propagates to
// in-flight operations.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated from
// the stdio MCP transport. HealthChecker adds /healthz and /readyz probes on
// the same mux for container orchestration.
package server
