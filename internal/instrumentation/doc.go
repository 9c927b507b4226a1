// Package instrumentation provides comprehensive OpenTelemetry instrumentation
// for the zoomchat MCP server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for Zoom API requests, retries and OAuth operations
//   - Distributed tracing for tool invocations and API calls
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Zoom API Metrics:
//   - zoom_api_requests_total: Counter of Zoom API requests by method, path, and status
//   - zoom_api_request_duration_seconds: Histogram of Zoom API request durations
//   - zoom_api_retries_total: Counter of retried attempts by reason
//
// OAuth Authentication Metrics:
//   - oauth_auth_total: Counter of interactive authorization attempts by result
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - MCP tool invocations (tool.<name>)
//   - Zoom API calls (zoom.<method> <path>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: zoomchat)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "zoomchat",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record a Zoom API request
//	recorder.RecordAPIRequest(ctx, "GET", "/chat/users/me/channels", 200, time.Since(start))
//
//	// Record an MCP tool invocation
//	recorder.RecordToolInvocation(ctx, "zoom_list_channels", "success", time.Since(start))
package instrumentation
