package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, detailedLabels bool) *Provider {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
		DetailedLabels:  detailedLabels,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func TestMetrics_RecordAPIRequest(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordAPIRequest(ctx, "GET", "/chat/users/me/channels", 200, 100*time.Millisecond)
	metrics.RecordAPIRequest(ctx, "POST", "/chat/users/me/messages", 429, 50*time.Millisecond)
	metrics.RecordAPIRequest(ctx, "DELETE", "/chat/channels/abc123", 204, 80*time.Millisecond)
}

func TestMetrics_RecordAPIRequest_DetailedLabels(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, true).Metrics()

	// Should not panic - raw path with resource ID should be included
	metrics.RecordAPIRequest(ctx, "GET", "/chat/channels/abc123", 200, 100*time.Millisecond)
}

func TestMetrics_RecordRetry(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.RecordRetry(ctx, "network")
	metrics.RecordRetry(ctx, "http_429")
	metrics.RecordRetry(ctx, "http_503")
}

func TestMetrics_RecordOAuthAuth(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.RecordOAuthAuth(ctx, OAuthResultSuccess)
	metrics.RecordOAuthAuth(ctx, OAuthResultFailure)
}

func TestMetrics_RecordTokenRefresh(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.RecordTokenRefresh(ctx, OAuthResultSuccess)
	metrics.RecordTokenRefresh(ctx, OAuthResultFailure)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.RecordToolInvocation(ctx, "zoom_list_channels", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "zoom_send_message", StatusError, 500*time.Millisecond)
}

func TestMetrics_NoOp_WhenDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil even when disabled")
	}

	// All these should not panic even with nil underlying metrics
	metrics.RecordAPIRequest(ctx, "GET", "/users/me", 200, 100*time.Millisecond)
	metrics.RecordRetry(ctx, "network")
	metrics.RecordOAuthAuth(ctx, OAuthResultSuccess)
	metrics.RecordTokenRefresh(ctx, OAuthResultSuccess)
	metrics.RecordToolInvocation(ctx, "test_tool", StatusSuccess, 100*time.Millisecond)
}
