package server

import (
	"context"
	"sync"

	"github.com/teemow/zoomchat/internal/instrumentation"
	"github.com/teemow/zoomchat/internal/zoom"
)

// ServerContext holds the shared dependencies for the MCP server: the Zoom
// client, instrumentation and the audit logger. Tool handlers receive it at
// registration time.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	zoomClient  *zoom.Client
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	readOnly    bool
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context. The Zoom client is required;
// metrics and audit logger may be nil when instrumentation is disabled.
func NewServerContext(ctx context.Context, client *zoom.Client, readOnly bool) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		zoomClient: client,
		readOnly:   readOnly,
	}
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// ZoomClient returns the shared Zoom API client.
func (sc *ServerContext) ZoomClient() *zoom.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.zoomClient
}

// SetZoomClient replaces the Zoom API client. Used by tests.
func (sc *ServerContext) SetZoomClient(client *zoom.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.zoomClient = client
}

// ReadOnly reports whether write tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.readOnly
}

// Metrics returns the metrics recorder, or nil when instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics attaches the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil when audit logging is disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger attaches the audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
