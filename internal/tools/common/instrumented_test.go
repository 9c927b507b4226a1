package common

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/zoomchat/internal/instrumentation"
	"github.com/teemow/zoomchat/internal/server"
	"github.com/teemow/zoomchat/internal/zoom"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	store := zoom.NewCredentialStore(filepath.Join(t.TempDir(), "zoom.json"))
	tokens := zoom.NewTokenManager(store, zoom.OAuthConfig{})
	client := zoom.NewClient("", tokens, nil)

	sc := server.NewServerContext(context.Background(), client, false)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func requestWithArgs(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestInstrumentedToolHandler_Success(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	// Create a handler that returns success
	called := false
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("success"), nil
	}

	// Wrap with instrumentation
	wrapped := InstrumentedToolHandler("test_tool", "list", sc, handler)

	result, err := wrapped(ctx, mcp.CallToolRequest{})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
	if result == nil {
		t.Error("expected result, got nil")
	}
}

func TestInstrumentedToolHandler_Error(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)

	// Create a handler that returns an error
	expectedErr := errors.New("test error")
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, expectedErr
	}

	wrapped := InstrumentedToolHandler("test_tool", "send", sc, handler)

	_, err := wrapped(ctx, mcp.CallToolRequest{})

	if err != expectedErr {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestInstrumentedToolHandler_WithAuditLogger(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)
	sc.SetAuditLogger(instrumentation.NewAuditLogger(slog.Default()))

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	wrapped := InstrumentedToolHandler("zoom_send_message", "send", sc, handler)

	// Should not panic; the target is picked up from the arguments for the
	// audit record.
	req := requestWithArgs(map[string]any{
		"to_channel": "ch-1",
		"message":    "hello",
	})
	if _, err := wrapped(ctx, req); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestInstrumentedToolHandler_ToolResultError(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t)
	sc.SetAuditLogger(instrumentation.NewAuditLogger(slog.Default()))

	// Handler returns an error result, not a Go error
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("tool failed"), nil
	}

	wrapped := InstrumentedToolHandler("test_tool", "get", sc, handler)

	result, err := wrapped(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected an error result")
	}
}

func TestChannelFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"channel_id", map[string]interface{}{"channel_id": "ch-1"}, "ch-1"},
		{"to_channel", map[string]interface{}{"to_channel": "ch-2"}, "ch-2"},
		{"channel_id wins", map[string]interface{}{"channel_id": "ch-1", "to_channel": "ch-2"}, "ch-1"},
		{"none", map[string]interface{}{"message": "hi"}, ""},
		{"empty", map[string]interface{}{"channel_id": ""}, ""},
		{"wrong type", map[string]interface{}{"channel_id": 42}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChannelFromArgs(tt.args); got != tt.want {
				t.Errorf("ChannelFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContactFromArgs(t *testing.T) {
	if got := ContactFromArgs(map[string]interface{}{"to_contact": "jane@example.com"}); got != "jane@example.com" {
		t.Errorf("ContactFromArgs() = %q, want %q", got, "jane@example.com")
	}
	if got := ContactFromArgs(map[string]interface{}{}); got != "" {
		t.Errorf("ContactFromArgs() = %q, want empty", got)
	}
}
