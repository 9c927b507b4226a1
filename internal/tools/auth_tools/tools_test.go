package auth_tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/zoomchat/internal/server"
	"github.com/teemow/zoomchat/internal/zoom"
)

func newTestContext(t *testing.T, handler http.Handler, authorized, readOnly bool) *server.ServerContext {
	t.Helper()

	apiServer := httptest.NewServer(handler)
	t.Cleanup(apiServer.Close)

	store := zoom.NewCredentialStore(filepath.Join(t.TempDir(), "zoom.json"))
	if authorized {
		creds := &zoom.Credentials{
			AccessToken:  "access-valid",
			RefreshToken: "refresh-valid",
			TokenType:    "bearer",
			ExpiresIn:    3600,
			CreatedAt:    time.Now().UnixMilli(),
		}
		if err := store.Save(creds); err != nil {
			t.Fatalf("failed to seed credentials: %v", err)
		}
	}

	tokens := zoom.NewTokenManager(store, zoom.OAuthConfig{})
	client := zoom.NewClient(apiServer.URL, tokens, nil)

	sc := server.NewServerContext(context.Background(), client, readOnly)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("tool result content is not text: %T", result.Content[0])
	}
	return text.Text
}

func TestRegisterAuthTools(t *testing.T) {
	sc := newTestContext(t, http.NotFoundHandler(), false, false)
	mcpSrv := mcpserver.NewMCPServer("test-server", "1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	if err := RegisterAuthTools(mcpSrv, sc); err != nil {
		t.Errorf("RegisterAuthTools() error = %v", err)
	}
}

func TestHandleStatusUnauthorized(t *testing.T) {
	ctx := context.Background()

	// The handler must not be reached without credentials
	sc := newTestContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected API call to %s", r.URL.Path)
	}), false, false)

	result, err := handleStatus(ctx, mcp.CallToolRequest{}, sc)
	if err != nil {
		t.Fatalf("handleStatus() error = %v", err)
	}
	if result.IsError {
		t.Error("expected an informational result, not an error")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Not connected to Zoom") {
		t.Errorf("unexpected result: %s", text)
	}
	if !strings.Contains(text, "zoomchat auth") {
		t.Errorf("result missing onboarding instructions: %s", text)
	}
}

func TestHandleStatusAuthorized(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "u-1", "email": "jane@example.com", "display_name": "Jane Doe", "status": "active"}`))
	}), true, false)

	result, err := handleStatus(ctx, mcp.CallToolRequest{}, sc)
	if err != nil {
		t.Fatalf("handleStatus() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Connected to Zoom") {
		t.Errorf("unexpected result: %s", text)
	}
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "jane@example.com") {
		t.Errorf("result missing user details: %s", text)
	}
	if !strings.Contains(text, "Mode: read-write") {
		t.Errorf("result missing mode: %s", text)
	}
}

func TestHandleStatusReadOnlyMode(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "u-1", "first_name": "Jane", "last_name": "Doe"}`))
	}), true, true)

	result, err := handleStatus(ctx, mcp.CallToolRequest{}, sc)
	if err != nil {
		t.Fatalf("handleStatus() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Mode: read-only") {
		t.Errorf("result missing read-only mode: %s", text)
	}
	if !strings.Contains(text, "Jane Doe") {
		t.Errorf("expected name fallback from first/last name: %s", text)
	}
}

func TestHandleStatusAPIFailure(t *testing.T) {
	ctx := context.Background()
	sc := newTestContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code": 4700, "message": "Invalid access token, does not contain scopes: [user:read]."}`))
	}), true, false)

	result, err := handleStatus(ctx, mcp.CallToolRequest{}, sc)
	if err != nil {
		t.Fatalf("handleStatus() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if text := resultText(t, result); !strings.Contains(text, "Failed to verify Zoom connection") {
		t.Errorf("unexpected result: %s", text)
	}
}
