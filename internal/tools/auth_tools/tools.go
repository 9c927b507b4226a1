package auth_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/zoomchat/internal/server"
	"github.com/teemow/zoomchat/internal/tools/common"
)

// onboardingMessage is returned by zoom_status when no credential record
// exists. No API call is made in that case.
const onboardingMessage = `Not connected to Zoom.

Run "zoomchat auth" in a terminal to connect your Zoom account. You only need
to authorize once; tokens are refreshed automatically afterwards.`

// RegisterAuthTools registers authorization status tools with the MCP server
func RegisterAuthTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	statusTool := mcp.NewTool("zoom_status",
		mcp.WithDescription("Check the Zoom connection status and show the authorized user"),
	)

	s.AddTool(statusTool, common.InstrumentedToolHandler("zoom_status", "status", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleStatus(ctx, request, sc)
	}))

	return nil
}

// handleStatus handles the zoom_status tool
func handleStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client := sc.ZoomClient()

	// Without a credential record there is nothing to call; report how to
	// connect instead of failing an API request.
	if !client.Authorized() {
		return mcp.NewToolResultText(onboardingMessage), nil
	}

	user, err := client.Me(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to verify Zoom connection: %v", err)), nil
	}

	name := user.DisplayName
	if name == "" {
		name = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}

	result := "Connected to Zoom.\n"
	result += fmt.Sprintf("User: %s\n", name)
	if user.Email != "" {
		result += fmt.Sprintf("Email: %s\n", user.Email)
	}
	if user.Status != "" {
		result += fmt.Sprintf("Status: %s\n", user.Status)
	}
	if sc.ReadOnly() {
		result += "Mode: read-only (start with --yolo to enable write operations)\n"
	} else {
		result += "Mode: read-write\n"
	}

	return mcp.NewToolResultText(result), nil
}
