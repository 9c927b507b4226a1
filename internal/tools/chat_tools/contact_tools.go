package chat_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/zoomchat/internal/server"
	"github.com/teemow/zoomchat/internal/zoom"
)

// RegisterContactTools registers contact tools
func RegisterContactTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List contacts tool (read-only)
	listContactsTool := mcp.NewTool("zoom_list_contacts",
		mcp.WithDescription("List the user's Zoom contacts"),
	)
	registerReadTool(s, sc, listContactsTool, "list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListContacts(ctx, request, sc)
	})

	// Search contacts tool (read-only)
	searchContactsTool := mcp.NewTool("zoom_search_contacts",
		mcp.WithDescription("Search Zoom directory contacts by name or email"),
		mcp.WithString("search_key",
			mcp.Required(),
			mcp.Description("Name or email address to search for"),
		),
	)
	registerReadTool(s, sc, searchContactsTool, "search", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearchContacts(ctx, request, sc)
	})

	return nil
}

// formatContacts renders a contact listing for tool output
func formatContacts(contacts []zoom.Contact) string {
	result := fmt.Sprintf("Found %d contact(s):\n", len(contacts))
	for i, c := range contacts {
		name := strings.TrimSpace(c.FirstName + " " + c.LastName)
		if name == "" {
			name = c.Email
		}
		result += fmt.Sprintf("\n%d. %s\n", i+1, name)
		if c.Email != "" {
			result += fmt.Sprintf("   Email: %s\n", c.Email)
		}
		if c.PresenceStatus != "" {
			result += fmt.Sprintf("   Presence: %s\n", c.PresenceStatus)
		}
	}
	return result
}

// handleListContacts handles the zoom_list_contacts tool
func handleListContacts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	contacts, err := sc.ZoomClient().ListContacts(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list contacts: %v", err)), nil
	}

	if len(contacts) == 0 {
		return mcp.NewToolResultText("No Zoom contacts found"), nil
	}

	return mcp.NewToolResultText(formatContacts(contacts)), nil
}

// handleSearchContacts handles the zoom_search_contacts tool
func handleSearchContacts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	searchKey, ok := args["search_key"].(string)
	if !ok || searchKey == "" {
		return mcp.NewToolResultError("Missing or invalid 'search_key' parameter"), nil
	}

	contacts, err := sc.ZoomClient().SearchContacts(ctx, searchKey)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search contacts: %v", err)), nil
	}

	if len(contacts) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No contacts found matching '%s'", searchKey)), nil
	}

	return mcp.NewToolResultText(formatContacts(contacts)), nil
}
