package chat_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/zoomchat/internal/server"
)

// Zoom channel type numbering.
const (
	channelTypePrivate            = 1
	channelTypePrivateWithMembers = 2
	channelTypePublic             = 3
)

// channelTypeName renders Zoom's numeric channel type for humans
func channelTypeName(t int) string {
	switch t {
	case channelTypePrivate:
		return "private"
	case channelTypePrivateWithMembers:
		return "private (invited members)"
	case channelTypePublic:
		return "public"
	default:
		return fmt.Sprintf("type %d", t)
	}
}

// RegisterChannelTools registers channel management tools
func RegisterChannelTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List channels tool (read-only)
	listChannelsTool := mcp.NewTool("zoom_list_channels",
		mcp.WithDescription("List all Zoom Team Chat channels the user is a member of"),
	)
	registerReadTool(s, sc, listChannelsTool, "list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListChannels(ctx, request, sc)
	})

	// Get channel tool (read-only)
	getChannelTool := mcp.NewTool("zoom_get_channel",
		mcp.WithDescription("Get details of a Zoom Team Chat channel"),
		mcp.WithString("channel_id",
			mcp.Required(),
			mcp.Description("ID of the channel"),
		),
	)
	registerReadTool(s, sc, getChannelTool, "get", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetChannel(ctx, request, sc)
	})

	// List channel members tool (read-only)
	listMembersTool := mcp.NewTool("zoom_list_channel_members",
		mcp.WithDescription("List the members of a Zoom Team Chat channel"),
		mcp.WithString("channel_id",
			mcp.Required(),
			mcp.Description("ID of the channel"),
		),
	)
	registerReadTool(s, sc, listMembersTool, "list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListChannelMembers(ctx, request, sc)
	})

	// Create channel tool (requires write permissions)
	createChannelTool := mcp.NewTool("zoom_create_channel",
		mcp.WithDescription("Create a new Zoom Team Chat channel"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the new channel"),
		),
		mcp.WithNumber("channel_type",
			mcp.Description("Channel type: 1 private, 2 private with invited members, 3 public (default: 1)"),
		),
		mcp.WithString("members",
			mcp.Description("Comma-separated email addresses to invite (e.g., 'jane@example.com,bob@example.com')"),
		),
	)
	registerWriteTool(s, sc, createChannelTool, "create", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreateChannel(ctx, request, sc)
	})

	// Rename channel tool (requires write permissions)
	renameChannelTool := mcp.NewTool("zoom_rename_channel",
		mcp.WithDescription("Rename a Zoom Team Chat channel"),
		mcp.WithString("channel_id",
			mcp.Required(),
			mcp.Description("ID of the channel"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("New name for the channel"),
		),
	)
	registerWriteTool(s, sc, renameChannelTool, "rename", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRenameChannel(ctx, request, sc)
	})

	// Delete channel tool (requires write permissions)
	deleteChannelTool := mcp.NewTool("zoom_delete_channel",
		mcp.WithDescription("Delete a Zoom Team Chat channel. This cannot be undone."),
		mcp.WithString("channel_id",
			mcp.Required(),
			mcp.Description("ID of the channel to delete"),
		),
	)
	registerWriteTool(s, sc, deleteChannelTool, "delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDeleteChannel(ctx, request, sc)
	})

	return nil
}

// handleListChannels handles the zoom_list_channels tool
func handleListChannels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client := sc.ZoomClient()

	channels, err := client.ListChannels(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list channels: %v", err)), nil
	}

	if len(channels) == 0 {
		return mcp.NewToolResultText("No Zoom Team Chat channels found"), nil
	}

	result := fmt.Sprintf("Found %d channel(s):\n", len(channels))
	for i, ch := range channels {
		result += fmt.Sprintf("\n%d. %s (%s)\n", i+1, ch.Name, channelTypeName(ch.Type))
		result += fmt.Sprintf("   ID: %s\n", ch.ID)
		if ch.TotalMember > 0 {
			result += fmt.Sprintf("   Members: %d\n", ch.TotalMember)
		}
	}

	return mcp.NewToolResultText(result), nil
}

// handleGetChannel handles the zoom_get_channel tool
func handleGetChannel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	channelID, ok := args["channel_id"].(string)
	if !ok || channelID == "" {
		return mcp.NewToolResultError("Missing or invalid 'channel_id' parameter"), nil
	}

	channel, err := sc.ZoomClient().GetChannel(ctx, channelID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get channel: %v", err)), nil
	}

	result := fmt.Sprintf("Channel: %s\n", channel.Name)
	result += fmt.Sprintf("ID: %s\n", channel.ID)
	result += fmt.Sprintf("Type: %s\n", channelTypeName(channel.Type))
	if channel.TotalMember > 0 {
		result += fmt.Sprintf("Members: %d\n", channel.TotalMember)
	}
	if channel.ChannelURL != "" {
		result += fmt.Sprintf("URL: %s\n", channel.ChannelURL)
	}

	return mcp.NewToolResultText(result), nil
}

// handleListChannelMembers handles the zoom_list_channel_members tool
func handleListChannelMembers(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	channelID, ok := args["channel_id"].(string)
	if !ok || channelID == "" {
		return mcp.NewToolResultError("Missing or invalid 'channel_id' parameter"), nil
	}

	members, err := sc.ZoomClient().ListChannelMembers(ctx, channelID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list channel members: %v", err)), nil
	}

	if len(members) == 0 {
		return mcp.NewToolResultText("No members found in this channel"), nil
	}

	result := fmt.Sprintf("Found %d member(s):\n", len(members))
	for i, m := range members {
		name := strings.TrimSpace(m.FirstName + " " + m.LastName)
		if name == "" {
			name = m.Email
		}
		result += fmt.Sprintf("\n%d. %s\n", i+1, name)
		if m.Email != "" {
			result += fmt.Sprintf("   Email: %s\n", m.Email)
		}
		if m.Role != "" {
			result += fmt.Sprintf("   Role: %s\n", m.Role)
		}
	}

	return mcp.NewToolResultText(result), nil
}

// handleCreateChannel handles the zoom_create_channel tool
func handleCreateChannel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("Missing or invalid 'name' parameter"), nil
	}

	channelType := channelTypePrivate
	if v, ok := args["channel_type"].(float64); ok {
		channelType = int(v)
	}
	switch channelType {
	case channelTypePrivate, channelTypePrivateWithMembers, channelTypePublic:
	default:
		return mcp.NewToolResultError("Invalid 'channel_type' parameter: must be 1, 2 or 3"), nil
	}

	var members []string
	if v, ok := args["members"].(string); ok && v != "" {
		for _, email := range strings.Split(v, ",") {
			if email = strings.TrimSpace(email); email != "" {
				members = append(members, email)
			}
		}
	}

	channel, err := sc.ZoomClient().CreateChannel(ctx, name, channelType, members)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create channel: %v", err)), nil
	}

	result := fmt.Sprintf("Successfully created channel '%s'\n", channel.Name)
	result += fmt.Sprintf("ID: %s\n", channel.ID)
	result += fmt.Sprintf("Type: %s\n", channelTypeName(channel.Type))

	return mcp.NewToolResultText(result), nil
}

// handleRenameChannel handles the zoom_rename_channel tool
func handleRenameChannel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	channelID, ok := args["channel_id"].(string)
	if !ok || channelID == "" {
		return mcp.NewToolResultError("Missing or invalid 'channel_id' parameter"), nil
	}

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("Missing or invalid 'name' parameter"), nil
	}

	if err := sc.ZoomClient().RenameChannel(ctx, channelID, name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to rename channel: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully renamed channel %s to '%s'", channelID, name)), nil
}

// handleDeleteChannel handles the zoom_delete_channel tool
func handleDeleteChannel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	channelID, ok := args["channel_id"].(string)
	if !ok || channelID == "" {
		return mcp.NewToolResultError("Missing or invalid 'channel_id' parameter"), nil
	}

	if err := sc.ZoomClient().DeleteChannel(ctx, channelID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete channel: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted channel %s", channelID)), nil
}
