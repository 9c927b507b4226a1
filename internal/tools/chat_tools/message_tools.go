package chat_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/zoomchat/internal/server"
	"github.com/teemow/zoomchat/internal/zoom"
)

// messageTargetFromArgs extracts the conversation a message tool addresses.
// Zoom requires exactly one of to_channel or to_contact.
func messageTargetFromArgs(args map[string]interface{}) (zoom.MessageTarget, error) {
	var target zoom.MessageTarget
	if v, ok := args["to_channel"].(string); ok {
		target.ToChannel = v
	}
	if v, ok := args["to_contact"].(string); ok {
		target.ToContact = v
	}
	if target.ToChannel == "" && target.ToContact == "" {
		return target, fmt.Errorf("either 'to_channel' or 'to_contact' must be provided")
	}
	if target.ToChannel != "" && target.ToContact != "" {
		return target, fmt.Errorf("provide only one of 'to_channel' and 'to_contact', not both")
	}
	return target, nil
}

// RegisterMessageTools registers message tools
func RegisterMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List messages tool (read-only)
	listMessagesTool := mcp.NewTool("zoom_list_messages",
		mcp.WithDescription("List Zoom Team Chat messages exchanged with a channel or a contact"),
		mcp.WithString("to_channel",
			mcp.Description("Channel ID to list messages from (either this or 'to_contact' is required)"),
		),
		mcp.WithString("to_contact",
			mcp.Description("Contact email to list direct messages with (either this or 'to_channel' is required)"),
		),
		mcp.WithString("date",
			mcp.Description("Date to list messages for, in YYYY-MM-DD format (default: today)"),
		),
	)
	registerReadTool(s, sc, listMessagesTool, "list", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListMessages(ctx, request, sc)
	})

	// Send message tool (requires write permissions)
	sendMessageTool := mcp.NewTool("zoom_send_message",
		mcp.WithDescription("Send a Zoom Team Chat message to a channel or a contact"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Text message to send"),
		),
		mcp.WithString("to_channel",
			mcp.Description("Channel ID to send to (either this or 'to_contact' is required)"),
		),
		mcp.WithString("to_contact",
			mcp.Description("Contact email to send a direct message to (either this or 'to_channel' is required)"),
		),
		mcp.WithString("reply_main_message_id",
			mcp.Description("ID of a main message to reply to in a thread. Must be a thread-starting message, not a reply."),
		),
	)
	registerWriteTool(s, sc, sendMessageTool, "send", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSendMessage(ctx, request, sc)
	})

	// Update message tool (requires write permissions)
	updateMessageTool := mcp.NewTool("zoom_update_message",
		mcp.WithDescription("Edit the text of an existing Zoom Team Chat message"),
		mcp.WithString("message_id",
			mcp.Required(),
			mcp.Description("ID of the message to edit"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("New text for the message"),
		),
		mcp.WithString("to_channel",
			mcp.Description("Channel ID the message was sent to (either this or 'to_contact' is required)"),
		),
		mcp.WithString("to_contact",
			mcp.Description("Contact email the message was sent to (either this or 'to_channel' is required)"),
		),
	)
	registerWriteTool(s, sc, updateMessageTool, "update", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateMessage(ctx, request, sc)
	})

	// Delete message tool (requires write permissions)
	deleteMessageTool := mcp.NewTool("zoom_delete_message",
		mcp.WithDescription("Delete a Zoom Team Chat message. This cannot be undone."),
		mcp.WithString("message_id",
			mcp.Required(),
			mcp.Description("ID of the message to delete"),
		),
		mcp.WithString("to_channel",
			mcp.Description("Channel ID the message was sent to (either this or 'to_contact' is required)"),
		),
		mcp.WithString("to_contact",
			mcp.Description("Contact email the message was sent to (either this or 'to_channel' is required)"),
		),
	)
	registerWriteTool(s, sc, deleteMessageTool, "delete", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDeleteMessage(ctx, request, sc)
	})

	return nil
}

// handleListMessages handles the zoom_list_messages tool
func handleListMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	target, err := messageTargetFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	date, _ := args["date"].(string)

	messages, err := sc.ZoomClient().ListMessages(ctx, target, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
	}

	if len(messages) == 0 {
		return mcp.NewToolResultText("No messages found"), nil
	}

	result := fmt.Sprintf("Found %d message(s):\n", len(messages))
	for i, m := range messages {
		result += fmt.Sprintf("\n%d. %s\n", i+1, m.Message)
		result += fmt.Sprintf("   ID: %s\n", m.ID)
		if m.Sender != "" {
			result += fmt.Sprintf("   From: %s\n", m.Sender)
		}
		if m.DateTime != "" {
			result += fmt.Sprintf("   At: %s\n", m.DateTime)
		}
		if m.ReplyMainID != "" {
			result += fmt.Sprintf("   Reply to: %s\n", m.ReplyMainID)
		}
	}

	return mcp.NewToolResultText(result), nil
}

// handleSendMessage handles the zoom_send_message tool
func handleSendMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	message, ok := args["message"].(string)
	if !ok || message == "" {
		return mcp.NewToolResultError("Missing or invalid 'message' parameter"), nil
	}

	target, err := messageTargetFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := zoom.MessageInput{
		Message:   message,
		ToChannel: target.ToChannel,
		ToContact: target.ToContact,
	}
	if v, ok := args["reply_main_message_id"].(string); ok {
		input.ReplyMainMessageID = v
	}

	id, err := sc.ZoomClient().SendMessage(ctx, input)
	if err != nil {
		if zoom.IsThreadReplyTargetError(err) {
			return mcp.NewToolResultError("Failed to send reply: the 'reply_main_message_id' must reference a main message, not a reply inside a thread. Use zoom_list_messages to find the thread's main message ID."), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send message: %v", err)), nil
	}

	dest := target.ToChannel
	if dest == "" {
		dest = target.ToContact
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully sent message to %s (ID: %s)", dest, id)), nil
}

// handleUpdateMessage handles the zoom_update_message tool
func handleUpdateMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	messageID, ok := args["message_id"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("Missing or invalid 'message_id' parameter"), nil
	}

	message, ok := args["message"].(string)
	if !ok || message == "" {
		return mcp.NewToolResultError("Missing or invalid 'message' parameter"), nil
	}

	target, err := messageTargetFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.ZoomClient().UpdateMessage(ctx, messageID, target, message); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update message: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully updated message %s", messageID)), nil
}

// handleDeleteMessage handles the zoom_delete_message tool
func handleDeleteMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := requestArgs(request)

	messageID, ok := args["message_id"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("Missing or invalid 'message_id' parameter"), nil
	}

	target, err := messageTargetFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sc.ZoomClient().DeleteMessage(ctx, messageID, target); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete message: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted message %s", messageID)), nil
}
