// Package chat_tools provides MCP tools for Zoom Team Chat operations.
//
// This package exposes the Zoom Team Chat REST API through the Model Context
// Protocol (MCP), allowing AI agents to work with channels, messages and
// contacts. It wraps the zoom client package and provides the following tools:
//
//   - zoom_list_channels: List all channels the user is a member of
//   - zoom_get_channel: Get details of a channel
//   - zoom_list_channel_members: List the members of a channel
//   - zoom_create_channel: Create a new channel
//   - zoom_rename_channel: Rename a channel
//   - zoom_delete_channel: Delete a channel
//   - zoom_send_message: Send a message to a channel or contact, optionally
//     as a threaded reply
//   - zoom_list_messages: List messages exchanged with a channel or contact
//   - zoom_update_message: Edit an existing message
//   - zoom_delete_message: Delete a message
//   - zoom_list_contacts: List the user's contacts
//   - zoom_search_contacts: Search directory contacts by name or email
//
// Write operations (create, rename, delete, send, update) are only enabled
// when the server runs with the --yolo flag. In the default read-only mode
// those tools are still registered but reject every invocation with an
// explanatory error.
//
// Example MCP tool call:
//
//	{
//	  "tool": "zoom_send_message",
//	  "arguments": {
//	    "to_channel": "c1a2b3",
//	    "message": "Hello from Zoom MCP!"
//	  }
//	}
package chat_tools
