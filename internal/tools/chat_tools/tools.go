package chat_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/zoomchat/internal/server"
	"github.com/teemow/zoomchat/internal/tools/common"
)

// toolHandler is the handler signature the MCP server expects.
type toolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// RegisterChatTools registers all Zoom Team Chat tools with the MCP server
func RegisterChatTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterChannelTools(s, sc); err != nil {
		return fmt.Errorf("failed to register channel tools: %w", err)
	}
	if err := RegisterMessageTools(s, sc); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}
	if err := RegisterContactTools(s, sc); err != nil {
		return fmt.Errorf("failed to register contact tools: %w", err)
	}
	return nil
}

// requestArgs extracts the argument map from a tool request
func requestArgs(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return make(map[string]interface{})
	}
	return args
}

// registerReadTool registers a read-only tool wrapped with instrumentation
func registerReadTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler toolHandler) {
	s.AddTool(tool, common.InstrumentedToolHandler(tool.Name, operation, sc, handler))
}

// registerWriteTool registers a tool that mutates Zoom state. In read-only
// mode the tool stays visible but rejects every invocation, so clients get an
// actionable error instead of an unknown-tool failure.
func registerWriteTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler toolHandler) {
	if sc.ReadOnly() {
		s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultError("Cannot modify Zoom Team Chat in read-only mode. Use --yolo flag to enable write operations."), nil
		})
		return
	}
	s.AddTool(tool, common.InstrumentedToolHandler(tool.Name, operation, sc, handler))
}
