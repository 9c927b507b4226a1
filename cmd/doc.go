// Package cmd implements the command-line interface for zoomchat.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Zoom Team Chat tools over stdio
//   - auth: Run the one-time interactive Zoom authorization flow
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
