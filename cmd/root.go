package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the zoomchat application
var rootCmd = &cobra.Command{
	Use:   "zoomchat",
	Short: "MCP server for Zoom Team Chat",
	Long: `zoomchat exposes the Zoom Team Chat REST API as Model Context Protocol
(MCP) tools over stdio, so AI assistants can work with channels, messages
and contacts.

It can run as:
  - An MCP server for AI assistants (default)
  - A one-time interactive authorization flow (zoomchat auth)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "zoomchat version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
