package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/zoomchat/internal/instrumentation"
	"github.com/teemow/zoomchat/internal/zoom"
)

func newAuthCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Connect your Zoom account",
		Long: `Run the one-time interactive authorization flow.

Opens the Zoom consent page in your browser, captures the authorization
code on a short-lived local listener and stores the resulting credentials.
Tokens are refreshed automatically afterwards; you only need to run this
again if Zoom revokes the refresh token.

Requires a Zoom OAuth app:
  ZOOM_CLIENT_ID and ZOOM_CLIENT_SECRET env vars (required)
  ZOOM_OAUTH_AUTHORIZE_URL and ZOOM_OAUTH_TOKEN_URL env vars (optional
  endpoint overrides)

The app's redirect URL must match the local listener, e.g.
http://127.0.0.1:8765/callback.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd.Context(), listenAddr)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen-addr", "127.0.0.1:8765", "Local address for the OAuth redirect listener")

	return cmd
}

func runAuth(ctx context.Context, listenAddr string) error {
	clientID := os.Getenv("ZOOM_CLIENT_ID")
	clientSecret := os.Getenv("ZOOM_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("ZOOM_CLIENT_ID and ZOOM_CLIENT_SECRET must be set, create an OAuth app at https://marketplace.zoom.us")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	// Record the outcome of the flow; a one-shot CLI run still feeds the
	// oauth_auth_total counter when an OTLP exporter is configured.
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		_ = provider.Shutdown(ctx)
	}()

	store := zoom.DefaultCredentialStore()
	config := zoom.AuthFlowConfig{
		OAuth: zoom.OAuthConfig{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     os.Getenv("ZOOM_OAUTH_TOKEN_URL"),
		},
		AuthorizeURL: os.Getenv("ZOOM_OAUTH_AUTHORIZE_URL"),
		ListenAddr:   listenAddr,
	}

	fmt.Println("Opening the Zoom consent page in your browser...")

	creds, err := zoom.Authorize(ctx, store, config)
	if provider.Enabled() {
		result := instrumentation.OAuthResultSuccess
		if err != nil {
			result = instrumentation.OAuthResultFailure
		}
		provider.Metrics().RecordOAuthAuth(ctx, result)
	}
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	fmt.Printf("Connected to Zoom. Credentials stored in %s\n", store.Path())
	if creds.Scope != "" {
		fmt.Printf("Granted scopes: %s\n", creds.Scope)
	}
	fmt.Println("You can now start the MCP server with: zoomchat serve")

	return nil
}
