package zoom

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
)

// DefaultAuthorizeURL is the Zoom OAuth authorization endpoint.
const DefaultAuthorizeURL = "https://zoom.us/oauth/authorize"

// Scopes is the fixed scope list requested during authorization. It covers
// everything the chat tools need; the token endpoint echoes the granted set
// back into the stored credential.
var Scopes = []string{
	"chat_channel:read",
	"chat_channel:write",
	"chat_message:read",
	"chat_message:write",
	"chat_contact:read",
	"user:read",
}

// AuthFlowConfig configures the one-time interactive authorization flow.
type AuthFlowConfig struct {
	OAuth OAuthConfig
	// AuthorizeURL defaults to DefaultAuthorizeURL when empty.
	AuthorizeURL string
	// ListenAddr is the local address for the redirect listener
	// (default "127.0.0.1:8765").
	ListenAddr string
	// OpenBrowser launches the URL in the system browser. Replaceable so
	// tests (and headless environments) can capture the URL instead.
	OpenBrowser func(url string) error
}

// Authorize runs the interactive browser-based authorization flow: it opens
// the Zoom consent page, captures the authorization code on a short-lived
// local listener, exchanges it for the first credential set and persists it
// through the store, exactly like a renewal would.
func Authorize(ctx context.Context, store *CredentialStore, config AuthFlowConfig) (*Credentials, error) {
	if config.AuthorizeURL == "" {
		config.AuthorizeURL = DefaultAuthorizeURL
	}
	if config.ListenAddr == "" {
		config.ListenAddr = "127.0.0.1:8765"
	}
	if config.OpenBrowser == nil {
		config.OpenBrowser = openBrowser
	}
	tokenURL := config.OAuth.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	listener, err := net.Listen("tcp", config.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to start local redirect listener on %s: %w", config.ListenAddr, err)
	}
	defer listener.Close()

	conf := &oauth2.Config{
		ClientID:     config.OAuth.ClientID,
		ClientSecret: config.OAuth.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  config.AuthorizeURL,
			TokenURL: tokenURL,
		},
		RedirectURL: fmt.Sprintf("http://%s/callback", listener.Addr().String()),
		Scopes:      Scopes,
	}

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: errors.New("authorization state mismatch, try again")}
			return
		}
		if errCode := query.Get("error"); errCode != "" {
			http.Error(w, "authorization denied", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("authorization denied by Zoom: %s", errCode)}
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this tab and return to the terminal.")
		results <- callbackResult{code: query.Get("code")}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(listener)
	defer srv.Close()

	authURL := conf.AuthCodeURL(state)
	if err := config.OpenBrowser(authURL); err != nil {
		fmt.Printf("Open this URL in your browser to authorize:\n\n  %s\n\n", authURL)
	}

	var code string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.err != nil {
			return nil, result.err
		}
		code = result.code
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	creds := &Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresIn:    int64(token.ExpiresIn),
		Scope:        scopeFromToken(token),
		CreatedAt:    time.Now().UnixMilli(),
	}
	if creds.ExpiresIn == 0 && !token.Expiry.IsZero() {
		creds.ExpiresIn = int64(time.Until(token.Expiry).Seconds())
	}

	if err := store.Save(creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// scopeFromToken pulls the granted scope string out of the token response
// extras.
func scopeFromToken(token *oauth2.Token) string {
	if scope, ok := token.Extra("scope").(string); ok {
		return scope
	}
	return ""
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
