package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// expiryMargin is subtracted from the token lifetime so a token is never
// used to start a call that would expire mid-flight. It also absorbs clock
// skew between this machine and Zoom.
const expiryMargin = 60 * time.Second

// DefaultTokenURL is the Zoom OAuth token endpoint.
const DefaultTokenURL = "https://zoom.us/oauth/token"

// OAuthConfig holds the OAuth client credentials used for token renewal.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	// TokenURL defaults to DefaultTokenURL when empty.
	TokenURL string
}

// tokenResponse is the JSON body the token endpoint returns.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

// TokenManager owns the in-memory cached credential set and decides when to
// renew it. Every API call obtains its bearer token through AccessToken, so
// renewal happens at a single choke point. A mutex serializes renewal so
// concurrent tool invocations cannot trigger a double refresh.
type TokenManager struct {
	store      *CredentialStore
	config     OAuthConfig
	httpClient *http.Client

	// now is replaceable in tests.
	now func() time.Time

	mu     sync.Mutex
	cached *Credentials
}

// NewTokenManager creates a token manager backed by the given store.
func NewTokenManager(store *CredentialStore, config OAuthConfig) *TokenManager {
	if config.TokenURL == "" {
		config.TokenURL = DefaultTokenURL
	}
	return &TokenManager{
		store:      store,
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// Store returns the credential store backing this manager.
func (m *TokenManager) Store() *CredentialStore {
	return m.store
}

// isExpired reports whether the credential set is within the expiry margin.
// An absent created_at or expires_in is treated as expired so a malformed
// record triggers a renewal instead of a doomed API call.
func (m *TokenManager) isExpired(creds *Credentials) bool {
	if creds.CreatedAt == 0 || creds.ExpiresIn == 0 {
		return true
	}
	expiry := creds.CreatedAt + creds.ExpiresIn*1000 - expiryMargin.Milliseconds()
	return m.now().UnixMilli() >= expiry
}

// AccessToken returns a bearer token that is valid for at least the expiry
// margin. It loads the stored credential on first use and renews it when it
// is expired or about to expire.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached == nil {
		creds, err := m.store.Load()
		if err != nil {
			return "", err
		}
		m.cached = creds
	}

	if m.isExpired(m.cached) {
		creds, err := m.refreshLocked(ctx, m.cached)
		if err != nil {
			return "", err
		}
		m.cached = creds
	}

	return m.cached.AccessToken, nil
}

// ForceRefresh renews the credential set unconditionally, bypassing the
// expiry check. Used when the API rejects a token the local clock still
// considers valid; the server is the ground truth.
func (m *TokenManager) ForceRefresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached == nil {
		creds, err := m.store.Load()
		if err != nil {
			return "", err
		}
		m.cached = creds
	}

	creds, err := m.refreshLocked(ctx, m.cached)
	if err != nil {
		return "", err
	}
	m.cached = creds
	return m.cached.AccessToken, nil
}

// Refresh renews the stored credential set and returns the replacement.
func (m *TokenManager) Refresh(ctx context.Context) (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached == nil {
		creds, err := m.store.Load()
		if err != nil {
			return nil, err
		}
		m.cached = creds
	}

	creds, err := m.refreshLocked(ctx, m.cached)
	if err != nil {
		return nil, err
	}
	m.cached = creds
	return creds, nil
}

// refreshLocked exchanges the refresh token for a new credential set and
// persists it before returning. Callers must hold m.mu. A rejected refresh
// is not retried: the refresh token itself may have been revoked or rotated,
// so retrying is presumed futile.
func (m *TokenManager) refreshLocked(ctx context.Context, creds *Credentials) (*Credentials, error) {
	if creds.RefreshToken == "" {
		return nil, &UnauthorizedError{Reason: "stored credentials have no refresh token"}
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", creds.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(m.config.ClientID, m.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ReauthRequiredError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tr.AccessToken == "" || tr.RefreshToken == "" {
		return nil, fmt.Errorf("token endpoint returned an incomplete credential set")
	}

	// Every field is replaced; nothing carries over from the prior set.
	fresh := &Credentials{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		TokenType:    tr.TokenType,
		ExpiresIn:    tr.ExpiresIn,
		Scope:        tr.Scope,
		CreatedAt:    m.now().UnixMilli(),
	}

	if err := m.store.Save(fresh); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed credentials: %w", err)
	}

	return fresh, nil
}
