package zoom

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixedNow is the reference instant used by the fake clock in these tests.
var fixedNow = time.UnixMilli(1700003600000)

func newTestManager(t *testing.T, tokenURL string) (*TokenManager, *CredentialStore) {
	t.Helper()
	store := NewCredentialStore(filepath.Join(t.TempDir(), "zoom.json"))
	m := NewTokenManager(store, OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     tokenURL,
	})
	m.now = func() time.Time { return fixedNow }
	return m, store
}

// freshCredentials returns a credential set that is far from expiry at
// fixedNow.
func freshCredentials() *Credentials {
	return &Credentials{
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		TokenType:    "bearer",
		ExpiresIn:    3600,
		Scope:        "chat_channel:read",
		CreatedAt:    fixedNow.UnixMilli(),
	}
}

func TestIsExpired(t *testing.T) {
	m, _ := newTestManager(t, "http://unused.invalid")

	tests := []struct {
		name      string
		createdAt int64
		expiresIn int64
		want      bool
	}{
		{"missing created_at", 0, 3600, true},
		{"missing expires_in", fixedNow.UnixMilli(), 0, true},
		{"freshly issued", fixedNow.UnixMilli(), 3600, false},
		{"well before margin", fixedNow.UnixMilli() - 3000*1000, 3600, false},
		{"inside 60s margin", fixedNow.UnixMilli() - 3550*1000, 3600, true},
		{"exactly at margin boundary", fixedNow.UnixMilli() - 3540*1000, 3600, true},
		{"one ms before margin", fixedNow.UnixMilli() - 3540*1000 + 1, 3600, false},
		{"long expired", fixedNow.UnixMilli() - 7200*1000, 3600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := &Credentials{CreatedAt: tt.createdAt, ExpiresIn: tt.expiresIn}
			if got := m.isExpired(creds); got != tt.want {
				t.Errorf("isExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefreshReplacesEveryField(t *testing.T) {
	var gotGrantType, gotRefreshToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "token request must use basic auth")
		require.Equal(t, "client-id", user)
		require.Equal(t, "client-secret", pass)
		require.NoError(t, r.ParseForm())
		gotGrantType = r.PostForm.Get("grant_type")
		gotRefreshToken = r.PostForm.Get("refresh_token")

		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken:  "access-new",
			RefreshToken: "refresh-new",
			TokenType:    "bearer",
			ExpiresIn:    3599,
			Scope:        "chat_channel:read chat_message:write",
		})
	}))
	defer server.Close()

	m, store := newTestManager(t, server.URL)
	require.NoError(t, store.Save(freshCredentials()))

	creds, err := m.Refresh(context.Background())
	require.NoError(t, err)

	require.Equal(t, "refresh_token", gotGrantType)
	require.Equal(t, "refresh-old", gotRefreshToken)

	want := &Credentials{
		AccessToken:  "access-new",
		RefreshToken: "refresh-new",
		TokenType:    "bearer",
		ExpiresIn:    3599,
		Scope:        "chat_channel:read chat_message:write",
		CreatedAt:    fixedNow.UnixMilli(),
	}
	require.Equal(t, want, creds)

	// The replacement is persisted before Refresh returns.
	stored, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, want, stored)
}

func TestRefreshRejectedIsNotRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"reason":"Invalid Token!"}`))
	}))
	defer server.Close()

	m, store := newTestManager(t, server.URL)
	require.NoError(t, store.Save(freshCredentials()))

	_, err := m.Refresh(context.Background())
	require.Error(t, err)

	var reauth *ReauthRequiredError
	require.True(t, errors.As(err, &reauth), "expected ReauthRequiredError, got %T", err)
	require.Equal(t, http.StatusUnauthorized, reauth.StatusCode)
	require.Contains(t, reauth.Body, "Invalid Token!")
	require.Contains(t, err.Error(), "zoomchat auth")
	require.Equal(t, 1, calls, "a rejected refresh must not be retried")
}

func TestAccessTokenReturnsCachedWithoutStorage(t *testing.T) {
	m, store := newTestManager(t, "http://unused.invalid")
	require.NoError(t, store.Save(freshCredentials()))

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-old", token)

	// Remove the backing file: subsequent reads must come from the cache.
	require.NoError(t, os.Remove(store.Path()))

	token, err = m.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-old", token)
}

func TestAccessTokenRenewsInsideMargin(t *testing.T) {
	var refreshes int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes++
		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken:  "access-new",
			RefreshToken: "refresh-new",
			TokenType:    "bearer",
			ExpiresIn:    3600,
			Scope:        "chat_channel:read",
		})
	}))
	defer server.Close()

	m, store := newTestManager(t, server.URL)

	// expires_in=3600 issued 3550s ago: inside the 60s margin, so the token
	// must be renewed even though it is nominally still valid.
	creds := freshCredentials()
	creds.CreatedAt = fixedNow.UnixMilli() - 3550*1000
	require.NoError(t, store.Save(creds))

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-new", token)
	require.Equal(t, 1, refreshes)
}

func TestAccessTokenWithoutRecord(t *testing.T) {
	var refreshes int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes++
	}))
	defer server.Close()

	m, _ := newTestManager(t, server.URL)

	_, err := m.AccessToken(context.Background())
	var unauthorized *UnauthorizedError
	require.True(t, errors.As(err, &unauthorized), "expected UnauthorizedError, got %T", err)
	require.Equal(t, 0, refreshes, "no token endpoint call without a stored record")
}

func TestForceRefreshBypassesExpiryCheck(t *testing.T) {
	var refreshes int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes++
		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken:  "access-forced",
			RefreshToken: "refresh-forced",
			TokenType:    "bearer",
			ExpiresIn:    3600,
			Scope:        "chat_channel:read",
		})
	}))
	defer server.Close()

	m, store := newTestManager(t, server.URL)
	require.NoError(t, store.Save(freshCredentials()))

	// The cached token is nowhere near expiry; ForceRefresh renews anyway.
	token, err := m.ForceRefresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "access-forced", token)
	require.Equal(t, 1, refreshes)
}
