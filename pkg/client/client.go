// Package client provides an http.RoundTripper that transparently attaches
// bearer tokens and refreshes them when the API reports an expired session.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/uservault/backend/internal/constants"
)

// TokenStore holds a token pair for one authenticated principal. It is safe
// for concurrent use.
type TokenStore struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewTokenStore creates a TokenStore pre-populated with a token pair.
func NewTokenStore(accessToken, refreshToken string) *TokenStore {
	return &TokenStore{
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// SetTokens replaces the stored token pair.
func (ts *TokenStore) SetTokens(accessToken, refreshToken string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.accessToken = accessToken
	ts.refreshToken = refreshToken
}

// AccessToken returns the stored access token.
func (ts *TokenStore) AccessToken() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.accessToken
}

// RefreshToken returns the stored refresh token.
func (ts *TokenStore) RefreshToken() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.refreshToken
}

// Clear drops both tokens. The next request goes out unauthenticated.
func (ts *TokenStore) Clear() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.accessToken = ""
	ts.refreshToken = ""
}

// AuthTransport is an http.RoundTripper that attaches the stored access
// token to outgoing requests. When a request comes back 401 it exchanges
// the refresh token at RefreshURL, stores the new pair, and replays the
// original request once. A second 401 is returned unmodified.
type AuthTransport struct {
	// Store holds the current token pair.
	Store *TokenStore

	// RefreshURL is the role-appropriate refresh endpoint.
	RefreshURL string

	// Base is the underlying transport. http.DefaultTransport when nil.
	Base http.RoundTripper
}

// NewAuthTransport creates an AuthTransport around the given store.
func NewAuthTransport(store *TokenStore, refreshURL string) *AuthTransport {
	return &AuthTransport{
		Store:      store,
		RefreshURL: refreshURL,
	}
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// The original request body is consumed; without GetBody the request
	// cannot be replayed.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	refreshToken := t.Store.RefreshToken()
	if refreshToken == "" {
		t.Store.Clear()
		return resp, nil
	}

	if err := t.refresh(req, refreshToken); err != nil {
		t.Store.Clear()
		return resp, nil
	}

	resp.Body.Close()
	return t.send(req)
}

// send clones the request with the current access token attached and
// forwards it to the base transport.
func (t *AuthTransport) send(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		clone.Body = body
	}

	if token := t.Store.AccessToken(); token != "" {
		clone.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+token)
	}

	return t.base().RoundTrip(clone)
}

// refreshResponse matches the refresh endpoint envelope.
type refreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

// refresh exchanges the refresh token for a new pair and stores it.
func (t *AuthTransport) refresh(original *http.Request, refreshToken string) error {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return fmt.Errorf("failed to encode refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(original.Context(), http.MethodPost, t.RefreshURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var parsed refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if !parsed.Success || parsed.Data.AccessToken == "" || parsed.Data.RefreshToken == "" {
		return fmt.Errorf("refresh response missing tokens")
	}

	t.Store.SetTokens(parsed.Data.AccessToken, parsed.Data.RefreshToken)
	return nil
}

// Client returns an http.Client wired with this transport.
func (t *AuthTransport) Client() *http.Client {
	return &http.Client{Transport: t}
}
