package adminapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshBuffer is subtracted from the token lifetime so a refresh happens
// before the server-side expiry.
const refreshBuffer = 30 * time.Second

// tokenResponse is the OIDC token endpoint response.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// tokenSession holds the current credentials and tokens for one Client.
// grantForm re-runs the original grant when no refresh token is available.
type tokenSession struct {
	authRealm string
	clientID  string
	grantForm url.Values

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// LoginAdmin authenticates with the resource owner password grant using the
// built-in admin-cli client, the way the Keycloak admin console does.
func (c *Client) LoginAdmin(ctx context.Context, authRealm, username, password string) error {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {"admin-cli"},
		"username":   {username},
		"password":   {password},
	}
	return c.login(ctx, authRealm, "admin-cli", form)
}

// LoginClient authenticates with the client credentials grant. The client
// must have service accounts enabled and sufficient admin roles.
func (c *Client) LoginClient(ctx context.Context, authRealm, clientID, clientSecret string) error {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
	}
	return c.login(ctx, authRealm, clientID, form)
}

func (c *Client) login(ctx context.Context, authRealm, clientID string, form url.Values) error {
	session := &tokenSession{
		authRealm: authRealm,
		clientID:  clientID,
		grantForm: form,
	}

	tok, err := c.requestToken(ctx, authRealm, form)
	if err != nil {
		return err
	}
	session.store(tok)

	c.session = session
	return nil
}

// requestToken posts a form to the realm's OIDC token endpoint.
func (c *Client) requestToken(ctx context.Context, authRealm string, form url.Values) (*tokenResponse, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := fmt.Sprintf("/realms/%s/protocol/openid-connect/token", url.PathEscape(authRealm))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var tok tokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned no access token")
	}
	return &tok, nil
}

// validToken returns an access token that is good for at least refreshBuffer,
// refreshing or re-authenticating as needed.
func (c *Client) validToken(ctx context.Context) (string, error) {
	s := c.session
	if s == nil {
		return "", fmt.Errorf("not authenticated: call LoginAdmin or LoginClient first")
	}

	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	form := s.grantForm
	if s.refreshToken != "" {
		form = url.Values{
			"grant_type":    {"refresh_token"},
			"client_id":     {s.clientID},
			"refresh_token": {s.refreshToken},
		}
		if secret := s.grantForm.Get("client_secret"); secret != "" {
			form.Set("client_secret", secret)
		}
	}

	tok, err := c.requestToken(ctx, s.authRealm, form)
	if err != nil {
		if s.refreshToken == "" {
			return "", fmt.Errorf("failed to refresh token: %w", err)
		}
		// The refresh token may have expired; fall back to the original grant.
		tok, err = c.requestToken(ctx, s.authRealm, s.grantForm)
		if err != nil {
			return "", fmt.Errorf("failed to refresh token: %w", err)
		}
	}

	s.storeLocked(tok)
	return s.accessToken, nil
}

func (s *tokenSession) store(tok *tokenResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeLocked(tok)
}

func (s *tokenSession) storeLocked(tok *tokenResponse) {
	s.accessToken = tok.AccessToken
	s.refreshToken = tok.RefreshToken
	s.expiresAt = tokenExpiry(tok)
}

// tokenExpiry derives the refresh deadline from expires_in, falling back to
// the access token's exp claim when the server omits it.
func tokenExpiry(tok *tokenResponse) time.Time {
	if tok.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - refreshBuffer)
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time.Add(-refreshBuffer)
		}
	}

	// No expiry information at all; force a refresh on the next request.
	return time.Time{}
}
