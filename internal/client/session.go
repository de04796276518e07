package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the opaque authentication state carried on every GraphQL call.
type Session struct {
	Token  string
	Expiry time.Time
}

func (s *Session) Expired(now time.Time) bool {
	if s.Expiry.IsZero() {
		return false
	}
	return !now.Before(s.Expiry)
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Connect exchanges the service-account credentials for a session token.
// The token is a JWT; its exp claim, when present, bounds the session.
// The signature is not verified here, the server owns verification.
func (c *Client) Connect(ctx context.Context) error {
	body, err := json.Marshal(tokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal token request: %w", err)
	}

	url := fmt.Sprintf("%s/api/client_token", c.accountURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return NewErrTransport(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewErrTransport(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewErrUnauthorized(resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return NewErrStatus(resp.StatusCode, string(bodyBytes))
	}

	var tok tokenResponse
	if err := json.Unmarshal(bodyBytes, &tok); err != nil {
		return NewErrDecode(err)
	}
	if tok.AccessToken == "" {
		return NewErrDecode(fmt.Errorf("token response missing access_token"))
	}

	c.session = &Session{
		Token:  tok.AccessToken,
		Expiry: tokenExpiry(tok.AccessToken),
	}
	return nil
}

// EnsureConnected verifies a live session exists before any fetch runs.
func (c *Client) EnsureConnected() error {
	if c.session == nil {
		return NewErrNotConnected()
	}
	if c.session.Expired(c.now()) {
		return NewErrSessionExpired()
	}
	return nil
}

func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
