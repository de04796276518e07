package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"

// Client talks to the account's single GraphQL endpoint. All fetchers share
// one client; it is not safe for concurrent use, matching the module's
// single-threaded interactive design.
type Client struct {
	accountURL   string
	clientID     string
	clientSecret string
	pageSize     int
	httpClient   *http.Client
	session      *Session
	now          func() time.Time
}

func New(accountURL, clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		accountURL:   accountURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		pageSize:     1000,
		httpClient:   newHTTPClient(60 * time.Second),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = newHTTPClient(timeout)
	}
}

func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithClock fixes the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// AccountURL is the web-console base used for record deep links.
func (c *Client) AccountURL() string {
	return c.accountURL
}

// PageSize is the requested page size carried as the "first" variable.
func (c *Client) PageSize() int {
	return c.pageSize
}

// Now exposes the client clock so mappers derive ages from the same source.
func (c *Client) Now() time.Time {
	return c.now()
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []GraphQLError             `json:"errors,omitempty"`
}

// Do issues one GraphQL POST and unmarshals data.<rootField> into out.
// GraphQL-level errors surface as *APIError, HTTP and network failures as
// *TransportError, and auth rejections as *AuthError.
func (c *Client) Do(ctx context.Context, operationName, query string, variables map[string]any, rootField string, out any) error {
	if err := c.EnsureConnected(); err != nil {
		return err
	}

	body, err := json.Marshal(graphQLRequest{
		OperationName: operationName,
		Variables:     variables,
		Query:         query,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal query %s: %w", operationName, err)
	}

	url := fmt.Sprintf("%s/api/graphql", c.accountURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.session.Token)
	httpReq.Header.Set(requestIDHeader, uuid.NewString())

	zap.S().Named("client").Debugf("POST %s operation=%s", url, operationName)

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

	var gqlResp graphQLResponse
	if err := json.Unmarshal(bodyBytes, &gqlResp); err != nil {
		return NewErrDecode(err)
	}
	if len(gqlResp.Errors) > 0 {
		return &APIError{Operation: operationName, Errors: gqlResp.Errors}
	}

	raw, ok := gqlResp.Data[rootField]
	if !ok {
		return NewErrDecode(fmt.Errorf("response missing root field %q", rootField))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return NewErrDecode(err)
	}
	return nil
}
