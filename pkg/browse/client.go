package browse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// SessionHeader carries the session ID on requests and responses.
const SessionHeader = "X-Session-ID"

// APIError is a server-reported failure in RFC 7807 problem form.
type APIError struct {
	Status int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Title, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s (status %d)", e.Title, e.Status)
}

// Client is the Browse client for interacting with a Vitrine server
type Client struct {
	config Config
	http   *http.Client

	mu        sync.RWMutex
	sessionID string
}

// New creates a new Browse client
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("BaseURL is required")
	}

	// Set defaults
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config:    config,
		http:      &http.Client{Timeout: config.Timeout},
		sessionID: config.SessionID,
	}, nil
}

// SessionID returns the session the client is browsing under. It is empty
// until the server mints one on the first history or recommendation call.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// Health checks server status.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends an authenticated request and decodes the response into out.
// Error responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return err
	}

	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session := c.SessionID(); session != "" {
		req.Header.Set(SessionHeader, session)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The server echoes the session ID, minting one on first contact
	if session := resp.Header.Get(SessionHeader); session != "" {
		c.mu.Lock()
		c.sessionID = session
		c.mu.Unlock()
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Title = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
