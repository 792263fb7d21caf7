// Package api is the JSON client for the backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const userAgent = "painel/1.0"

// TokenFunc supplies the current bearer token, or "" when logged out.
// It is consulted immediately before each request so a token written
// after the client was constructed is still picked up.
type TokenFunc func() string

// Client talks to the backend. All methods attach the current token and
// report authorization rejections through the Unauthorized event.
type Client struct {
	http    *http.Client
	baseURL string
	token   TokenFunc
	log     *slog.Logger

	mu       sync.Mutex
	onUnauth []func()
}

// NewClient creates a client for the API at baseURL. token may be nil
// for an unauthenticated client.
func NewClient(baseURL string, timeout time.Duration, token TokenFunc, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		token:   token,
		log:     log.With("component", "api"),
	}
}

// OnUnauthorized registers a callback invoked whenever the backend
// rejects the attached credential. The transport itself takes no action
// beyond raising the event; subscribers decide what a rejection means.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauth = append(c.onUnauth, fn)
}

func (c *Client) fireUnauthorized() {
	c.mu.Lock()
	fns := make([]func(), len(c.onUnauth))
	copy(fns, c.onUnauth)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Get issues a GET request and decodes the JSON response into dst.
func (c *Client) Get(ctx context.Context, path string, dst any) error {
	return c.do(ctx, http.MethodGet, path, nil, dst)
}

// Post issues a POST request with a JSON body and decodes the response
// into dst. body and dst may each be nil.
func (c *Client) Post(ctx context.Context, path string, body, dst any) error {
	return c.do(ctx, http.MethodPost, path, body, dst)
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Read the token fresh for every request, never at construction.
	tokenAttached := false
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
			tokenAttached = true
		}
	}

	c.log.Debug("sending request", "method", method, "url", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := readError(resp)
		c.log.Warn("credential rejected", "method", method, "url", url, "message", apiErr.Message)
		// A 401 on a request that carried no credential is an ordinary
		// failure (e.g. a wrong password on login), not a rejection of
		// the stored session.
		if tokenAttached {
			c.fireUnauthorized()
		}
		return apiErr
	}
	if resp.StatusCode >= 400 {
		apiErr := readError(resp)
		c.log.Warn("request failed", "method", method, "url", url,
			"status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if dst == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// readError extracts the server {message} body from a failed response.
func readError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
