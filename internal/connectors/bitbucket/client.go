package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

const (
	// DefaultBaseAPI is the Bitbucket 1.0 REST API base URL.
	DefaultBaseAPI = "https://api.bitbucket.org/1.0"

	// DefaultTimeout is the default HTTP request timeout. Expiry surfaces
	// as an APIError like any other transport failure.
	DefaultTimeout = 30 * time.Second
)

// Client performs authenticated GET requests against the Bitbucket API.
// One request is in flight at a time; there is no retry and no backoff.
type Client struct {
	baseAPI     string
	credential  *domain.Credential
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a Bitbucket API client. The credential may be nil for
// anonymous access.
func NewClient(credential *domain.Credential) *Client {
	return &Client{
		baseAPI:     DefaultBaseAPI,
		credential:  credential,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		rateLimiter: NewRateLimiter(),
	}
}

// NewClientWithBaseAPI creates a client against a custom API base URL.
// Used by tests to point at an httptest server.
func NewClientWithBaseAPI(baseAPI string, credential *domain.Credential) *Client {
	c := NewClient(credential)
	c.baseAPI = baseAPI
	return c
}

// Get issues a GET request for path (relative to the API base), decoding the
// JSON response into v. A non-200 status or an undecodable body fails with
// *APIError carrying the status, path and a body excerpt.
func (c *Client) Get(ctx context.Context, path string, v any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseAPI+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.credential != nil {
		req.SetBasicAuth(c.credential.Identity, c.credential.Secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       bodyExcerpt(resp.Body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       excerpt(string(body)),
		}
	}

	return nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// bodyExcerpt reads at most maxBodyExcerpt bytes from a response body.
func bodyExcerpt(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxBodyExcerpt))
	if err != nil {
		return ""
	}
	return string(data)
}

// excerpt truncates a string to maxBodyExcerpt bytes.
func excerpt(s string) string {
	if len(s) > maxBodyExcerpt {
		return s[:maxBodyExcerpt]
	}
	return s
}
