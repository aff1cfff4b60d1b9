// Package remote is the HTTP client for the Labeleer API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/labeleer/labeleer-cli/format"
)

// DefaultBaseURL is the production API.
const DefaultBaseURL = "https://labeleer.com/api"

// MaxErrorBodySize caps the response body kept in a RequestError.
const MaxErrorBodySize = 64 << 10

// Locale is a locale enabled in a project.
type Locale struct {
	Locale      string `json:"locale"`
	IsReference bool   `json:"isReference"`
	ID          string `json:"id,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// RequestError is returned for non-2xx responses.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string // e.g. "404 Not Found"
	Body       string // first MaxErrorBodySize bytes
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// Client talks to one Labeleer API with one access token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	log        *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default zero-timeout client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request traces.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for baseURL authenticating with token.
// Requests are bounded by their context only.
func NewClient(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		userAgent:  "labeleer-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logrus.New()
		c.log.SetOutput(io.Discard)
	}
	return c
}

// Locales lists the locales of a project.
func (c *Client) Locales(ctx context.Context, projectID string) ([]Locale, error) {
	path := projectPath(projectID, "locale")
	body, err := c.do(ctx, http.MethodGet, path, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []Locale `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return resp.Data, nil
}

// Export downloads the project's translations rendered as f. The body is
// returned unmodified.
func (c *Client) Export(ctx context.Context, projectID string, f format.Format) ([]byte, error) {
	path := projectPath(projectID, "translations", "export")
	query := url.Values{"format": {string(f)}}
	return c.do(ctx, http.MethodGet, path, query, nil, false)
}

// Push uploads label file content as the project's entries.
func (c *Client) Push(ctx context.Context, projectID string, entries json.RawMessage) error {
	payload, err := json.Marshal(struct {
		Entries json.RawMessage `json:"entries"`
	}{entries})
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, projectPath(projectID, "translations"), nil, payload, true)
	return err
}

func projectPath(projectID string, parts ...string) string {
	return "/project/" + url.PathEscape(projectID) + "/" + strings.Join(parts, "/")
}

// do executes a request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, acceptJSON bool) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request %s %s: %w", method, path, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	if acceptJSON {
		req.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debugf("request failed: %v", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodySize))
		return nil, &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(errBody),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}
	return data, nil
}
