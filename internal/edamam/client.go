// Package edamam is a client for the Edamam recipe search and
// nutrition-details endpoints.
package edamam

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

// DefaultBaseURL is the public Edamam API host.
const DefaultBaseURL = "https://api.edamam.com"

// Env var names for Edamam credentials.
const (
	EnvAppID             = "EDAMAM_APP_ID"
	EnvAppKey            = "EDAMAM_APP_KEY"
	EnvNutritionAppID    = "EDAMAM_NUTRITION_APP_ID"
	EnvNutritionAppKey   = "EDAMAM_NUTRITION_APP_KEY"
	EnvBaseURL           = "EDAMAM_BASE_URL"
	searchPath           = "/search"
	nutritionDetailsPath = "/api/nutrition-details"
)

// Credentials is an application id/key pair.
type Credentials struct {
	AppID  string
	AppKey string
}

// Empty reports whether either half is missing.
func (c Credentials) Empty() bool { return c.AppID == "" || c.AppKey == "" }

// Compile-time interface checks.
var (
	_ domain.RecipeSearcher    = (*Client)(nil)
	_ domain.NutritionAnalyzer = (*Client)(nil)
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another host (tests, proxies).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithNutritionCredentials sets a separate id/key pair for nutrition
// lookups. Without it the search credentials are used.
func WithNutritionCredentials(creds Credentials) ClientOption {
	return func(c *Client) { c.nutrition = creds }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// Client talks to the Edamam API.
type Client struct {
	baseURL   string
	search    Credentials
	nutrition Credentials
	http      *http.Client
	log       *logger.Logger
}

// NewClient creates an Edamam client using creds for recipe search.
func NewClient(creds Credentials, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		search:  creds,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	if c.nutrition.Empty() {
		c.nutrition = c.search
	}
	return c
}

func (c *Client) endpoint(path string, creds Credentials, extra url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("edamam: parse base URL: %w", err)
	}
	params := u.Query()
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("app_id", creds.AppID)
	params.Set("app_key", creds.AppKey)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("edamam: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("edamam: read response: %w", err)
	}
	c.log.Debug("edamam: %s %s -> %d (%d bytes, %v)", req.Method, req.URL.Path, resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, nil
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("edamam: API status %d: %s", e.Status, e.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
