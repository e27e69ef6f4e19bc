package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dvdenrich/internal/services"
)

// DefaultTimeout bounds every request issued by a Client.
const DefaultTimeout = 15 * time.Second

// Source is the set of MediaWiki queries used to resolve a director.
type Source interface {
	Search(ctx context.Context, query string) (string, error)
	Wikitext(ctx context.Context, title string) (string, error)
	Extract(ctx context.Context, title string) (string, error)
}

// Client issues read-only queries against a MediaWiki api.php endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

var _ Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a MediaWiki client. Every request carries userAgent.
func New(endpoint, userAgent string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("wikipedia endpoint required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("parse wikipedia endpoint: %w", err)
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("wikipedia user agent required")
	}
	client := &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search runs a full-text search and returns the title of the top hit.
// An empty title with a nil error means the search had no hits.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", "1")

	var payload searchResponse
	if err := c.query(ctx, "search", params, &payload); err != nil {
		return "", err
	}
	if len(payload.Query.Search) == 0 {
		return "", nil
	}
	return payload.Query.Search[0].Title, nil
}

// Wikitext returns the raw markup of the latest revision of the page titled
// title. The first non-empty revision slot wins. An empty string with a nil
// error means the page has no usable content.
func (c *Client) Wikitext(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("prop", "revisions")
	params.Set("rvprop", "content")
	params.Set("rvslots", "*")
	params.Set("titles", title)

	var payload pagesResponse
	if err := c.query(ctx, "wikitext", params, &payload); err != nil {
		return "", err
	}
	page, ok := payload.firstPage()
	if !ok || len(page.Revisions) == 0 {
		return "", nil
	}
	for _, raw := range page.Revisions[0].Slots {
		var s slot
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if content := s.text(); content != "" {
			return content, nil
		}
	}
	return "", nil
}

// Extract returns the plain-text introduction of the page titled title.
func (c *Client) Extract(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("exintro", "1")
	params.Set("titles", title)

	var payload pagesResponse
	if err := c.query(ctx, "extract", params, &payload); err != nil {
		return "", err
	}
	page, ok := payload.firstPage()
	if !ok {
		return "", nil
	}
	return page.Extract, nil
}

// query performs a GET against the endpoint with the shared action=query
// parameters and decodes the JSON body into out.
func (c *Client) query(ctx context.Context, operation string, params url.Values, out apiResponse) error {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return services.Wrap(services.ErrExternal, "wikipedia", operation, "parse endpoint", err)
	}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("utf8", "1")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return services.Wrap(services.ErrExternal, "wikipedia", operation, "build request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrExternal, "wikipedia", operation, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return services.Wrap(services.ErrExternal, "wikipedia", operation, fmt.Sprintf("endpoint returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrExternal, "wikipedia", operation, "decode response", err)
	}
	if apiErr := out.apiError(); apiErr != nil {
		return services.Wrap(services.ErrExternal, "wikipedia", operation, apiErr.Error(), nil)
	}
	return nil
}
