package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rohanthewiz/serr"

	"typeahead/internal/domain"
)

// QueryParam is the request parameter carrying the search text
const QueryParam = "q"

// maxBodyBytes bounds how much of a response is read
const maxBodyBytes = 1 << 20

// Fetcher runs a search for a query and returns the decoded payload
type Fetcher interface {
	Fetch(ctx context.Context, query string) (domain.ResultPayload, error)
}

// FetcherFunc adapts a plain function to Fetcher
type FetcherFunc func(ctx context.Context, query string) (domain.ResultPayload, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, query string) (domain.ResultPayload, error) {
	return f(ctx, query)
}

// Client fetches results from a configured endpoint with a GET request
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for endpoint. A zero timeout leaves requests
// bounded only by the caller's context.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the configured endpoint
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch issues GET <endpoint>?q=<query> and decodes a ResultPayload body
func (c *Client) Fetch(ctx context.Context, query string) (domain.ResultPayload, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return domain.ResultPayload{}, serr.Wrap(err, "invalid endpoint", "endpoint", c.endpoint)
	}
	params := u.Query()
	params.Set(QueryParam, query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.ResultPayload{}, serr.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.ResultPayload{}, serr.Wrap(err, "search request failed", "endpoint", c.endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return domain.ResultPayload{}, serr.New("unexpected status " + strconv.Itoa(resp.StatusCode) + " from " + c.endpoint)
	}

	var payload domain.ResultPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return domain.ResultPayload{}, serr.Wrap(err, "failed to decode search response")
	}
	return payload, nil
}
