// Package remote queries a documentation index served by another
// wayfinder instance over HTTP.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"golang.org/x/time/rate"
)

// DefaultRate bounds outgoing lookups per second.
const DefaultRate = 10

// Index implements ports.SearchIndex against GET /search.
type Index struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	limit    int
}

// Option configures an Index.
type Option func(*Index)

// WithHTTPClient replaces the default client (5s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(i *Index) {
		if c != nil {
			i.client = c
		}
	}
}

// WithRate sets the lookups per second and burst allowed.
func WithRate(rps float64, burst int) Option {
	return func(i *Index) {
		i.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLimit asks the server for at most n results.
func WithLimit(n int) Option {
	return func(i *Index) {
		i.limit = n
	}
}

// New returns an index backed by the server at baseURL.
func New(baseURL string, opts ...Option) *Index {
	i := &Index{
		endpoint: strings.TrimSuffix(baseURL, "/") + "/search",
		client:   &http.Client{Timeout: 5 * time.Second},
		limiter:  rate.NewLimiter(DefaultRate, 1),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type searchResponse struct {
	Results []domain.ResultItem `json:"results"`
}

// Search waits for the rate limiter, then queries the server. A 503 is
// reported as domain.ErrIndexNotReady.
func (i *Index) Search(ctx context.Context, query string) ([]domain.Hit, error) {
	if err := i.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{"q": {query}}
	if i.limit > 0 {
		params.Set("limit", strconv.Itoa(i.limit))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, domain.ErrIndexNotReady
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("search request: unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]domain.Hit, len(body.Results))
	for n, r := range body.Results {
		hits[n] = domain.Hit{URL: r.URL, Title: r.Title, Excerpt: r.Excerpt}
	}
	return hits, nil
}
