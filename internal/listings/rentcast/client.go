package rentcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/EmpoweredVote/rental-search/internal/listings/provider"
)

const (
	// DefaultLimit is the number of listings requested per ZIP.
	DefaultLimit = 50

	// statusActive restricts results to listings currently on the market.
	statusActive = "Active"

	// healthCheckZip is a known Cook County ZIP used to probe the API.
	healthCheckZip = "60601"
)

// Client is an HTTP client for the RentCast listings API.
type Client struct {
	apiKey     string
	endpoint   string
	limit      int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit paces outgoing requests at perSecond with the given burst.
// A non-positive rate disables pacing.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewClient creates a new RentCast API client.
func NewClient(apiKey, endpoint string, limit int, opts ...ClientOption) *Client {
	if limit <= 0 {
		limit = DefaultLimit
	}
	c := &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		limit:    limit,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchListings fetches active long-term rental listings for a ZIP code.
func (c *Client) FetchListings(ctx context.Context, zip string, opts provider.FetchOptions) ([]RentCastListing, error) {
	limit := c.limit
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	params := url.Values{}
	params.Set("zipCode", zip)
	params.Set("status", statusActive)
	params.Set("limit", strconv.Itoa(limit))
	if opts.Bedrooms != nil {
		params.Set("bedrooms", strconv.Itoa(*opts.Bedrooms))
	}

	logParams := map[string]interface{}{"limit": limit}
	if opts.Bedrooms != nil {
		logParams["bedrooms"] = *opts.Bedrooms
	}
	provider.LogRequest("rentcast", zip, logParams)

	start := time.Now()
	resp, err := c.get(ctx, params)
	if err != nil {
		provider.LogError("rentcast", zip, "fetch", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := statusError(resp)
		provider.LogError("rentcast", zip, "fetch", err)
		return nil, err
	}

	var listings []RentCastListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		provider.LogError("rentcast", zip, "decode", err)
		return nil, fmt.Errorf("decode rentcast: %w", err)
	}

	provider.LogResponse("rentcast", zip, resp.StatusCode, time.Since(start), len(listings))
	return listings, nil
}

// HealthCheck verifies the API key is accepted by making a minimal request.
func (c *Client) HealthCheck(ctx context.Context) error {
	params := url.Values{}
	params.Set("zipCode", healthCheckZip)
	params.Set("status", statusActive)
	params.Set("limit", "1")

	resp, err := c.get(ctx, params)
	if err != nil {
		return fmt.Errorf("health check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, params url.Values) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	fullURL := fmt.Sprintf("%s?%s", c.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rentcast request: %w", err)
	}
	return resp, nil
}

// statusError builds an error from a non-2xx response, including the API's
// message when the body carries one.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr RentCastError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Errorf("rentcast status %d: %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("rentcast status %d", resp.StatusCode)
}
