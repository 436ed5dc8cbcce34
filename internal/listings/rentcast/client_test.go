package rentcast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmpoweredVote/rental-search/internal/listings/provider"
)

const sampleBody = `[
  {
    "id": "1200-W-Main-St,-Evanston,-IL-60202",
    "formattedAddress": "1200 W Main St, Evanston, IL 60202",
    "addressLine1": "1200 W Main St",
    "addressLine2": null,
    "city": "Evanston",
    "state": "IL",
    "zipCode": "60202",
    "county": "Cook",
    "propertyType": "Apartment",
    "bedrooms": 2,
    "bathrooms": 1.5,
    "squareFootage": 950.0,
    "status": "Active",
    "price": 1725,
    "listedDate": "2026-09-30T00:00:00.000Z",
    "daysOnMarket": 18,
    "mlsName": "MRED",
    "mlsNumber": "12345678",
    "listingAgent": {"name": "Pat Doe", "phone": "3125550100", "email": "pat@example.com"},
    "listingOffice": {"name": "North Shore Realty"}
  },
  {
    "id": "no-price",
    "formattedAddress": "1 Unknown Ave, Evanston, IL 60202",
    "zipCode": "60202"
  }
]`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchListings_QueryAndHeaders(t *testing.T) {
	var gotQuery map[string]string
	var gotKey, gotAccept string

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"zipCode":  r.URL.Query().Get("zipCode"),
			"status":   r.URL.Query().Get("status"),
			"limit":    r.URL.Query().Get("limit"),
			"bedrooms": r.URL.Query().Get("bedrooms"),
		}
		gotKey = r.Header.Get("X-Api-Key")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	})

	c := NewClient("secret", srv.URL, 0)
	beds := 2
	listings, err := c.FetchListings(context.Background(), "60202", provider.FetchOptions{Bedrooms: &beds})
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "60202", gotQuery["zipCode"])
	assert.Equal(t, "Active", gotQuery["status"])
	assert.Equal(t, "50", gotQuery["limit"])
	assert.Equal(t, "2", gotQuery["bedrooms"])
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "application/json", gotAccept)
}

func TestFetchListings_OmitsBedroomsWhenUnset(t *testing.T) {
	var hasBedrooms bool
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasBedrooms = r.URL.Query()["bedrooms"]
		_, _ = w.Write([]byte(`[]`))
	})

	c := NewClient("k", srv.URL, 10)
	listings, err := c.FetchListings(context.Background(), "60601", provider.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.False(t, hasBedrooms)
}

func TestFetchListings_NonSuccessStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"error":"auth/api-key-invalid","message":"Invalid API key"}`))
	})

	c := NewClient("bad", srv.URL, 0)
	_, err := c.FetchListings(context.Background(), "60601", provider.FetchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
	assert.NotContains(t, err.Error(), "bad")
}

func TestFetchListings_MalformedBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})

	c := NewClient("k", srv.URL, 0)
	_, err := c.FetchListings(context.Background(), "60601", provider.FetchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode rentcast")
}

func TestFetchListings_ContextDeadline(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	c := NewClient("k", srv.URL, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchListings(ctx, "60601", provider.FetchOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRateLimitWaitHonorsContext(t *testing.T) {
	calls := 0
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	})

	// One token, refilled every 10 seconds.
	c := NewClient("k", srv.URL, 0, WithRateLimit(0.1, 1))
	_, err := c.FetchListings(context.Background(), "60601", provider.FetchOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.FetchListings(ctx, "60602", provider.FetchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.Equal(t, 1, calls)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	require.NoError(t, NewClient("good", srv.URL, 0).HealthCheck(context.Background()))
	require.Error(t, NewClient("bad", srv.URL, 0).HealthCheck(context.Background()))
}

func TestProvider_FetchByZipTagsSearchZip(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleBody))
	})

	p := NewProvider("k", srv.URL, 0)
	assert.Equal(t, "rentcast", p.Name())

	listings, err := p.FetchByZip(context.Background(), "60202", provider.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "60202", first.SearchZip)
	assert.Equal(t, "rentcast", first.Source)
	require.NotNil(t, first.Price)
	assert.Equal(t, 1725.0, *first.Price)
	require.NotNil(t, first.Bedrooms)
	assert.Equal(t, 2, *first.Bedrooms)
	require.NotNil(t, first.SquareFootage)
	assert.Equal(t, 950, *first.SquareFootage)
	assert.Equal(t, "Pat Doe", first.Agent.Name)
	assert.Equal(t, "North Shore Realty", first.Office.Name)

	second := listings[1]
	assert.Nil(t, second.Price)
	assert.Nil(t, second.Bedrooms)
	assert.True(t, second.Agent.Empty())
}

func TestNewProviderFromConfig(t *testing.T) {
	_, err := provider.NewProvider(provider.Config{Provider: provider.ProviderRentCast})
	require.ErrorIs(t, err, provider.ErrMissingRentCastKey)

	p, err := provider.NewProvider(provider.Config{
		Provider:         provider.ProviderRentCast,
		RentCastKey:      "k",
		RentCastEndpoint: "http://127.0.0.1:0",
		Limit:            5,
		RatePerSecond:    1,
		MaxConcurrency:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "rentcast", p.Name())

	_, err = provider.NewProvider(provider.Config{Provider: "zillow"})
	require.ErrorIs(t, err, provider.ErrUnknownProvider)
}
