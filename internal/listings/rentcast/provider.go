package rentcast

import (
	"context"
	"time"

	"github.com/EmpoweredVote/rental-search/internal/listings/provider"
)

// RentCastProvider implements the ListingProvider interface using the RentCast API.
type RentCastProvider struct {
	client *Client
}

// Ensure RentCastProvider implements ListingProvider.
var _ provider.ListingProvider = (*RentCastProvider)(nil)

// init registers the RentCast provider in the provider registry.
func init() {
	provider.RegisterProvider(provider.ProviderRentCast, func(cfg provider.Config) (provider.ListingProvider, error) {
		burst := cfg.MaxConcurrency
		return NewProvider(cfg.RentCastKey, cfg.RentCastEndpoint, cfg.Limit,
			WithRateLimit(cfg.RatePerSecond, burst)), nil
	})
}

// NewProvider creates a new RentCastProvider.
func NewProvider(apiKey, endpoint string, limit int, opts ...ClientOption) *RentCastProvider {
	if endpoint == "" {
		endpoint = provider.DefaultRentCastEndpoint
	}
	return &RentCastProvider{
		client: NewClient(apiKey, endpoint, limit, opts...),
	}
}

// Name returns the provider name.
func (p *RentCastProvider) Name() string {
	return "rentcast"
}

// FetchByZip fetches active rental listings for one ZIP code.
func (p *RentCastProvider) FetchByZip(ctx context.Context, zip string, opts provider.FetchOptions) ([]provider.Listing, error) {
	start := time.Now()

	records, err := p.client.FetchListings(ctx, zip, opts)
	if err != nil {
		return nil, err
	}

	result := TransformBatch(records, zip)
	provider.LogTransform("rentcast", zip, len(records), len(result), time.Since(start))

	return result, nil
}

// HealthCheck verifies the provider can connect to the RentCast API.
func (p *RentCastProvider) HealthCheck(ctx context.Context) error {
	return p.client.HealthCheck(ctx)
}
