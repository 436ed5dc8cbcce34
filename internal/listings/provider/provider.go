package provider

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrMissingRentCastKey = errors.New("RENTCAST_API_KEY environment variable is required for rentcast provider")
	ErrUnknownProvider    = errors.New("unknown provider type")
)

// FetchOptions narrows a ZIP lookup.
type FetchOptions struct {
	// Bedrooms restricts results to one unit size when set.
	Bedrooms *int
	// Limit caps the number of listings returned; 0 uses the provider default.
	Limit int
}

// ListingProvider is the interface that all rental listing sources must implement.
type ListingProvider interface {
	// Name returns the provider name for logging purposes.
	Name() string

	// FetchByZip fetches active rental listings for one ZIP code.
	FetchByZip(ctx context.Context, zip string, opts FetchOptions) ([]Listing, error)

	// HealthCheck verifies the provider can reach its data source.
	HealthCheck(ctx context.Context) error
}

// providerRegistry holds registered provider constructors so new sources
// can be added without modifying this file.
var providerRegistry = make(map[ProviderType]func(Config) (ListingProvider, error))

// RegisterProvider registers a provider constructor for a given provider type.
// This should be called from init() in each provider package.
func RegisterProvider(providerType ProviderType, constructor func(Config) (ListingProvider, error)) {
	providerRegistry[providerType] = constructor
}

// NewProvider creates a ListingProvider based on the configuration.
// It returns an error if the configuration is invalid or the provider is unknown.
func NewProvider(cfg Config) (ListingProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	constructor, ok := providerRegistry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	return constructor(cfg)
}
