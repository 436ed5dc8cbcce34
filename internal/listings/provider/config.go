package provider

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ProviderType identifies which listings source to use.
type ProviderType string

const (
	ProviderRentCast ProviderType = "rentcast"
)

// DefaultRentCastEndpoint is the long-term rental listings endpoint.
const DefaultRentCastEndpoint = "https://api.rentcast.io/v1/listings/rental/long-term"

// Config holds configuration for the listings provider and for how the
// search fans out across ZIP codes.
type Config struct {
	// Provider type: "rentcast"
	Provider ProviderType

	// RentCast-specific config
	RentCastKey      string
	RentCastEndpoint string

	// Limit is the maximum listings requested per ZIP.
	Limit int
	// Timeout is the fixed deadline for one ZIP lookup.
	Timeout time.Duration
	// MaxConcurrency bounds simultaneous ZIP lookups in one search.
	MaxConcurrency int
	// RatePerSecond paces outgoing provider requests.
	RatePerSecond float64
}

// LoadFromEnv loads provider configuration from environment variables.
//
// Environment variables:
//   - LISTINGS_PROVIDER: "rentcast" (default: "rentcast")
//   - RENTCAST_API_KEY: API key for RentCast (required if using rentcast)
//   - RENTCAST_ENDPOINT: listings endpoint (default: https://api.rentcast.io/v1/listings/rental/long-term)
//   - LISTINGS_LIMIT: listings per ZIP (default: 50)
//   - LISTINGS_TIMEOUT_SECONDS: per-ZIP deadline (default: 30)
//   - LISTINGS_MAX_CONCURRENCY: parallel ZIP lookups (default: 4)
//   - LISTINGS_RATE_PER_SECOND: outgoing request rate (default: 5)
func LoadFromEnv() Config {
	providerStr := strings.ToLower(strings.TrimSpace(os.Getenv("LISTINGS_PROVIDER")))

	var provider ProviderType
	switch providerStr {
	case "", "rentcast":
		provider = ProviderRentCast
	default:
		provider = ProviderType(providerStr)
	}

	endpoint := strings.TrimSpace(os.Getenv("RENTCAST_ENDPOINT"))
	if endpoint == "" {
		endpoint = DefaultRentCastEndpoint
	}

	return Config{
		Provider:         provider,
		RentCastKey:      strings.TrimSpace(os.Getenv("RENTCAST_API_KEY")),
		RentCastEndpoint: endpoint,
		Limit:            getEnvInt("LISTINGS_LIMIT", 50),
		Timeout:          time.Duration(getEnvInt("LISTINGS_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxConcurrency:   getEnvInt("LISTINGS_MAX_CONCURRENCY", 4),
		RatePerSecond:    getEnvFloat("LISTINGS_RATE_PER_SECOND", 5),
	}
}

// Validate checks that the configuration is valid for the selected provider.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderRentCast:
		if c.RentCastKey == "" {
			return ErrMissingRentCastKey
		}
	}
	return nil
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
