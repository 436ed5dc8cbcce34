package search

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/EmpoweredVote/rental-search/internal/listings/provider"
	"github.com/EmpoweredVote/rental-search/internal/standards"

	// Import providers to register them via init()
	_ "github.com/EmpoweredVote/rental-search/internal/listings/rentcast"
)

// Init builds the search service from environment configuration. A missing
// or invalid provider configuration is logged and leaves the service
// unconfigured rather than stopping the process.
func Init(reg *standards.Registry, pl ProfileLoader) *Service {
	cfg := provider.LoadFromEnv()

	opts := []Option{
		WithTimeout(cfg.Timeout),
		WithMaxConcurrency(cfg.MaxConcurrency),
		WithMetrics(NewMetrics(prometheus.DefaultRegisterer)),
	}
	if pl != nil {
		opts = append(opts, WithProfiles(pl))
	}

	p, err := provider.NewProvider(cfg)
	if err != nil {
		log.Printf("[search] WARNING: Failed to initialize %s provider: %v", cfg.Provider, err)
		log.Printf("[search] Searches will be rejected until a provider is configured")
	} else {
		log.Printf("[search] Initialized %s provider", p.Name())
		opts = append(opts, WithProvider(p))
	}

	return NewService(reg, opts...)
}
