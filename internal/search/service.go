// Package search resolves a caseworker's locations to ZIP codes, fetches
// listings for each ZIP, and applies the payment standard filter.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/EmpoweredVote/rental-search/internal/affordability"
	"github.com/EmpoweredVote/rental-search/internal/listings/provider"
	"github.com/EmpoweredVote/rental-search/internal/profiles"
	"github.com/EmpoweredVote/rental-search/internal/standards"
	"github.com/EmpoweredVote/rental-search/internal/utils"
)

const (
	DefaultTimeout        = 30 * time.Second
	DefaultMaxConcurrency = 4
)

// ProfileLoader loads a saved client profile. profiles.Store satisfies it.
type ProfileLoader interface {
	Load(ctx context.Context, clientName string) (*profiles.Profile, error)
}

// Service runs searches. The provider and profile loader are optional; a
// Service without a provider answers every search with ErrNotConfigured.
type Service struct {
	registry       *standards.Registry
	engine         *affordability.Engine
	provider       provider.ListingProvider
	profiles       ProfileLoader
	metrics        *Metrics
	timeout        time.Duration
	maxConcurrency int
}

type Option func(*Service)

func WithProvider(p provider.ListingProvider) Option {
	return func(s *Service) { s.provider = p }
}

func WithProfiles(pl ProfileLoader) Option {
	return func(s *Service) { s.profiles = pl }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTimeout sets the deadline for each per-ZIP lookup.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxConcurrency bounds simultaneous per-ZIP lookups.
func WithMaxConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

func NewService(reg *standards.Registry, opts ...Option) *Service {
	s := &Service{
		registry:       reg,
		engine:         affordability.New(reg),
		timeout:        DefaultTimeout,
		maxConcurrency: DefaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status reports whether a provider is available.
func (s *Service) Status() Status {
	if s.provider == nil {
		return Status{Configured: false, Warning: NotConfiguredWarning}
	}
	return Status{Configured: true, Provider: s.provider.Name()}
}

// SplitLocations splits comma-separated input into trimmed, non-empty tokens.
func SplitLocations(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tok := strings.TrimSpace(part); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Tokens merges Locations and Location into one ordered token list.
func (req Request) Tokens() []string {
	out := []string{}
	for _, loc := range req.Locations {
		out = append(out, SplitLocations(loc)...)
	}
	return append(out, SplitLocations(req.Location)...)
}

func (s *Service) validate(req Request) (*standards.Region, []string, error) {
	region, ok := s.registry.Region(req.Region)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownRegion, req.Region)
	}
	if req.VoucherBedrooms < 0 || req.VoucherBedrooms >= standards.NumCategories {
		return nil, nil, fmt.Errorf("%w: voucher_bedrooms must be between 0 and 4", ErrInvalidRequest)
	}
	for _, b := range req.DesiredBedrooms {
		if b < 0 || b >= standards.NumCategories {
			return nil, nil, fmt.Errorf("%w: desired_bedrooms must be between 0 and 4", ErrInvalidRequest)
		}
	}
	tokens := req.Tokens()
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("%w: select at least one town or enter a ZIP code", ErrInvalidRequest)
	}
	return region, tokens, nil
}

// Search runs one search. Validation and configuration problems are returned
// as errors; everything else (unresolved tokens, failed lookups, missing
// standards) is reported inside the Response.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	region, tokens, err := s.validate(req)
	if err != nil {
		s.metrics.incSearch("invalid")
		return nil, err
	}
	if s.provider == nil {
		s.metrics.incSearch("unconfigured")
		return nil, ErrNotConfigured
	}

	searchID := uuid.NewString()
	ctx = utils.WithSearchID(ctx, searchID)

	resp := &Response{
		SearchID:        searchID,
		Region:          region.Key,
		RegionName:      region.Name,
		Authority:       region.Authority,
		EffectiveDate:   region.EffectiveDate.Format(standards.DateLayout),
		VoucherBedrooms: req.VoucherBedrooms,
		VoucherLabel:    standards.CategoryFor(req.VoucherBedrooms).Label(),
		Warnings:        []string{},
		Standards:       []ZipStandard{},
		Failures:        []ZipFailure{},
		Affordable:      []ListingOut{},
		OverBudget:      []ListingOut{},
	}

	resp.Zips, resp.Unresolved = s.registry.ResolveAll(region.Key, tokens)
	if len(resp.Unresolved) > 0 {
		resp.Warnings = append(resp.Warnings, "Could not find: "+strings.Join(resp.Unresolved, ", "))
	}
	if len(resp.Zips) == 0 {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(
			"No valid locations found in %s. Please check your town names or ZIP codes.", region.Name))
		s.metrics.incSearch("no_locations")
		log.Printf("[search %s] region=%s tokens=%d resolved=0", searchID, region.Key, len(tokens))
		return resp, nil
	}

	for _, z := range resp.Zips {
		zs := ZipStandard{Zip: z}
		if amt, err := s.registry.PaymentStandard(region.Key, z, req.VoucherBedrooms); err == nil {
			zs.Amount = &amt
		}
		zs.Text = FormatAmount(zs.Amount)
		resp.Standards = append(resp.Standards, zs)
	}

	listings, failures := s.fetchAll(ctx, resp.Zips, fetchOptions(req.DesiredBedrooms))
	resp.Failures = failures
	resp.Fetched = len(listings)
	for _, f := range failures {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("Listings lookup failed for ZIP %s: %s", f.Zip, f.Error))
	}

	listings, dismissed, warning := s.dropDismissed(ctx, req.Client, listings)
	resp.Dismissed = dismissed
	if warning != "" {
		resp.Warnings = append(resp.Warnings, warning)
	}

	result := s.engine.Filter(listings, region.Key, req.VoucherBedrooms, req.DesiredBedrooms)
	resp.FilteredOut = result.FilteredOut
	resp.Affordable = toListingOuts(result.Affordable)
	resp.OverBudget = toListingOuts(result.OverBudget)

	s.metrics.incSearch("ok")
	s.metrics.addListings("affordable", len(resp.Affordable))
	s.metrics.addListings("over_budget", len(resp.OverBudget))
	s.metrics.addListings("filtered", resp.FilteredOut)
	s.metrics.addListings("dismissed", resp.Dismissed)

	log.Printf("[search %s] region=%s zips=%d unresolved=%d failures=%d fetched=%d affordable=%d over=%d",
		searchID, region.Key, len(resp.Zips), len(resp.Unresolved), len(resp.Failures),
		resp.Fetched, len(resp.Affordable), len(resp.OverBudget))
	return resp, nil
}

// fetchOptions narrows the provider query when exactly one unit size is wanted.
func fetchOptions(desired []int) provider.FetchOptions {
	var opts provider.FetchOptions
	if len(desired) == 1 {
		b := desired[0]
		opts.Bedrooms = &b
	}
	return opts
}

// fetchAll queries every ZIP with bounded concurrency. Each lookup gets its
// own deadline; a failed lookup is recorded and contributes no listings.
// Listings are returned in ZIP order.
func (s *Service) fetchAll(ctx context.Context, zips []string, opts provider.FetchOptions) ([]provider.Listing, []ZipFailure) {
	perZip := make([][]provider.Listing, len(zips))
	errs := make([]error, len(zips))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i, zip := range zips {
		i, zip := i, zip
		g.Go(func() error {
			perZip[i], errs[i] = s.fetchOne(ctx, zip, opts)
			return nil
		})
	}
	_ = g.Wait()

	var listings []provider.Listing
	failures := []ZipFailure{}
	for i, zip := range zips {
		if errs[i] != nil {
			failures = append(failures, ZipFailure{Zip: zip, Error: errs[i].Error()})
			continue
		}
		for _, l := range perZip[i] {
			l.SearchZip = zip
			listings = append(listings, l)
		}
	}
	return listings, failures
}

func (s *Service) fetchOne(ctx context.Context, zip string, opts provider.FetchOptions) ([]provider.Listing, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	listings, err := s.provider.FetchByZip(callCtx, zip, opts)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			outcome = "timeout"
			err = fmt.Errorf("timed out after %s: %w", s.timeout, err)
		}
		searchID, _ := utils.GetSearchIDFromContext(ctx)
		log.Printf("[search %s] zip=%s lookup failed: %v", searchID, zip, err)
	}
	s.metrics.observeProviderCall(s.provider.Name(), outcome, time.Since(start))
	return listings, err
}

// dropDismissed removes listings the named client has dismissed. A missing
// or unreadable profile leaves the listings untouched and yields a warning.
func (s *Service) dropDismissed(ctx context.Context, client string, listings []provider.Listing) ([]provider.Listing, int, string) {
	client = strings.TrimSpace(client)
	if client == "" || s.profiles == nil {
		return listings, 0, ""
	}

	p, err := s.profiles.Load(ctx, client)
	if errors.Is(err, profiles.ErrProfileNotFound) {
		return listings, 0, "No saved profile for client " + client
	}
	if err != nil {
		searchID, _ := utils.GetSearchIDFromContext(ctx)
		log.Printf("[search %s] load profile %q: %v", searchID, client, err)
		return listings, 0, "Could not load profile for client " + client
	}

	kept := make([]provider.Listing, 0, len(listings))
	for _, l := range listings {
		if p.IsDismissed(l.Key()) {
			continue
		}
		kept = append(kept, l)
	}
	return kept, len(listings) - len(kept), ""
}
