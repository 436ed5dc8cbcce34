package search

import (
	"errors"
)

var (
	ErrUnknownRegion  = errors.New("unknown region")
	ErrInvalidRequest = errors.New("invalid search request")
	ErrNotConfigured  = errors.New("listings provider not configured")
)

// NotConfiguredWarning is the advisory shown when no provider credential is set.
const NotConfiguredWarning = "API key not configured: set RENTCAST_API_KEY to search listings."

// Request is one caseworker search.
type Request struct {
	Region string `json:"region"`
	// Locations holds town names or ZIP codes, one per element.
	Locations []string `json:"locations"`
	// Location is a comma-separated alternative to Locations; both are merged.
	Location        string `json:"location"`
	VoucherBedrooms int    `json:"voucher_bedrooms"`
	// DesiredBedrooms limits unit sizes; empty keeps every size.
	DesiredBedrooms []int `json:"desired_bedrooms"`
	// Client names a saved profile whose dismissed listings are hidden.
	Client string `json:"client,omitempty"`
}

// ZipStandard is the voucher-size payment standard for one searched ZIP.
type ZipStandard struct {
	Zip    string `json:"zip"`
	Amount *int   `json:"amount"`
	Text   string `json:"text"`
}

// ZipFailure records a provider lookup that contributed no listings.
type ZipFailure struct {
	Zip   string `json:"zip"`
	Error string `json:"error"`
}

type Response struct {
	SearchID        string        `json:"search_id"`
	Region          string        `json:"region"`
	RegionName      string        `json:"region_name"`
	Authority       string        `json:"authority"`
	EffectiveDate   string        `json:"effective_date"`
	VoucherBedrooms int           `json:"voucher_bedrooms"`
	VoucherLabel    string        `json:"voucher_label"`
	Zips            []string      `json:"zips"`
	Unresolved      []string      `json:"unresolved"`
	Warnings        []string      `json:"warnings"`
	Standards       []ZipStandard `json:"standards"`
	Failures        []ZipFailure  `json:"failures"`
	Fetched         int           `json:"fetched"`
	Dismissed       int           `json:"dismissed"`
	FilteredOut     int           `json:"filtered_out"`
	Affordable      []ListingOut  `json:"affordable"`
	OverBudget      []ListingOut  `json:"over_budget"`
}

// Status reports whether searches can run.
type Status struct {
	Configured bool   `json:"configured"`
	Provider   string `json:"provider,omitempty"`
	Warning    string `json:"warning,omitempty"`
}
