package standards

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrNotFound      = errors.New("payment standard not found")
	ErrUnknownRegion = errors.New("unknown region")
)

// Scheme identifies how a region prices its ZIP codes.
type Scheme string

const (
	// SchemeTiered regions map ZIP -> tier label -> amounts.
	SchemeTiered Scheme = "tiered"
	// SchemeDirect regions map ZIP -> amounts.
	SchemeDirect Scheme = "direct"
)

// BedroomCategory is one of the five payment-standard unit sizes.
type BedroomCategory int

const (
	Studio BedroomCategory = iota
	OneBR
	TwoBR
	ThreeBR
	FourBR
)

// NumCategories is the size of the closed bedroom category set.
const NumCategories = 5

// CategoryFor maps a bedroom count onto the closed category set. Anything
// above four bedrooms is priced as 4BR; negative counts are treated as studios.
func CategoryFor(bedrooms int) BedroomCategory {
	switch {
	case bedrooms <= 0:
		return Studio
	case bedrooms >= int(FourBR):
		return FourBR
	default:
		return BedroomCategory(bedrooms)
	}
}

func (c BedroomCategory) String() string {
	if c == Studio {
		return "studio"
	}
	return fmt.Sprintf("%dbr", int(c))
}

// Label is the caseworker-facing name, e.g. "Studio" or "2 Bedroom".
func (c BedroomCategory) Label() string {
	if c == Studio {
		return "Studio"
	}
	return fmt.Sprintf("%d Bedroom", int(c))
}

// Amounts holds whole-dollar monthly standards indexed by BedroomCategory.
type Amounts [NumCategories]int

// For returns the amount for a bedroom count after clamping.
func (a Amounts) For(bedrooms int) int {
	return a[CategoryFor(bedrooms)]
}

// Region is a housing authority jurisdiction together with its own
// lookup tables. Regions are immutable once loaded.
type Region struct {
	Key           string
	Name          string
	Authority     string
	EffectiveDate time.Time
	Scheme        Scheme
	URLSlug       string
	Explainer     string

	tiers      map[string]Amounts // tiered only
	zipTiers   map[string]string  // tiered only
	zipAmounts map[string]Amounts // direct only
	towns      map[string]town    // keyed by folded town name
}

type town struct {
	name string
	zips []string
}

// IssueKind classifies a data-quality finding.
type IssueKind string

const (
	IssueTownZipUnpriced IssueKind = "town-zip-unpriced"
	IssueTierMissing     IssueKind = "tier-missing"
	IssueCrossRegionZip  IssueKind = "cross-region-zip"
)

// Issue is a reference-data ambiguity found while loading. Issues are
// reported, never silently resolved; they need upstream verification.
type Issue struct {
	Region  string    `json:"region"`
	Kind    IssueKind `json:"kind"`
	Subject string    `json:"subject"`
	Detail  string    `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s %s: %s", i.Region, i.Kind, i.Subject, i.Detail)
}
