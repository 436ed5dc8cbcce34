package standards

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

var zip5 = regexp.MustCompile(`^\d{5}$`)

// IsZip5 reports whether s is exactly five ASCII digits.
func IsZip5(s string) bool {
	return zip5.MatchString(s)
}

// foldTown normalizes a town name for case-insensitive exact matching.
// A Caser is stateful, so each call builds its own.
func foldTown(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// AmountsFor returns all five category amounts for a ZIP.
func (r *Region) AmountsFor(zip string) (Amounts, error) {
	switch r.Scheme {
	case SchemeTiered:
		tier, ok := r.zipTiers[zip]
		if !ok {
			return Amounts{}, fmt.Errorf("%s zip %s: %w", r.Key, zip, ErrNotFound)
		}
		amounts, ok := r.tiers[tier]
		if !ok {
			return Amounts{}, fmt.Errorf("%s zip %s tier %s: %w", r.Key, zip, tier, ErrNotFound)
		}
		return amounts, nil
	case SchemeDirect:
		amounts, ok := r.zipAmounts[zip]
		if !ok {
			return Amounts{}, fmt.Errorf("%s zip %s: %w", r.Key, zip, ErrNotFound)
		}
		return amounts, nil
	}
	return Amounts{}, fmt.Errorf("%s scheme %q: %w", r.Key, r.Scheme, ErrNotFound)
}

// Standard returns the payment standard for a ZIP and bedroom count.
func (r *Region) Standard(zip string, bedrooms int) (int, error) {
	amounts, err := r.AmountsFor(zip)
	if err != nil {
		return 0, err
	}
	return amounts.For(bedrooms), nil
}

// Tier returns the rate tier label for a ZIP in a tiered region.
func (r *Region) Tier(zip string) (string, bool) {
	tier, ok := r.zipTiers[zip]
	return tier, ok
}

// HasZip reports whether the region prices the ZIP.
func (r *Region) HasZip(zip string) bool {
	if r.Scheme == SchemeDirect {
		_, ok := r.zipAmounts[zip]
		return ok
	}
	_, ok := r.zipTiers[zip]
	return ok
}

// Resolve turns one user-entered token into ZIP codes. Five digits are a
// literal ZIP that must be priced by the region; anything else must equal a
// town name, ignoring case. The result may be empty but is never nil.
func (r *Region) Resolve(token string) []string {
	token = strings.TrimSpace(token)
	if token == "" {
		return []string{}
	}
	if IsZip5(token) {
		if r.HasZip(token) {
			return []string{token}
		}
		return []string{}
	}
	t, ok := r.towns[foldTown(token)]
	if !ok {
		return []string{}
	}
	out := make([]string, len(t.zips))
	copy(out, t.zips)
	return out
}

// Towns returns the region's town names in sorted order.
func (r *Region) Towns() []string {
	out := make([]string, 0, len(r.towns))
	for _, t := range r.towns {
		out = append(out, t.name)
	}
	sort.Strings(out)
	return out
}

// ZipCodes returns every priced ZIP in sorted order.
func (r *Region) ZipCodes() []string {
	var out []string
	if r.Scheme == SchemeDirect {
		out = make([]string, 0, len(r.zipAmounts))
		for z := range r.zipAmounts {
			out = append(out, z)
		}
	} else {
		out = make([]string, 0, len(r.zipTiers))
		for z := range r.zipTiers {
			out = append(out, z)
		}
	}
	sort.Strings(out)
	return out
}

// Tiers returns the tier labels of a tiered region in order.
func (r *Region) Tiers() []string {
	out := make([]string, 0, len(r.tiers))
	for t := range r.tiers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TierAmounts returns the amounts of one tier label.
func (r *Region) TierAmounts(tier string) (Amounts, bool) {
	a, ok := r.tiers[tier]
	return a, ok
}

// TownZips returns the town display names mapped to their ZIP lists.
func (r *Region) TownZips() map[string][]string {
	out := make(map[string][]string, len(r.towns))
	for _, t := range r.towns {
		zips := make([]string, len(t.zips))
		copy(zips, t.zips)
		out[t.name] = zips
	}
	return out
}
