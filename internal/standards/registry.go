package standards

import (
	"fmt"
	"sort"
)

// Registry is the read-only set of regions loaded at process start. It is
// safe for concurrent use because nothing mutates it after Load.
type Registry struct {
	regions map[string]*Region
	keys    []string
	issues  []Issue
}

func newRegistry(regions []*Region) (*Registry, error) {
	reg := &Registry{regions: make(map[string]*Region, len(regions))}
	for _, r := range regions {
		if _, dup := reg.regions[r.Key]; dup {
			return nil, fmt.Errorf("duplicate region key %q", r.Key)
		}
		reg.regions[r.Key] = r
		reg.keys = append(reg.keys, r.Key)
	}
	sort.Strings(reg.keys)
	reg.issues = findIssues(reg)
	return reg, nil
}

// Region returns one region by key.
func (reg *Registry) Region(key string) (*Region, bool) {
	r, ok := reg.regions[key]
	return r, ok
}

// Regions returns all regions ordered by key.
func (reg *Registry) Regions() []*Region {
	out := make([]*Region, 0, len(reg.keys))
	for _, k := range reg.keys {
		out = append(out, reg.regions[k])
	}
	return out
}

// PaymentStandard looks up the standard for a ZIP and bedroom count.
func (reg *Registry) PaymentStandard(region, zip string, bedrooms int) (int, error) {
	r, ok := reg.regions[region]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	return r.Standard(zip, bedrooms)
}

// ResolveLocation resolves one token within a region. Unknown regions
// resolve nothing.
func (reg *Registry) ResolveLocation(region, token string) []string {
	r, ok := reg.regions[region]
	if !ok {
		return []string{}
	}
	return r.Resolve(token)
}

// ResolveAll resolves a list of tokens, de-duplicating ZIPs by first
// occurrence and collecting the tokens that matched nothing.
func (reg *Registry) ResolveAll(region string, tokens []string) (zips, unresolved []string) {
	zips = []string{}
	unresolved = []string{}
	seen := make(map[string]struct{})
	for _, tok := range tokens {
		resolved := reg.ResolveLocation(region, tok)
		if len(resolved) == 0 {
			unresolved = append(unresolved, tok)
			continue
		}
		for _, z := range resolved {
			if _, dup := seen[z]; dup {
				continue
			}
			seen[z] = struct{}{}
			zips = append(zips, z)
		}
	}
	return zips, unresolved
}

// Towns returns the sorted town names of a region.
func (reg *Registry) Towns(region string) []string {
	r, ok := reg.regions[region]
	if !ok {
		return []string{}
	}
	return r.Towns()
}

// ZipCodes returns the sorted priced ZIPs of a region.
func (reg *Registry) ZipCodes(region string) []string {
	r, ok := reg.regions[region]
	if !ok {
		return []string{}
	}
	return r.ZipCodes()
}

// RegionsForZip returns the keys of every region pricing the ZIP.
func (reg *Registry) RegionsForZip(zip string) []string {
	var out []string
	for _, k := range reg.keys {
		if reg.regions[k].HasZip(zip) {
			out = append(out, k)
		}
	}
	return out
}

// Issues returns the data-quality findings recorded at load.
func (reg *Registry) Issues() []Issue {
	out := make([]Issue, len(reg.issues))
	copy(out, reg.issues)
	return out
}

func findIssues(reg *Registry) []Issue {
	var issues []Issue
	owner := make(map[string]string)

	for _, k := range reg.keys {
		r := reg.regions[k]

		if r.Scheme == SchemeTiered {
			for _, z := range r.ZipCodes() {
				tier := r.zipTiers[z]
				if _, ok := r.tiers[tier]; !ok {
					issues = append(issues, Issue{
						Region:  k,
						Kind:    IssueTierMissing,
						Subject: z,
						Detail:  fmt.Sprintf("tier %q has no rate table entry", tier),
					})
				}
			}
		}

		for _, name := range r.Towns() {
			t := r.towns[foldTown(name)]
			for _, z := range t.zips {
				if !r.HasZip(z) {
					issues = append(issues, Issue{
						Region:  k,
						Kind:    IssueTownZipUnpriced,
						Subject: name,
						Detail:  fmt.Sprintf("zip %s is listed for the town but has no payment standard", z),
					})
				}
			}
		}

		for _, z := range r.ZipCodes() {
			if first, ok := owner[z]; ok {
				issues = append(issues, Issue{
					Region:  k,
					Kind:    IssueCrossRegionZip,
					Subject: z,
					Detail:  fmt.Sprintf("zip is also priced by region %s", first),
				})
				continue
			}
			owner[z] = k
		}
	}
	return issues
}
