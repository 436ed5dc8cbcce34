package standards

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

//go:embed data/*.yaml
var dataFS embed.FS

// DateLayout is the effective-date format used in region files.
const DateLayout = "2006-01-02"

// regionFile is the on-disk shape of one region. Duplicate mapping keys
// (a ZIP listed twice, a town listed twice) are rejected by the parser.
type regionFile struct {
	Key           string              `yaml:"key"`
	Name          string              `yaml:"name"`
	Authority     string              `yaml:"authority"`
	EffectiveDate string              `yaml:"effective_date"`
	Scheme        string              `yaml:"scheme"`
	URLSlug       string              `yaml:"url_slug"`
	Explainer     string              `yaml:"explainer"`
	Tiers         map[string][]int    `yaml:"tiers"`
	Zips          map[string]string   `yaml:"zips"`
	Amounts       map[string][]int    `yaml:"amounts"`
	Towns         map[string][]string `yaml:"towns"`
}

// Default loads the embedded reference data set.
func Default() (*Registry, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded data: %w", err)
	}
	return Load(sub)
}

// LoadFromEnv loads the embedded data set plus any region files found in
// the directory named by STANDARDS_DIR.
//
// Environment variables:
//   - STANDARDS_DIR: optional directory of additional *.yaml region files
func LoadFromEnv() (*Registry, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded data: %w", err)
	}
	sources := []fs.FS{sub}
	if dir := strings.TrimSpace(os.Getenv("STANDARDS_DIR")); dir != "" {
		sources = append(sources, os.DirFS(dir))
	}
	return Load(sources...)
}

// Load parses every *.yaml file at the root of each filesystem and builds
// a Registry. Any malformed file aborts the load.
func Load(sources ...fs.FS) (*Registry, error) {
	var regions []*Region
	for _, fsys := range sources {
		names, err := fs.Glob(fsys, "*.yaml")
		if err != nil {
			return nil, fmt.Errorf("list region files: %w", err)
		}
		sort.Strings(names)
		for _, name := range names {
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			r, err := ParseRegion(data)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", path.Base(name), err)
			}
			regions = append(regions, r)
		}
	}

	reg, err := newRegistry(regions)
	if err != nil {
		return nil, err
	}
	for _, is := range reg.issues {
		log.Printf("[standards] data issue: %s", is)
	}
	log.Printf("[standards] loaded %d regions with %d data issues", len(reg.keys), len(reg.issues))
	return reg, nil
}

// ParseRegion decodes and validates one region file.
func ParseRegion(data []byte) (*Region, error) {
	var rf regionFile
	if err := yaml.UnmarshalWithOptions(data, &rf, yaml.Strict()); err != nil {
		return nil, err
	}
	return rf.build()
}

func (rf regionFile) build() (*Region, error) {
	if strings.TrimSpace(rf.Key) == "" {
		return nil, fmt.Errorf("region key is required")
	}
	if strings.TrimSpace(rf.Name) == "" {
		return nil, fmt.Errorf("region %s: name is required", rf.Key)
	}
	effective, err := time.Parse(DateLayout, rf.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("region %s: effective_date: %w", rf.Key, err)
	}

	r := &Region{
		Key:           rf.Key,
		Name:          rf.Name,
		Authority:     rf.Authority,
		EffectiveDate: effective,
		Scheme:        Scheme(rf.Scheme),
		URLSlug:       rf.URLSlug,
		Explainer:     strings.TrimSpace(rf.Explainer),
		towns:         make(map[string]town, len(rf.Towns)),
	}

	switch r.Scheme {
	case SchemeTiered:
		if len(rf.Amounts) > 0 {
			return nil, fmt.Errorf("region %s: tiered regions take tiers and zips, not amounts", rf.Key)
		}
		r.tiers = make(map[string]Amounts, len(rf.Tiers))
		for label, vals := range rf.Tiers {
			a, err := toAmounts(vals)
			if err != nil {
				return nil, fmt.Errorf("region %s tier %s: %w", rf.Key, label, err)
			}
			r.tiers[label] = a
		}
		r.zipTiers = make(map[string]string, len(rf.Zips))
		for z, tier := range rf.Zips {
			if !IsZip5(z) {
				return nil, fmt.Errorf("region %s: malformed zip %q", rf.Key, z)
			}
			r.zipTiers[z] = strings.TrimSpace(tier)
		}
	case SchemeDirect:
		if len(rf.Tiers) > 0 || len(rf.Zips) > 0 {
			return nil, fmt.Errorf("region %s: direct regions take amounts, not tiers or zips", rf.Key)
		}
		r.zipAmounts = make(map[string]Amounts, len(rf.Amounts))
		for z, vals := range rf.Amounts {
			if !IsZip5(z) {
				return nil, fmt.Errorf("region %s: malformed zip %q", rf.Key, z)
			}
			a, err := toAmounts(vals)
			if err != nil {
				return nil, fmt.Errorf("region %s zip %s: %w", rf.Key, z, err)
			}
			r.zipAmounts[z] = a
		}
	default:
		return nil, fmt.Errorf("region %s: unknown scheme %q", rf.Key, rf.Scheme)
	}

	for name, zips := range rf.Towns {
		key := foldTown(name)
		if key == "" {
			return nil, fmt.Errorf("region %s: empty town name", rf.Key)
		}
		if prev, dup := r.towns[key]; dup {
			return nil, fmt.Errorf("region %s: town %q collides with %q", rf.Key, name, prev.name)
		}
		t := town{name: strings.TrimSpace(name)}
		seen := make(map[string]struct{}, len(zips))
		for _, z := range zips {
			if !IsZip5(z) {
				return nil, fmt.Errorf("region %s town %s: malformed zip %q", rf.Key, name, z)
			}
			if _, dup := seen[z]; dup {
				continue
			}
			seen[z] = struct{}{}
			t.zips = append(t.zips, z)
		}
		r.towns[key] = t
	}

	return r, nil
}

func toAmounts(vals []int) (Amounts, error) {
	var a Amounts
	if len(vals) != NumCategories {
		return a, fmt.Errorf("want %d amounts (studio..4br), got %d", NumCategories, len(vals))
	}
	for i, v := range vals {
		if v < 0 {
			return a, fmt.Errorf("negative amount %d for %s", v, BedroomCategory(i))
		}
		a[i] = v
	}
	return a, nil
}
