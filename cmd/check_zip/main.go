// Command check_zip prints the payment standards for a ZIP code or town,
// optionally fetching live listing counts from the configured provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/EmpoweredVote/rental-search/internal/listings/provider"
	"github.com/EmpoweredVote/rental-search/internal/standards"

	_ "github.com/EmpoweredVote/rental-search/internal/listings/rentcast"
)

var (
	region = flag.String("region", "", "Region key (default: every region pricing the ZIP)")
	fetch  = flag.Bool("fetch", false, "Also fetch active listings for each ZIP from the provider")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: check_zip [-region cook] [-fetch] <zip-or-town>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	reg, err := standards.LoadFromEnv()
	if err != nil {
		log.Fatalf("Load standards: %v", err)
	}

	var p provider.ListingProvider
	if *fetch {
		p, err = provider.NewProvider(provider.LoadFromEnv())
		if err != nil {
			log.Fatalf("Provider: %v", err)
		}
	}

	for _, token := range flag.Args() {
		regions := []string{*region}
		if *region == "" {
			regions = regionsFor(reg, token)
		}
		if len(regions) == 0 {
			fmt.Printf("%s: not found in any region\n\n", token)
			continue
		}
		for _, key := range regions {
			zips := reg.ResolveLocation(key, token)
			if len(zips) == 0 {
				fmt.Printf("%s: not found in %s\n\n", token, key)
				continue
			}
			fmt.Printf("=== %s in %s (%d ZIPs) ===\n", token, key, len(zips))
			for _, z := range zips {
				printZip(reg, key, z)
				if p != nil {
					printListings(p, z)
				}
			}
			fmt.Println()
		}
	}
}

// regionsFor finds every region that resolves the token.
func regionsFor(reg *standards.Registry, token string) []string {
	var out []string
	for _, r := range reg.Regions() {
		if len(r.Resolve(token)) > 0 {
			out = append(out, r.Key)
		}
	}
	return out
}

func printZip(reg *standards.Registry, key, zip string) {
	r, _ := reg.Region(key)
	amounts, err := r.AmountsFor(zip)
	if err != nil {
		fmt.Printf("  %s  N/A (%v)\n", zip, err)
		return
	}
	parts := make([]string, 0, standards.NumCategories)
	for i, a := range amounts {
		parts = append(parts, fmt.Sprintf("%s=$%d", standards.BedroomCategory(i), a))
	}
	tier := ""
	if t, ok := r.Tier(zip); ok {
		tier = " tier " + t
	}
	fmt.Printf("  %s%s  %s\n", zip, tier, strings.Join(parts, " "))
}

func printListings(p provider.ListingProvider, zip string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	listings, err := p.FetchByZip(ctx, zip, provider.FetchOptions{})
	if err != nil {
		fmt.Printf("    listings: error: %v\n", err)
		return
	}
	fmt.Printf("    listings: %d active\n", len(listings))
}
