// Package affordability applies the lesser-of payment standard rule to rental
// listings and splits them into affordable and over-budget sets.
package affordability

import (
	"sort"

	"github.com/EmpoweredVote/rental-search/internal/listings/provider"
)

// Standards looks up a payment standard. *standards.Registry satisfies it.
type Standards interface {
	PaymentStandard(region, zip string, bedrooms int) (int, error)
}

// Evaluated is a listing annotated with the standard it was judged against.
type Evaluated struct {
	provider.Listing

	// EffectiveBedrooms is min(unit bedrooms, voucher bedrooms).
	EffectiveBedrooms int `json:"effective_bedrooms"`
	// PaymentStandard is nil when no standard exists for the ZIP.
	PaymentStandard *int `json:"payment_standard"`
	// UnderLimit is standard minus price, set only when both are known.
	UnderLimit *float64 `json:"under_limit,omitempty"`
}

// Result partitions the listings that passed the size filter.
type Result struct {
	Affordable  []Evaluated `json:"affordable"`
	OverBudget  []Evaluated `json:"over_budget"`
	FilteredOut int         `json:"filtered_out"`
}

// Engine evaluates listings against one set of standards.
type Engine struct {
	standards Standards
}

func New(s Standards) *Engine {
	return &Engine{standards: s}
}

// EffectiveStandard returns the standard for the smaller of the unit size and
// the voucher size.
func (e *Engine) EffectiveStandard(region, zip string, unitBedrooms, voucherBedrooms int) (int, error) {
	return e.standards.PaymentStandard(region, zip, min(unitBedrooms, voucherBedrooms))
}

// Filter drops listings outside the desired sizes (when any are given), then
// judges each remaining listing against its own effective standard. A listing
// is affordable unless both its price and a non-zero standard are known and
// the price exceeds the standard. Both partitions are sorted by price with
// unknown prices first; ties keep input order.
func (e *Engine) Filter(listings []provider.Listing, region string, voucherBedrooms int, desired []int) Result {
	want := make(map[int]struct{}, len(desired))
	for _, d := range desired {
		want[d] = struct{}{}
	}

	res := Result{
		Affordable: []Evaluated{},
		OverBudget: []Evaluated{},
	}
	for _, l := range listings {
		beds := l.BedroomCount()
		if len(want) > 0 {
			if _, ok := want[beds]; !ok {
				res.FilteredOut++
				continue
			}
		}

		ev := e.evaluate(l, region, beds, voucherBedrooms)
		if affordable(ev) {
			res.Affordable = append(res.Affordable, ev)
		} else {
			res.OverBudget = append(res.OverBudget, ev)
		}
	}

	sortByPrice(res.Affordable)
	sortByPrice(res.OverBudget)
	return res
}

func (e *Engine) evaluate(l provider.Listing, region string, beds, voucherBedrooms int) Evaluated {
	ev := Evaluated{
		Listing:           l,
		EffectiveBedrooms: min(beds, voucherBedrooms),
	}
	// Any lookup failure means "no standard", which cannot disqualify.
	std, err := e.EffectiveStandard(region, l.StandardZip(), beds, voucherBedrooms)
	if err != nil {
		return ev
	}
	ev.PaymentStandard = &std
	if l.Price != nil {
		under := float64(std) - *l.Price
		ev.UnderLimit = &under
	}
	return ev
}

func affordable(ev Evaluated) bool {
	if ev.Price == nil || ev.PaymentStandard == nil || *ev.PaymentStandard == 0 {
		return true
	}
	return *ev.Price <= float64(*ev.PaymentStandard)
}

func sortByPrice(evs []Evaluated) {
	sort.SliceStable(evs, func(i, j int) bool {
		return evs[i].PriceOrZero() < evs[j].PriceOrZero()
	})
}
