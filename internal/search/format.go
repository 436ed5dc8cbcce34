package search

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/EmpoweredVote/rental-search/internal/affordability"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a monthly rent as "$1,435/mo".
func FormatPrice(p *float64) string {
	if p == nil {
		return "Price not listed"
	}
	return usd.Sprintf("$%.0f/mo", *p)
}

// FormatAmount renders a whole-dollar standard, or "N/A" when missing.
func FormatAmount(a *int) string {
	if a == nil || *a == 0 {
		return "N/A"
	}
	return usd.Sprintf("$%d/mo", *a)
}

// BedroomLabel renders a unit size as "Studio" or "2 Bedroom".
func BedroomLabel(n int) string {
	if n <= 0 {
		return "Studio"
	}
	return fmt.Sprintf("%d Bedroom", n)
}

// PropertyTypeLabel turns provider codes such as "single_family" into
// "Single Family".
func PropertyTypeLabel(raw string) string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	if raw == "" {
		return ""
	}
	return cases.Title(language.English).String(raw)
}

// SavingsText describes how far under the limit a listing is.
func SavingsText(under *float64) string {
	if under == nil {
		return ""
	}
	switch {
	case *under > 0:
		return usd.Sprintf("$%.0f under limit", *under)
	case *under == 0:
		return "At limit"
	default:
		return ""
	}
}

// WebSearchURL links to a web search for the listing address.
func WebSearchURL(address string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(address+" rental")
}

// ListingOut is an evaluated listing with display strings attached.
type ListingOut struct {
	affordability.Evaluated

	BedroomLabel      string `json:"bedroom_label"`
	PriceText         string `json:"price_text"`
	StandardText      string `json:"standard_text"`
	PropertyTypeLabel string `json:"property_type_label,omitempty"`
	SavingsText       string `json:"savings_text,omitempty"`
	SearchURL         string `json:"search_url,omitempty"`
}

func toListingOut(ev affordability.Evaluated) ListingOut {
	out := ListingOut{
		Evaluated:         ev,
		BedroomLabel:      BedroomLabel(ev.BedroomCount()),
		PriceText:         FormatPrice(ev.Price),
		StandardText:      FormatAmount(ev.PaymentStandard),
		PropertyTypeLabel: PropertyTypeLabel(ev.PropertyType),
		SavingsText:       SavingsText(ev.UnderLimit),
	}
	if ev.FormattedAddress != "" {
		out.SearchURL = WebSearchURL(ev.FormattedAddress)
	}
	return out
}

func toListingOuts(evs []affordability.Evaluated) []ListingOut {
	out := make([]ListingOut, 0, len(evs))
	for _, ev := range evs {
		out = append(out, toListingOut(ev))
	}
	return out
}
