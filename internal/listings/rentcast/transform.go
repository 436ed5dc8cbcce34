package rentcast

import (
	"math"
	"strings"

	"github.com/EmpoweredVote/rental-search/internal/listings/provider"
)

// TransformToListing converts a RentCast record into a normalized listing
// tagged with the ZIP that was searched.
func TransformToListing(rc RentCastListing, searchZip string) provider.Listing {
	line2 := ""
	if rc.AddressLine2 != nil {
		line2 = *rc.AddressLine2
	}

	address := strings.TrimSpace(rc.FormattedAddress)
	if address == "" {
		address = strings.TrimSpace(rc.AddressLine1)
	}

	return provider.Listing{
		ID:               rc.ID,
		FormattedAddress: address,
		AddressLine1:     rc.AddressLine1,
		AddressLine2:     line2,
		City:             rc.City,
		State:            rc.State,
		ZipCode:          rc.ZipCode,
		County:           rc.County,
		Latitude:         rc.Latitude,
		Longitude:        rc.Longitude,
		Price:            rc.Price,
		Bedrooms:         toInt(rc.Bedrooms),
		Bathrooms:        rc.Bathrooms,
		SquareFootage:    toInt(rc.SquareFootage),
		LotSize:          toInt(rc.LotSize),
		YearBuilt:        toInt(rc.YearBuilt),
		PropertyType:     rc.PropertyType,
		Status:           rc.Status,
		DaysOnMarket:     toInt(rc.DaysOnMarket),
		ListedDate:       rc.ListedDate,
		MLSName:          rc.MLSName,
		MLSNumber:        rc.MLSNumber,
		Agent:            toContact(rc.ListingAgent),
		Office:           toContact(rc.ListingOffice),
		SearchZip:        searchZip,
		Source:           "rentcast",
	}
}

// TransformBatch converts every record returned for one ZIP.
func TransformBatch(records []RentCastListing, searchZip string) []provider.Listing {
	result := make([]provider.Listing, 0, len(records))
	for _, rc := range records {
		result = append(result, TransformToListing(rc, searchZip))
	}
	return result
}

func toInt(f *float64) *int {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

func toContact(c *RentCastContact) provider.Contact {
	if c == nil {
		return provider.Contact{}
	}
	return provider.Contact{
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Website: c.Website,
	}
}
