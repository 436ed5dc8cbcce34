package provider

// Listing is one rental unit from any provider in a common format. Fields a
// provider leaves out stay nil; nothing here is persisted.
type Listing struct {
	// Unique ID from the source system
	ID string `json:"id"`

	// Address
	FormattedAddress string   `json:"formatted_address"`
	AddressLine1     string   `json:"address_line_1,omitempty"`
	AddressLine2     string   `json:"address_line_2,omitempty"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	ZipCode          string   `json:"zip_code,omitempty"`
	County           string   `json:"county,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`

	// Unit
	Price         *float64 `json:"price"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *float64 `json:"bathrooms,omitempty"`
	SquareFootage *int     `json:"square_footage,omitempty"`
	LotSize       *int     `json:"lot_size,omitempty"`
	YearBuilt     *int     `json:"year_built,omitempty"`
	PropertyType  string   `json:"property_type,omitempty"`

	// Market
	Status       string `json:"status,omitempty"`
	DaysOnMarket *int   `json:"days_on_market,omitempty"`
	ListedDate   string `json:"listed_date,omitempty"`
	MLSName      string `json:"mls_name,omitempty"`
	MLSNumber    string `json:"mls_number,omitempty"`

	Agent  Contact `json:"agent"`
	Office Contact `json:"office"`

	// SearchZip is the ZIP whose lookup produced this listing.
	SearchZip string `json:"search_zip"`

	// Source tracking
	Source string `json:"source"`
}

// Contact is a listing agent or office.
type Contact struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// Empty reports whether no contact detail is known.
func (c Contact) Empty() bool {
	return c.Name == "" && c.Phone == "" && c.Email == "" && c.Website == ""
}

// BedroomCount returns the bedroom count, treating unknown as a studio.
func (l Listing) BedroomCount() int {
	if l.Bedrooms == nil {
		return 0
	}
	return *l.Bedrooms
}

// PriceOrZero returns the monthly price, treating unknown as zero.
func (l Listing) PriceOrZero() float64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

// Key is a stable per-listing identifier: the source ID when present,
// otherwise the formatted address.
func (l Listing) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.FormattedAddress
}

// StandardZip is the ZIP used to price the listing.
func (l Listing) StandardZip() string {
	if l.SearchZip != "" {
		return l.SearchZip
	}
	return l.ZipCode
}
