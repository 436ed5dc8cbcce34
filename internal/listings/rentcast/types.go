package rentcast

// RentCastListing is one element of the long-term rental listings array.
// Numeric fields are decoded as floats so that "2" and "2.0" both parse.
type RentCastListing struct {
	ID               string           `json:"id"`
	FormattedAddress string           `json:"formattedAddress"`
	AddressLine1     string           `json:"addressLine1"`
	AddressLine2     *string          `json:"addressLine2"`
	City             string           `json:"city"`
	State            string           `json:"state"`
	ZipCode          string           `json:"zipCode"`
	County           string           `json:"county"`
	Latitude         *float64         `json:"latitude"`
	Longitude        *float64         `json:"longitude"`
	PropertyType     string           `json:"propertyType"`
	Bedrooms         *float64         `json:"bedrooms"`
	Bathrooms        *float64         `json:"bathrooms"`
	SquareFootage    *float64         `json:"squareFootage"`
	LotSize          *float64         `json:"lotSize"`
	YearBuilt        *float64         `json:"yearBuilt"`
	Status           string           `json:"status"`
	Price            *float64         `json:"price"`
	ListingType      string           `json:"listingType"`
	ListedDate       string           `json:"listedDate"`
	RemovedDate      *string          `json:"removedDate"`
	LastSeenDate     string           `json:"lastSeenDate"`
	DaysOnMarket     *float64         `json:"daysOnMarket"`
	MLSName          string           `json:"mlsName"`
	MLSNumber        string           `json:"mlsNumber"`
	ListingAgent     *RentCastContact `json:"listingAgent"`
	ListingOffice    *RentCastContact `json:"listingOffice"`
}

// RentCastContact is a listing agent or office.
type RentCastContact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// RentCastError is the error body RentCast returns with non-2xx statuses.
type RentCastError struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
