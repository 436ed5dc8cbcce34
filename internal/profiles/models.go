package profiles

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/text/cases"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidClient   = errors.New("client name is required")
)

// Profile is a caseworker's saved search context for one client.
type Profile struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClientKey         string         `gorm:"uniqueIndex;not null" json:"-"`
	ClientName        string         `gorm:"not null" json:"client_name"`
	Region            string         `json:"region"`
	VoucherBedrooms   int            `gorm:"default:0" json:"voucher_bedrooms"`
	DesiredBedrooms   pq.Int64Array  `gorm:"type:bigint[]" json:"desired_bedrooms"`
	PreferredTowns    pq.StringArray `gorm:"type:text[]" json:"preferred_towns"`
	DismissedListings pq.StringArray `gorm:"type:text[]" json:"dismissed_listings"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles.profiles"
}

// IsDismissed reports whether the listing key was dismissed for this client.
func (p *Profile) IsDismissed(key string) bool {
	for _, d := range p.DismissedListings {
		if d == key {
			return true
		}
	}
	return false
}

// NormalizeName collapses internal whitespace and trims the display name.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ClientKey is the case-insensitive lookup key for a client name.
func ClientKey(name string) string {
	return cases.Fold().String(NormalizeName(name))
}

func (p *Profile) clone() *Profile {
	out := *p
	out.DesiredBedrooms = append(pq.Int64Array(nil), p.DesiredBedrooms...)
	out.PreferredTowns = append(pq.StringArray(nil), p.PreferredTowns...)
	out.DismissedListings = append(pq.StringArray(nil), p.DismissedListings...)
	return &out
}
