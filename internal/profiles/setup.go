package profiles

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/EmpoweredVote/rental-search/internal/db"
)

// Init prepares the profiles schema and returns a store backed by it.
func Init(d *gorm.DB) (*GormStore, error) {
	if err := db.EnsureSchema(d, "profiles"); err != nil {
		return nil, fmt.Errorf("ensure schema profiles: %w", err)
	}

	if err := d.AutoMigrate(&Profile{}); err != nil {
		return nil, fmt.Errorf("auto-migrate profiles: %w", err)
	}

	log.Println("Profiles module initialized")
	return NewGormStore(d), nil
}
