package profiles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists client profiles keyed by client name.
type Store interface {
	List(ctx context.Context) ([]Profile, error)
	Load(ctx context.Context, clientName string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, clientName string) error
	Dismiss(ctx context.Context, clientName, listingKey string) (*Profile, error)
}

// prepare fills the derived fields of p before it is written.
func prepare(p *Profile) error {
	p.ClientName = NormalizeName(p.ClientName)
	if p.ClientName == "" {
		return ErrInvalidClient
	}
	p.ClientKey = ClientKey(p.ClientName)
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// GormStore keeps profiles in Postgres.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(d *gorm.DB) *GormStore {
	return &GormStore{db: d}
}

func (s *GormStore) List(ctx context.Context) ([]Profile, error) {
	var out []Profile
	if err := s.db.WithContext(ctx).Order("client_key").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

func (s *GormStore) Load(ctx context.Context, clientName string) (*Profile, error) {
	var p Profile
	err := s.db.WithContext(ctx).First(&p, "client_key = ?", ClientKey(clientName)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &p, nil
}

// Save inserts the profile or replaces the one with the same client name.
func (s *GormStore) Save(ctx context.Context, p *Profile) error {
	if err := prepare(p); err != nil {
		return err
	}

	var existing Profile
	if err := s.db.WithContext(ctx).Select("id", "created_at").
		First(&existing, "client_key = ?", p.ClientKey).Error; err == nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"client_name", "region", "voucher_bedrooms", "desired_bedrooms",
			"preferred_towns", "dismissed_listings", "notes", "updated_at",
		}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, clientName string) error {
	res := s.db.WithContext(ctx).Where("client_key = ?", ClientKey(clientName)).Delete(&Profile{})
	if res.Error != nil {
		return fmt.Errorf("delete profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Dismiss appends a listing key to the client's dismissed list under a row lock.
func (s *GormStore) Dismiss(ctx context.Context, clientName, listingKey string) (*Profile, error) {
	var p Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "client_key = ?", ClientKey(clientName)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		if err != nil {
			return err
		}
		if p.IsDismissed(listingKey) {
			return nil
		}
		p.DismissedListings = append(p.DismissedListings, listingKey)
		return tx.Model(&p).Update("dismissed_listings", p.DismissedListings).Error
	})
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("dismiss listing: %w", err)
	}
	return &p, nil
}

// MemoryStore keeps profiles in process memory. It backs tests and runs
// without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*Profile), now: time.Now}
}

func (s *MemoryStore) List(ctx context.Context) ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientKey < out[j].ClientKey })
	return out, nil
}

func (s *MemoryStore) Load(ctx context.Context, clientName string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[ClientKey(clientName)]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, p *Profile) error {
	if err := prepare(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if prev, ok := s.profiles[p.ClientKey]; ok {
		p.ID = prev.ID
		p.CreatedAt = prev.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.profiles[p.ClientKey] = p.clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, clientName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ClientKey(clientName)
	if _, ok := s.profiles[key]; !ok {
		return ErrProfileNotFound
	}
	delete(s.profiles, key)
	return nil
}

func (s *MemoryStore) Dismiss(ctx context.Context, clientName, listingKey string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[ClientKey(clientName)]
	if !ok {
		return nil, ErrProfileNotFound
	}
	if !p.IsDismissed(listingKey) {
		p.DismissedListings = append(p.DismissedListings, listingKey)
		p.UpdatedAt = s.now()
	}
	return p.clone(), nil
}
