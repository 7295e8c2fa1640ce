// File: internal/company/store.go
package company

import (
	"sync"

	"bluestock_client/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Store is the dev gateway's in-memory company directory. It stands in for
// the real backend's database the same way the original application shipped
// a table of mock companies; it is seeded at startup and safe for
// concurrent handler access.
type Store struct {
	mu        sync.RWMutex
	companies []Company
}

// NewStore creates a directory pre-populated with the demo companies.
func NewStore() *Store {
	return &Store{companies: seedCompanies()}
}

// List returns a copy of all companies.
func (s *Store) List() []Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Company, len(s.companies))
	copy(out, s.companies)
	return out
}

// Find looks a company up by id or slug.
func (s *Store) Find(idOrSlug string) (*Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.companies {
		if s.companies[i].ID == idOrSlug || s.companies[i].Slug == idOrSlug {
			c := s.companies[i]
			return &c, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("Company not found.")
}

// Create registers a new company owned by ownerID. New entries start with
// empty ML results; the scoring model runs out-of-band.
func (s *Store) Create(ownerID string, req UpsertRequest) *Company {
	c := Company{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Slug:    slug.Make(req.CompanyName),
		MLResults: MLResults{
			Pros: []MLIndicator{},
			Cons: []MLIndicator{},
		},
	}
	applyUpsert(&c, req)

	s.mu.Lock()
	s.companies = append(s.companies, c)
	s.mu.Unlock()
	return &c
}

// Update replaces the profile fields of an existing company. Only the
// owner may update; the ML results are not client-writable.
func (s *Store) Update(idOrSlug, ownerID string, req UpsertRequest) (*Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.companies {
		if s.companies[i].ID != idOrSlug && s.companies[i].Slug != idOrSlug {
			continue
		}
		if s.companies[i].OwnerID != ownerID {
			return nil, common.NewAPIError(403, "FORBIDDEN", "Only the owner may update this company.")
		}
		applyUpsert(&s.companies[i], req)
		s.companies[i].Slug = slug.Make(req.CompanyName)
		c := s.companies[i]
		return &c, nil
	}
	return nil, common.ErrNotFound.WithDetails("Company not found.")
}

func applyUpsert(c *Company, req UpsertRequest) {
	c.CompanyName = req.CompanyName
	c.Address = req.Address
	c.City = req.City
	c.State = req.State
	c.Country = req.Country
	c.PostalCode = req.PostalCode
	c.Website = req.Website
	c.LogoURL = req.LogoURL
	c.BannerURL = req.BannerURL
	c.Industry = req.Industry
	c.FoundedDate = req.FoundedDate
	c.Description = req.Description
	c.SocialLinks = req.SocialLinks
}
