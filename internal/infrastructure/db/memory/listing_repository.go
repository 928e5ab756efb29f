package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
)

// ListingRepository keeps the catalog in memory. order preserves insertion
// order; byID holds the listings themselves.
type ListingRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{byID: make(map[string]*domain.Listing)}
}

// Insert appends l. A taken id is reported as domain.ErrIDCollision.
func (r *ListingRepository) Insert(_ context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[l.ID]; exists {
		return domain.ErrIDCollision
	}
	clone := l.Clone()
	r.byID[l.ID] = &clone
	r.order = append(r.order, l.ID)
	return nil
}

func (r *ListingRepository) Update(_ context.Context, id string, patch domain.ListingPatch, at time.Time) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	patch.Apply(l)
	l.UpdatedAt = at
	out := l.Clone()
	return &out, nil
}

func (r *ListingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *ListingRepository) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	out := l.Clone()
	return &out, nil
}

func (r *ListingRepository) List(_ context.Context, filter ports.ListingFilter) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Listing, 0, len(r.order))
	for _, id := range r.order {
		l := r.byID[id]
		if filter.OwnerID != "" && l.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, l.Clone())
	}
	return out, nil
}

func (r *ListingRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}
