package ports

import (
	"context"
	"time"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

// ListingFilter narrows List. An empty OwnerID lists the whole catalog.
type ListingFilter struct {
	OwnerID string
}

// ListingRepository defines persistence operations for the catalog. List
// returns listings in insertion order.
type ListingRepository interface {
	// Insert stores a listing with its id already set. It returns
	// domain.ErrConflict when the id is taken.
	Insert(ctx context.Context, l *domain.Listing) error
	// Update merges patch into the listing and stamps UpdatedAt.
	Update(ctx context.Context, id string, patch domain.ListingPatch, at time.Time) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	Count(ctx context.Context) (int, error)
}
