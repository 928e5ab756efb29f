package ports

import (
	"context"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

// InventoryService defines use-case operations for the catalog.
//
// Update and Remove on an unknown id return domain.ErrListingNotFound and
// leave the catalog unchanged. The *Owned variants additionally return
// domain.ErrForbidden when ownerID does not own the listing.
type InventoryService interface {
	Add(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, error)
	Update(ctx context.Context, id string, patch domain.ListingPatch) (*domain.Listing, error)
	Remove(ctx context.Context, id string) error
	UpdateOwned(ctx context.Context, ownerID, id string, patch domain.ListingPatch) (*domain.Listing, error)
	RemoveOwned(ctx context.Context, ownerID, id string) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error)
	ListAll(ctx context.Context) ([]domain.Listing, error)
}
