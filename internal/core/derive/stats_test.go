package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

func TestComputeSellerStats(t *testing.T) {
	listings := []domain.Listing{
		{ID: "1", OwnerID: "seller1", Category: "Jewelry", Price: 450},
		{ID: "2", OwnerID: "seller2", Category: "Fashion", Price: 890},
		{ID: "4", OwnerID: "seller1", Category: "Home Decor", Price: 280},
		{ID: "7", OwnerID: "seller1", Category: "Jewelry", Price: 120},
	}

	assert.Equal(t, SellerStats{
		OwnerID:        "seller1",
		TotalListings:  3,
		CategoryCount:  2,
		InventoryValue: 850,
	}, ComputeSellerStats(listings, "seller1"))
}

func TestComputeSellerStats_NoListings(t *testing.T) {
	assert.Equal(t, SellerStats{OwnerID: "nobody"}, ComputeSellerStats(nil, "nobody"))
}
