package derive

import "github.com/mzansi-market/storefront/internal/core/domain"

// SellerStats is the seller dashboard summary. InventoryValue is the sum of
// unit prices, not price × stock; the dashboard has always reported it this
// way and whether stock should weigh in is an open product question.
type SellerStats struct {
	OwnerID        string  `json:"sellerId"`
	TotalListings  int     `json:"totalListings"`
	CategoryCount  int     `json:"categoryCount"`
	InventoryValue float64 `json:"inventoryValue"`
}

// ComputeSellerStats summarises the listings owned by ownerID.
func ComputeSellerStats(listings []domain.Listing, ownerID string) SellerStats {
	stats := SellerStats{OwnerID: ownerID}
	categories := make(map[string]struct{})
	for _, l := range listings {
		if l.OwnerID != ownerID {
			continue
		}
		stats.TotalListings++
		stats.InventoryValue += l.Price
		categories[l.Category] = struct{}{}
	}
	stats.CategoryCount = len(categories)
	return stats
}
