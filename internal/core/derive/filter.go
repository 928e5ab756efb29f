// Package derive computes read-only views over catalog and cart data:
// search and filter results, the category set, order totals and seller
// statistics. Nothing here mutates its inputs or returns an error.
package derive

import (
	"strings"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

// All disables the category or price filter.
const All = "all"

// PriceBracket names a price range offered as a filter choice.
type PriceBracket string

const (
	PriceAny      PriceBracket = All
	PriceUnder300 PriceBracket = "under300"
	Price300To600 PriceBracket = "300to600"
	PriceOver600  PriceBracket = "over600"
)

// Contains reports whether price falls in the bracket. Unknown brackets
// contain nothing.
func (b PriceBracket) Contains(price float64) bool {
	switch b {
	case PriceAny, "":
		return true
	case PriceUnder300:
		return price < 300
	case Price300To600:
		return price >= 300 && price <= 600
	case PriceOver600:
		return price > 600
	default:
		return false
	}
}

// Query is the search box plus the two filter selections.
type Query struct {
	Search   string
	Category string
	Price    PriceBracket
}

// Matches reports whether l satisfies every part of the query.
func (q Query) Matches(l domain.Listing) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(l.Title), needle) &&
			!strings.Contains(strings.ToLower(l.Description), needle) {
			return false
		}
	}
	if q.Category != "" && q.Category != All && l.Category != q.Category {
		return false
	}
	return q.Price.Contains(l.Price)
}

// Filter returns the listings matching q in their original order.
func Filter(listings []domain.Listing, q Query) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if q.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// Categories returns "all" followed by each distinct category in the order
// it first appears.
func Categories(listings []domain.Listing) []string {
	seen := make(map[string]struct{}, len(listings))
	out := []string{All}
	for _, l := range listings {
		if _, ok := seen[l.Category]; ok {
			continue
		}
		seen[l.Category] = struct{}{}
		out = append(out, l.Category)
	}
	return out
}
