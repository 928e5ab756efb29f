package derive

import "github.com/mzansi-market/storefront/internal/core/domain"

// Line is one cart entry. UnitPrice is a snapshot taken when the line was
// added; Stock is nil when the listing has no stock limit.
type Line struct {
	ListingID string  `json:"listingId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Stock     *int    `json:"stock,omitempty"`
}

// Amount is UnitPrice × Quantity.
func (l Line) Amount() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart is checkout-local state. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// Add puts qty more of listing into the cart and returns the resulting
// quantity of its line, clamped to the listing's stock. A result of 0 means
// the listing is not in the cart.
func (c *Cart) Add(listing domain.Listing, qty int) int {
	if i := c.index(listing.ID); i >= 0 {
		return c.SetQuantity(listing.ID, c.lines[i].Quantity+qty)
	}
	line := Line{
		ListingID: listing.ID,
		Title:     listing.Title,
		UnitPrice: listing.Price,
	}
	if listing.StockCount != nil {
		stock := *listing.StockCount
		line.Stock = &stock
	}
	line.Quantity = clamp(qty, line.Stock)
	if line.Quantity == 0 {
		return 0
	}
	c.lines = append(c.lines, line)
	return line.Quantity
}

// SetQuantity sets the quantity of the line for listingID, clamped to
// [1, stock]. A quantity of 0 or less removes the line. It returns the
// resulting quantity, 0 when the line is gone or was never present.
func (c *Cart) SetQuantity(listingID string, qty int) int {
	i := c.index(listingID)
	if i < 0 {
		return 0
	}
	q := clamp(qty, c.lines[i].Stock)
	if q == 0 {
		c.Remove(listingID)
		return 0
	}
	c.lines[i].Quantity = q
	return q
}

// Remove drops the line for listingID, if any.
func (c *Cart) Remove(listingID string) {
	if i := c.index(listingID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Lines returns a copy of the cart lines in the order they were added.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Summary computes the order totals of the cart under p.
func (c *Cart) Summary(p ShippingPolicy) Summary {
	return Totals(c.lines, p)
}

func (c *Cart) index(listingID string) int {
	for i, l := range c.lines {
		if l.ListingID == listingID {
			return i
		}
	}
	return -1
}

func clamp(qty int, stock *int) int {
	if qty <= 0 {
		return 0
	}
	if stock != nil && qty > *stock {
		return max(*stock, 0)
	}
	return qty
}

// ShippingPolicy charges FlatFee unless the subtotal is strictly greater
// than FreeThreshold.
type ShippingPolicy struct {
	FreeThreshold float64
	FlatFee       float64
}

// DefaultShippingPolicy is free shipping over 500 and 50 otherwise.
var DefaultShippingPolicy = ShippingPolicy{FreeThreshold: 500, FlatFee: 50}

// Fee returns the shipping charged on subtotal.
func (p ShippingPolicy) Fee(subtotal float64) float64 {
	if subtotal > p.FreeThreshold {
		return 0
	}
	return p.FlatFee
}

// Summary is the derived order total.
type Summary struct {
	Subtotal     float64 `json:"subtotal"`
	Shipping     float64 `json:"shipping"`
	Total        float64 `json:"total"`
	FreeShipping bool    `json:"freeShipping"`
	ItemCount    int     `json:"itemCount"`
}

// Totals sums lines under p. An empty cart costs nothing, shipping included.
func Totals(lines []Line, p ShippingPolicy) Summary {
	var s Summary
	for _, l := range lines {
		s.Subtotal += l.Amount()
		s.ItemCount += l.Quantity
	}
	if len(lines) == 0 {
		return s
	}
	s.Shipping = p.Fee(s.Subtotal)
	s.FreeShipping = s.Shipping == 0
	s.Total = s.Subtotal + s.Shipping
	return s
}
