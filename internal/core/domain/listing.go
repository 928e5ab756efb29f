package domain

import "time"

// PlaceholderImage is used when a listing is created without an image.
const PlaceholderImage = "/placeholder.svg"

// Listing is a sellable item owned by a seller identity.
type Listing struct {
	ID          string  `json:"id" bson:"_id"`
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category" bson:"category"`
	ImageRef    string  `json:"image" bson:"image"`
	OwnerID     string  `json:"sellerId" bson:"owner_id"`

	OriginalPrice   *float64 `json:"originalPrice,omitempty" bson:"original_price,omitempty"`
	DiscountPercent *float64 `json:"discount,omitempty" bson:"discount_percent,omitempty"`
	Rating          *float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	ReviewCount     *int     `json:"reviews,omitempty" bson:"review_count,omitempty"`
	StockCount      *int     `json:"stock,omitempty" bson:"stock_count,omitempty"`
	BadgeLabel      string   `json:"badge,omitempty" bson:"badge_label,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Clone returns a deep copy so callers never share optional-field pointers
// with the store.
func (l Listing) Clone() Listing {
	l.OriginalPrice = cloneFloat(l.OriginalPrice)
	l.DiscountPercent = cloneFloat(l.DiscountPercent)
	l.Rating = cloneFloat(l.Rating)
	l.ReviewCount = cloneInt(l.ReviewCount)
	l.StockCount = cloneInt(l.StockCount)
	return l
}

// ListingDraft carries the fields of a listing before the store assigns its id.
type ListingDraft struct {
	Title           string
	Description     string
	Price           float64
	Category        string
	ImageRef        string
	OwnerID         string
	OriginalPrice   *float64
	DiscountPercent *float64
	Rating          *float64
	ReviewCount     *int
	StockCount      *int
	BadgeLabel      string
}

// Listing builds an id-less listing from the draft.
func (d ListingDraft) Listing() Listing {
	l := Listing{
		Title:           d.Title,
		Description:     d.Description,
		Price:           d.Price,
		Category:        d.Category,
		ImageRef:        d.ImageRef,
		OwnerID:         d.OwnerID,
		OriginalPrice:   d.OriginalPrice,
		DiscountPercent: d.DiscountPercent,
		Rating:          d.Rating,
		ReviewCount:     d.ReviewCount,
		StockCount:      d.StockCount,
		BadgeLabel:      d.BadgeLabel,
	}
	if l.ImageRef == "" {
		l.ImageRef = PlaceholderImage
	}
	return l.Clone()
}

// ListingPatch is a partial update. Nil fields are left untouched. There is
// no owner field: listings are never transferred.
type ListingPatch struct {
	Title           *string
	Description     *string
	Price           *float64
	Category        *string
	ImageRef        *string
	OriginalPrice   *float64
	DiscountPercent *float64
	Rating          *float64
	ReviewCount     *int
	StockCount      *int
	BadgeLabel      *string
}

// Empty reports whether the patch changes nothing.
func (p ListingPatch) Empty() bool {
	return p == ListingPatch{}
}

// Apply merges the patch into l.
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.ImageRef != nil {
		l.ImageRef = *p.ImageRef
	}
	if p.OriginalPrice != nil {
		l.OriginalPrice = cloneFloat(p.OriginalPrice)
	}
	if p.DiscountPercent != nil {
		l.DiscountPercent = cloneFloat(p.DiscountPercent)
	}
	if p.Rating != nil {
		l.Rating = cloneFloat(p.Rating)
	}
	if p.ReviewCount != nil {
		l.ReviewCount = cloneInt(p.ReviewCount)
	}
	if p.StockCount != nil {
		l.StockCount = cloneInt(p.StockCount)
	}
	if p.BadgeLabel != nil {
		l.BadgeLabel = *p.BadgeLabel
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
