package handler

import (
	"time"

	"github.com/mzansi-market/storefront/internal/core/derive"
	"github.com/mzansi-market/storefront/internal/core/domain"
)

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=buyer seller user"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=buyer seller user"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type sessionResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// --- Listings ---

type createListingRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"gte=0"`
	Category      string   `json:"category" validate:"required"`
	Image         string   `json:"image"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	Discount      *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews       *int     `json:"reviews" validate:"omitempty,gte=0"`
	Stock         *int     `json:"stock" validate:"omitempty,gte=0"`
	Badge         string   `json:"badge"`
}

func (r createListingRequest) draft(ownerID string) domain.ListingDraft {
	return domain.ListingDraft{
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		Category:        r.Category,
		ImageRef:        r.Image,
		OwnerID:         ownerID,
		OriginalPrice:   r.OriginalPrice,
		DiscountPercent: r.Discount,
		Rating:          r.Rating,
		ReviewCount:     r.Reviews,
		StockCount:      r.Stock,
		BadgeLabel:      r.Badge,
	}
}

// updateListingRequest is a partial update; absent fields are left untouched.
type updateListingRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=1"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Category      *string  `json:"category" validate:"omitempty,min=1"`
	Image         *string  `json:"image"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	Discount      *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Rating        *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews       *int     `json:"reviews" validate:"omitempty,gte=0"`
	Stock         *int     `json:"stock" validate:"omitempty,gte=0"`
	Badge         *string  `json:"badge"`
}

func (r updateListingRequest) patch() domain.ListingPatch {
	return domain.ListingPatch{
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		Category:        r.Category,
		ImageRef:        r.Image,
		OriginalPrice:   r.OriginalPrice,
		DiscountPercent: r.Discount,
		Rating:          r.Rating,
		ReviewCount:     r.Reviews,
		StockCount:      r.Stock,
		BadgeLabel:      r.Badge,
	}
}

type listingsResponse struct {
	Items []domain.Listing `json:"items"`
	Total int              `json:"total"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

// --- Cart ---

type quoteItem struct {
	ListingID string `json:"listingId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

type quoteRequest struct {
	Items []quoteItem `json:"items" validate:"dive"`
}

type quoteResponse struct {
	Lines   []derive.Line  `json:"lines"`
	Summary derive.Summary `json:"summary"`
}

// --- Checkout ---

type checkoutContact struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

// shippingAddress accepts the nine South African provinces only.
type shippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	Province   string `json:"province" validate:"required,oneof='Eastern Cape' 'Free State' Gauteng KwaZulu-Natal Limpopo Mpumalanga 'Northern Cape' 'North West' 'Western Cape'"`
	PostalCode string `json:"postalCode" validate:"required,numeric,len=4"`
}

type checkoutRequest struct {
	Items           []quoteItem     `json:"items" validate:"min=1,dive"`
	Contact         checkoutContact `json:"contact"`
	ShippingAddress shippingAddress `json:"shippingAddress"`
}

type orderConfirmation struct {
	OrderID         string          `json:"orderId"`
	Status          string          `json:"status"`
	BuyerID         string          `json:"buyerId"`
	PlacedAt        time.Time       `json:"placedAt"`
	Contact         checkoutContact `json:"contact"`
	ShippingAddress shippingAddress `json:"shippingAddress"`
	Lines           []derive.Line   `json:"lines"`
	Summary         derive.Summary  `json:"summary"`
}
