package service

import "github.com/mzansi-market/storefront/internal/core/domain"

// DefaultCatalog returns the storefront's launch listings.
func DefaultCatalog() []domain.Listing {
	return []domain.Listing{
		seedListing("1", "Handcrafted African Jewelry Set",
			"Beautiful beaded necklace and earrings made by local artisans",
			450, 600, 25, "Jewelry", "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=400",
			4.8, 89, "seller1", 12, "Women's Choice"),
		seedListing("2", "Traditional Shweshwe Dress",
			"Elegant traditional South African dress in modern cut",
			890, 1200, 26, "Fashion", "https://images.unsplash.com/photo-1594633312681-425c7b97ccd1?w=400",
			4.9, 156, "seller2", 8, "Bestseller"),
		seedListing("3", "Natural Rooibos Skincare Set",
			"Organic skincare products made with South African rooibos",
			320, 450, 29, "Beauty", "https://images.unsplash.com/photo-1596462502278-27bfdc403348?w=400",
			4.7, 203, "seller3", 25, "Natural"),
		seedListing("4", "Handwoven Baskets Collection",
			"Traditional African baskets perfect for home decoration",
			280, 380, 26, "Home Decor", "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400",
			4.6, 67, "seller1", 15, "Handmade"),
		seedListing("5", "Inspirational Book: Women Leaders SA",
			"Stories of successful South African women entrepreneurs",
			180, 250, 28, "Books", "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400",
			4.5, 94, "seller4", 30, "Inspiring"),
		seedListing("6", "Herbal Tea Wellness Bundle",
			"Collection of South African healing teas for wellness",
			220, 300, 27, "Health", "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=400",
			4.4, 78, "seller5", 20, "Wellness"),
	}
}

func seedListing(id, title, description string, price, originalPrice, discount float64,
	category, image string, rating float64, reviews int, ownerID string, stock int, badge string,
) domain.Listing {
	return domain.Listing{
		ID:              id,
		Title:           title,
		Description:     description,
		Price:           price,
		Category:        category,
		ImageRef:        image,
		OwnerID:         ownerID,
		OriginalPrice:   &originalPrice,
		DiscountPercent: &discount,
		Rating:          &rating,
		ReviewCount:     &reviews,
		StockCount:      &stock,
		BadgeLabel:      badge,
	}
}
