package view

import (
	"github.com/iamlekside2/QuickGift/internal/modules/products"
)

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
}

func FromCategories(items []products.Category) []Category {
	out := make([]Category, 0, len(items))
	for _, c := range items {
		out = append(out, Category{ID: c.ID, Name: c.Name, Icon: c.Icon, Description: c.Description})
	}
	return out
}

type Product struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	PriceKobo        int64   `json:"price_kobo"`
	PriceDisplay     string  `json:"price_display"`
	ComparePriceKobo *int64  `json:"compare_price_kobo,omitempty"`
	CategoryID       string  `json:"category_id"`
	VendorName       string  `json:"vendor_name"`
	ImageURL         *string `json:"image_url,omitempty"`
	Rating           float64 `json:"rating"`
	ReviewCount      int     `json:"review_count"`
	IsFeatured       bool    `json:"is_featured"`
	City             *string `json:"city,omitempty"`
}

func FromProduct(p products.Product) Product {
	return Product{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		PriceKobo:        p.PriceKobo,
		PriceDisplay:     NairaFromKobo(p.PriceKobo),
		ComparePriceKobo: p.ComparePriceKobo,
		CategoryID:       p.CategoryID,
		VendorName:       p.VendorName,
		ImageURL:         p.ImageURL,
		Rating:           p.Rating,
		ReviewCount:      p.ReviewCount,
		IsFeatured:       p.IsFeatured,
		City:             p.City,
	}
}

func FromProducts(items []products.Product) []Product {
	out := make([]Product, 0, len(items))
	for _, p := range items {
		out = append(out, FromProduct(p))
	}
	return out
}
