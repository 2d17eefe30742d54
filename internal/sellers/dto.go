package sellers

import (
	"fmt"

	"github.com/google/uuid"
)

// SellerCardDTO is the compact seller block shown beside products.
type SellerCardDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	LogoURL    string    `json:"logo_url"`
	Verified   bool      `json:"verified"`
	Rating     string    `json:"rating"`
	TotalSales int64     `json:"total_sales"`
	Sales      string    `json:"sales"`
	Followers  string    `json:"followers"`
	Category   string    `json:"category"`
}

type VendorProductDTO struct {
	ID            uuid.UUID `json:"id"`
	ImageURL      string    `json:"image_url"`
	Price         string    `json:"price"`
	DiscountBadge *string   `json:"discount_badge,omitempty"`
}

// TopVendorDTO is one entry of the top vendors rail.
type TopVendorDTO struct {
	SellerCardDTO
	Rank          int                `json:"rank"`
	DiscountBadge *string            `json:"discount_badge,omitempty"`
	Products      []VendorProductDTO `json:"products"`
}

// FormatCount renders counters as 950, 1.2K or 3.4M.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatRating renders a rating with one decimal, "0.0" when unrated.
func FormatRating(rating *float64) string {
	if rating == nil {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", *rating)
}
