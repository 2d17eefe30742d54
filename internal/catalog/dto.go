package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

// ProductDTO is a product priced in the requested display currency.
type ProductDTO struct {
	ID                   uuid.UUID        `json:"id"`
	SellerID             uuid.UUID        `json:"seller_id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	Category             enums.Category   `json:"category"`
	Tags                 []string         `json:"tags"`
	Currency             enums.Currency   `json:"currency"`
	Price                decimal.Decimal  `json:"price"`
	DisplayPrice         string           `json:"display_price"`
	DiscountPrice        *decimal.Decimal `json:"discount_price,omitempty"`
	DisplayDiscountPrice *string          `json:"display_discount_price,omitempty"`
	DiscountPercent      int              `json:"discount_percent"`
	Stock                int              `json:"stock"`
	AvailableStock       int              `json:"available_stock"`
	InStock              bool             `json:"in_stock"`
	ImageURL             string           `json:"image_url"`
	Images               []string         `json:"images"`
	TierMode             enums.TierMode   `json:"tier_mode"`
	PriceTiers           []pricing.Tier   `json:"price_tiers"`
	CreatedAt            time.Time        `json:"created_at"`
}

// ProductSummaryDTO is the list-row shape.
type ProductSummaryDTO struct {
	ID              uuid.UUID       `json:"id"`
	SellerID        uuid.UUID       `json:"seller_id"`
	Name            string          `json:"name"`
	Category        enums.Category  `json:"category"`
	Currency        enums.Currency  `json:"currency"`
	Price           decimal.Decimal `json:"price"`
	DisplayPrice    string          `json:"display_price"`
	DiscountPercent int             `json:"discount_percent"`
	ImageURL        string          `json:"image_url"`
	AvailableStock  int             `json:"available_stock"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ProductListResult is one page of product summaries.
type ProductListResult struct {
	Products   []ProductSummaryDTO `json:"products"`
	NextCursor string              `json:"next_cursor,omitempty"`
}
