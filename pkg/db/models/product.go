package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/lakaymarket/storefront-backend/pkg/db/types"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
)

// Product represents a storefront listing.
type Product struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	SellerID      uuid.UUID          `gorm:"column:seller_id;type:uuid;not null;index"`
	Name          string             `gorm:"column:name;not null"`
	Description   *string            `gorm:"column:description"`
	Price         decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountPrice *decimal.Decimal   `gorm:"column:discount_price;type:numeric(12,2)"`
	Category      enums.Category     `gorm:"column:category;not null"`
	Tags          dbtypes.StringList `gorm:"column:tags"`
	Stock         int                `gorm:"column:stock;not null;default:0"`
	ReservedStock int                `gorm:"column:reserved_stock;not null;default:0"`
	IsActive      bool               `gorm:"column:is_active;not null"`
	Images        []ProductImage     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PriceTiers    []ProductPriceTier `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AvailableStock is stock minus units held by open carts, floored at zero.
func (p Product) AvailableStock() int {
	available := p.Stock - p.ReservedStock
	if available < 0 {
		return 0
	}
	return available
}
