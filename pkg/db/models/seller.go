package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seller is a vendor shown on seller cards and the top vendors rail.
type Seller struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	ImageURL       *string   `gorm:"column:image_url"`
	Verified       bool      `gorm:"column:verified;not null;default:false"`
	Rating         *float64  `gorm:"column:rating"`
	TotalSales     int64     `gorm:"column:total_sales;not null;default:0"`
	FollowersCount int64     `gorm:"column:followers_count;not null;default:0"`
	Category       *string   `gorm:"column:category"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Seller) TableName() string { return "sellers" }

func (s *Seller) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
