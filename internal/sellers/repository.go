package sellers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lakaymarket/storefront-backend/pkg/db/models"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
)

type SellerRepository interface {
	ListAll(ctx context.Context) ([]models.Seller, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListAll returns sellers in onboarding order.
func (r *Repository) ListAll(ctx context.Context) ([]models.Seller, error) {
	var sellers []models.Seller
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&sellers).Error
	return sellers, err
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, err
	}
	return &seller, nil
}

func (r *Repository) Create(ctx context.Context, seller *models.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}
