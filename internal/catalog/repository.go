package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lakaymarket/storefront-backend/pkg/db/models"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
	"github.com/lakaymarket/storefront-backend/pkg/pagination"
)

// ProductRepository is the read surface the catalog service depends on.
type ProductRepository interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	List(ctx context.Context, query ListQuery) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error)
}

// ListQuery is a resolved browse query. Limit already includes the lookahead row.
type ListQuery struct {
	Category *enums.Category
	SellerID *uuid.UUID
	Search   string
	Cursor   *pagination.Cursor
	Limit    int
}

// Repository reads products with their images and tiers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB { return db.Order("min_qty ASC") })
}

// ListAll returns every active product in listing order.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.withRelations(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").Order("id ASC").
		Find(&products).Error
	return products, err
}

// List returns one cursor page of active products, newest first.
func (r *Repository) List(ctx context.Context, query ListQuery) ([]models.Product, error) {
	q := r.withRelations(ctx).Where("is_active = ?", true)
	if query.Category != nil && *query.Category != enums.CategoryAll {
		q = q.Where("category = ?", string(*query.Category))
	}
	if query.SellerID != nil {
		q = q.Where("seller_id = ?", *query.SellerID)
	}
	if s := strings.ToLower(strings.TrimSpace(query.Search)); s != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(s)+"%")
	}
	if query.Cursor != nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			query.Cursor.CreatedAt, query.Cursor.CreatedAt, query.Cursor.ID)
	}

	var products []models.Product
	err := q.Order("created_at DESC").Order("id DESC").Limit(query.Limit).Find(&products).Error
	return products, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetByID loads one product regardless of its active flag.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	return &product, nil
}

// ListBySeller returns a seller's active products in listing order.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.withRelations(ctx).
		Where("seller_id = ? AND is_active = ?", sellerID, true).
		Order("created_at ASC").Order("id ASC").
		Find(&products).Error
	return products, err
}

// Create inserts a product with its images and tiers. Used by seeding and tests.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}
