package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lakaymarket/storefront-backend/internal/currency"
	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/pkg/db/models"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"github.com/lakaymarket/storefront-backend/pkg/pagination"
	"github.com/lakaymarket/storefront-backend/pkg/redis"
)

// Service exposes the storefront's product read paths.
type Service interface {
	FetchAllProducts(ctx context.Context) ([]models.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	ListSellerProducts(ctx context.Context, sellerID uuid.UUID, cur enums.Currency) ([]ProductSummaryDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID, cur enums.Currency) (*ProductDTO, error)
	Quote(ctx context.Context, id uuid.UUID, qty int, mode enums.TierMode) (pricing.QuoteResult, error)
	Bundle(ctx context.Context, id uuid.UUID, qty int, opts pricing.BundleOptions) (*pricing.BundleView, error)
	InvalidateSnapshot(ctx context.Context) error
}

// ImageResolver maps stored image paths to public URLs.
type ImageResolver interface {
	ProductImageURL(path string) string
}

// ListFilters are the browse filters.
type ListFilters struct {
	Category *enums.Category
	SellerID *uuid.UUID
	Query    string
}

// ListProductsInput captures a browse request.
type ListProductsInput struct {
	Filters    ListFilters
	Pagination pagination.Params
	Currency   enums.Currency
}

// ServiceParams groups the catalog service collaborators. Cache is optional.
type ServiceParams struct {
	Repo        ProductRepository
	Cache       redis.Cache
	CacheKey    string
	SnapshotTTL time.Duration
	Pricing     pricing.Service
	Converter   pricing.Converter
	Images      ImageResolver
	Logger      *logger.Logger
}

type service struct {
	repo     ProductRepository
	cache    redis.Cache
	cacheKey string
	ttl      time.Duration
	pricing  pricing.Service
	conv     pricing.Converter
	images   ImageResolver
	logg     *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if p.Pricing == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	if p.Converter == nil {
		return nil, fmt.Errorf("currency converter required")
	}
	if p.Images == nil {
		return nil, fmt.Errorf("image resolver required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.CacheKey == "" {
		p.CacheKey = "catalog:products"
	}
	return &service{
		repo:     p.Repo,
		cache:    p.Cache,
		cacheKey: p.CacheKey,
		ttl:      p.SnapshotTTL,
		pricing:  p.Pricing,
		conv:     p.Converter,
		images:   p.Images,
		logg:     p.Logger,
	}, nil
}

// FetchAllProducts returns the active product snapshot, served from Redis
// when a fresh copy exists.
func (s *service) FetchAllProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cacheKey)
		switch {
		case err == nil:
			var products []models.Product
			if jsonErr := json.Unmarshal([]byte(raw), &products); jsonErr == nil {
				return products, nil
			}
			s.logg.Warn(ctx, "discarding undecodable product snapshot")
		case !redis.IsMiss(err):
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "reading product snapshot failed")
		}
	}

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	if s.cache != nil && s.ttl > 0 {
		if payload, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(ctx, s.cacheKey, string(payload), s.ttl); err != nil {
				s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "caching product snapshot failed")
			}
		}
	}
	return products, nil
}

// InvalidateSnapshot drops the cached product snapshot so the next read goes
// to the database.
func (s *service) InvalidateSnapshot(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, s.cacheKey)
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	cur := displayCurrency(input.Currency)

	rows, err := s.repo.List(ctx, ListQuery{
		Category: input.Filters.Category,
		SellerID: input.Filters.SellerID,
		Search:   input.Filters.Query,
		Cursor:   cursor,
		Limit:    pagination.LimitWithBuffer(input.Pagination.Limit),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	page, next := pagination.Trim(rows, input.Pagination.Limit, func(p models.Product) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	})

	result := &ProductListResult{Products: make([]ProductSummaryDTO, 0, len(page)), NextCursor: next}
	for i := range page {
		summary, err := s.toSummary(ctx, &page[i], cur)
		if err != nil {
			return nil, err
		}
		result.Products = append(result.Products, summary)
	}
	return result, nil
}

// ListSellerProducts returns every active product of one seller, oldest first.
func (s *service) ListSellerProducts(ctx context.Context, sellerID uuid.UUID, cur enums.Currency) ([]ProductSummaryDTO, error) {
	rows, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list seller products")
	}
	cur = displayCurrency(cur)
	out := make([]ProductSummaryDTO, 0, len(rows))
	for i := range rows {
		summary, err := s.toSummary(ctx, &rows[i], cur)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID, cur enums.Currency) (*ProductDTO, error) {
	product, err := s.activeProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	cur = displayCurrency(cur)

	price, err := s.conv.Convert(ctx, product.Price, enums.CurrencyUSD, cur)
	if err != nil {
		return nil, err
	}
	table := s.tableFor(ctx, product, "")

	dto := &ProductDTO{
		ID:              product.ID,
		SellerID:        product.SellerID,
		Name:            product.Name,
		Category:        product.Category,
		Tags:            append([]string{}, product.Tags...),
		Currency:        cur,
		Price:           price,
		DisplayPrice:    currency.Format(price, cur),
		DiscountPercent: discountPercent(product),
		Stock:           product.Stock,
		AvailableStock:  product.AvailableStock(),
		InStock:         product.AvailableStock() > 0,
		ImageURL:        s.primaryImage(product),
		Images:          s.imageURLs(product),
		TierMode:        table.Mode(),
		PriceTiers:      table.Tiers(),
		CreatedAt:       product.CreatedAt,
	}
	if product.Description != nil {
		dto.Description = *product.Description
	}
	if product.DiscountPrice != nil {
		discounted, err := s.conv.Convert(ctx, *product.DiscountPrice, enums.CurrencyUSD, cur)
		if err != nil {
			return nil, err
		}
		display := currency.Format(discounted, cur)
		dto.DiscountPrice = &discounted
		dto.DisplayDiscountPrice = &display
	}
	return dto, nil
}

func (s *service) Quote(ctx context.Context, id uuid.UUID, qty int, mode enums.TierMode) (pricing.QuoteResult, error) {
	product, err := s.activeProduct(ctx, id)
	if err != nil {
		return pricing.QuoteResult{}, err
	}
	return s.pricing.Quote(ctx, s.tableFor(ctx, product, mode), qty, product.Price)
}

func (s *service) Bundle(ctx context.Context, id uuid.UUID, qty int, opts pricing.BundleOptions) (*pricing.BundleView, error) {
	product, err := s.activeProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	opts.Currency = displayCurrency(opts.Currency)
	return s.pricing.Bundle(ctx, s.tableFor(ctx, product, opts.Mode), qty, opts)
}

func (s *service) activeProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// tableFor prefers the product's own tiers and falls back to the configured table.
func (s *service) tableFor(ctx context.Context, product *models.Product, mode enums.TierMode) *pricing.Table {
	if mode == "" {
		mode = s.pricing.Table().Mode()
	}
	if len(product.PriceTiers) > 0 {
		table, err := pricing.FromPriceTiers(mode, product.Price, product.PriceTiers)
		if err == nil {
			return table
		}
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"product_id": product.ID.String(),
			"error":      err.Error(),
		}), "invalid product price tiers, using default table")
	}
	table, err := s.pricing.TableFor(mode)
	if err != nil {
		return s.pricing.Table()
	}
	return table
}

func (s *service) toSummary(ctx context.Context, product *models.Product, cur enums.Currency) (ProductSummaryDTO, error) {
	price, err := s.conv.Convert(ctx, effectivePrice(product), enums.CurrencyUSD, cur)
	if err != nil {
		return ProductSummaryDTO{}, err
	}
	return ProductSummaryDTO{
		ID:              product.ID,
		SellerID:        product.SellerID,
		Name:            product.Name,
		Category:        product.Category,
		Currency:        cur,
		Price:           price,
		DisplayPrice:    currency.Format(price, cur),
		DiscountPercent: discountPercent(product),
		ImageURL:        s.primaryImage(product),
		AvailableStock:  product.AvailableStock(),
		CreatedAt:       product.CreatedAt,
	}, nil
}

func (s *service) primaryImage(product *models.Product) string {
	if len(product.Images) == 0 {
		return s.images.ProductImageURL("")
	}
	return s.images.ProductImageURL(product.Images[0].Path)
}

func (s *service) imageURLs(product *models.Product) []string {
	if len(product.Images) == 0 {
		return []string{s.images.ProductImageURL("")}
	}
	urls := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		urls = append(urls, s.images.ProductImageURL(img.Path))
	}
	return urls
}

func displayCurrency(cur enums.Currency) enums.Currency {
	if cur == "" {
		return enums.CurrencyUSD
	}
	return cur
}

func effectivePrice(product *models.Product) decimal.Decimal {
	if product.DiscountPrice != nil && product.DiscountPrice.LessThan(product.Price) {
		return *product.DiscountPrice
	}
	return product.Price
}

// discountPercent is round((1 - discount/price) * 100), or 0 without a discount.
func discountPercent(product *models.Product) int {
	if product.DiscountPrice == nil {
		return 0
	}
	return pricing.DiscountPercent(product.Price, *product.DiscountPrice)
}
