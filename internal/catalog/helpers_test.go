package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lakaymarket/storefront-backend/internal/currency"
	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/pkg/config"
	"github.com/lakaymarket/storefront-backend/pkg/db/models"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"github.com/lakaymarket/storefront-backend/pkg/migrate"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, migrate.Run(context.Background(), sqlDB, config.DriverSQLite, "up"))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func mustCreateSeller(t *testing.T, db *gorm.DB, name string) *models.Seller {
	t.Helper()
	seller := &models.Seller{Name: name, CreatedAt: baseTime, UpdatedAt: baseTime}
	require.NoError(t, db.Create(seller).Error)
	return seller
}

type productOpt func(*models.Product)

func withCategory(c enums.Category) productOpt {
	return func(p *models.Product) { p.Category = c }
}

func withDiscount(v string) productOpt {
	return func(p *models.Product) {
		d := decimal.RequireFromString(v)
		p.DiscountPrice = &d
	}
}

func withTiers(pairs ...string) productOpt {
	return func(p *models.Product) {
		for i := 0; i+1 < len(pairs); i += 2 {
			var qty int
			_, _ = fmt.Sscanf(pairs[i], "%d", &qty)
			p.PriceTiers = append(p.PriceTiers, models.ProductPriceTier{
				MinQty:    qty,
				UnitPrice: decimal.RequireFromString(pairs[i+1]),
			})
		}
	}
}

func withImages(paths ...string) productOpt {
	return func(p *models.Product) {
		for i, path := range paths {
			p.Images = append(p.Images, models.ProductImage{Path: path, Position: i})
		}
	}
}

func inactive() productOpt {
	return func(p *models.Product) { p.IsActive = false }
}

func mustCreateProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID, name string, offset time.Duration, opts ...productOpt) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:  sellerID,
		Name:      name,
		Price:     decimal.RequireFromString("10.00"),
		Category:  enums.CategoryFashion,
		Tags:      []string{"new"},
		Stock:     5,
		IsActive:  true,
		CreatedAt: baseTime.Add(offset),
		UpdatedAt: baseTime.Add(offset),
	}
	for _, opt := range opts {
		opt(product)
	}
	require.NoError(t, NewRepository(db).Create(context.Background(), product))
	return product
}

type stubImages struct{}

func (stubImages) ProductImageURL(path string) string {
	switch {
	case path == "":
		return "/static/placeholder.svg"
	case strings.HasPrefix(path, "https://"):
		return path
	}
	return "https://cdn.test/" + path
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = fmt.Sprint(value)
	c.sets++
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func newTestService(t *testing.T, db *gorm.DB, cache *fakeCache) Service {
	t.Helper()
	source, err := currency.NewStaticSource(decimal.NewFromInt(132))
	require.NoError(t, err)
	conv, err := currency.NewConverter(source)
	require.NoError(t, err)
	priceSvc, err := pricing.NewService(pricing.DefaultTable(), conv, nil, logger.Nop())
	require.NoError(t, err)

	params := ServiceParams{
		Repo:        NewRepository(db),
		CacheKey:    "sf:catalog:products",
		SnapshotTTL: time.Minute,
		Pricing:     priceSvc,
		Converter:   conv,
		Images:      stubImages{},
		Logger:      logger.Nop(),
	}
	if cache != nil {
		params.Cache = cache
	}
	svc, err := NewService(params)
	require.NoError(t, err)
	return svc
}
