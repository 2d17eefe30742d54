package sellers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lakaymarket/storefront-backend/internal/currency"
	"github.com/lakaymarket/storefront-backend/internal/pricing"
	"github.com/lakaymarket/storefront-backend/pkg/db/models"
	"github.com/lakaymarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/lakaymarket/storefront-backend/pkg/errors"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
)

const (
	// VendorProductCount is how many products a vendor needs, and shows, on the rail.
	VendorProductCount = 4
	flashDealsBadge    = "30%"
	defaultCategory    = "general"
)

type Service interface {
	FetchAllSellers(ctx context.Context) ([]models.Seller, error)
	ListSellerCards(ctx context.Context) ([]SellerCardDTO, error)
	GetSellerCard(ctx context.Context, id uuid.UUID) (*SellerCardDTO, error)
	TopVendors(ctx context.Context, limit int) ([]TopVendorDTO, error)
}

// ProductSource supplies the active product snapshot.
type ProductSource interface {
	FetchAllProducts(ctx context.Context) ([]models.Product, error)
}

type ImageResolver interface {
	ProductImageURL(path string) string
	SellerLogoURL(path *string) string
}

type service struct {
	repo     SellerRepository
	products ProductSource
	images   ImageResolver
	logg     *logger.Logger
}

func NewService(repo SellerRepository, products ProductSource, images ImageResolver, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("seller repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product source required")
	}
	if images == nil {
		return nil, fmt.Errorf("image resolver required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, products: products, images: images, logg: logg}, nil
}

func (s *service) FetchAllSellers(ctx context.Context) ([]models.Seller, error) {
	sellers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sellers")
	}
	return sellers, nil
}

func (s *service) ListSellerCards(ctx context.Context) ([]SellerCardDTO, error) {
	sellers, err := s.FetchAllSellers(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]SellerCardDTO, 0, len(sellers))
	for i := range sellers {
		cards = append(cards, s.card(&sellers[i]))
	}
	return cards, nil
}

func (s *service) GetSellerCard(ctx context.Context, id uuid.UUID) (*SellerCardDTO, error) {
	seller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seller")
	}
	card := s.card(seller)
	return &card, nil
}

// TopVendors ranks sellers that carry at least VendorProductCount active
// products. A limit <= 0 returns every qualifying vendor.
func (s *service) TopVendors(ctx context.Context, limit int) ([]TopVendorDTO, error) {
	var (
		sellers  []models.Seller
		products []models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sellers, err = s.FetchAllSellers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.FetchAllProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bySeller := make(map[uuid.UUID][]models.Product, len(sellers))
	for _, p := range products {
		if len(bySeller[p.SellerID]) < VendorProductCount {
			bySeller[p.SellerID] = append(bySeller[p.SellerID], p)
		}
	}

	vendors := make([]TopVendorDTO, 0, len(sellers))
	for i := range sellers {
		owned := bySeller[sellers[i].ID]
		if len(owned) < VendorProductCount {
			continue
		}
		vendor := TopVendorDTO{
			SellerCardDTO: s.card(&sellers[i]),
			Rank:          len(vendors) + 1,
			Products:      make([]VendorProductDTO, 0, len(owned)),
		}
		if sellers[i].Category != nil && *sellers[i].Category == enums.CategoryFlashDeals.String() {
			badge := flashDealsBadge
			vendor.DiscountBadge = &badge
		}
		for j := range owned {
			vendor.Products = append(vendor.Products, s.vendorProduct(&owned[j]))
		}
		vendors = append(vendors, vendor)
		if limit > 0 && len(vendors) == limit {
			break
		}
	}
	return vendors, nil
}

func (s *service) card(seller *models.Seller) SellerCardDTO {
	category := defaultCategory
	if seller.Category != nil && *seller.Category != "" {
		category = *seller.Category
	}
	return SellerCardDTO{
		ID:         seller.ID,
		Name:       seller.Name,
		LogoURL:    s.images.SellerLogoURL(seller.ImageURL),
		Verified:   seller.Verified,
		Rating:     FormatRating(seller.Rating),
		TotalSales: seller.TotalSales,
		Sales:      FormatCount(seller.TotalSales),
		Followers:  FormatCount(seller.FollowersCount),
		Category:   category,
	}
}

func (s *service) vendorProduct(p *models.Product) VendorProductDTO {
	out := VendorProductDTO{
		ID:    p.ID,
		Price: currency.Format(p.Price, enums.CurrencyUSD),
	}
	if len(p.Images) > 0 {
		out.ImageURL = s.images.ProductImageURL(p.Images[0].Path)
	} else {
		out.ImageURL = s.images.ProductImageURL("")
	}
	if p.DiscountPrice != nil {
		if pct := pricing.DiscountPercent(p.Price, *p.DiscountPrice); pct > 0 {
			badge := fmt.Sprintf("%d%%", pct)
			out.DiscountBadge = &badge
		}
	}
	return out
}
