package media

import (
	"errors"
	"strings"

	"github.com/lakaymarket/storefront-backend/pkg/config"
	"github.com/lakaymarket/storefront-backend/pkg/storage/gcs"
)

// Resolver turns stored image references into public URLs.
type Resolver struct {
	urls          gcs.URLBuilder
	placeholder   string
	productBucket string
	sellerBucket  string
}

func NewResolver(urls gcs.URLBuilder, cfg config.StorageConfig) (*Resolver, error) {
	if urls == nil {
		return nil, errors.New("url builder required")
	}
	return &Resolver{
		urls:          urls,
		placeholder:   cfg.PlaceholderURL,
		productBucket: cfg.ProductBucket,
		sellerBucket:  cfg.SellerBucket,
	}, nil
}

// ImageURL returns the placeholder for an empty path, absolute http(s) URLs
// unchanged, and the bucket's public URL otherwise.
func (r *Resolver) ImageURL(bucket, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return r.placeholder
	}
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return path
	}
	return r.urls.PublicURL(bucket, path)
}

// ProductImageURL resolves a product image path.
func (r *Resolver) ProductImageURL(path string) string {
	return r.ImageURL(r.productBucket, path)
}

// SellerLogoURL resolves a seller logo; nil means no logo.
func (r *Resolver) SellerLogoURL(path *string) string {
	if path == nil {
		return r.placeholder
	}
	return r.ImageURL(r.sellerBucket, *path)
}

// Placeholder returns the fallback image URL.
func (r *Resolver) Placeholder() string {
	return r.placeholder
}
