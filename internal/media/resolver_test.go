package media

import (
	"testing"

	"github.com/lakaymarket/storefront-backend/pkg/config"
)

type stubURLs struct{}

func (stubURLs) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(stubURLs{}, config.StorageConfig{
		PlaceholderURL: "/static/placeholder.svg",
		ProductBucket:  "product-images",
		SellerBucket:   "seller-logos",
	})
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func TestImageURL(t *testing.T) {
	r := newTestResolver(t)
	cases := []struct {
		bucket, path, want string
	}{
		{"product-images", "", "/static/placeholder.svg"},
		{"product-images", "   ", "/static/placeholder.svg"},
		{"product-images", "https://images.example.com/a.png", "https://images.example.com/a.png"},
		{"product-images", "HTTP://legacy.example.com/b.png", "HTTP://legacy.example.com/b.png"},
		{"product-images", "shoes/a.png", "https://cdn.test/product-images/shoes/a.png"},
	}
	for _, tc := range cases {
		if got := r.ImageURL(tc.bucket, tc.path); got != tc.want {
			t.Fatalf("ImageURL(%q, %q) = %q, want %q", tc.bucket, tc.path, got, tc.want)
		}
	}
}

func TestBucketHelpers(t *testing.T) {
	r := newTestResolver(t)
	if got := r.ProductImageURL("x.png"); got != "https://cdn.test/product-images/x.png" {
		t.Fatalf("unexpected product url %s", got)
	}
	logo := "acme.png"
	if got := r.SellerLogoURL(&logo); got != "https://cdn.test/seller-logos/acme.png" {
		t.Fatalf("unexpected logo url %s", got)
	}
	if got := r.SellerLogoURL(nil); got != r.Placeholder() {
		t.Fatalf("nil logo should use placeholder, got %s", got)
	}
}

func TestNewResolverRequiresBuilder(t *testing.T) {
	if _, err := NewResolver(nil, config.StorageConfig{}); err == nil {
		t.Fatal("expected error for nil builder")
	}
}
