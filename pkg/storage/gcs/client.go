package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lakaymarket/storefront-backend/pkg/config"
	"github.com/lakaymarket/storefront-backend/pkg/logger"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"
)

const pingTimeout = 5 * time.Second

// Client builds public object URLs and, when probing is enabled, checks
// that the catalog buckets are reachable through the JSON API.
type Client struct {
	baseURL string
	buckets []string
	svc     *storage.Service
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// URLBuilder is the getPublicUrl collaborator used by the media resolver.
type URLBuilder interface {
	PublicURL(bucket, objectPath string) string
}

// NewClient wires the storage client. Extra options are appended to the
// credential options derived from gcp; tests use them to point at a fake endpoint.
func NewClient(ctx context.Context, cfg config.StorageConfig, gcp config.GCPConfig, logg *logger.Logger, extra ...option.ClientOption) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if base == "" {
		return nil, errors.New("storage public base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parsing storage public base url: %w", err)
	}

	client := &Client{baseURL: base}
	for _, b := range []string{cfg.ProductBucket, cfg.SellerBucket} {
		if b = strings.TrimSpace(b); b != "" {
			client.buckets = append(client.buckets, b)
		}
	}

	if !cfg.ProbeBuckets {
		return client, nil
	}

	opts := credentialOptions(gcp)
	opts = append(opts, extra...)
	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage service: %w", err)
	}
	client.svc = svc

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("gcs health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "buckets", strings.Join(client.buckets, ",")), "gcs client initialized")
	}
	return client, nil
}

func credentialOptions(gcp config.GCPConfig) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(storage.DevstorageReadOnlyScope)}
	switch {
	case gcp.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(gcp.CredentialsJSON)))
	case gcp.ApplicationCredentials != "":
		opts = append(opts, option.WithCredentialsFile(gcp.ApplicationCredentials))
	}
	if gcp.ProjectID != "" {
		opts = append(opts, option.WithQuotaProject(gcp.ProjectID))
	}
	return opts
}

// PublicURL returns the public URL of objectPath inside bucket. Path segments
// are escaped individually so folder separators survive.
func (c *Client) PublicURL(bucket, objectPath string) string {
	objectPath = strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	segments := strings.Split(objectPath, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return c.baseURL + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

// Buckets returns the configured catalog buckets.
func (c *Client) Buckets() []string {
	out := make([]string, len(c.buckets))
	copy(out, c.buckets)
	return out
}

// Ping fetches bucket metadata for every configured bucket. Without probing it
// only confirms the client is configured.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.baseURL == "" {
		return errors.New("gcs client not initialized")
	}
	if c.svc == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	for _, bucket := range c.buckets {
		if _, err := c.svc.Buckets.Get(bucket).Context(ctx).Do(); err != nil {
			return fmt.Errorf("bucket %s: %w", bucket, err)
		}
	}
	return nil
}

func (c *Client) Close() error {
	return nil
}
