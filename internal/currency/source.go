package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

// RateSource yields the USD to HTG exchange rate.
type RateSource interface {
	Rate(ctx context.Context) (decimal.Decimal, error)
}

// StaticSource always returns the configured rate.
type StaticSource struct {
	rate decimal.Decimal
}

func NewStaticSource(rate decimal.Decimal) (*StaticSource, error) {
	if !rate.IsPositive() {
		return nil, fmt.Errorf("static rate must be positive, got %s", rate)
	}
	return &StaticSource{rate: rate}, nil
}

func (s *StaticSource) Rate(context.Context) (decimal.Decimal, error) {
	return s.rate, nil
}

// HTTPSource fetches the rate from a provider answering {"rate": "<decimal>"}.
// Transport failures and 5xx responses are retried with exponential backoff.
type HTTPSource struct {
	url      string
	client   *http.Client
	attempts uint64
	backoff  time.Duration
}

// HTTPOption configures optional HTTPSource behaviour.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithBackoff overrides the initial retry delay.
func WithBackoff(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.backoff = d
		}
	}
}

func NewHTTPSource(url string, timeout time.Duration, attempts uint64, opts ...HTTPOption) (*HTTPSource, error) {
	if url == "" {
		return nil, errors.New("rate provider url is required")
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if attempts == 0 {
		attempts = 1
	}
	s := &HTTPSource{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		attempts: attempts,
		backoff:  200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type rateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

func (s *HTTPSource) Rate(ctx context.Context) (decimal.Decimal, error) {
	var rate decimal.Decimal
	// attempts counts requests; the backoff counts retries after the first.
	b := retry.WithMaxRetries(s.attempts-1, retry.NewExponential(s.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		r, err := s.fetch(ctx)
		if err != nil {
			return err
		}
		rate = r
		return nil
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching exchange rate: %w", err)
	}
	return rate, nil
}

func (s *HTTPSource) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, retry.RetryableError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return decimal.Zero, retry.RetryableError(fmt.Errorf("rate provider returned %s", resp.Status))
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate provider returned %s", resp.Status)
	}

	var body rateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding rate response: %w", err)
	}
	if !body.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate provider returned non-positive rate %s", body.Rate)
	}
	return body.Rate, nil
}
