// Package catalog implements the supermarket catalog repository against the
// catalog service's HTTP API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mercalista/backend/internal/domain"
	"github.com/mercalista/backend/internal/metrics"
)

const (
	maxRetries      = 3
	maxBodyBytes    = 1 << 20 // 1 MiB cap on response bodies
	defaultRateRPS  = 10
	requestTimeout  = 30 * time.Second
	userAgentHeader = "Mercalista/1.0"
)

// searchResponse is the catalog service's search payload
type searchResponse struct {
	Products []productPayload `json:"products"`
}

// productPayload is one product row as the catalog service sends it. Prices
// arrive as decimal strings and units in whatever spelling the feed uses.
type productPayload struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	Currency      string  `json:"currency"`
	Unit          string  `json:"unit"`
	PackageSize   float64 `json:"packageSize"`
	Category      string  `json:"category"`
	SupermarketID string  `json:"supermarketId"`
	InStock       bool    `json:"inStock"`
}

// deliveryPayload is the catalog service's delivery info payload
type deliveryPayload struct {
	Available bool  `json:"available"`
	CostCents int64 `json:"costCents"`
}

// Client talks to the supermarket catalog service
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a catalog API client. requestsPerSecond throttles
// outbound calls; zero or negative falls back to the default.
func NewClient(baseURL, apiKey string, requestsPerSecond int, logger *zap.Logger) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRateRPS
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:      logger,
	}
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgentHeader)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// Search queries the catalog for products matching any of the given terms at
// one supermarket. Transient upstream failures are retried with backoff; an
// empty result set is not an error.
func (c *Client) Search(ctx context.Context, terms []string, supermarketID string) ([]domain.Product, error) {
	endpoint := fmt.Sprintf("%s/v1/products/search", c.baseURL)
	params := url.Values{}
	for _, term := range terms {
		params.Add("term", term)
	}
	params.Set("supermarketId", supermarketID)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			metrics.CatalogRequestsTotal.WithLabelValues("search", "error").Inc()
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn("catalog search request failed",
				zap.String("supermarketId", supermarketID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, readErr := readLimitedBody(resp.Body, maxBodyBytes)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, readErr)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		// Retry 429 and 5xx; any other non-200 is a hard failure
		if resp.StatusCode != http.StatusOK {
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				c.logger.Warn("catalog search upstream error",
					zap.String("supermarketId", supermarketID),
					zap.Int("attempt", attempt),
					zap.Int("status", resp.StatusCode))
				lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
				time.Sleep(exponentialBackoff(attempt))
				continue
			}
			metrics.CatalogRequestsTotal.WithLabelValues("search", "error").Inc()
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(body))
		}

		var searchResp searchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			metrics.CatalogRequestsTotal.WithLabelValues("search", "error").Inc()
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		products := MapProducts(searchResp.Products)
		c.logger.Debug("catalog search completed",
			zap.String("supermarketId", supermarketID),
			zap.Int("terms", len(terms)),
			zap.Int("products", len(products)))
		metrics.CatalogRequestsTotal.WithLabelValues("search", "ok").Inc()
		return products, nil
	}

	metrics.CatalogRequestsTotal.WithLabelValues("search", "error").Inc()
	return nil, lastErr
}

// GetDeliveryInfo fetches delivery availability and cost for one supermarket.
// A 404 means the store has no delivery service.
func (c *Client) GetDeliveryInfo(ctx context.Context, supermarketID string) (*domain.DeliveryInfo, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/supermarkets/%s/delivery", c.baseURL, url.PathEscape(supermarketID))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("delivery", "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.CatalogRequestsTotal.WithLabelValues("delivery", "ok").Inc()
		return &domain.DeliveryInfo{Available: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := readLimitedBody(resp.Body, maxBodyBytes)
		metrics.CatalogRequestsTotal.WithLabelValues("delivery", "error").Inc()
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var payload deliveryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("delivery", "error").Inc()
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	metrics.CatalogRequestsTotal.WithLabelValues("delivery", "ok").Inc()
	return &domain.DeliveryInfo{
		Available: payload.Available,
		CostCents: payload.CostCents,
	}, nil
}

// exponentialBackoff returns the wait before the next retry: 500ms, 1s, 2s
func exponentialBackoff(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}

// readLimitedBody reads at most limit bytes from a response body
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
