package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mercalista/backend/internal/domain"
	"github.com/mercalista/backend/internal/metrics"
)

// CachedCatalog wraps a catalog repository with read-through caching of
// search results and delivery info. Cache failures are logged and degrade to
// direct catalog calls; they never fail a request.
type CachedCatalog struct {
	catalog domain.CatalogRepository
	cache   domain.CacheRepository
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedCatalog creates a caching decorator around a catalog repository
func NewCachedCatalog(catalog domain.CatalogRepository, cache domain.CacheRepository, ttl time.Duration, logger *zap.Logger) *CachedCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCatalog{
		catalog: catalog,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// Search serves results from the cache when possible and falls through to
// the catalog on a miss
func (c *CachedCatalog) Search(ctx context.Context, terms []string, supermarketID string) ([]domain.Product, error) {
	key := searchKey(terms, supermarketID)

	if value, err := c.cache.Get(ctx, key); err == nil {
		if products, ok := decodeCached[[]domain.Product](value); ok {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return products, nil
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	products, err := c.catalog.Search(ctx, terms, supermarketID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, products, c.ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}

	return products, nil
}

// GetDeliveryInfo serves delivery info from the cache when possible
func (c *CachedCatalog) GetDeliveryInfo(ctx context.Context, supermarketID string) (*domain.DeliveryInfo, error) {
	key := "delivery:" + supermarketID

	if value, err := c.cache.Get(ctx, key); err == nil {
		if info, ok := decodeCached[domain.DeliveryInfo](value); ok {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return &info, nil
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	info, err := c.catalog.GetDeliveryInfo(ctx, supermarketID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, info, c.ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}

	return info, nil
}

// searchKey builds a deterministic cache key: the term set is sorted so the
// same terms always hit the same entry regardless of order
func searchKey(terms []string, supermarketID string) string {
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.Strings(sorted)
	return "search:" + supermarketID + ":" + strings.Join(sorted, ",")
}

// decodeCached converts a cached value back to its typed form. Both cache
// backends store JSON shapes, so values take a marshal round trip.
func decodeCached[T any](value interface{}) (T, bool) {
	var decoded T

	data, err := json.Marshal(value)
	if err != nil {
		return decoded, false
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return decoded, false
	}
	return decoded, true
}
