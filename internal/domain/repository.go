package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository defines read access to supermarket product catalogs.
// Search returns only in-stock products; an empty slice is a valid result.
type CatalogRepository interface {
	Search(ctx context.Context, terms []string, supermarketID string) ([]Product, error)
	GetDeliveryInfo(ctx context.Context, supermarketID string) (*DeliveryInfo, error)
}
