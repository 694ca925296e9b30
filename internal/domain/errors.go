package domain

import "errors"

var (
	// ErrInvalidInput is returned when request parameters fail validation
	ErrInvalidInput = errors.New("invalid input parameters")

	// ErrCatalogUnavailable is returned when a catalog request fails
	ErrCatalogUnavailable = errors.New("catalog service unavailable")

	// ErrRateLimited is returned when a client exceeds the request rate limit
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
