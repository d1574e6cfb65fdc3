package fingerprint

import (
	"context"
	"errors"
)

// CachingRepository memoizes lookups of an underlying repository per OUI.
// Misses are cached as well, so unknown prefixes are not retried on every poll.
type CachingRepository struct {
	cache *OUICache
	next  VendorRepository
}

// NewCachingRepository wraps next with an LRU of the given capacity
func NewCachingRepository(capacity int, next VendorRepository) *CachingRepository {
	return &CachingRepository{
		cache: NewOUICache(capacity),
		next:  next,
	}
}

// LookupVendor serves from cache, falling through to the wrapped repository
func (c *CachingRepository) LookupVendor(ctx context.Context, mac MACAddress) (string, error) {
	oui := mac.OUI()
	if vendor, ok := c.cache.Get(oui); ok {
		if vendor == "" {
			return "", ErrVendorNotFound
		}
		return vendor, nil
	}

	vendor, err := c.next.LookupVendor(ctx, mac)
	switch {
	case err == nil:
		c.cache.Set(oui, vendor)
	case errors.Is(err, ErrVendorNotFound):
		c.cache.Set(oui, "")
	}
	return vendor, err
}

// Stats exposes the cache counters
func (c *CachingRepository) Stats() CacheStats {
	return c.cache.Stats()
}

// Close clears the cache and closes the wrapped repository
func (c *CachingRepository) Close() error {
	c.cache.Clear()
	return c.next.Close()
}
