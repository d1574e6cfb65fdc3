package fingerprint

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOUICache(t *testing.T) {
	cache := NewOUICache(3)

	cache.Set("00:00:00", "Vendor1")
	cache.Set("11:11:11", "Vendor2")
	cache.Set("22:22:22", "Vendor3")

	val, ok := cache.Get("00:00:00")
	assert.True(t, ok)
	assert.Equal(t, "Vendor1", val)

	// 11:11:11 is now least recently used
	cache.Set("33:33:33", "Vendor4")

	_, ok = cache.Get("11:11:11")
	assert.False(t, ok, "expected 11:11:11 to be evicted")

	val, ok = cache.Get("00:00:00")
	assert.True(t, ok)
	assert.Equal(t, "Vendor1", val)
	assert.Equal(t, 3, cache.Len())

	stats := cache.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, CacheStats{}, cache.Stats())
}

func TestOUICache_UpdateExisting(t *testing.T) {
	cache := NewOUICache(2)
	cache.Set("00:00:00", "Old")
	cache.Set("00:00:00", "New")

	val, _ := cache.Get("00:00:00")
	assert.Equal(t, "New", val)
	assert.Equal(t, 1, cache.Len())
}

func TestOUICacheConcurrency(t *testing.T) {
	cache := NewOUICache(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%02X:00:%02X", id, j)
				cache.Set(key, "Vendor")
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 100)
}

func BenchmarkOUICacheGet(b *testing.B) {
	cache := NewOUICache(1000)
	cache.Set("00:00:00", "TestVendor")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get("00:00:00")
	}
}
