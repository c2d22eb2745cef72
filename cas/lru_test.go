package cas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUCacheHitsAndMisses(t *testing.T) {
	cache := NewLRUCache(NewMemoryCAS(), 2)

	var hashes []Hash
	for i := int64(0); i < 3; i++ {
		h, err := cache.Put(&blob{N: i})
		require.NoError(t, err)
		hashes = append(hashes, h)
	}

	got, err := Retrieve[blob](cache, hashes[0])
	require.NoError(t, err)
	require.Equal(t, int64(0), got.N)
	_, err = Retrieve[blob](cache, hashes[0])
	require.NoError(t, err)

	// blob 0 was evicted by the third Put, so the first read misses
	stats := cache.Stats()
	require.Equal(t, 1, stats.Hits)
	require.Equal(t, 1, stats.Misses)
	require.Equal(t, 2, stats.Size)
}

func TestLRUCacheEvicts(t *testing.T) {
	cache := NewLRUCache(NewMemoryCAS(), 2)
	for i := int64(0); i < 4; i++ {
		h, err := cache.Put(&blob{N: i})
		require.NoError(t, err)
		_, err = Retrieve[blob](cache, h)
		require.NoError(t, err)
	}
	stats := cache.Stats()
	require.Equal(t, 2, stats.Size)
	require.Equal(t, 2, stats.MaxSize)
	require.Equal(t, 4, stats.Hits)
	require.Zero(t, stats.Misses)
}

func TestLRUCacheDelegates(t *testing.T) {
	under := NewMemoryCAS()
	cache := NewLRUCache(under, 0)
	require.Equal(t, DefaultCacheSize, cache.Stats().MaxSize)

	h, err := cache.Put(&blob{N: 5})
	require.NoError(t, err)
	require.True(t, under.Has(h))
	require.True(t, cache.Has(h))
	require.False(t, cache.Has(h+1))
	require.Equal(t, CacheStats{Size: 1, MaxSize: DefaultCacheSize, Hits: 1, Misses: 1}, cache.Stats())

	cache.RecordStep(h, 4)
	require.Equal(t, []int{4}, under.Steps(h))
	require.Equal(t, []int{4}, cache.Steps(h))
}

func TestLRUCacheFallsBackAfterEviction(t *testing.T) {
	cache := NewLRUCache(NewMemoryCAS(), 1)
	first, err := cache.Put(&blob{N: 1})
	require.NoError(t, err)
	_, err = cache.Put(&blob{N: 2})
	require.NoError(t, err)

	require.True(t, cache.Has(first))
	got, err := Retrieve[blob](cache, first)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.N)
	require.Equal(t, CacheStats{Size: 1, MaxSize: 1, Hits: 0, Misses: 2}, cache.Stats())
}
