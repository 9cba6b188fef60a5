package verdictcache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetPut(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	_, ok := c.Get("k1")
	assert.False(t, ok)

	c.Put("k1", "Glory to Arstotzka.")
	v, ok := c.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "Glory to Arstotzka.", v)
	assert.Equal(t, 1, c.Len())

	hits, misses, _ := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCacheEviction(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("k%d", i), "Cause no trouble.")
	}
	assert.Equal(t, 2, c.Len())

	_, _, evictions := c.Stats()
	assert.Equal(t, uint64(1), evictions)
}

func TestCachePurge(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	c.Put("k1", "a")
	c.Put("k2", "b")
	c.Purge()
	assert.Equal(t, 0, c.Len())

	_, ok := c.Get("k1")
	assert.False(t, ok)

	_, _, evictions := c.Stats()
	assert.Equal(t, uint64(2), evictions, "purge counts as evictions")
}

func TestDisabledCache(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)

	c.Put("k1", "a")
	_, ok := c.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	c.Purge()
	hits, misses, evictions := c.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, evictions)
}
