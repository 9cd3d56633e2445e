// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package containers

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// LruCache is a size-bounded map guarded by a mutex.
// A zero or negative size means it has no capacity instead of unlimited.
type LruCache[K comparable, V any] struct {
	mutex sync.Mutex
	inner *simplelru.LRU[K, V]
}

func NewLruCache[K comparable, V any](size int) *LruCache[K, V] {
	cache := &LruCache[K, V]{}
	if size > 0 {
		// Can't fail because size > 0
		cache.inner, _ = simplelru.NewLRU[K, V](size, nil)
	}
	return cache
}

// Add returns true if an older entry was evicted to make room
func (c *LruCache[K, V]) Add(key K, value V) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.inner == nil {
		return false
	}
	return c.inner.Add(key, value)
}

func (c *LruCache[K, V]) Get(key K) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.inner == nil {
		var empty V
		return empty, false
	}
	return c.inner.Get(key)
}

func (c *LruCache[K, V]) Contains(key K) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.inner != nil && c.inner.Contains(key)
}

func (c *LruCache[K, V]) Remove(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.inner != nil {
		c.inner.Remove(key)
	}
}

func (c *LruCache[K, V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.inner == nil {
		return 0
	}
	return c.inner.Len()
}

func (c *LruCache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.inner != nil {
		c.inner.Purge()
	}
}
