// Copyright 2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package containers

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestLruEviction(t *testing.T) {
	cache := NewLruCache[common.Hash, common.Hash](2)
	first, second, third := common.HexToHash("01"), common.HexToHash("02"), common.HexToHash("03")

	require.False(t, cache.Add(first, second))
	require.False(t, cache.Add(second, third))
	_, ok := cache.Get(first) // refresh first
	require.True(t, ok)
	require.True(t, cache.Add(third, first))

	require.True(t, cache.Contains(first))
	require.False(t, cache.Contains(second))
	require.Equal(t, 2, cache.Len())

	cache.Remove(first)
	require.Equal(t, 1, cache.Len())
	cache.Clear()
	require.Equal(t, 0, cache.Len())
}

func TestLruWithoutCapacity(t *testing.T) {
	cache := NewLruCache[string, int](0)
	require.False(t, cache.Add("a", 1))
	_, ok := cache.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, cache.Len())
}
