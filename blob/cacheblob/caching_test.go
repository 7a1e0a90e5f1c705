// Copyright 2026 Liquidata, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cacheblob

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mononoke-go/corestore/blob"
)

func newStore(t *testing.T) (*Store, *blob.Mem) {
	t.Helper()
	backing := blob.NewMem()
	cache, err := NewLRUCache(128)
	require.NoError(t, err)
	lease := NewInProcessLease()
	return New(backing, cache, lease), backing
}

func TestCachingGetPopulatesCacheAfterCacheMiss(t *testing.T) {
	s, backing := newStore(t)
	ctx := context.Background()
	require.NoError(t, backing.Put(ctx, "k", []byte("v")))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	require.Eventually(t, func() bool {
		_, hit := s.cache.Get(ctx, "k")
		return hit
	}, time.Second, time.Millisecond)
}

func TestCachingGetMissReturnsNotFoundWithoutError(t *testing.T) {
	s, _ := newStore(t)
	v, ok, err := s.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestCachingPutThenGetRoundTrips(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", []byte("v")))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestCachingPutIsIdempotent(t *testing.T) {
	s, backing := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	assert.Equal(t, 1, backing.Len())
}

// TestCachingPutSerialisesConcurrentWritersForSameKey exercises the
// at-most-one-writer invariant: N goroutines racing to Put the same key
// should result in at most one of them inside the backing store's Put at
// a time, verified by an atomic in-critical-section counter that must
// never exceed 1.
func TestCachingPutSerialisesConcurrentWritersForSameKey(t *testing.T) {
	backing := &countingBlobstore{Mem: blob.NewMem()}
	cache, err := NewLRUCache(128)
	require.NoError(t, err)
	lease := NewInProcessLease()
	s := New(backing, cache, lease)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Put(context.Background(), "hot-key", []byte("same-value"))
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, backing.maxConcurrent.Load(), int32(1))
	assert.Equal(t, int64(1), backing.Len64())
}

type countingBlobstore struct {
	*blob.Mem
	inflight      atomic.Int32
	maxConcurrent atomic.Int32
}

func (c *countingBlobstore) Put(ctx context.Context, key string, value []byte) error {
	n := c.inflight.Add(1)
	for {
		max := c.maxConcurrent.Load()
		if n <= max || c.maxConcurrent.CompareAndSwap(max, n) {
			break
		}
	}
	defer c.inflight.Add(-1)
	time.Sleep(time.Millisecond)
	return c.Mem.Put(ctx, key, value)
}

func (c *countingBlobstore) Len64() int64 { return int64(c.Mem.Len()) }

func TestCachingIsPresentChecksCacheBeforeBacking(t *testing.T) {
	s, backing := newStore(t)
	ctx := context.Background()
	require.NoError(t, backing.Put(ctx, "k", []byte("v")))

	present, err := s.IsPresent(ctx, "k")
	require.NoError(t, err)
	assert.True(t, present)

	present, err = s.IsPresent(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestCachingWithLazyCachePutDetachesCacheWrite(t *testing.T) {
	s, _ := newStore(t)
	s.lazyCachePut = true
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", []byte("v")))

	require.Eventually(t, func() bool {
		_, hit := s.cache.Get(ctx, "k")
		return hit
	}, time.Second, time.Millisecond)
}
