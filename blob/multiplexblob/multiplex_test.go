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

package multiplexblob

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mononoke-go/corestore/blob"
)

type fakeQueue struct {
	mu      sync.Mutex
	queued  []string
	failFor BlobstoreID
}

func (q *fakeQueue) OnPut(_ context.Context, id BlobstoreID, _ MultiplexID, key string) error {
	if q.failFor != "" && id == q.failFor {
		return errors.New("queue write failed")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queued = append(q.queued, string(id)+":"+key)
	return nil
}

type failingBlobstore struct{ err error }

func (f *failingBlobstore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f *failingBlobstore) Put(context.Context, string, []byte) error         { return f.err }
func (f *failingBlobstore) IsPresent(context.Context, string) (bool, error)   { return false, f.err }

func TestMultiplexPutSucceedsWhenOneStoreSucceeds(t *testing.T) {
	a, b := blob.NewMem(), &failingBlobstore{err: errors.New("store b down")}
	q := &fakeQueue{}
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, q)

	err := s.Put(context.Background(), "k", []byte("v"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		return len(q.queued) >= 1
	}, time.Second, time.Millisecond)

	present, err := a.IsPresent(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, present)
}

func TestMultiplexPutFailsWhenEveryStoreFails(t *testing.T) {
	a := &failingBlobstore{err: errors.New("down")}
	b := &failingBlobstore{err: errors.New("also down")}
	q := &fakeQueue{}
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, q, WithRequestTimeout(100*time.Millisecond))

	err := s.Put(context.Background(), "k", []byte("v"))
	require.Error(t, err)
}

func TestMultiplexGetReturnsFirstValueFound(t *testing.T) {
	a := blob.NewMem()
	b := blob.NewMem()
	require.NoError(t, b.Put(context.Background(), "k", []byte("v")))
	q := &fakeQueue{}
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, q)

	v, ok, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestMultiplexGetAllNoneReturnsNotFound(t *testing.T) {
	a, b := blob.NewMem(), blob.NewMem()
	q := &fakeQueue{}
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, q)

	_, ok, err := s.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMultiplexGetAllFailed(t *testing.T) {
	a := &failingBlobstore{err: errors.New("down a")}
	b := &failingBlobstore{err: errors.New("down b")}
	q := &fakeQueue{}
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, q)

	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	var allFailed *AllFailed
	assert.ErrorAs(t, err, &allFailed)
}

func TestMultiplexGetSomeFailedOthersNone(t *testing.T) {
	a := blob.NewMem()
	b := &failingBlobstore{err: errors.New("down b")}
	q := &fakeQueue{}
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, q)

	_, ok, err := s.Get(context.Background(), "missing")
	assert.False(t, ok)
	require.Error(t, err)
	var some *SomeFailedOthersNone
	assert.ErrorAs(t, err, &some)
}

func TestMultiplexIsPresentShortCircuitsOnFirstTrue(t *testing.T) {
	a := blob.NewMem()
	require.NoError(t, a.Put(context.Background(), "k", []byte("v")))
	b := &failingBlobstore{err: errors.New("slow to fail")}
	q := &fakeQueue{}
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, q)

	present, err := s.IsPresent(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, present)
}
