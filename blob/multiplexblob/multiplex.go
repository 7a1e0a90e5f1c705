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

// Package multiplexblob fans a single logical blobstore out across K ≥ 1
// backing blobstores: writes go to all of them with a durable replication
// queue tracking the stragglers, reads race all of them and take the
// first answer, and a scrub mode compares every backing store's value
// for consistency auditing.
package multiplexblob

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mononoke-go/corestore/blob"
	"github.com/mononoke-go/corestore/internal/ctxlog"
)

// BlobstoreID names one of the backing stores within a multiplex.
type BlobstoreID string

// MultiplexID tags a particular multiplexed configuration, e.g. so a
// replication queue entry can record which multiplex wrote it.
type MultiplexID string

// NewMultiplexID generates a fresh random MultiplexID, for callers
// standing up a new multiplex configuration rather than rejoining one
// recorded in prior replication queue entries.
func NewMultiplexID() MultiplexID {
	return MultiplexID(uuid.NewString())
}

// RequestTimeout bounds every inner blobstore operation.
const RequestTimeout = 600 * time.Second

// SlowRequestThreshold is the duration past which an inner Put is counted
// in the slow-put telemetry metric, without aborting it.
const SlowRequestThreshold = 5 * time.Second

// PutHandler is the durable replication queue. A successful return from
// OnPut is the multiplexer's proof that replicating key to the remaining
// backing stores is now the queue's responsibility.
type PutHandler interface {
	OnPut(ctx context.Context, blobstoreID BlobstoreID, multiplexID MultiplexID, key string) error
}

var (
	putLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "corestore",
		Subsystem: "multiplexblob",
		Name:      "inner_put_seconds",
		Help:      "Latency of one inner blobstore Put inside a multiplexed Put.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
	}, []string{"blobstore_id"})

	slowPutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corestore",
		Subsystem: "multiplexblob",
		Name:      "slow_put_total",
		Help:      "Count of inner Puts that exceeded SlowRequestThreshold.",
	}, []string{"blobstore_id"})
)

func init() {
	prometheus.MustRegister(putLatency, slowPutTotal)
}

// Store is the multiplexed blobstore.
type Store struct {
	multiplexID MultiplexID
	order       []BlobstoreID
	stores      map[BlobstoreID]blob.Blobstore
	handler     PutHandler

	requestTimeout       time.Duration
	slowRequestThreshold time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithRequestTimeout overrides the default 600s inner-operation timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Store) { s.requestTimeout = d }
}

// WithSlowRequestThreshold overrides the default 5s slow-put telemetry
// threshold.
func WithSlowRequestThreshold(d time.Duration) Option {
	return func(s *Store) { s.slowRequestThreshold = d }
}

// New composes the given backing stores (in the supplied order, which
// determines only iteration/tie-break order, not priority) under
// multiplexID, recording durable replication via handler.
func New(multiplexID MultiplexID, stores map[BlobstoreID]blob.Blobstore, order []BlobstoreID, handler PutHandler, opts ...Option) *Store {
	s := &Store{
		multiplexID:          multiplexID,
		order:                order,
		stores:               stores,
		handler:              handler,
		requestTimeout:       RequestTimeout,
		slowRequestThreshold: SlowRequestThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type putResult struct {
	id  BlobstoreID
	err error
}

// Put fans out to every backing store concurrently. It returns as soon as
// either the replication queue has durably recorded one successful inner
// Put, or every inner Put has completed. Puts still in flight
// when Put returns are detached and run to completion in the background;
// their failures never propagate, because the caller has already been
// told the write is durable via another path.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	logger := ctxlog.From(ctx)
	n := len(s.order)
	results := make(chan putResult, n)
	queued := make(chan BlobstoreID, n)

	bg := context.WithoutCancel(ctx)
	for _, id := range s.order {
		id := id
		go func() {
			results <- putResult{id: id, err: s.putOne(bg, id, key, value)}
		}()
	}

	// Second stage: as each inner put succeeds, fire its replication
	// queue write concurrently too, since the queue write (not the inner
	// put itself) is what Put waits on for durability.
	go func() {
		var wg sync.WaitGroup
		remaining := n
		for remaining > 0 {
			r := <-results
			remaining--
			if r.err != nil {
				logger.Warn().Err(r.err).Str("blobstore_id", string(r.id)).Str("key", key).Msg("multiplexblob: inner put failed")
				continue
			}
			wg.Add(1)
			go func(id BlobstoreID) {
				defer wg.Done()
				if err := s.handler.OnPut(bg, id, s.multiplexID, key); err == nil {
					queued <- id
				} else {
					logger.Warn().Err(err).Str("blobstore_id", string(id)).Str("key", key).Msg("multiplexblob: replication queue write failed")
				}
			}(r.id)
		}
		wg.Wait()
		close(queued)
	}()

	select {
	case _, ok := <-queued:
		if ok {
			return nil
		}
		// channel closed with nothing ever queued: for every store, either
		// the inner put or its replication queue write failed.
		return &allFailedPutsError{key: key}
	case <-time.After(s.requestTimeout):
		return &allFailedPutsError{key: key}
	}
}

func (s *Store) putOne(ctx context.Context, id BlobstoreID, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	start := time.Now()
	err := s.stores[id].Put(ctx, key, value)
	elapsed := time.Since(start)
	putLatency.WithLabelValues(string(id)).Observe(elapsed.Seconds())
	if elapsed > s.slowRequestThreshold {
		slowPutTotal.WithLabelValues(string(id)).Inc()
	}
	return err
}

type allFailedPutsError struct{ key string }

func (e *allFailedPutsError) Error() string {
	return "multiplexblob: put failed on every backing store for key " + e.key
}

// Get races all backing stores and returns the first value observed.
// Losing reads are left to finish in the background for telemetry.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	type getResult struct {
		id    BlobstoreID
		value []byte
		ok    bool
		err   error
	}
	n := len(s.order)
	results := make(chan getResult, n)
	bg := context.WithoutCancel(ctx)

	for _, id := range s.order {
		id := id
		go func() {
			c, cancel := context.WithTimeout(bg, s.requestTimeout)
			defer cancel()
			v, ok, err := s.stores[id].Get(c, key)
			results <- getResult{id: id, value: v, ok: ok, err: err}
		}()
	}

	errs := make(map[BlobstoreID]error)
	for i := 0; i < n; i++ {
		r := <-results
		if r.err != nil {
			errs[r.id] = r.err
			continue
		}
		if r.ok {
			return r.value, true, nil
		}
	}

	// Every store answered (or erred) with no value.
	if len(errs) == n {
		return nil, false, &AllFailed{Errors: errs}
	}
	if len(errs) > 0 {
		return nil, false, &SomeFailedOthersNone{Errors: errs}
	}
	return nil, false, nil
}

// IsPresent short-circuits on the first true observed, otherwise applies
// the same error classification as Get.
func (s *Store) IsPresent(ctx context.Context, key string) (bool, error) {
	type presentResult struct {
		id      BlobstoreID
		present bool
		err     error
	}
	n := len(s.order)
	results := make(chan presentResult, n)
	bg := context.WithoutCancel(ctx)

	for _, id := range s.order {
		id := id
		go func() {
			c, cancel := context.WithTimeout(bg, s.requestTimeout)
			defer cancel()
			present, err := s.stores[id].IsPresent(c, key)
			results <- presentResult{id: id, present: present, err: err}
		}()
	}

	errs := make(map[BlobstoreID]error)
	for i := 0; i < n; i++ {
		r := <-results
		if r.err != nil {
			errs[r.id] = r.err
			continue
		}
		if r.present {
			return true, nil
		}
	}
	if len(errs) == n {
		return false, &AllFailed{Errors: errs}
	}
	if len(errs) > 0 {
		return false, &SomeFailedOthersNone{Errors: errs}
	}
	return false, nil
}

var _ blob.Blobstore = (*Store)(nil)
