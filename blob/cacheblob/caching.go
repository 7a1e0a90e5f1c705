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

	"github.com/mononoke-go/corestore/blob"
	"github.com/mononoke-go/corestore/internal/ctxlog"
)

// Store wraps a backing Blobstore with a CacheOps and LeaseOps pair. The
// zero value is not usable; construct with New.
type Store struct {
	backing      blob.Blobstore
	cache        CacheOps
	lease        LeaseOps
	lazyCachePut bool
}

// Option configures a Store.
type Option func(*Store)

// WithLazyCachePut detaches the cache write on Put instead of awaiting it,
// trading a brief window where a racing Get can miss the cache for lower
// Put latency.
func WithLazyCachePut() Option {
	return func(s *Store) { s.lazyCachePut = true }
}

// New wraps backing with cache and lease.
func New(backing blob.Blobstore, cache CacheOps, lease LeaseOps, opts ...Option) *Store {
	s := &Store{backing: backing, cache: cache, lease: lease}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := s.cache.Get(ctx, key); ok {
		return v, true, nil
	}

	v, ok, err := s.backing.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	go s.cache.Put(context.WithoutCancel(ctx), key, v)
	return v, true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	leased, err := s.takePutLease(ctx, key)
	if err != nil {
		return err
	}
	if !leased {
		// Someone else's write made the key present; our idempotent
		// put is unnecessary.
		return nil
	}
	defer s.lease.ReleaseLease(ctx, key)

	if err := s.backing.Put(ctx, key, value); err != nil {
		return err
	}

	if s.lazyCachePut {
		go s.cache.Put(context.WithoutCancel(ctx), key, value)
	} else {
		s.cache.Put(ctx, key, value)
	}
	return nil
}

// takePutLease implements the recursive take-lease loop: try
// to take the lease; if another holder has it, check whether the key is
// already Present (then there's nothing to do); otherwise wait for the
// lease to free up and retry.
func (s *Store) takePutLease(ctx context.Context, key string) (bool, error) {
	for {
		leased, err := s.lease.TryAddPutLease(ctx, key)
		if err != nil {
			// Lease errors are swallowed: proceed as if leased, without
			// exclusion; the backing-store idempotent put still makes this safe.
			ctxlog.From(ctx).Warn().Err(err).Str("key", key).Msg("cacheblob: lease error, proceeding without exclusion")
			leased = true
		}
		if leased {
			return true, nil
		}

		if s.cache.CheckPresent(ctx, key) {
			return false, nil
		}

		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := s.lease.WaitForOtherLeases(ctx, key); err != nil {
			return false, err
		}
	}
}

func (s *Store) IsPresent(ctx context.Context, key string) (bool, error) {
	if s.cache.CheckPresent(ctx, key) {
		return true, nil
	}
	present, err := s.backing.IsPresent(ctx, key)
	if err != nil {
		return false, err
	}
	if present {
		if l, ok := s.cache.(interface{ MarkPresent(string) }); ok {
			l.MarkPresent(key)
		}
	}
	return present, nil
}

var _ blob.Blobstore = (*Store)(nil)
