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

// Package cacheblob implements a caching blobstore and lease protocol: a
// cache side with four logical per-key states (Empty, Leased, Present,
// Known) and a lease side granting at-most-one concurrent writer per key
// across a cooperating fleet. The discipline is advisory —
// CacheOps misses and TryAddPutLease errors are always swallowed, so a
// misbehaving cache degrades the caching blobstore to a pass-through,
// never to an incorrect result, because the backing store's idempotent
// Put is the actual source of truth. An error from WaitForOtherLeases
// (such as ctx cancellation) is returned from Put.
package cacheblob

import "context"

// CacheOps is the side of the cache that remembers blob contents and blob
// presence. It never sees the Leased state — that belongs to LeaseOps.
// Errors returned by a CacheOps implementation are always treated as a
// cache miss by CachingBlobstore; they are never propagated.
type CacheOps interface {
	// Get returns the cached value, or ok=false if the cache entry is not
	// in the Known state.
	Get(ctx context.Context, key string) (value []byte, ok bool)

	// Put moves the entry for key into the Known state (or a permitted
	// demotion of it: Present or Empty, if the cache chooses to evict).
	Put(ctx context.Context, key string, value []byte)

	// CheckPresent reports whether the cache believes the backing store
	// has a value for key, i.e. the entry is in Present or Known state.
	CheckPresent(ctx context.Context, key string) bool
}

// LeaseOps is the side of the cache that serialises concurrent Put calls
// for the same key. The discipline is advisory: a cache that demotes
// Leased to Empty can let two writers through for the same key, which is
// safe only because backing-store Put is idempotent.
type LeaseOps interface {
	// TryAddPutLease atomically transitions key from Empty to Leased and
	// reports whether it succeeded. Never transitions anything else to
	// Leased.
	TryAddPutLease(ctx context.Context, key string) (bool, error)

	// WaitForOtherLeases blocks for a cache-defined period, or until
	// notified that the lease holder released it, whichever comes first.
	// Returning without the lease state having changed is acceptable.
	WaitForOtherLeases(ctx context.Context, key string) error

	// ReleaseLease transitions key from Leased to Empty.
	ReleaseLease(ctx context.Context, key string)

	// RenewLeaseUntil keeps the lease alive until done fires, then
	// releases it. Only valid to call after a successful TryAddPutLease.
	RenewLeaseUntil(ctx context.Context, key string, done <-chan struct{})
}
