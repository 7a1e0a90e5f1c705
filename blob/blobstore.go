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

// Package blob defines the Blobstore contract that every storage backend,
// cache layer, and multiplexer in this module implements: async get/put/
// is-present over an opaque string key and an opaque byte value.
// "Not found" is not an error — Get reports it as a false ok, the way a
// Mercurial-compatible content store treats a missing blob as absence
// rather than failure.
package blob

import "context"

// Blobstore is the minimal contract every backing store, cache wrapper,
// and multiplexer satisfies. All three operations are async (they take a
// ctx and should return promptly on ctx cancellation) and idempotent: a
// second Put of the same (key, value) must succeed silently, because keys
// are content-addressed by callers above this package.
type Blobstore interface {
	// Get returns the value for key. ok is false and err is nil when the
	// key is absent — absence is not a failure mode. err is non-nil only
	// for transport/IO failures.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key. Putting the same (key, value) twice
	// must succeed both times without error.
	Put(ctx context.Context, key string, value []byte) error

	// IsPresent reports whether key has a stored value, without fetching
	// it.
	IsPresent(ctx context.Context, key string) (bool, error)
}
