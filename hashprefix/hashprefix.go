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

// Package hashprefix resolves an ambiguous short hash prefix to the full
// hashes it could mean, by range-scanning a keyspace between the prefix's
// smallest and largest possible completions.
package hashprefix

import (
	"context"

	"github.com/mononoke-go/corestore/hash"
)

// Resolver answers a range scan for every full hash between lo and hi
// inclusive, the byte range a Prefix expands to.
type Resolver interface {
	ResolveRange(ctx context.Context, lo, hi hash.Hash) ([]hash.Hash, error)
}

// Resolve returns every full hash consistent with prefix, as reported by
// r. An empty result means the prefix is well-formed but matches
// nothing; more than one result means the prefix is ambiguous.
func Resolve(ctx context.Context, r Resolver, prefix hash.Prefix) ([]hash.Hash, error) {
	return r.ResolveRange(ctx, prefix.MinAsRef(), prefix.MaxAsRef())
}
