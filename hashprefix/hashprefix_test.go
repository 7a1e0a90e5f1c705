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

package hashprefix

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mononoke-go/corestore/hash"
)

type rangeRecorder struct {
	lo, hi hash.Hash
	result []hash.Hash
}

func (r *rangeRecorder) ResolveRange(ctx context.Context, lo, hi hash.Hash) ([]hash.Hash, error) {
	r.lo, r.hi = lo, hi
	return r.result, nil
}

func TestResolvePassesPrefixBoundsThrough(t *testing.T) {
	prefix, ok := hash.ParsePrefix("abc")
	require.True(t, ok)

	rec := &rangeRecorder{}
	_, err := Resolve(context.Background(), rec, prefix)
	require.NoError(t, err)

	assert.Equal(t, prefix.MinAsRef(), rec.lo)
	assert.Equal(t, prefix.MaxAsRef(), rec.hi)
}

func TestResolveReturnsResolverResult(t *testing.T) {
	prefix, ok := hash.ParsePrefix("ab")
	require.True(t, ok)

	want := []hash.Hash{hash.Of([]byte("a")), hash.Of([]byte("b"))}
	rec := &rangeRecorder{result: want}

	got, err := Resolve(context.Background(), rec, prefix)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
