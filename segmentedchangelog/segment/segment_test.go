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

package segment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mononoke-go/corestore/segmentedchangelog/idmap"
)

// linearParents models a pure chain: 0 has no parents, every other vertex
// has exactly its predecessor as its sole parent.
func linearParents(v idmap.Vertex) ([]idmap.Vertex, error) {
	if v == 0 {
		return nil, nil
	}
	return []idmap.Vertex{v - 1}, nil
}

func TestBuildFlatSegmentsMergesALinearChainIntoOneSegment(t *testing.T) {
	vertices := []idmap.Vertex{0, 1, 2, 3, 4}
	segs, err := BuildFlatSegments(vertices, linearParents)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, idmap.Vertex(0), segs[0].Low)
	assert.Equal(t, idmap.Vertex(4), segs[0].High)
	assert.Empty(t, segs[0].Parents)
}

func TestBuildFlatSegmentsSplitsOnMerge(t *testing.T) {
	// 0 -> 1 -> 3, 2 -> 3 (3 is a merge commit, so it starts a new segment).
	parents := map[idmap.Vertex][]idmap.Vertex{
		0: nil,
		1: {0},
		2: nil,
		3: {1, 2},
	}
	lookup := func(v idmap.Vertex) ([]idmap.Vertex, error) { return parents[v], nil }

	segs, err := BuildFlatSegments([]idmap.Vertex{0, 1, 2, 3}, lookup)
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, idmap.Vertex(0), segs[0].Low)
	assert.Equal(t, idmap.Vertex(1), segs[0].High)
	assert.Equal(t, idmap.Vertex(2), segs[1].Low)
	assert.Equal(t, idmap.Vertex(2), segs[1].High)
	assert.Equal(t, idmap.Vertex(3), segs[2].Low)
	assert.Equal(t, []idmap.Vertex{1, 2}, segs[2].Parents)
}

func TestIsAncestorWithinASingleSegment(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Append(context.Background(), []Segment{{Low: 0, High: 4}}))

	ok, err := IsAncestor(context.Background(), store, 1, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsAncestor(context.Background(), store, 3, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAncestorAcrossSegmentBoundary(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Append(context.Background(), []Segment{
		{Low: 0, High: 1},
		{Low: 2, High: 2, Parents: []idmap.Vertex{1}},
	}))

	ok, err := IsAncestor(context.Background(), store, 0, 2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAncestorIsReflexive(t *testing.T) {
	store := NewMemStore()
	ok, err := IsAncestor(context.Background(), store, 5, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAncestorUncoveredVertexErrors(t *testing.T) {
	store := NewMemStore()
	_, err := IsAncestor(context.Background(), store, 0, 99)
	assert.Error(t, err)
}
