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
	"fmt"
	"sort"
	"sync"

	"github.com/mononoke-go/corestore/segmentedchangelog/idmap"
)

// Store persists flat segments for ancestry range queries and finds the
// segment (if any) covering a given vertex. It is deliberately narrow —
// an append plus a range lookup — so an in-memory implementation and a
// future on-disk one can share callers.
type Store interface {
	Append(ctx context.Context, segments []Segment) error
	FindContaining(ctx context.Context, v idmap.Vertex) (Segment, bool, error)
}

// MemStore is an in-memory Store, sorted by High for binary-search lookup.
type MemStore struct {
	mu       sync.RWMutex
	segments []Segment
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) Append(ctx context.Context, segments []Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = append(s.segments, segments...)
	sort.Slice(s.segments, func(i, j int) bool { return s.segments[i].High < s.segments[j].High })
	return nil
}

func (s *MemStore) FindContaining(ctx context.Context, v idmap.Vertex) (Segment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := sort.Search(len(s.segments), func(i int) bool { return s.segments[i].High >= v })
	if i == len(s.segments) || !s.segments[i].Contains(v) {
		return Segment{}, false, nil
	}
	return s.segments[i], true, nil
}

// IsAncestor reports whether ancestor is an ancestor of (or equal to)
// descendant, walking segment boundaries: while descendant's covering
// segment's Low is above ancestor, jump to each of that segment's
// external parents; if descendant's segment already contains ancestor
// in range, the answer is immediate.
func IsAncestor(ctx context.Context, store Store, ancestor, descendant idmap.Vertex) (bool, error) {
	if ancestor == descendant {
		return true, nil
	}
	visited := make(map[idmap.Vertex]bool)
	queue := []idmap.Vertex{descendant}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if visited[v] {
			continue
		}
		visited[v] = true

		seg, ok, err := store.FindContaining(ctx, v)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, fmt.Errorf("segment: no segment covers vertex %d", v)
		}
		if ancestor >= seg.Low && ancestor <= v {
			return true, nil
		}
		queue = append(queue, seg.Parents...)
	}
	return false, nil
}
