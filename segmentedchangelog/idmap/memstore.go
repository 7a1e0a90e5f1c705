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

package idmap

import (
	"context"
	"sync"

	"github.com/mononoke-go/corestore/typedhash"
)

// MemStore is an in-memory Store used by tests in place of a real
// database, for the same reason bonsaihgmapping.MemStore exists: no
// SQL-mocking dependency is available anywhere in this module.
type MemStore struct {
	mu       sync.Mutex
	byCsID   map[int64]map[typedhash.ChangesetID]Vertex
	byVertex map[int64]map[Vertex]typedhash.ChangesetID
	next     map[int64]Vertex
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		byCsID:   make(map[int64]map[typedhash.ChangesetID]Vertex),
		byVertex: make(map[int64]map[Vertex]typedhash.ChangesetID),
		next:     make(map[int64]Vertex),
	}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) Insert(ctx context.Context, repoID int64, csID typedhash.ChangesetID) (Vertex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byCsID[repoID] == nil {
		s.byCsID[repoID] = make(map[typedhash.ChangesetID]Vertex)
		s.byVertex[repoID] = make(map[Vertex]typedhash.ChangesetID)
	}
	if v, ok := s.byCsID[repoID][csID]; ok {
		return v, nil
	}
	v := s.next[repoID]
	s.next[repoID] = v + 1
	s.byCsID[repoID][csID] = v
	s.byVertex[repoID][v] = csID
	return v, nil
}

func (s *MemStore) VertexForChangeset(ctx context.Context, repoID int64, csID typedhash.ChangesetID) (Vertex, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byCsID[repoID][csID]
	return v, ok, nil
}

func (s *MemStore) ChangesetForVertex(ctx context.Context, repoID int64, vertex Vertex) (typedhash.ChangesetID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byVertex[repoID][vertex]
	return id, ok, nil
}
