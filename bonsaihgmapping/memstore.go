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

package bonsaihgmapping

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/mononoke-go/corestore/hash"
	"github.com/mononoke-go/corestore/hgchangeset"
	"github.com/mononoke-go/corestore/typedhash"
)

type memKey struct {
	repoID RepoID
	bcsID  typedhash.ChangesetID
}

// MemStore is an in-memory Store, used in tests in place of a real
// database: there is no SQL-mocking library anywhere in this module's
// dependency set, so Mapping's conflict-detection logic is exercised
// against this fake rather than against SQLStore directly.
type MemStore struct {
	mu      sync.Mutex
	byBcs   map[memKey]Entry
	hgIndex map[RepoID]map[hgchangeset.NodeID]typedhash.ChangesetID
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		byBcs:   make(map[memKey]Entry),
		hgIndex: make(map[RepoID]map[hgchangeset.NodeID]typedhash.ChangesetID),
	}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) InsertIfAbsent(ctx context.Context, entry Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := memKey{repoID: entry.RepoID, bcsID: entry.BcsID}
	if _, ok := s.byBcs[k]; ok {
		return false, nil
	}
	if idx := s.hgIndex[entry.RepoID]; idx != nil {
		if _, ok := idx[entry.HgCsID]; ok {
			return false, nil
		}
	}
	s.byBcs[k] = entry
	if s.hgIndex[entry.RepoID] == nil {
		s.hgIndex[entry.RepoID] = make(map[hgchangeset.NodeID]typedhash.ChangesetID)
	}
	s.hgIndex[entry.RepoID][entry.HgCsID] = entry.BcsID
	return true, nil
}

func (s *MemStore) ByBonsai(ctx context.Context, repoID RepoID, bcsID typedhash.ChangesetID) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byBcs[memKey{repoID: repoID, bcsID: bcsID}]
	return e, ok, nil
}

func (s *MemStore) ByHg(ctx context.Context, repoID RepoID, hgCsID hgchangeset.NodeID) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.hgIndex[repoID]
	if idx == nil {
		return Entry{}, false, nil
	}
	bcsID, ok := idx[hgCsID]
	if !ok {
		return Entry{}, false, nil
	}
	e, ok := s.byBcs[memKey{repoID: repoID, bcsID: bcsID}]
	return e, ok, nil
}

// BonsaiIDsInRange linearly scans for bcs_ids in [lo, hi], the fake's
// counterpart to SQLStore's indexed BETWEEN query.
func (s *MemStore) BonsaiIDsInRange(ctx context.Context, repoID RepoID, lo, hi hash.Hash) ([]typedhash.ChangesetID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []typedhash.ChangesetID
	for k := range s.byBcs {
		if k.repoID != repoID {
			continue
		}
		b := k.bcsID.Hash()
		if bytes.Compare(b[:], lo[:]) >= 0 && bytes.Compare(b[:], hi[:]) <= 0 {
			ids = append(ids, k.bcsID)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i].Hash(), ids[j].Hash()
		return bytes.Compare(a[:], b[:]) < 0
	})
	return ids, nil
}

// Delete removes entry's row, used by tests to simulate the concurrent
// delete race that verifyConsistency must detect.
func (s *MemStore) Delete(repoID RepoID, bcsID typedhash.ChangesetID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := memKey{repoID: repoID, bcsID: bcsID}
	entry, ok := s.byBcs[k]
	if !ok {
		return
	}
	delete(s.byBcs, k)
	if idx := s.hgIndex[repoID]; idx != nil {
		delete(idx, entry.HgCsID)
	}
}
