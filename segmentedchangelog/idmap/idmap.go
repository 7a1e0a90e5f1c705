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

// Package idmap maintains the bidirectional mapping between a bonsai
// changeset id and the small dense integer ("vertex") the segmented
// changelog uses internally, so ancestry queries can work over compact
// integer ranges instead of 32-byte digests.
package idmap

import (
	"context"
	"fmt"

	"github.com/mononoke-go/corestore/typedhash"
)

// Vertex is a dense, monotonically assigned integer id for one changeset
// within one repository's segmented changelog.
type Vertex uint64

// Store is the backing persistence for the id-map.
type Store interface {
	// Insert assigns and records a new vertex for csID, or returns the
	// vertex already assigned to it if one exists.
	Insert(ctx context.Context, repoID int64, csID typedhash.ChangesetID) (Vertex, error)

	// VertexForChangeset looks up an existing vertex for csID.
	VertexForChangeset(ctx context.Context, repoID int64, csID typedhash.ChangesetID) (Vertex, bool, error)

	// ChangesetForVertex looks up the changeset assigned to vertex.
	ChangesetForVertex(ctx context.Context, repoID int64, vertex Vertex) (typedhash.ChangesetID, bool, error)
}

// IdMap is the id-map service.
type IdMap struct {
	store Store
}

// New wraps store.
func New(store Store) *IdMap {
	return &IdMap{store: store}
}

// AssignVertex returns csID's vertex, assigning a new one if this is the
// first time csID has been seen.
func (m *IdMap) AssignVertex(ctx context.Context, repoID int64, csID typedhash.ChangesetID) (Vertex, error) {
	if v, ok, err := m.store.VertexForChangeset(ctx, repoID, csID); err != nil {
		return 0, err
	} else if ok {
		return v, nil
	}
	return m.store.Insert(ctx, repoID, csID)
}

// VertexForChangeset resolves an already-assigned vertex, erroring if
// csID has never been assigned one.
func (m *IdMap) VertexForChangeset(ctx context.Context, repoID int64, csID typedhash.ChangesetID) (Vertex, error) {
	v, ok, err := m.store.VertexForChangeset(ctx, repoID, csID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("idmap: no vertex assigned for changeset %s", csID)
	}
	return v, nil
}

// ChangesetForVertex resolves a vertex back to its changeset id.
func (m *IdMap) ChangesetForVertex(ctx context.Context, repoID int64, vertex Vertex) (typedhash.ChangesetID, error) {
	id, ok, err := m.store.ChangesetForVertex(ctx, repoID, vertex)
	if err != nil {
		return typedhash.ChangesetID{}, err
	}
	if !ok {
		return typedhash.ChangesetID{}, fmt.Errorf("idmap: no changeset assigned for vertex %d", vertex)
	}
	return id, nil
}
