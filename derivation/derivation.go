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

// Package derivation computes and persists per-commit derived data (Hg
// changesets, unode manifests, skeleton manifests, blame) on top of
// bonsai changesets. A Kind knows how to derive one commit's value from
// its bonsai changeset and its parents' already-derived values; Manager
// handles fetching dependencies, persisting results, batch derivation
// over linear commit stacks, and deduplicating concurrent requests for
// the same (kind, changeset) pair.
package derivation

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mononoke-go/corestore/blob"
	"github.com/mononoke-go/corestore/bonsai"
	"github.com/mononoke-go/corestore/typedhash"
)

// ChangesetSource resolves a changeset id to its bonsai changeset, the
// only changeset-shaped input derivation needs.
type ChangesetSource interface {
	Changeset(ctx context.Context, id typedhash.ChangesetID) (bonsai.Changeset, error)
}

// Kind is one derived-data type. Implementations are given raw derived
// bytes for their own dependencies and parents and decode them as they
// see fit; Manager never interprets a Kind's bytes itself, mirroring how
// each Rust BonsaiDerivable owns its own BlobstoreBytes encoding.
type Kind interface {
	// Name identifies this kind's blobstore key namespace and must be
	// stable across process restarts.
	Name() string

	// Dependencies lists the names of other kinds that must be derived
	// for a changeset before this one can be.
	Dependencies() []string

	// DeriveSingle computes this kind's derived value for cs, given the
	// already-derived bytes for each of cs's parents (in parents' order)
	// and for each of Dependencies() (keyed by dependency name, for this
	// same changeset).
	DeriveSingle(ctx context.Context, cs bonsai.Changeset, csID typedhash.ChangesetID, parentValues [][]byte, dependencyValues map[string][]byte) ([]byte, error)
}

// Manager derives and caches derived data across a registered set of
// Kinds, backed by a single blobstore.
type Manager struct {
	bs         blob.Blobstore
	changesets ChangesetSource
	kinds      map[string]Kind
	inflight   *inflightGroup
}

// NewManager constructs a Manager. kinds must not contain two entries
// with the same Name().
func NewManager(bs blob.Blobstore, changesets ChangesetSource, kinds ...Kind) (*Manager, error) {
	m := &Manager{
		bs:         bs,
		changesets: changesets,
		kinds:      make(map[string]Kind, len(kinds)),
		inflight:   newInflightGroup(),
	}
	for _, k := range kinds {
		if _, dup := m.kinds[k.Name()]; dup {
			return nil, fmt.Errorf("derivation: duplicate kind %q", k.Name())
		}
		m.kinds[k.Name()] = k
	}
	return m, nil
}

func derivedKey(kindName string, id typedhash.ChangesetID) string {
	return "derived_root_" + kindName + "." + id.String()
}

// Derive returns kindName's derived value for id, computing and
// persisting it (and any of its declared dependencies and ancestor
// values still missing) if necessary. Concurrent Derive calls for the
// same (kindName, id) pair share one computation.
func (m *Manager) Derive(ctx context.Context, kindName string, id typedhash.ChangesetID) ([]byte, error) {
	kind, ok := m.kinds[kindName]
	if !ok {
		return nil, fmt.Errorf("derivation: unknown kind %q", kindName)
	}

	key := derivedKey(kindName, id)
	if v, present, err := m.bs.Get(ctx, key); err != nil {
		return nil, err
	} else if present {
		return v, nil
	}

	return m.inflight.do(kindName, id, func() ([]byte, error) {
		// Re-check under the inflight guard: another goroutine may have
		// finished deriving this exact (kind, id) while we were waiting
		// to enter this closure.
		if v, present, err := m.bs.Get(ctx, key); err != nil {
			return nil, err
		} else if present {
			return v, nil
		}

		// Changeset crosses from the bonsai/blobstore layer into
		// derivation; wrap with errors.Wrap here so a failure surfaces
		// its origin even if the underlying blobstore error is a bare
		// stdlib error without its own stack context.
		cs, err := m.changesets.Changeset(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "derivation: fetch changeset %s", id)
		}

		dependencyValues := make(map[string][]byte, len(kind.Dependencies()))
		for _, dep := range kind.Dependencies() {
			v, err := m.Derive(ctx, dep, id)
			if err != nil {
				return nil, fmt.Errorf("derivation: dependency %q of %q: %w", dep, kindName, err)
			}
			dependencyValues[dep] = v
		}

		parentValues := make([][]byte, len(cs.Parents))
		for i, p := range cs.Parents {
			v, err := m.Derive(ctx, kindName, p)
			if err != nil {
				return nil, fmt.Errorf("derivation: parent %s of %s: %w", p, id, err)
			}
			parentValues[i] = v
		}

		out, err := kind.DeriveSingle(ctx, cs, id, parentValues, dependencyValues)
		if err != nil {
			return nil, err
		}
		if err := m.bs.Put(ctx, key, out); err != nil {
			return nil, err
		}
		return out, nil
	})
}
