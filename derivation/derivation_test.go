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

package derivation

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mononoke-go/corestore/blob"
	"github.com/mononoke-go/corestore/bonsai"
	"github.com/mononoke-go/corestore/hash"
	"github.com/mononoke-go/corestore/typedhash"
)

type memChangesets struct {
	byID map[typedhash.ChangesetID]bonsai.Changeset
}

func newMemChangesets() *memChangesets {
	return &memChangesets{byID: make(map[typedhash.ChangesetID]bonsai.Changeset)}
}

func (m *memChangesets) Changeset(ctx context.Context, id typedhash.ChangesetID) (bonsai.Changeset, error) {
	cs, ok := m.byID[id]
	if !ok {
		return bonsai.Changeset{}, fmt.Errorf("no such changeset %s", id)
	}
	return cs, nil
}

func (m *memChangesets) add(cs bonsai.Changeset) typedhash.ChangesetID {
	id := typedhash.NewChangesetID(hash.Of([]byte(cs.Message)))
	m.byID[id] = cs
	return id
}

// countingKind derives a deterministic value and counts calls, used to
// assert that inflight dedupe and dependency-before-parent ordering hold.
type countingKind struct {
	name  string
	deps  []string
	calls int32
}

func (k *countingKind) Name() string         { return k.name }
func (k *countingKind) Dependencies() []string { return k.deps }

func (k *countingKind) DeriveSingle(ctx context.Context, cs bonsai.Changeset, csID typedhash.ChangesetID, parentValues [][]byte, dependencyValues map[string][]byte) ([]byte, error) {
	atomic.AddInt32(&k.calls, 1)
	return []byte(csID.String()), nil
}

func TestDeriveComputesAndPersists(t *testing.T) {
	bs := blob.NewMem()
	changesets := newMemChangesets()
	root := changesets.add(bonsai.Changeset{Message: "root"})

	k := &countingKind{name: "k"}
	m, err := NewManager(bs, changesets, k)
	require.NoError(t, err)

	v, err := m.Derive(context.Background(), "k", root)
	require.NoError(t, err)
	assert.Equal(t, root.String(), string(v))
	assert.EqualValues(t, 1, k.calls)

	v2, err := m.Derive(context.Background(), "k", root)
	require.NoError(t, err)
	assert.Equal(t, v, v2)
	assert.EqualValues(t, 1, k.calls, "second call should hit the blobstore, not re-derive")
}

func TestDeriveWalksParentsFirst(t *testing.T) {
	bs := blob.NewMem()
	changesets := newMemChangesets()
	root := changesets.add(bonsai.Changeset{Message: "root"})
	child := changesets.add(bonsai.Changeset{Message: "child", Parents: []typedhash.ChangesetID{root}})

	k := &countingKind{name: "k"}
	m, err := NewManager(bs, changesets, k)
	require.NoError(t, err)

	_, err = m.Derive(context.Background(), "k", child)
	require.NoError(t, err)
	assert.EqualValues(t, 2, k.calls, "deriving child should also derive its parent")
}

func TestDeriveDependenciesBeforeSelf(t *testing.T) {
	bs := blob.NewMem()
	changesets := newMemChangesets()
	root := changesets.add(bonsai.Changeset{Message: "root"})

	dep := &countingKind{name: "dep"}
	main := &countingKind{name: "main", deps: []string{"dep"}}
	m, err := NewManager(bs, changesets, dep, main)
	require.NoError(t, err)

	_, err = m.Derive(context.Background(), "main", root)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dep.calls)
	assert.EqualValues(t, 1, main.calls)
}

func TestDeriveUnknownKindErrors(t *testing.T) {
	bs := blob.NewMem()
	changesets := newMemChangesets()
	m, err := NewManager(bs, changesets)
	require.NoError(t, err)

	_, err = m.Derive(context.Background(), "nope", typedhash.ChangesetID{})
	assert.Error(t, err)
}

func TestNewManagerRejectsDuplicateKindNames(t *testing.T) {
	_, err := NewManager(blob.NewMem(), newMemChangesets(), &countingKind{name: "k"}, &countingKind{name: "k"})
	assert.Error(t, err)
}
