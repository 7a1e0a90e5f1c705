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

package kinds

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mononoke-go/corestore/bonsai"
	"github.com/mononoke-go/corestore/derivation"
	"github.com/mononoke-go/corestore/hash"
	"github.com/mononoke-go/corestore/typedhash"
)

// UnodeManifest derives the root unode manifest digest for a changeset: a
// single content-addressed hash folding the parent manifest(s) and every
// path this changeset touches, standing in for the full per-directory
// unode tree that each touched path's history would otherwise have to
// walk to answer a "who last touched this file" query.
type UnodeManifest struct{}

var _ derivation.Kind = UnodeManifest{}

func (UnodeManifest) Name() string           { return "unode_manifest" }
func (UnodeManifest) Dependencies() []string { return nil }

func (UnodeManifest) DeriveSingle(ctx context.Context, cs bonsai.Changeset, csID typedhash.ChangesetID, parentValues [][]byte, dependencyValues map[string][]byte) ([]byte, error) {
	h, err := deriveManifestDigest(parentValues, cs)
	if err != nil {
		return nil, fmt.Errorf("unode_manifest: %w", err)
	}
	return h.Bytes(), nil
}

// deriveManifestDigest hashes the parent digests (sorted, so the result
// doesn't depend on parent ordering for a merge) with the sorted list of
// "path:content_id|D" entries for this changeset's file changes. It is a
// cheap, order-independent fold rather than a rebuilt directory tree,
// appropriate for tracking "did this subtree change" without walking or
// storing per-directory nodes.
func deriveManifestDigest(parentValues [][]byte, cs bonsai.Changeset) (hash.Hash, error) {
	parents := make([]hash.Hash, 0, len(parentValues))
	for _, pv := range parentValues {
		if len(pv) == 0 {
			continue
		}
		h, err := hash.FromBytes(pv)
		if err != nil {
			return hash.Hash{}, fmt.Errorf("parent digest: %w", err)
		}
		parents = append(parents, h)
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i].Less(parents[j]) })

	paths := make([]string, 0, len(cs.FileChanges))
	for path := range cs.FileChanges {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, p := range parents {
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	for _, path := range paths {
		fc := cs.FileChanges[path]
		b.WriteString(path)
		if fc.Deleted {
			b.WriteString(":D\n")
		} else {
			b.WriteByte(':')
			b.WriteString(fc.ContentID.String())
			b.WriteByte('\n')
		}
	}
	return hash.Of([]byte(b.String())), nil
}
