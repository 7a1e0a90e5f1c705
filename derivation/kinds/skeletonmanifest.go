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

// SkeletonManifest derives a single digest over its parents' digests and
// the changeset's touched paths, each marked present or deleted, ignoring
// file contents entirely and without paying for a full unode derivation.
// The digest tells whether path shapes differ; it does not answer per-path
// existence or directory-listing queries. Because it only cares about
// presence, a rename
// that changes content but not path shape leaves the digest unaffected by
// the content id, only by the path's presence/absence.
type SkeletonManifest struct{}

var _ derivation.Kind = SkeletonManifest{}

func (SkeletonManifest) Name() string           { return "skeleton_manifest" }
func (SkeletonManifest) Dependencies() []string { return nil }

func (SkeletonManifest) DeriveSingle(ctx context.Context, cs bonsai.Changeset, csID typedhash.ChangesetID, parentValues [][]byte, dependencyValues map[string][]byte) ([]byte, error) {
	parents := make([]hash.Hash, 0, len(parentValues))
	for _, pv := range parentValues {
		if len(pv) == 0 {
			continue
		}
		h, err := hash.FromBytes(pv)
		if err != nil {
			return nil, fmt.Errorf("skeleton_manifest: parent digest: %w", err)
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
		b.WriteString(path)
		if cs.FileChanges[path].Deleted {
			b.WriteString(":-\n")
		} else {
			b.WriteString(":+\n")
		}
	}
	h := hash.Of([]byte(b.String()))
	return h.Bytes(), nil
}
