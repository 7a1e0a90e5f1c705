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

package bonsai

import (
	"context"

	"github.com/mononoke-go/corestore/typedhash"
)

// PathLookup answers whether a path existed in a changeset, used when
// deciding whether a file change should be recorded with copy-from
// provenance.
type PathLookup interface {
	HasPath(ctx context.Context, changeset typedhash.ChangesetID, path string) (bool, error)
}

// ResolveCopyFrom decides whether path, new at the current changeset,
// should be recorded as a copy from an ancestor, given that changeset's
// parents. It only ever consults parents[0] (the first parent), even on
// a merge commit where path is absent from the first parent but present
// in a later one. This mirrors a long-standing quirk in the bonsai-diff
// computation, which walks parents.get_nodes().0 rather than scanning
// every parent: a copy whose source is only reachable through the
// second-or-later parent of a merge is reported here as "not a copy",
// which is a known false negative, not a deliberately chosen policy.
func ResolveCopyFrom(ctx context.Context, parents []typedhash.ChangesetID, path string, lookup PathLookup) (bool, error) {
	if len(parents) == 0 {
		return false, nil
	}
	return lookup.HasPath(ctx, parents[0], path)
}
