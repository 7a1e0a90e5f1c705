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
	"encoding/json"
	"fmt"

	"github.com/mononoke-go/corestore/bonsai"
	"github.com/mononoke-go/corestore/derivation"
	"github.com/mononoke-go/corestore/typedhash"
)

// Blame derives, for every path live at a changeset, the id of the
// changeset that last touched it. It inherits its predecessor's map from
// only the first parent on a merge, the same first-parent-only policy
// bonsai.ResolveCopyFrom uses, rather than reconciling blame across every
// merge parent.
type Blame struct{}

var _ derivation.Kind = Blame{}

func (Blame) Name() string           { return "blame" }
func (Blame) Dependencies() []string { return nil }

func (Blame) DeriveSingle(ctx context.Context, cs bonsai.Changeset, csID typedhash.ChangesetID, parentValues [][]byte, dependencyValues map[string][]byte) ([]byte, error) {
	provenance := make(map[string]string)
	if len(parentValues) > 0 && len(parentValues[0]) > 0 {
		if err := json.Unmarshal(parentValues[0], &provenance); err != nil {
			return nil, fmt.Errorf("blame: decode parent provenance: %w", err)
		}
	}
	for path, fc := range cs.FileChanges {
		if fc.Deleted {
			delete(provenance, path)
			continue
		}
		provenance[path] = csID.String()
	}
	out, err := json.Marshal(provenance)
	if err != nil {
		return nil, fmt.Errorf("blame: encode provenance: %w", err)
	}
	return out, nil
}
