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

package hgchangeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleChangeset() HgBlobChangeset {
	manifest, _ := ParseNodeID("3333333333333333333333333333333333333333")
	return HgBlobChangeset{
		ManifestID: manifest,
		User:       "alice <alice@example.com>",
		Time:       1700000000,
		Timezone:   0,
		Files:      []string{"b.txt", "a.txt"},
		Comment:    "add files",
	}
}

func TestNodeIDIsDeterministic(t *testing.T) {
	cs := sampleChangeset()
	assert.Equal(t, cs.NodeID(), cs.NodeID())
}

func TestNodeIDChangesWithComment(t *testing.T) {
	cs1 := sampleChangeset()
	cs2 := sampleChangeset()
	cs2.Comment = "different message"
	assert.NotEqual(t, cs1.NodeID(), cs2.NodeID())
}

func TestNodeIDIndependentOfFileSliceOrder(t *testing.T) {
	cs1 := sampleChangeset()
	cs2 := sampleChangeset()
	cs2.Files = []string{"a.txt", "b.txt"}
	assert.Equal(t, cs1.NodeID(), cs2.NodeID())
}

func TestNodeIDIncludesExtraDeterministically(t *testing.T) {
	cs1 := sampleChangeset()
	cs1.Extra = map[string]string{"branch": "default", "amend_source": "abc"}
	cs2 := sampleChangeset()
	cs2.Extra = map[string]string{"amend_source": "abc", "branch": "default"}
	assert.Equal(t, cs1.NodeID(), cs2.NodeID())
}
