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

// Package kinds holds the concrete derived-data kinds: the Mercurial
// changeset projection, unode manifests, skeleton manifests, and blame.
package kinds

import (
	"context"
	"fmt"
	"sort"

	"github.com/mononoke-go/corestore/bonsai"
	"github.com/mononoke-go/corestore/derivation"
	"github.com/mononoke-go/corestore/hgchangeset"
	"github.com/mononoke-go/corestore/typedhash"
)

// HgChangeset derives a Mercurial-compatible HgBlobChangeset, and the
// NodeID that addresses it, from a bonsai changeset and its parents'
// already-derived node ids. It depends on UnodeManifest so the resulting
// changeset's manifest id reflects the full file tree rather than just
// this commit's direct file changes.
type HgChangeset struct{}

var _ derivation.Kind = HgChangeset{}

func (HgChangeset) Name() string           { return "hgchangeset" }
func (HgChangeset) Dependencies() []string { return []string{(UnodeManifest{}).Name()} }

func (HgChangeset) DeriveSingle(ctx context.Context, cs bonsai.Changeset, csID typedhash.ChangesetID, parentValues [][]byte, dependencyValues map[string][]byte) ([]byte, error) {
	manifestID, err := decodeUnodeManifestID(dependencyValues[(UnodeManifest{}).Name()])
	if err != nil {
		return nil, fmt.Errorf("hgchangeset: %w", err)
	}

	var p1, p2 hgchangeset.NodeID
	if len(parentValues) > 0 {
		n, err := hgchangeset.NodeIDFromBytes(parentValues[0])
		if err != nil {
			return nil, fmt.Errorf("hgchangeset: parent 0 node id: %w", err)
		}
		p1 = n
	}
	if len(parentValues) > 1 {
		n, err := hgchangeset.NodeIDFromBytes(parentValues[1])
		if err != nil {
			return nil, fmt.Errorf("hgchangeset: parent 1 node id: %w", err)
		}
		p2 = n
	}

	files := make([]string, 0, len(cs.FileChanges))
	for path := range cs.FileChanges {
		files = append(files, path)
	}
	sort.Strings(files)

	hgCs := hgchangeset.HgBlobChangeset{
		P1:         p1,
		P2:         p2,
		ManifestID: manifestID,
		User:       cs.Author,
		Time:       cs.CommitDate.Unix(),
		Timezone:   0,
		Files:      files,
		Comment:    cs.Message,
	}
	nodeID := hgCs.NodeID()
	return nodeID[:], nil
}

// decodeUnodeManifestID turns the 32-byte unode manifest digest into a
// Mercurial-shaped 20-byte manifest node id. Mercurial's own manifest
// node is the SHA-1 hash of a rendered directory listing; re-deriving
// that full listing is out of scope here, so we take the SHA-1 of the
// already-computed unode digest as a stand-in manifest node that still
// changes exactly when the underlying file tree does.
func decodeUnodeManifestID(b []byte) (hgchangeset.NodeID, error) {
	if len(b) == 0 {
		return hgchangeset.NullNodeID, nil
	}
	return hgchangeset.HashNode(hgchangeset.NullNodeID, hgchangeset.NullNodeID, b), nil
}
