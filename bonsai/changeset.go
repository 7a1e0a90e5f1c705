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

// Package bonsai implements the content-addressed, path-keyed changeset
// model: a Changeset names its parents by ChangesetID, carries author,
// message and timestamp metadata, and a flat map of path -> FileChange.
// Unlike a manifest tree, there is no intermediate directory node to
// derive or store; directory structure is implicit in path prefixes.
package bonsai

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/mononoke-go/corestore/blob"
	"github.com/mononoke-go/corestore/typedhash"
)

// Changeset is a bonsai changeset: the content-addressed commit shape
// that every other representation (Hg, Git, ...) projects from.
type Changeset struct {
	Parents     []typedhash.ChangesetID  `json:"parents"`
	Author      string                   `json:"author"`
	AuthorDate  time.Time                `json:"author_date"`
	Committer   string                   `json:"committer,omitempty"`
	CommitDate  time.Time                `json:"commit_date,omitempty"`
	Message     string                   `json:"message"`
	Extra       map[string][]byte        `json:"extra,omitempty"`
	FileChanges map[string]FileChange    `json:"file_changes"`
}

// Codec is the wire representation of a Changeset: canonical JSON. Content
// metadata also uses a plain JSON codec; raw bundle2 blobs are stored
// verbatim.
type Codec struct{}

func (Codec) Encode(v Changeset) ([]byte, error) {
	// Sort file-change paths so that two logically-identical changesets
	// always encode to the same bytes, which is required for a
	// content-addressed id to be stable.
	return json.Marshal(canonicalChangeset{
		Parents:     v.Parents,
		Author:      v.Author,
		AuthorDate:  v.AuthorDate,
		Committer:   v.Committer,
		CommitDate:  v.CommitDate,
		Message:     v.Message,
		Extra:       v.Extra,
		FileChanges: sortedFileChanges(v.FileChanges),
	})
}

func (Codec) Decode(b []byte) (Changeset, error) {
	var c canonicalChangeset
	if err := json.Unmarshal(b, &c); err != nil {
		return Changeset{}, err
	}
	fc := make(map[string]FileChange, len(c.FileChanges))
	for _, e := range c.FileChanges {
		fc[e.Path] = e.Change
	}
	return Changeset{
		Parents:     c.Parents,
		Author:      c.Author,
		AuthorDate:  c.AuthorDate,
		Committer:   c.Committer,
		CommitDate:  c.CommitDate,
		Message:     c.Message,
		Extra:       c.Extra,
		FileChanges: fc,
	}, nil
}

type canonicalChangeset struct {
	Parents     []typedhash.ChangesetID `json:"parents"`
	Author      string                  `json:"author"`
	AuthorDate  time.Time               `json:"author_date"`
	Committer   string                  `json:"committer,omitempty"`
	CommitDate  time.Time               `json:"commit_date,omitempty"`
	Message     string                  `json:"message"`
	Extra       map[string][]byte       `json:"extra,omitempty"`
	FileChanges []pathChange            `json:"file_changes"`
}

type pathChange struct {
	Path   string     `json:"path"`
	Change FileChange `json:"change"`
}

func sortedFileChanges(m map[string]FileChange) []pathChange {
	out := make([]pathChange, 0, len(m))
	for p, c := range m {
		out = append(out, pathChange{Path: p, Change: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Store writes v under the id computed from its canonical encoding.
func Store(ctx context.Context, bs blob.Blobstore, v Changeset) (typedhash.ChangesetID, error) {
	return typedhash.StoreChangeset(ctx, bs, Codec{}, v)
}

// Load fetches and decodes the changeset addressed by id.
func Load(ctx context.Context, bs blob.Blobstore, id typedhash.ChangesetID) (Changeset, error) {
	return typedhash.Load(ctx, bs, id, Codec{})
}
