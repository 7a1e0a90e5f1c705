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
	"fmt"
	"sort"
	"strings"
)

// HgBlobChangeset is the Mercurial-compatible projection of a bonsai
// changeset: a root manifest node, parents, and the changelog text
// Mercurial clients expect (user, date, touched files, description).
type HgBlobChangeset struct {
	P1         NodeID
	P2         NodeID
	ManifestID NodeID
	User       string
	Time       int64 // unix seconds
	Timezone   int   // seconds offset from UTC, Mercurial's sign convention
	Extra      map[string]string
	Files      []string
	Comment    string
}

// changelogText renders the changeset in Mercurial's changelog revision
// text format: manifest hex, user, "time tz extra", one file per line,
// a blank line, then the description. This is exactly the byte sequence
// HashNode is computed over, so any change here changes every node id.
func (c HgBlobChangeset) changelogText() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", c.ManifestID.String())
	fmt.Fprintf(&b, "%s\n", c.User)

	fmt.Fprintf(&b, "%d %d", c.Time, c.Timezone)
	if len(c.Extra) > 0 {
		keys := make([]string, 0, len(c.Extra))
		for k := range c.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s:%s", k, c.Extra[k])
		}
	}
	b.WriteString("\n")

	files := append([]string(nil), c.Files...)
	sort.Strings(files)
	for _, f := range files {
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(c.Comment)
	return []byte(b.String())
}

// NodeID computes this changeset's Mercurial node id.
func (c HgBlobChangeset) NodeID() NodeID {
	return HashNode(c.P1, c.P2, c.changelogText())
}
