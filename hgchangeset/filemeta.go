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

// Package hgchangeset implements the Mercurial-compatible projection of a
// changeset: node-id hashing and the file metadata header format that
// Mercurial file revisions embed ahead of their content to record copy
// provenance.
package hgchangeset

import (
	"bytes"
)

// metaMarker delimits a file metadata header: a file revision whose bytes
// begin with "\x01\n" carries a header running up to the next "\x01\n",
// which is itself followed by the actual file content.
var metaMarker = []byte("\x01\n")

const copyPathKey = "copy"
const copyRevKey = "copyrev"

// CopyFrom names the path and Hg node a file's content was copied from.
type CopyFrom struct {
	Path string
	Node NodeID
}

// extractMeta returns the metadata slice (without the surrounding
// markers) and the byte offset where content begins. If file doesn't
// begin with metaMarker, there is no header and content starts at 0.
func extractMeta(file []byte) (meta []byte, contentOffset int) {
	if len(file) < len(metaMarker) || !bytes.Equal(file[:len(metaMarker)], metaMarker) {
		return nil, 0
	}
	rest := file[len(metaMarker):]
	end := bytes.Index(rest, metaMarker)
	if end < 0 {
		// Unterminated metadata marker: Mercurial treats this as
		// malformed and reports no metadata; content is taken to start
		// right after the opening marker.
		return nil, len(metaMarker)
	}
	return rest[:end], len(metaMarker) + end + len(metaMarker)
}

// parseToMap splits content into "key<delim>value" lines.
func parseToMap(content []byte, delim string) map[string]string {
	kv := make(map[string]string)
	for _, line := range bytes.Split(content, []byte("\n")) {
		idx := bytes.Index(line, []byte(delim))
		if idx < 0 {
			continue
		}
		kv[string(line[:idx])] = string(line[idx+len(delim):])
	}
	return kv
}

// ParseMetadata parses the ": "-separated key/value header embedded in a
// raw Mercurial file revision, dropping the markers and the trailing
// content.
func ParseMetadata(raw []byte) map[string]string {
	meta, _ := extractMeta(raw)
	return parseToMap(meta, ": ")
}

// Content strips the metadata header (if any) from a raw file revision,
// returning the actual file bytes.
func Content(raw []byte) []byte {
	_, off := extractMeta(raw)
	return raw[off:]
}

// CopiedFrom extracts copy-from provenance from a raw file revision's
// metadata header, or nil if it has none.
func CopiedFrom(raw []byte) *CopyFrom {
	meta := ParseMetadata(raw)
	path, hasPath := meta[copyPathKey]
	rev, hasRev := meta[copyRevKey]
	if !hasPath || !hasRev {
		return nil
	}
	node, ok := ParseNodeID(rev)
	if !ok {
		return nil
	}
	return &CopyFrom{Path: path, Node: node}
}

// GenerateMetadata produces the header bytes that must prefix fileContents
// before it is stored as a Mercurial file revision. With no copy-from, a
// header is only emitted when fileContents itself begins with metaMarker
// (to disambiguate it from an actual header on read-back); with copy-from,
// a header recording copy/copyrev is always emitted.
func GenerateMetadata(copyFrom *CopyFrom, fileContents []byte) []byte {
	var buf bytes.Buffer
	if copyFrom == nil {
		if bytes.HasPrefix(fileContents, metaMarker) {
			buf.Write(metaMarker)
			buf.Write(metaMarker)
		}
		return buf.Bytes()
	}
	buf.Write(metaMarker)
	buf.WriteString(copyPathKey)
	buf.WriteString(": ")
	buf.WriteString(copyFrom.Path)
	buf.WriteString("\n")
	buf.WriteString(copyRevKey)
	buf.WriteString(": ")
	buf.WriteString(copyFrom.Node.String())
	buf.WriteString("\n")
	buf.Write(metaMarker)
	return buf.Bytes()
}
