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
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// NodeID is a Mercurial revlog node id: 20 bytes, the SHA-1 of the sorted
// parent node ids concatenated with the revision's text. It is a
// different digest (width and algorithm) from this module's own
// content-addressing hash.Hash, kept distinct because wire compatibility
// with Mercurial requires matching its exact node-hash algorithm.
type NodeID [20]byte

// NullNodeID is Mercurial's all-zero "no parent" sentinel.
var NullNodeID = NodeID{}

// ParseNodeID decodes a 40-character hex node id.
func ParseNodeID(s string) (NodeID, bool) {
	if len(s) != 40 {
		return NodeID{}, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return NodeID{}, false
	}
	var n NodeID
	copy(n[:], b)
	return n, true
}

// NodeIDFromBytes decodes exactly 20 raw bytes (e.g. a BINARY(20) column
// value) as a NodeID.
func NodeIDFromBytes(b []byte) (NodeID, error) {
	if len(b) != 20 {
		return NodeID{}, fmt.Errorf("hgchangeset: wrong node id byte length %d, want 20", len(b))
	}
	var n NodeID
	copy(n[:], b)
	return n, nil
}

func (n NodeID) String() string { return hex.EncodeToString(n[:]) }

// IsNull reports whether n is the null parent sentinel.
func (n NodeID) IsNull() bool { return n == NullNodeID }

// HashNode computes the Mercurial node id for a revision's text given its
// (possibly absent) parents: sha1(min(p1,p2) || max(p1,p2) || text), with
// an absent parent treated as NullNodeID. Sorting the parents before
// concatenation, rather than using them in a fixed p1-then-p2 order, is
// what makes the hash insensitive to which of two parents a revlog writer
// labels "first".
func HashNode(p1, p2 NodeID, text []byte) NodeID {
	lo, hi := p1, p2
	if bytesGreater(lo[:], hi[:]) {
		lo, hi = hi, lo
	}
	h := sha1.New()
	h.Write(lo[:])
	h.Write(hi[:])
	h.Write(text)
	var out NodeID
	copy(out[:], h.Sum(nil))
	return out
}

func bytesGreater(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
