// Copyright 2019 Liquidata, Inc.
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
//
// This file incorporates work covered by the following copyright and
// permission notice:
//
// Copyright 2016 Attic Labs, Inc. All rights reserved.
// Licensed under the Apache License, version 2.0:
// http://www.apache.org/licenses/LICENSE-2.0

// Package hash provides the single digest type that underlies every typed
// blobstore identifier: a 32-byte Blake2 digest, textually encoded as
// lowercase, unpadded base32 so it is safe to embed in a blobstore key.
package hash

import (
	"encoding/base32"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ByteLen is the number of bytes in a Hash.
const ByteLen = 32

// StringLen is the number of characters in the base32 textual form of a Hash.
const StringLen = 52

var encoding = base32.NewEncoding("0123456789abcdefghijklmnopqrstuv").WithPadding(base32.NoPadding)

// Hash is a Blake2-256 digest. The zero value is the all-zero digest, used
// as the sentinel "empty" hash by callers that need one (it is never
// produced by Of on non-empty input with overwhelming probability, but
// callers must not rely on that — use IsEmpty explicitly).
type Hash [ByteLen]byte

var emptyHash = Hash{}

func errWrongLength(n int) error {
	return fmt.Errorf("hash: wrong byte length %d, want %d", n, ByteLen)
}

// Of returns the Hash of data.
func Of(data []byte) Hash {
	digest := blake2b.Sum256(data)
	return Hash(digest)
}

// New constructs a Hash from a byte slice. It panics if the slice is not
// exactly ByteLen bytes, mirroring Parse's panic-on-malformed-input contract.
func New(b []byte) Hash {
	if len(b) != ByteLen {
		panic("hash: wrong byte length")
	}
	var h Hash
	copy(h[:], b)
	return h
}

// Parse decodes the base32 textual form of a Hash, panicking on malformed
// input. Use MaybeParse to handle malformed input without panicking.
func Parse(s string) Hash {
	h, ok := MaybeParse(s)
	if !ok {
		panic("hash: invalid hash string: " + s)
	}
	return h
}

// MaybeParse decodes the base32 textual form of a Hash, returning ok=false
// instead of panicking on malformed input.
func MaybeParse(s string) (Hash, bool) {
	if len(s) != StringLen {
		return emptyHash, false
	}
	buf := make([]byte, encoding.DecodedLen(len(s)))
	n, err := encoding.Decode(buf, []byte(strings.ToLower(s)))
	if err != nil || n < ByteLen {
		return emptyHash, false
	}
	var h Hash
	copy(h[:], buf[:ByteLen])
	return h, true
}

// String returns the base32 textual form of h.
func (h Hash) String() string {
	return encoding.EncodeToString(h[:])
}

// IsEmpty reports whether h is the all-zero digest.
func (h Hash) IsEmpty() bool {
	return h == emptyHash
}

// Bytes returns the raw digest bytes, suitable for a BINARY(32) column.
func (h Hash) Bytes() []byte {
	b := make([]byte, ByteLen)
	copy(b, h[:])
	return b
}

// FromBytes constructs a Hash from exactly ByteLen bytes, returning an
// error instead of panicking on malformed input (use New when the caller
// already guarantees the length, e.g. a literal in a test).
func FromBytes(b []byte) (Hash, error) {
	if len(b) != ByteLen {
		return emptyHash, errWrongLength(len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// Less reports whether h sorts before other in the total byte-wise order
// used by segment and id-map range scans.
func (h Hash) Less(other Hash) bool {
	return h.Compare(other) < 0
}

// Compare returns -1, 0 or 1 as h is less than, equal to, or greater than
// other, by byte-wise comparison.
func (h Hash) Compare(other Hash) int {
	for i := range h {
		if h[i] != other[i] {
			if h[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
