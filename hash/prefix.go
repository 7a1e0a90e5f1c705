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

package hash

import "strings"

// Prefix is a textual hash prefix used to resolve a commit or object by
// short hash. It supports range scans over the full keyspace by exposing
// the smallest and largest full Hash consistent with the prefix.
type Prefix string

// ParsePrefix validates s as a prefix of a base32 hash: every character
// must be valid in the hash alphabet and the prefix must not be longer
// than a full hash.
func ParsePrefix(s string) (Prefix, bool) {
	if len(s) == 0 || len(s) > StringLen {
		return "", false
	}
	s = strings.ToLower(s)
	for _, c := range s {
		if !strings.ContainsRune(alphabet, c) {
			return "", false
		}
	}
	return Prefix(s), true
}

const alphabet = "0123456789abcdefghijklmnopqrstuv"

// MinAsRef returns the smallest Hash whose textual form has this prefix,
// by padding with the alphabet's first character.
func (p Prefix) MinAsRef() Hash {
	return p.padded(byte(alphabet[0]))
}

// MaxAsRef returns the largest Hash whose textual form has this prefix, by
// padding with the alphabet's last character.
func (p Prefix) MaxAsRef() Hash {
	return p.padded(byte(alphabet[len(alphabet)-1]))
}

func (p Prefix) padded(fill byte) Hash {
	padded := make([]byte, StringLen)
	copy(padded, []byte(p))
	for i := len(p); i < StringLen; i++ {
		padded[i] = fill
	}
	// padded is guaranteed well-formed: every byte is drawn from the hash
	// alphabet, so MaybeParse cannot fail here.
	h, _ := MaybeParse(string(padded))
	return h
}

func (p Prefix) String() string { return string(p) }
