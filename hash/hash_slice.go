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

package hash

// HashSlice implements sort.Interface so a batch of digests (e.g. an
// id-map insert_many chunk, or the blobstores-with-entry set from a
// multiplexed scrub) can be sorted into the canonical byte-wise order.
type HashSlice []Hash

func (hs HashSlice) Len() int           { return len(hs) }
func (hs HashSlice) Less(i, j int) bool { return hs[i].Less(hs[j]) }
func (hs HashSlice) Swap(i, j int)      { hs[i], hs[j] = hs[j], hs[i] }

// Equals reports whether hs and other contain the same hashes in the same
// order.
func (hs HashSlice) Equals(other HashSlice) bool {
	if len(hs) != len(other) {
		return false
	}
	for i := range hs {
		if hs[i] != other[i] {
			return false
		}
	}
	return true
}
