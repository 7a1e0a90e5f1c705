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

package multiplexblob

import (
	"fmt"
	"sort"
	"strings"
)

// SomeFailedOthersNone is returned by Get/IsPresent when every backing
// store that didn't error reported no value, but at least one did error.
type SomeFailedOthersNone struct {
	Errors map[BlobstoreID]error
}

func (e *SomeFailedOthersNone) Error() string {
	return fmt.Sprintf("multiplexblob: some blobstores failed, others returned none: %s", formatErrs(e.Errors))
}

// AllFailed is returned by Get/IsPresent when every backing store errored.
type AllFailed struct {
	Errors map[BlobstoreID]error
}

func (e *AllFailed) Error() string {
	return fmt.Sprintf("multiplexblob: all blobstores failed: %s", formatErrs(e.Errors))
}

// ValueMismatch is returned by ScrubGet when backing stores disagree on
// the value for a key.
type ValueMismatch struct {
	// Differ is the set of blobstore ids that answered with a value, not
	// all of which agreed.
	Differ []BlobstoreID
	// Missing is the set of blobstore ids that answered with no value.
	Missing []BlobstoreID
}

func (e *ValueMismatch) Error() string {
	return fmt.Sprintf("multiplexblob: blobstores disagree on value: differ=%v missing=%v", e.Differ, e.Missing)
}

// SomeMissingItem is returned by ScrubGet when some backing stores are
// missing a key that others have, but every store that did answer agrees
// on the value. BestValue carries that agreed-upon value so a scrub
// repair job can backfill the missing stores without a second read.
type SomeMissingItem struct {
	Missing   []BlobstoreID
	BestValue []byte
}

func (e *SomeMissingItem) Error() string {
	return fmt.Sprintf("multiplexblob: %d blobstore(s) missing item, value available for repair", len(e.Missing))
}

func formatErrs(errs map[BlobstoreID]error) string {
	ids := make([]string, 0, len(errs))
	for id := range errs {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: %v", id, errs[BlobstoreID(id)]))
	}
	return strings.Join(parts, "; ")
}
