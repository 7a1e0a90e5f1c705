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

// Package typedhash wraps hash.Hash with a compile-time category tag, so a
// ContentID and a ChangesetID can't be accidentally interchanged even
// though both are Blake2-256 digests underneath. Every category has a
// stable blobstore key prefix derived from its name, matching the
// "category.blake2.<hex>" key namespace convention.
package typedhash

import (
	"encoding/hex"

	"github.com/mononoke-go/corestore/hash"
)

// Category is a zero-sized marker type naming one digest category and its
// blobstore key prefix. Implementations are unexported structs declared
// alongside the ID type alias that uses them, e.g. changesetCategory next
// to ChangesetID.
type Category interface {
	prefix() string
}

// ID is a Category-tagged content digest. The zero value is the all-zero
// hash, matching hash.Hash's zero value.
type ID[C Category] struct {
	h hash.Hash
}

// FromHash wraps an already-computed digest in category C. Used when the
// digest is derived rather than computed by hashing this value's own
// encoded bytes (see ContentMetadataIDFromContentID).
func FromHash[C Category](h hash.Hash) ID[C] {
	return ID[C]{h: h}
}

// Hash returns the underlying untagged digest.
func (id ID[C]) Hash() hash.Hash { return id.h }

// String returns the digest's base32 form, with no category prefix.
func (id ID[C]) String() string { return id.h.String() }

// IsEmpty reports whether id is the zero value.
func (id ID[C]) IsEmpty() bool { return id.h.IsEmpty() }

// BlobstoreKey returns the key this id is stored under: "<prefix>.<hex>".
func (id ID[C]) BlobstoreKey() string {
	var c C
	return c.prefix() + "." + hex.EncodeToString(id.h[:])
}

// BlobstoreKeyPrefix returns the key prefix shared by every ID in category
// C, useful for prefix-scanning a blobstore for all values of one kind.
func BlobstoreKeyPrefix[C Category]() string {
	var c C
	return c.prefix() + "."
}
