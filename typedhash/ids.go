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

package typedhash

import "github.com/mononoke-go/corestore/hash"

// Each category named here addresses one kind of stored value:
// ChangesetID -> a bonsai changeset,
// ContentID -> file contents, ContentChunkID -> one chunk of large file
// contents, RawBundle2ID -> an opaque Mercurial bundle2 blob captured
// verbatim during import, FileUnodeID/ManifestUnodeID -> unode derived
// data, DeletedManifestID/FsnodeID -> manifest-shaped derived data,
// FastlogBatchID -> batched file history, BlameID -> line-provenance
// derived data, ContentMetadataID -> metadata about a ContentID's bytes.
// Only ChangesetID, RawBundle2ID and ContentMetadataID have a value type
// with a codec in this module.

type changesetCategory struct{}

func (changesetCategory) prefix() string { return "changeset.blake2" }

// ChangesetID addresses a stored bonsai changeset.
type ChangesetID = ID[changesetCategory]

// NewChangesetID wraps an existing digest as a ChangesetID.
func NewChangesetID(h hash.Hash) ChangesetID {
	return FromHash[changesetCategory](h)
}

// ChangesetIDFromBytes decodes raw digest bytes (e.g. a BINARY(32) column
// value) as a ChangesetID.
func ChangesetIDFromBytes(b []byte) (ChangesetID, error) {
	h, err := hash.FromBytes(b)
	if err != nil {
		return ChangesetID{}, err
	}
	return NewChangesetID(h), nil
}

type contentCategory struct{}

func (contentCategory) prefix() string { return "content.blake2" }

// ContentID addresses stored file contents.
type ContentID = ID[contentCategory]

// NewContentID wraps an existing digest as a ContentID.
func NewContentID(h hash.Hash) ContentID {
	return FromHash[contentCategory](h)
}

type contentChunkCategory struct{}

func (contentChunkCategory) prefix() string { return "chunk.blake2" }

// ContentChunkID addresses one chunk of a large file's contents.
type ContentChunkID = ID[contentChunkCategory]

// NewContentChunkID wraps an existing digest as a ContentChunkID.
func NewContentChunkID(h hash.Hash) ContentChunkID {
	return FromHash[contentChunkCategory](h)
}

type rawBundle2Category struct{}

func (rawBundle2Category) prefix() string { return "rawbundle2.blake2" }

// RawBundle2ID addresses a raw Mercurial bundle2 blob stored verbatim.
type RawBundle2ID = ID[rawBundle2Category]

// NewRawBundle2ID wraps an existing digest as a RawBundle2ID.
func NewRawBundle2ID(h hash.Hash) RawBundle2ID {
	return FromHash[rawBundle2Category](h)
}

type fileUnodeCategory struct{}

func (fileUnodeCategory) prefix() string { return "fileunode.blake2" }

// FileUnodeID addresses a derived file-unode record.
type FileUnodeID = ID[fileUnodeCategory]

// NewFileUnodeID wraps an existing digest as a FileUnodeID.
func NewFileUnodeID(h hash.Hash) FileUnodeID {
	return FromHash[fileUnodeCategory](h)
}

type manifestUnodeCategory struct{}

func (manifestUnodeCategory) prefix() string { return "manifestunode.blake2" }

// ManifestUnodeID addresses a derived manifest-unode record.
type ManifestUnodeID = ID[manifestUnodeCategory]

// NewManifestUnodeID wraps an existing digest as a ManifestUnodeID.
func NewManifestUnodeID(h hash.Hash) ManifestUnodeID {
	return FromHash[manifestUnodeCategory](h)
}

type deletedManifestCategory struct{}

func (deletedManifestCategory) prefix() string { return "deletedmanifest.blake2" }

// DeletedManifestID addresses a derived deleted-files manifest.
type DeletedManifestID = ID[deletedManifestCategory]

// NewDeletedManifestID wraps an existing digest as a DeletedManifestID.
func NewDeletedManifestID(h hash.Hash) DeletedManifestID {
	return FromHash[deletedManifestCategory](h)
}

type fsnodeCategory struct{}

func (fsnodeCategory) prefix() string { return "fsnode.blake2" }

// FsnodeID addresses a derived fsnode (file-metadata-only manifest) record.
type FsnodeID = ID[fsnodeCategory]

// NewFsnodeID wraps an existing digest as a FsnodeID.
func NewFsnodeID(h hash.Hash) FsnodeID {
	return FromHash[fsnodeCategory](h)
}

type fastlogBatchCategory struct{}

func (fastlogBatchCategory) prefix() string { return "fastlogbatch.blake2" }

// FastlogBatchID addresses a batch of precomputed file-history entries.
type FastlogBatchID = ID[fastlogBatchCategory]

// NewFastlogBatchID wraps an existing digest as a FastlogBatchID.
func NewFastlogBatchID(h hash.Hash) FastlogBatchID {
	return FromHash[fastlogBatchCategory](h)
}

type blameCategory struct{}

func (blameCategory) prefix() string { return "blame.blake2" }

// BlameID addresses a derived line-provenance record.
type BlameID = ID[blameCategory]

// NewBlameID wraps an existing digest as a BlameID.
func NewBlameID(h hash.Hash) BlameID {
	return FromHash[blameCategory](h)
}

type contentMetadataCategory struct{}

func (contentMetadataCategory) prefix() string { return "content_metadata.blake2" }

// ContentMetadataID addresses metadata describing a ContentID's bytes
// (size, detected type, line-ending style, ...). It shares its digest with
// the ContentID it describes rather than hashing its own encoded form, so
// looking up a content's metadata never requires a reverse index; see
// ContentMetadataIDFromContentID.
type ContentMetadataID = ID[contentMetadataCategory]

// ContentMetadataIDFromContentID derives the metadata id for a content id.
// The two ids are equal bit-for-bit under their category prefixes, so this
// is a relabeling, not a hash computation.
func ContentMetadataIDFromContentID(id ContentID) ContentMetadataID {
	return FromHash[contentMetadataCategory](id.Hash())
}
