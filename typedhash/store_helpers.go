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

import (
	"context"

	"github.com/mononoke-go/corestore/blob"
)

// Store's category type parameter appears only in its return type, so Go
// cannot infer it from the call arguments; callers outside this package
// can't name the unexported category marker types to instantiate it
// directly. These per-category wrappers close over the marker so other
// packages can store a value under its typed-hash id without reaching
// into typedhash internals.

// StoreChangeset stores v under the ChangesetID computed from its encoding.
func StoreChangeset[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (ChangesetID, error) {
	return Store[changesetCategory](ctx, bs, codec, v)
}

// StoreContent stores v under the ContentID computed from its encoding.
func StoreContent[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (ContentID, error) {
	return Store[contentCategory](ctx, bs, codec, v)
}

// StoreContentChunk stores v under the ContentChunkID computed from its encoding.
func StoreContentChunk[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (ContentChunkID, error) {
	return Store[contentChunkCategory](ctx, bs, codec, v)
}

// StoreRawBundle2 stores v under the RawBundle2ID computed from its encoding.
func StoreRawBundle2[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (RawBundle2ID, error) {
	return Store[rawBundle2Category](ctx, bs, codec, v)
}

// StoreFileUnode stores v under the FileUnodeID computed from its encoding.
func StoreFileUnode[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (FileUnodeID, error) {
	return Store[fileUnodeCategory](ctx, bs, codec, v)
}

// StoreManifestUnode stores v under the ManifestUnodeID computed from its encoding.
func StoreManifestUnode[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (ManifestUnodeID, error) {
	return Store[manifestUnodeCategory](ctx, bs, codec, v)
}

// StoreDeletedManifest stores v under the DeletedManifestID computed from its encoding.
func StoreDeletedManifest[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (DeletedManifestID, error) {
	return Store[deletedManifestCategory](ctx, bs, codec, v)
}

// StoreFsnode stores v under the FsnodeID computed from its encoding.
func StoreFsnode[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (FsnodeID, error) {
	return Store[fsnodeCategory](ctx, bs, codec, v)
}

// StoreFastlogBatch stores v under the FastlogBatchID computed from its encoding.
func StoreFastlogBatch[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (FastlogBatchID, error) {
	return Store[fastlogBatchCategory](ctx, bs, codec, v)
}

// StoreBlame stores v under the BlameID computed from its encoding.
func StoreBlame[V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (BlameID, error) {
	return Store[blameCategory](ctx, bs, codec, v)
}
