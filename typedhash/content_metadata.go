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
	"encoding/json"

	"github.com/mononoke-go/corestore/blob"
)

// ContentMetadataJSON is a plain JSON envelope describing a ContentID's
// bytes: size, alternate checksums for wire-protocol interop, and a cheap
// binary-content guess. It is consumed by import/export tooling, not by a
// network handler, so it is a pure encode/decode pair with no transport
// framing of its own.
type ContentMetadataJSON struct {
	ContentID  string `json:"content_id"`
	TotalSize  uint64 `json:"total_size"`
	SHA1       string `json:"sha1,omitempty"`
	SHA256     string `json:"sha256,omitempty"`
	GitSHA1    string `json:"git_sha1,omitempty"`
	IsBinary   bool   `json:"is_binary"`
	EndingType string `json:"ending_type,omitempty"`
}

// ContentMetadataJSONCodec marshals/unmarshals ContentMetadataJSON as
// plain JSON, for storage under a ContentMetadataID.
type ContentMetadataJSONCodec struct{}

func (ContentMetadataJSONCodec) Encode(v ContentMetadataJSON) ([]byte, error) {
	return json.Marshal(v)
}

func (ContentMetadataJSONCodec) Decode(b []byte) (ContentMetadataJSON, error) {
	var v ContentMetadataJSON
	err := json.Unmarshal(b, &v)
	return v, err
}

// StoreContentMetadata writes metadata under the id derived from contentID
// (not from hashing metadata's own bytes): ContentMetadataID shares its
// digest with the ContentID it describes, so this is a direct Put rather
// than a call to the generic content-addressed Store.
func StoreContentMetadata(ctx context.Context, bs blob.Blobstore, contentID ContentID, metadata ContentMetadataJSON) (ContentMetadataID, error) {
	id := ContentMetadataIDFromContentID(contentID)
	b, err := (ContentMetadataJSONCodec{}).Encode(metadata)
	if err != nil {
		return ContentMetadataID{}, err
	}
	if err := bs.Put(ctx, id.BlobstoreKey(), b); err != nil {
		return ContentMetadataID{}, err
	}
	return id, nil
}
