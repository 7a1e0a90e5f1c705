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
	"fmt"

	"github.com/mononoke-go/corestore/blob"
	"github.com/mononoke-go/corestore/hash"
)

// Codec encodes and decodes one value type to and from the bytes stored
// under its typed-hash key.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(b []byte) (V, error)
}

// MissingError is returned by Load when the blobstore has no value for id.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string { return "typedhash: missing blobstore key " + e.Key }

// Load fetches and decodes the value addressed by id, implementing the
// Loadable side of the category: a typed-hash id plus a blobstore is
// enough to recover the value it addresses.
func Load[C Category, V any](ctx context.Context, bs blob.Blobstore, id ID[C], codec Codec[V]) (V, error) {
	var zero V
	b, ok, err := bs.Get(ctx, id.BlobstoreKey())
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, &MissingError{Key: id.BlobstoreKey()}
	}
	v, err := codec.Decode(b)
	if err != nil {
		return zero, fmt.Errorf("typedhash: decode %s: %w", id.BlobstoreKey(), err)
	}
	return v, nil
}

// Store encodes v and writes it under the id computed from its own
// encoded bytes, implementing the Storable side of the category: the
// value determines its own address by content.
func Store[C Category, V any](ctx context.Context, bs blob.Blobstore, codec Codec[V], v V) (ID[C], error) {
	var zero ID[C]
	b, err := codec.Encode(v)
	if err != nil {
		return zero, err
	}
	id := FromHash[C](hash.Of(b))
	if err := bs.Put(ctx, id.BlobstoreKey(), b); err != nil {
		return zero, err
	}
	return id, nil
}
