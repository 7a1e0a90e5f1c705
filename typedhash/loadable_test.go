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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mononoke-go/corestore/blob"
	"github.com/mononoke-go/corestore/hash"
)

func TestStoreThenLoadRoundTripsRawBundle2(t *testing.T) {
	bs := blob.NewMem()
	ctx := context.Background()

	id, err := Store[rawBundle2Category](ctx, bs, RawBundle2Codec{}, RawBundle2{Bytes: []byte("HG20bundle-payload")})
	require.NoError(t, err)

	v, err := Load(ctx, bs, id, RawBundle2Codec{})
	require.NoError(t, err)
	assert.Equal(t, []byte("HG20bundle-payload"), v.Bytes)
}

func TestLoadMissingReturnsMissingError(t *testing.T) {
	bs := blob.NewMem()
	id := FromHash[rawBundle2Category](hash.Of([]byte("nonexistent")))

	_, err := Load(context.Background(), bs, id, RawBundle2Codec{})
	require.Error(t, err)
	var missing *MissingError
	require.ErrorAs(t, err, &missing)
}

func TestStoreIsContentAddressedNotAppendOnly(t *testing.T) {
	bs := blob.NewMem()
	ctx := context.Background()

	id1, err := Store[rawBundle2Category](ctx, bs, RawBundle2Codec{}, RawBundle2{Bytes: []byte("same")})
	require.NoError(t, err)
	id2, err := Store[rawBundle2Category](ctx, bs, RawBundle2Codec{}, RawBundle2{Bytes: []byte("same")})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestStoreContentMetadataRoundTrips(t *testing.T) {
	bs := blob.NewMem()
	ctx := context.Background()
	cid := FromHash[contentCategory](hash.Of([]byte("file bytes")))

	id, err := StoreContentMetadata(ctx, bs, cid, ContentMetadataJSON{
		ContentID: cid.String(),
		TotalSize: 10,
		SHA1:      "deadbeef",
		IsBinary:  false,
	})
	require.NoError(t, err)
	assert.Equal(t, cid.String(), id.String())

	got, err := Load(ctx, bs, id, ContentMetadataJSONCodec{})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.TotalSize)
	assert.Equal(t, "deadbeef", got.SHA1)
}
