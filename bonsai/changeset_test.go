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

package bonsai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mononoke-go/corestore/blob"
	"github.com/mononoke-go/corestore/hash"
	"github.com/mononoke-go/corestore/typedhash"
)

func sampleChangeset() Changeset {
	return Changeset{
		Author:     "alice",
		AuthorDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Message:    "add two files",
		FileChanges: map[string]FileChange{
			"b.txt": NewFile(typedhash.NewContentID(hash.Of([]byte("b"))), FileTypeRegular, 1),
			"a.txt": NewFile(typedhash.NewContentID(hash.Of([]byte("a"))), FileTypeRegular, 1),
		},
	}
}

func TestStoreThenLoadRoundTrips(t *testing.T) {
	bs := blob.NewMem()
	ctx := context.Background()
	cs := sampleChangeset()

	id, err := Store(ctx, bs, cs)
	require.NoError(t, err)

	got, err := Load(ctx, bs, id)
	require.NoError(t, err)
	assert.Equal(t, cs.Author, got.Author)
	assert.Equal(t, cs.Message, got.Message)
	assert.Len(t, got.FileChanges, 2)
}

func TestEncodingIsCanonicalRegardlessOfMapIterationOrder(t *testing.T) {
	cs1 := sampleChangeset()
	cs2 := sampleChangeset()

	b1, err := Codec{}.Encode(cs1)
	require.NoError(t, err)
	b2, err := Codec{}.Encode(cs2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestDeletionHasNoContentID(t *testing.T) {
	fc := NewDeletion()
	assert.True(t, fc.Deleted)
	assert.True(t, fc.ContentID.IsEmpty())
}
