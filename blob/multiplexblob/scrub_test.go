// Copyright (c) Facebook, Inc. and its affiliates.
//
// This software may be used and distributed according to the terms of the
// GNU General Public License version 2.

package multiplexblob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mononoke-go/corestore/blob"
)

func TestScrubGetAgreementReturnsValue(t *testing.T) {
	a, b := blob.NewMem(), blob.NewMem()
	require.NoError(t, a.Put(context.Background(), "k", []byte("v")))
	require.NoError(t, b.Put(context.Background(), "k", []byte("v")))
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, &fakeQueue{})

	v, err := s.ScrubGet(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestScrubGetValueMismatch(t *testing.T) {
	a, b := blob.NewMem(), blob.NewMem()
	require.NoError(t, a.Put(context.Background(), "k", []byte("v1")))
	require.NoError(t, b.Put(context.Background(), "k", []byte("v2")))
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, &fakeQueue{})

	_, err := s.ScrubGet(context.Background(), "k")
	require.Error(t, err)
	var mismatch *ValueMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.ElementsMatch(t, []BlobstoreID{"a", "b"}, mismatch.Differ)
}

func TestScrubGetSomeMissingItem(t *testing.T) {
	a, b := blob.NewMem(), blob.NewMem()
	require.NoError(t, a.Put(context.Background(), "k", []byte("v")))
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, &fakeQueue{})

	_, err := s.ScrubGet(context.Background(), "k")
	require.Error(t, err)
	var missing *SomeMissingItem
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []byte("v"), missing.BestValue)
	assert.Equal(t, []BlobstoreID{"b"}, missing.Missing)
}

func TestScrubGetAllFailed(t *testing.T) {
	a := &failingBlobstore{err: assertErr}
	b := &failingBlobstore{err: assertErr}
	s := New("mx1", map[BlobstoreID]blob.Blobstore{"a": a, "b": b}, []BlobstoreID{"a", "b"}, &fakeQueue{})

	_, err := s.ScrubGet(context.Background(), "k")
	require.Error(t, err)
	var allFailed *AllFailed
	require.ErrorAs(t, err, &allFailed)
}

var assertErr = &scrubError{"boom"}

type scrubError struct{ msg string }

func (e *scrubError) Error() string { return e.msg }
