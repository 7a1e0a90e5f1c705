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

package s3blob

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeS3() *fakeS3 { return &fakeS3{data: map[string][]byte{}} }

func (f *fakeS3) GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[*input.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(v))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	buf, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[*input.Key] = buf
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, input *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[*input.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestPutThenGetRoundTrips(t *testing.T) {
	store := New(newFakeS3(), "bucket", "")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k1", []byte("hello")))

	v, ok, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("hello"), v)
}

func TestGetMissingKeyIsNotAnError(t *testing.T) {
	store := New(newFakeS3(), "bucket", "")
	v, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestIsPresent(t *testing.T) {
	store := New(newFakeS3(), "bucket", "")
	ctx := context.Background()

	present, err := store.IsPresent(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, present)

	require.NoError(t, store.Put(ctx, "k1", []byte("v")))
	present, err = store.IsPresent(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, present)
}

func TestKeyPrefixNamespacesObjects(t *testing.T) {
	fake := newFakeS3()
	a := New(fake, "bucket", "repoA/")
	b := New(fake, "bucket", "repoB/")
	ctx := context.Background()

	require.NoError(t, a.Put(ctx, "k", []byte("a-value")))

	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "same key under a different prefix must not collide")
}
