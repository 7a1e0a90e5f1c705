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

// Package dynamoblob implements a Blobstore backed by a single DynamoDB
// table, for small values (manifest roots, lease records) where S3's
// per-request latency isn't worth paying. Values at or over ItemSizeLimit
// are rejected rather than silently truncated, mirroring how dolt treats
// DynamoDB as a small-item side table next to S3's bulk chunk storage.
package dynamoblob

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mononoke-go/corestore/blob"
)

// ItemSizeLimit is DynamoDB's per-item size ceiling. Values at or beyond
// it belong in s3blob instead.
const ItemSizeLimit = 400 * 1024

const (
	keyAttr  = "key"
	dataAttr = "data"
)

// API is the subset of *dynamodb.Client this package calls.
type API interface {
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store is a Blobstore backed by one DynamoDB table, keyed by a single
// string partition key named "key" holding a binary "data" attribute.
type Store struct {
	client API
	table  string
}

// New returns a Store reading and writing items in table.
func New(client API, table string) *Store {
	return &Store{client: client, table: table}
}

var _ blob.Blobstore = (*Store)(nil)

// Get implements blob.Blobstore.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, false, err
	}
	if out.Item == nil {
		return nil, false, nil
	}
	data, ok := out.Item[dataAttr].(*types.AttributeValueMemberB)
	if !ok {
		return nil, false, fmt.Errorf("dynamoblob: item %q missing %q attribute", key, dataAttr)
	}
	return data.Value, true, nil
}

// Put implements blob.Blobstore.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if len(value) >= ItemSizeLimit {
		return fmt.Errorf("dynamoblob: value for %q is %d bytes, at or over the %d byte item limit", key, len(value), ItemSizeLimit)
	}
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			keyAttr:  &types.AttributeValueMemberS{Value: key},
			dataAttr: &types.AttributeValueMemberB{Value: value},
		},
	})
	return err
}

// IsPresent implements blob.Blobstore. DynamoDB has no lightweight
// existence-only read, so this fetches the full item and discards the
// value, same as a HeadObject-less S3 client would have to.
func (s *Store) IsPresent(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}
