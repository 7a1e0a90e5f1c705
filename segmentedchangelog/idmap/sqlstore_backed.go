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

package idmap

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/mononoke-go/corestore/internal/retry"
	"github.com/mononoke-go/corestore/internal/sqlstore"
	"github.com/mononoke-go/corestore/typedhash"
)

// SQLStore is the production Store backed by the segmented_changelog_idmap
// table and internal/sqlstore's mutable_counters-based vertex allocator.
type SQLStore struct {
	db           *sqlx.DB
	conflictRead retry.Config
}

// SQLStoreOption configures an SQLStore at construction time.
type SQLStoreOption func(*SQLStore)

// WithConflictReadRetry overrides the retry budget Insert uses when a
// duplicate-key conflict's follow-up read races a lagging replica.
func WithConflictReadRetry(cfg retry.Config) SQLStoreOption {
	return func(s *SQLStore) { s.conflictRead = cfg }
}

// NewSQLStore wraps db with the Store interface.
func NewSQLStore(db *sqlx.DB, opts ...SQLStoreOption) *SQLStore {
	s := &SQLStore{db: db, conflictRead: retry.DefaultConfig}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*SQLStore)(nil)

func (s *SQLStore) Insert(ctx context.Context, repoID int64, csID typedhash.ChangesetID) (Vertex, error) {
	next, err := sqlstore.NextVertex(ctx, s.db, repoID)
	if err != nil {
		return 0, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO segmented_changelog_idmap (repo_id, vertex, cs_id) VALUES (?, ?, ?)`,
		repoID, next, csID.Hash().Bytes())
	if err == nil {
		return Vertex(next), nil
	}
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return 0, err
	}
	// Someone else inserted this changeset first. Its row may not yet be
	// visible on a lagging replica, so retry the read within a bounded
	// budget before giving up and surfacing the original conflict.
	var vertex Vertex
	retryErr := retry.Do(ctx, s.conflictRead, func() error {
		v, ok, lookupErr := s.VertexForChangeset(ctx, repoID, csID)
		if lookupErr != nil {
			return backoff.Permanent(lookupErr)
		}
		if !ok {
			return errConflictRowNotYetVisible
		}
		vertex = v
		return nil
	})
	if retryErr != nil {
		return 0, err
	}
	return vertex, nil
}

var errConflictRowNotYetVisible = errors.New("idmap: conflicting row not yet visible on replica")

func (s *SQLStore) VertexForChangeset(ctx context.Context, repoID int64, csID typedhash.ChangesetID) (Vertex, bool, error) {
	var vertex int64
	err := s.db.GetContext(ctx, &vertex,
		`SELECT vertex FROM segmented_changelog_idmap WHERE repo_id = ? AND cs_id = ?`,
		repoID, csID.Hash().Bytes())
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return Vertex(vertex), true, nil
}

func (s *SQLStore) ChangesetForVertex(ctx context.Context, repoID int64, vertex Vertex) (typedhash.ChangesetID, bool, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw,
		`SELECT cs_id FROM segmented_changelog_idmap WHERE repo_id = ? AND vertex = ?`,
		repoID, int64(vertex))
	if errors.Is(err, sql.ErrNoRows) {
		return typedhash.ChangesetID{}, false, nil
	}
	if err != nil {
		return typedhash.ChangesetID{}, false, err
	}
	id, err := typedhash.ChangesetIDFromBytes(raw)
	if err != nil {
		return typedhash.ChangesetID{}, false, err
	}
	return id, true, nil
}
