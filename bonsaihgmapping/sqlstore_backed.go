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

package bonsaihgmapping

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/mononoke-go/corestore/hash"
	"github.com/mononoke-go/corestore/hgchangeset"
	"github.com/mononoke-go/corestore/typedhash"
)

// SQLStore is the production Store backed by the bonsai_hg_mapping table
// created by internal/sqlstore.EnsureSchema.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps db with the Store interface.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

var _ Store = (*SQLStore)(nil)

func (s *SQLStore) InsertIfAbsent(ctx context.Context, entry Entry) (bool, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bonsai_hg_mapping (repo_id, hg_cs_id, bcs_id) VALUES (?, ?, ?)`,
		entry.RepoID, entry.HgCsID[:], entry.BcsID.Hash().Bytes())
	if err == nil {
		return true, nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		// Duplicate entry for a primary or unique key: someone else won
		// the race, or this is a retry of an already-applied Add.
		return false, nil
	}
	return false, err
}

func (s *SQLStore) ByBonsai(ctx context.Context, repoID RepoID, bcsID typedhash.ChangesetID) (Entry, bool, error) {
	var row mappingRow
	err := s.db.GetContext(ctx, &row,
		`SELECT repo_id, hg_cs_id, bcs_id FROM bonsai_hg_mapping WHERE repo_id = ? AND bcs_id = ?`,
		repoID, bcsID.Hash().Bytes())
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	entry, err := row.toEntry()
	return entry, true, err
}

func (s *SQLStore) ByHg(ctx context.Context, repoID RepoID, hgCsID hgchangeset.NodeID) (Entry, bool, error) {
	var row mappingRow
	err := s.db.GetContext(ctx, &row,
		`SELECT repo_id, hg_cs_id, bcs_id FROM bonsai_hg_mapping WHERE repo_id = ? AND hg_cs_id = ?`,
		repoID, hgCsID[:])
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	entry, err := row.toEntry()
	return entry, true, err
}

// BonsaiIDsInRange resolves a short bcs_id prefix via a BINARY BETWEEN
// range scan, the SQL-native way to answer a lexicographic range query
// over a fixed-width binary column.
func (s *SQLStore) BonsaiIDsInRange(ctx context.Context, repoID RepoID, lo, hi hash.Hash) ([]typedhash.ChangesetID, error) {
	var rows [][]byte
	err := s.db.SelectContext(ctx, &rows,
		`SELECT bcs_id FROM bonsai_hg_mapping WHERE repo_id = ? AND bcs_id BETWEEN ? AND ? ORDER BY bcs_id`,
		repoID, lo.Bytes(), hi.Bytes())
	if err != nil {
		return nil, err
	}
	ids := make([]typedhash.ChangesetID, len(rows))
	for i, b := range rows {
		id, err := typedhash.ChangesetIDFromBytes(b)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

type mappingRow struct {
	RepoID int64  `db:"repo_id"`
	HgCsID []byte `db:"hg_cs_id"`
	BcsID  []byte `db:"bcs_id"`
}

func (r mappingRow) toEntry() (Entry, error) {
	node, err := hgchangeset.NodeIDFromBytes(r.HgCsID)
	if err != nil {
		return Entry{}, err
	}
	h, err := typedhash.ChangesetIDFromBytes(r.BcsID)
	if err != nil {
		return Entry{}, err
	}
	return Entry{RepoID: RepoID(r.RepoID), HgCsID: node, BcsID: h}, nil
}
