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

package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// GetCounter returns the current value of name for repoID, and whether it
// exists at all.
func GetCounter(ctx context.Context, db *sqlx.DB, repoID int64, name string) (int64, bool, error) {
	var value int64
	err := db.GetContext(ctx, &value,
		`SELECT value FROM mutable_counters WHERE repo_id = ? AND name = ?`, repoID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// NextVertex allocates the next monotonically increasing vertex number
// for repoID's segmented changelog id-map, starting at 0. It is safe for
// concurrent callers against the same repoID because the counter row is
// read with SELECT ... FOR UPDATE, so each caller's read-then-increment
// holds the row lock until its transaction commits.
func NextVertex(ctx context.Context, db *sqlx.DB, repoID int64) (int64, error) {
	const name = "segmented_changelog_next_vertex"
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO mutable_counters (repo_id, name, value) VALUES (?, ?, 0)
		 ON DUPLICATE KEY UPDATE value = value`, repoID, name); err != nil {
		return 0, err
	}

	var next int64
	if err := tx.GetContext(ctx, &next,
		`SELECT value FROM mutable_counters WHERE repo_id = ? AND name = ? FOR UPDATE`, repoID, name); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE mutable_counters SET value = value + 1 WHERE repo_id = ? AND name = ?`, repoID, name); err != nil {
		return 0, err
	}
	return next, tx.Commit()
}
