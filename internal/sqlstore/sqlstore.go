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

// Package sqlstore holds the sqlx connection plumbing shared by every
// SQL-backed component (bonsaihgmapping, segmentedchangelog/idmap): a
// thin wrapper that opens a MySQL-compatible handle and the
// mutable_counters table used for monotonic id allocation.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to a MySQL-compatible database at dsn, the same
// sqlx.MustOpen("mysql", dsn) shape used elsewhere in the ecosystem, but
// propagating the connection error instead of panicking.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables this module owns if they don't already
// exist. Callers that manage migrations externally can skip this.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: ensure schema: %w", err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS mutable_counters (
		repo_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		value BIGINT NOT NULL,
		PRIMARY KEY (repo_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS bonsai_hg_mapping (
		repo_id BIGINT NOT NULL,
		hg_cs_id BINARY(20) NOT NULL,
		bcs_id BINARY(32) NOT NULL,
		PRIMARY KEY (repo_id, bcs_id),
		UNIQUE KEY hg_cs_unique (repo_id, hg_cs_id)
	)`,
	`CREATE TABLE IF NOT EXISTS segmented_changelog_idmap (
		repo_id BIGINT NOT NULL,
		vertex BIGINT NOT NULL,
		cs_id BINARY(32) NOT NULL,
		PRIMARY KEY (repo_id, vertex),
		UNIQUE KEY cs_id_unique (repo_id, cs_id)
	)`,
}
