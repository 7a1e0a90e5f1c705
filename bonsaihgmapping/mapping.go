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

// Package bonsaihgmapping maintains the bidirectional mapping between a
// repository's bonsai changeset ids and their Mercurial node ids. Adding
// an entry is an idempotent insert-or-ignore: a second Add for the same
// (bcs_id, hg_cs_id) pair succeeds trivially, but an Add that tries to
// pair either id with a *different* counterpart than what's on record is
// a conflict.
package bonsaihgmapping

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"github.com/mononoke-go/corestore/hash"
	"github.com/mononoke-go/corestore/hashprefix"
	"github.com/mononoke-go/corestore/hgchangeset"
	"github.com/mononoke-go/corestore/internal/retry"
	"github.com/mononoke-go/corestore/typedhash"
)

// RepoID identifies one repository's mapping namespace.
type RepoID int64

// Entry is one bonsai<->hg pairing.
type Entry struct {
	RepoID RepoID
	HgCsID hgchangeset.NodeID
	BcsID  typedhash.ChangesetID
}

// ConflictingEntryError is returned by Add when bcs_id or hg_cs_id is
// already mapped to a different counterpart than the one passed in.
type ConflictingEntryError struct {
	Attempted Entry
	Existing  Entry
}

func (e *ConflictingEntryError) Error() string {
	return fmt.Sprintf("bonsaihgmapping: conflicting entry: attempted %+v conflicts with existing %+v", e.Attempted, e.Existing)
}

// Store is the backing persistence for the mapping: a single logical
// table keyed by (repo_id, bcs_id) with a unique constraint on
// (repo_id, hg_cs_id), queried either via a real SQL connection
// (SQLStore) or an in-memory fake for tests.
type Store interface {
	// InsertIfAbsent attempts to insert entry, reporting inserted=true on
	// success. If a row already exists for entry's bcs_id or hg_cs_id (by
	// either key), it returns inserted=false and does not error by
	// itself — the caller compares against the existing row.
	InsertIfAbsent(ctx context.Context, entry Entry) (inserted bool, err error)

	// ByBonsai looks up the existing row for (repoID, bcsID), if any.
	ByBonsai(ctx context.Context, repoID RepoID, bcsID typedhash.ChangesetID) (Entry, bool, error)

	// ByHg looks up the existing row for (repoID, hgCsID), if any.
	ByHg(ctx context.Context, repoID RepoID, hgCsID hgchangeset.NodeID) (Entry, bool, error)

	// BonsaiIDsInRange returns every bcs_id for repoID falling in [lo, hi]
	// (inclusive), for ambiguous short-hash resolution.
	BonsaiIDsInRange(ctx context.Context, repoID RepoID, lo, hi hash.Hash) ([]typedhash.ChangesetID, error)
}

// Mapping is the bonsai<->hg mapping service.
type Mapping struct {
	store            Store
	consistencyRetry retry.Config
}

// Option configures a Mapping.
type Option func(*Mapping)

// WithConsistencyRetry overrides the backoff used by verifyConsistency's
// replica-lag re-reads, e.g. to shorten it in tests.
func WithConsistencyRetry(cfg retry.Config) Option {
	return func(m *Mapping) { m.consistencyRetry = cfg }
}

// New wraps store with the add/conflict-detection semantics.
func New(store Store, opts ...Option) *Mapping {
	m := &Mapping{store: store, consistencyRetry: retry.DefaultConfig}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add idempotently records entry. It returns (true, nil) if this call
// inserted a new row, (false, nil) if the identical mapping was already
// present, and a *ConflictingEntryError if either id in entry is already
// mapped to something else.
func (m *Mapping) Add(ctx context.Context, entry Entry) (bool, error) {
	inserted, err := m.store.InsertIfAbsent(ctx, entry)
	if err != nil {
		return false, err
	}
	if inserted {
		return true, nil
	}
	return false, m.verifyConsistency(ctx, entry)
}

// verifyConsistency re-reads the row(s) that blocked the insert and
// confirms they match entry exactly, matching SqlBonsaiHgMapping's
// verify_consistency: the unique constraint can fire either on bcs_id or
// on hg_cs_id, so both are checked, and any row found that disagrees with
// entry on either half is a ConflictingEntryError.
//
// InsertIfAbsent and these re-reads may land on different replicas, so a
// row the insert just collided with can briefly be invisible to the
// re-read; that looks identical to a genuine concurrent delete unless we
// give replication a moment to catch up, hence the bounded retry.
func (m *Mapping) verifyConsistency(ctx context.Context, entry Entry) error {
	return retry.Do(ctx, m.consistencyRetry, func() error {
		if byBcs, ok, err := m.store.ByBonsai(ctx, entry.RepoID, entry.BcsID); err != nil {
			return backoff.Permanent(err)
		} else if ok {
			if byBcs == entry {
				return nil
			}
			return backoff.Permanent(&ConflictingEntryError{Attempted: entry, Existing: byBcs})
		}
		if byHg, ok, err := m.store.ByHg(ctx, entry.RepoID, entry.HgCsID); err != nil {
			return backoff.Permanent(err)
		} else if ok {
			if byHg == entry {
				return nil
			}
			return backoff.Permanent(&ConflictingEntryError{Attempted: entry, Existing: byHg})
		}
		// Neither lookup found a row. Retry a few times in case of
		// replica lag; if the budget runs out, it's a concurrent delete.
		return fmt.Errorf("bonsaihgmapping: race with concurrent delete for %+v", entry)
	})
}

// GetBonsai resolves a Hg node id to its bonsai changeset id.
func (m *Mapping) GetBonsai(ctx context.Context, repoID RepoID, hgCsID hgchangeset.NodeID) (typedhash.ChangesetID, bool, error) {
	e, ok, err := m.store.ByHg(ctx, repoID, hgCsID)
	return e.BcsID, ok, err
}

// GetHg resolves a bonsai changeset id to its Hg node id.
func (m *Mapping) GetHg(ctx context.Context, repoID RepoID, bcsID typedhash.ChangesetID) (hgchangeset.NodeID, bool, error) {
	e, ok, err := m.store.ByBonsai(ctx, repoID, bcsID)
	return e.HgCsID, ok, err
}

// GetManyHgByPrefix resolves an ambiguous short bonsai hash prefix to
// every entry it could mean: zero entries if nothing matches, exactly one
// if the prefix is unambiguous, more than one if it is not.
func (m *Mapping) GetManyHgByPrefix(ctx context.Context, repoID RepoID, prefix hash.Prefix) ([]Entry, error) {
	ids, err := hashprefix.Resolve(ctx, bonsaiRangeResolver{store: m.store, repoID: repoID}, prefix)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e, ok, err := m.store.ByBonsai(ctx, repoID, typedhash.NewChangesetID(id))
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// bonsaiRangeResolver adapts Store.BonsaiIDsInRange to hashprefix.Resolver.
type bonsaiRangeResolver struct {
	store  Store
	repoID RepoID
}

func (r bonsaiRangeResolver) ResolveRange(ctx context.Context, lo, hi hash.Hash) ([]hash.Hash, error) {
	ids, err := r.store.BonsaiIDsInRange(ctx, r.repoID, lo, hi)
	if err != nil {
		return nil, err
	}
	out := make([]hash.Hash, len(ids))
	for i, id := range ids {
		out[i] = id.Hash()
	}
	return out, nil
}
