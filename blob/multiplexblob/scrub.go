// Copyright (c) Facebook, Inc. and its affiliates.
//
// This software may be used and distributed according to the terms of the
// GNU General Public License version 2.

package multiplexblob

import (
	"bytes"
	"context"
	"sort"

	"github.com/zeebo/blake3"
)

// ScrubGet waits for every backing store's read instead of racing them,
// and compares the results. It is a non-production consistency-auditing
// mode: a multiplexer used for live traffic calls Get, not ScrubGet.
// When every store reports the key missing and none errors, it returns
// (nil, nil).
func (s *Store) ScrubGet(ctx context.Context, key string) ([]byte, error) {
	type scrubResult struct {
		id    BlobstoreID
		value []byte
		ok    bool
		err   error
	}

	n := len(s.order)
	results := make(chan scrubResult, n)
	for _, id := range s.order {
		id := id
		go func() {
			c, cancel := context.WithTimeout(ctx, s.requestTimeout)
			defer cancel()
			v, ok, err := s.stores[id].Get(c, key)
			results <- scrubResult{id: id, value: v, ok: ok, err: err}
		}()
	}

	errs := make(map[BlobstoreID]error)
	var answered []BlobstoreID
	var missing []BlobstoreID
	var bestValue []byte
	var bestFingerprint [32]byte
	haveBest := false
	allSame := true

	for i := 0; i < n; i++ {
		r := <-results
		if r.err != nil {
			errs[r.id] = r.err
			continue
		}
		if !r.ok {
			missing = append(missing, r.id)
			continue
		}
		answered = append(answered, r.id)
		// Large values are fingerprinted first so disagreement is cheap
		// to detect before paying for a full byte comparison.
		fp := blake3.Sum256(r.value)
		if !haveBest {
			bestValue, bestFingerprint, haveBest = r.value, fp, true
			continue
		}
		if fp != bestFingerprint || !bytes.Equal(r.value, bestValue) {
			allSame = false
		}
	}

	sort.Slice(answered, func(i, j int) bool { return answered[i] < answered[j] })
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

	if len(answered) == 0 {
		if len(errs) == 0 {
			return nil, nil
		}
		if len(errs) == n {
			return nil, &AllFailed{Errors: errs}
		}
		return nil, &SomeFailedOthersNone{Errors: errs}
	}
	if !allSame {
		return nil, &ValueMismatch{Differ: answered, Missing: missing}
	}
	if len(missing) > 0 {
		return nil, &SomeMissingItem{Missing: missing, BestValue: bestValue}
	}
	return bestValue, nil
}
