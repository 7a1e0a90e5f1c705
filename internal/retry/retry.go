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

// Package retry wraps cenkalti/backoff/v4 with the two retry shapes this
// module's components need: a bounded exponential backoff for transient
// SQL replica-lag waits, and a context-aware poll loop for the caching
// blobstore's lease-wait protocol.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config bounds a retry loop. A zero InitialInterval or MaxInterval keeps
// the backoff library's default; a zero MaxElapsedTime sets no time bound,
// so the loop runs until success, a permanent error, or ctx is done.
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultConfig is used by the bonsai/hg mapping and id-map replica
// fallbacks: short initial backoff, capped growth, bounded total wait so a
// stuck replica surfaces an error rather than hanging forever.
var DefaultConfig = Config{
	InitialInterval: 10 * time.Millisecond,
	MaxInterval:     500 * time.Millisecond,
	MaxElapsedTime:  5 * time.Second,
}

func (c Config) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.InitialInterval > 0 {
		b.InitialInterval = c.InitialInterval
	}
	if c.MaxInterval > 0 {
		b.MaxInterval = c.MaxInterval
	}
	b.MaxElapsedTime = c.MaxElapsedTime
	return backoff.WithContext(b, ctx)
}

// Do retries fn until it returns a nil error, the config's elapsed-time
// budget is exhausted, or ctx is done. fn signals a non-retriable failure
// by wrapping its error with backoff.Permanent.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	return backoff.Retry(fn, cfg.backoff(ctx))
}

// Poll retries fn, which returns (done, err), until done is true, fn
// returns a non-nil error, or ctx is done. As with Do, a zero
// cfg.MaxElapsedTime sets no elapsed-time budget; callers bound it via ctx
// or cfg.MaxElapsedTime.
// This is the shape the caching blobstore's lease wait loop needs: "keep
// trying to take the lease until either we get it or someone else's write
// makes the key present."
func Poll(ctx context.Context, cfg Config, fn func() (done bool, err error)) error {
	return backoff.Retry(func() error {
		done, err := fn()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !done {
			return errNotDone
		}
		return nil
	}, cfg.backoff(ctx))
}

var errNotDone = notDoneError{}

type notDoneError struct{}

func (notDoneError) Error() string { return "retry: condition not yet satisfied" }
