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

package cacheblob

import (
	"context"
	"sync"
	"time"
)

// InProcessLease is a LeaseOps good for a single process: tests, or a
// deployment that accepts only in-process write exclusion because it has
// no shared cache tier to coordinate a lease across hosts. It keeps a
// per-key subscriber channel rather than a single mutex-guarded map of
// key state, so WaitForOtherLeases can block on a channel instead of
// holding a global lock across the wait.
type InProcessLease struct {
	mu      sync.Mutex
	holders map[string]chan struct{}
}

// NewInProcessLease returns an empty LeaseOps.
func NewInProcessLease() *InProcessLease {
	return &InProcessLease{holders: make(map[string]chan struct{})}
}

func (l *InProcessLease) TryAddPutLease(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.holders[key]; held {
		return false, nil
	}
	l.holders[key] = make(chan struct{})
	return true, nil
}

func (l *InProcessLease) subscriber(key string) (chan struct{}, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, held := l.holders[key]
	return ch, held
}

func (l *InProcessLease) WaitForOtherLeases(ctx context.Context, key string) error {
	ch, held := l.subscriber(key)
	if !held {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(50 * time.Millisecond):
		// No notification method beyond the release channel itself;
		// bound the wait so a lost wakeup can't hang a caller forever.
		return nil
	}
}

func (l *InProcessLease) ReleaseLease(_ context.Context, key string) {
	l.mu.Lock()
	ch, held := l.holders[key]
	if held {
		delete(l.holders, key)
	}
	l.mu.Unlock()
	if held {
		close(ch)
	}
}

func (l *InProcessLease) RenewLeaseUntil(ctx context.Context, key string, done <-chan struct{}) {
	go func() {
		select {
		case <-done:
		case <-ctx.Done():
		}
		l.ReleaseLease(context.Background(), key)
	}()
}
