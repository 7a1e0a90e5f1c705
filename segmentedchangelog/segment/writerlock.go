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

package segment

import (
	"context"
	"sync"
	"time"

	"github.com/dolthub/fslock"

	"github.com/mononoke-go/corestore/internal/ctxlog"
)

// WriterLock serializes the one writer that appends new segments for a
// repository. When lockPath is non-empty, exclusion is cross-process via
// an fslock file; when it's empty, exclusion falls back to an in-process
// mutex and a single warning is logged the first time the lock is taken,
// since nothing then prevents a second process from writing concurrently.
type WriterLock struct {
	lockPath string
	mu       sync.Mutex
	warnOnce sync.Once
}

// NewWriterLock returns a WriterLock. An empty lockPath means
// cross-process exclusion is not configured.
func NewWriterLock(lockPath string) *WriterLock {
	return &WriterLock{lockPath: lockPath}
}

// Lock acquires the writer lock; the returned func releases it. With a
// lock path it blocks until the file lock is acquired or timeout elapses
// (a non-positive timeout waits indefinitely). Without one it blocks on the
// in-process mutex until acquired, and timeout is not consulted. ctx is
// used only for logging: its cancellation does not end the wait.
func (l *WriterLock) Lock(ctx context.Context, timeout time.Duration) (func(), error) {
	if l.lockPath == "" {
		l.warnOnce.Do(func() {
			ctxlog.From(ctx).Warn().Msg("segmentedchangelog: no writer lock path configured, using in-process exclusion only")
		})
		l.mu.Lock()
		return l.mu.Unlock, nil
	}

	lck := fslock.New(l.lockPath)
	var err error
	if timeout > 0 {
		err = lck.LockWithTimeout(timeout)
	} else {
		err = lck.Lock()
	}
	if err != nil {
		return nil, err
	}
	return func() { _ = lck.Unlock() }, nil
}
