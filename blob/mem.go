// Copyright 2016 Attic Labs, Inc. All rights reserved.
// Licensed under the Apache License, version 2.0:
// http://www.apache.org/licenses/LICENSE-2.0

package blob

import (
	"context"
	"sync"
)

// Mem is an in-memory Blobstore, grounded in dolt's chunks.memoryStore: a
// mutex-guarded map used as the backing store in unit tests and as a
// lightweight development-mode blobstore behind the multiplexer.
type Mem struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMem returns an empty in-memory Blobstore.
func NewMem() *Mem {
	return &Mem{values: make(map[string][]byte)}
}

func (m *Mem) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *Mem) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = cp
	return nil
}

func (m *Mem) IsPresent(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok, nil
}

// Len returns the number of distinct keys stored. Test helper only.
func (m *Mem) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
