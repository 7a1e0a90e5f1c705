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

	lru "github.com/hashicorp/golang-lru/v2"
)

// entry is either Present (bytes == nil, known == false) or Known
// (bytes != nil, known == true). Absence from the LRU means Empty.
type entry struct {
	bytes []byte
	known bool
}

// LRUCache is a process-local CacheOps backed by hashicorp/golang-lru/v2.
// Eviction naturally implements the Known -> {Present, Empty} and
// Present -> Empty demotions a cache is allowed to make: an evicted
// Known entry simply disappears (demotes all the way to Empty), which is
// a permitted, if coarser than ideal, demotion.
type LRUCache struct {
	c *lru.Cache[string, entry]
}

// NewLRUCache returns a CacheOps with room for size distinct keys.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{c: c}, nil
}

func (l *LRUCache) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := l.c.Get(key)
	if !ok || !e.known {
		return nil, false
	}
	cp := make([]byte, len(e.bytes))
	copy(cp, e.bytes)
	return cp, true
}

func (l *LRUCache) Put(_ context.Context, key string, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	l.c.Add(key, entry{bytes: cp, known: true})
}

func (l *LRUCache) CheckPresent(_ context.Context, key string) bool {
	_, ok := l.c.Get(key)
	return ok
}

// MarkPresent records that the backing store has key without holding its
// bytes (the cache's Present state), used by Store.IsPresent after the
// backing store reports the key present.
func (l *LRUCache) MarkPresent(key string) {
	if _, ok := l.c.Get(key); !ok {
		l.c.Add(key, entry{known: false})
	}
}
