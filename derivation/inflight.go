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

package derivation

import (
	"sync"

	"github.com/mononoke-go/corestore/typedhash"
)

// inflightGroup collapses concurrent derivations of the same (kind,
// changeset) pair into one computation, the same subscriber-channel
// design cacheblob's InProcessLease uses to collapse concurrent puts for
// the same key: a map entry is a channel that closes once the result is
// ready, so joining a call already in flight costs one channel receive
// rather than a second, wasted derivation.
type inflightGroup struct {
	mu    sync.Mutex
	calls map[inflightKey]*inflightCall
}

type inflightKey struct {
	kind string
	id   typedhash.ChangesetID
}

type inflightCall struct {
	done  chan struct{}
	value []byte
	err   error
}

func newInflightGroup() *inflightGroup {
	return &inflightGroup{calls: make(map[inflightKey]*inflightCall)}
}

func (g *inflightGroup) do(kindName string, id typedhash.ChangesetID, fn func() ([]byte, error)) ([]byte, error) {
	key := inflightKey{kind: kindName, id: id}

	g.mu.Lock()
	if call, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-call.done
		return call.value, call.err
	}
	call := &inflightCall{done: make(chan struct{})}
	g.calls[key] = call
	g.mu.Unlock()

	call.value, call.err = fn()
	close(call.done)

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()

	return call.value, call.err
}
