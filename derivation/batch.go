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
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mononoke-go/corestore/bonsai"
	"github.com/mononoke-go/corestore/typedhash"
)

// linearStack is a maximal run of single-parent commits, oldest first,
// all sharing the same set of changesets outside the run as their only
// parents (i.e. commit i+1's sole parent is commit i). Merge commits
// always start a new stack.
type linearStack struct {
	parent typedhash.ChangesetID // the stack's one ancestor outside the run; zero value if the root commit has zero or several parents
	items  []stackItem
}

type stackItem struct {
	id typedhash.ChangesetID
	cs bonsai.Changeset
}

// splitIntoLinearStacks partitions commits, which must already be in
// topological (parents-before-children) order, into linear stacks. A
// commit with zero or more than one parent always starts a new stack,
// which its single-parent descendants later in commits then extend.
func splitIntoLinearStacks(commits []stackItem) []linearStack {
	var stacks []linearStack
	for _, item := range commits {
		if len(item.cs.Parents) == 1 && len(stacks) > 0 {
			last := &stacks[len(stacks)-1]
			if n := len(last.items); n > 0 && last.items[n-1].id == item.cs.Parents[0] {
				last.items = append(last.items, item)
				continue
			}
		}
		var parent typedhash.ChangesetID
		if len(item.cs.Parents) == 1 {
			parent = item.cs.Parents[0]
		}
		stacks = append(stacks, linearStack{parent: parent, items: []stackItem{item}})
	}
	return stacks
}

// DeriveBatch derives kindName for every commit in commits (which must be
// given in topological order, ancestors first), fanning out independent
// linear stacks concurrently. When gapSize is positive, only every
// gapSize'th commit in a stack (plus the stack's last commit) is actually
// persisted; skipped commits are still derived on demand by Derive if
// later requested directly, at the cost of recomputing the stack up to
// that point. A gapSize of 0 persists every commit.
func (m *Manager) DeriveBatch(ctx context.Context, kindName string, commits []typedhash.ChangesetID, gapSize int) (map[typedhash.ChangesetID][]byte, error) {
	kind, ok := m.kinds[kindName]
	if !ok {
		return nil, fmt.Errorf("derivation: unknown kind %q", kindName)
	}

	items := make([]stackItem, len(commits))
	for i, id := range commits {
		cs, err := m.changesets.Changeset(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("derivation: fetch changeset %s: %w", id, err)
		}
		items[i] = stackItem{id: id, cs: cs}
	}
	stacks := splitIntoLinearStacks(items)

	results := make([]map[typedhash.ChangesetID][]byte, len(stacks))
	g, gctx := errgroup.WithContext(ctx)
	for i, stack := range stacks {
		i, stack := i, stack
		g.Go(func() error {
			r, err := m.deriveStack(gctx, kind, kindName, stack, gapSize)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[typedhash.ChangesetID][]byte, len(commits))
	for _, r := range results {
		for id, v := range r {
			out[id] = v
		}
	}
	return out, nil
}

func (m *Manager) deriveStack(ctx context.Context, kind Kind, kindName string, stack linearStack, gapSize int) (map[typedhash.ChangesetID][]byte, error) {
	out := make(map[typedhash.ChangesetID][]byte, len(stack.items))

	var parentValue []byte
	if !stack.parent.IsEmpty() {
		v, err := m.Derive(ctx, kindName, stack.parent)
		if err != nil {
			return nil, fmt.Errorf("derivation: stack parent %s: %w", stack.parent, err)
		}
		parentValue = v
	}

	// combined accumulates file changes for commits since the last
	// persisted item, folded path-wise (a later commit's change to a path
	// overrides an earlier one), so a persisted commit's derivation sees
	// the net effect of every commit skipped since the previous one.
	combined := make(map[string]bonsai.FileChange)

	for i, item := range stack.items {
		for path, fc := range item.cs.FileChanges {
			combined[path] = fc
		}

		last := i == len(stack.items)-1
		persist := gapSize <= 0 || (i+1)%gapSize == 0 || last
		if !persist {
			continue
		}

		folded := item.cs
		folded.FileChanges = combined
		v, err := kind.DeriveSingle(ctx, folded, item.id, [][]byte{parentValue}, nil)
		if err != nil {
			return nil, fmt.Errorf("derivation: derive %s for %s: %w", kindName, item.id, err)
		}
		if err := m.bs.Put(ctx, derivedKey(kindName, item.id), v); err != nil {
			return nil, err
		}
		out[item.id] = v
		parentValue = v
		combined = make(map[string]bonsai.FileChange)
	}
	return out, nil
}
