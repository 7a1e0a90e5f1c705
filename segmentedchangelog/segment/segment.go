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

// Package segment implements flat (level-0) segments over the dense
// vertex numbering idmap assigns: a segment covers a contiguous run
// [Low, High] of vertices where every vertex strictly after Low has
// exactly the previous vertex as its sole parent, so ancestry within the
// run is "is the candidate's number in range" rather than a graph walk.
// Only Low's parents (the run's external ancestors) are stored, which
// lets `IsAncestor` answer most queries by numeric comparison.
package segment

import "github.com/mononoke-go/corestore/segmentedchangelog/idmap"

// Segment covers vertices Low..=High, recording the parents of Low (the
// run's entry point into the rest of the DAG). High is always the only
// head of the sub-DAG the segment covers.
type Segment struct {
	Low     idmap.Vertex
	High    idmap.Vertex
	Parents []idmap.Vertex
}

// Contains reports whether v falls within this segment's covered range.
func (s Segment) Contains(v idmap.Vertex) bool {
	return v >= s.Low && v <= s.High
}

// ParentsOf returns the parents of vertex v within this repository's
// commit DAG; v is the DAG's vertex numbering, not a changeset id.
type ParentsOf func(v idmap.Vertex) ([]idmap.Vertex, error)

// BuildFlatSegments groups vertices (which must be given in ascending,
// already-topologically-consistent order — every parent numbered before
// its children, the invariant idmap's monotonic assignment guarantees)
// into maximal flat segments: a run extends as long as the next vertex's
// only parent is the run's current last vertex.
func BuildFlatSegments(vertices []idmap.Vertex, parentsOf ParentsOf) ([]Segment, error) {
	var segments []Segment
	var low idmap.Vertex
	var lowParents []idmap.Vertex
	var runLen int

	flush := func(high idmap.Vertex) {
		if runLen == 0 {
			return
		}
		segments = append(segments, Segment{Low: low, High: high, Parents: lowParents})
		runLen = 0
	}

	for i, v := range vertices {
		parents, err := parentsOf(v)
		if err != nil {
			return nil, err
		}
		extendsRun := runLen > 0 && len(parents) == 1 && parents[0] == vertices[i-1]
		if extendsRun {
			runLen++
			continue
		}
		if runLen > 0 {
			flush(vertices[i-1])
		}
		low = v
		lowParents = parents
		runLen = 1
	}
	if runLen > 0 {
		flush(vertices[len(vertices)-1])
	}
	return segments, nil
}
