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

package typedhash

// RawBundle2 is a Mercurial bundle2 blob captured verbatim during import.
// It has no internal structure this module needs to understand; the bytes
// are opaque and content-addressed as-is under RawBundle2ID.
type RawBundle2 struct {
	Bytes []byte
}

// RawBundle2Codec is the identity codec for RawBundle2: encode and decode
// are both no-ops beyond the struct wrapper, since the value is defined to
// be its own wire representation.
type RawBundle2Codec struct{}

func (RawBundle2Codec) Encode(v RawBundle2) ([]byte, error) { return v.Bytes, nil }

func (RawBundle2Codec) Decode(b []byte) (RawBundle2, error) { return RawBundle2{Bytes: b}, nil }
