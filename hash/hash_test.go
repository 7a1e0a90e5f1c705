// Copyright 2019 Liquidata, Inc.
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
//
// This file incorporates work covered by the following copyright and
// permission notice:
//
// Copyright 2016 Attic Labs, Inc. All rights reserved.
// Licensed under the Apache License, version 2.0:
// http://www.apache.org/licenses/LICENSE-2.0

package hash

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/blake2b"
)

func zeros(n int) string { return strings.Repeat("0", n) }

func TestParseError(t *testing.T) {
	assert := assert.New(t)

	assertParseError := func(s string) {
		assert.Panics(func() {
			Parse(s)
		})
	}

	assertParseError("foo")

	// too few digits
	assertParseError(zeros(StringLen - 1))

	// too many digits
	assertParseError(zeros(StringLen + 1))

	// '!' is not valid base32
	assertParseError(zeros(StringLen-1) + "!")

	r := Parse(zeros(StringLen))
	assert.NotNil(r)
}

func TestMaybeParse(t *testing.T) {
	assert := assert.New(t)

	parse := func(s string, success bool) {
		r, ok := MaybeParse(s)
		assert.Equal(success, ok, "Expected success=%t for %s", success, s)
		if ok {
			assert.Equal(strings.ToLower(s), r.String())
		} else {
			assert.Equal(emptyHash, r)
		}
	}

	parse(zeros(StringLen), true)
	parse(zeros(StringLen-1)+"g", true)
	parse("", false)
	parse("adsfasdf", false)
	parse(zeros(StringLen-1)+"!", false)
}

func TestEquals(t *testing.T) {
	assert := assert.New(t)

	r0 := Parse(zeros(StringLen))
	r01 := Parse(zeros(StringLen))
	r1 := Parse(zeros(StringLen-1) + "g")

	assert.Equal(r0, r01)
	assert.Equal(r01, r0)
	assert.NotEqual(r0, r1)
	assert.NotEqual(r1, r0)
}

func TestString(t *testing.T) {
	r := Of([]byte("abc"))
	assert.Equal(t, r.String(), Parse(r.String()).String())
	assert.Len(t, r.String(), StringLen)
}

func TestOf(t *testing.T) {
	r := Of([]byte("abc"))
	want := blake2b.Sum256([]byte("abc"))
	assert.Equal(t, Hash(want), r)
}

func TestIsEmpty(t *testing.T) {
	r1 := Hash{}
	assert.True(t, r1.IsEmpty())

	r2 := Parse(zeros(StringLen))
	assert.True(t, r2.IsEmpty())

	r3 := Of([]byte("abc"))
	assert.False(t, r3.IsEmpty())
}

func TestLess(t *testing.T) {
	assert := assert.New(t)

	r1 := Parse(zeros(StringLen-1) + "g")
	r2 := Parse(zeros(StringLen-2) + "10")

	assert.False(r1.Less(r1))
	assert.True(r1.Less(r2))
	assert.False(r2.Less(r1))
	assert.False(r2.Less(r2))

	r0 := Hash{}
	assert.False(r0.Less(r0))
	assert.True(r0.Less(r2))
	assert.False(r2.Less(r0))
}

func TestCompareGreater(t *testing.T) {
	assert := assert.New(t)

	r1 := Parse(zeros(StringLen-1) + "g")
	r2 := Parse(zeros(StringLen-2) + "10")

	assert.False(r1.Compare(r1) > 0)
	assert.False(r1.Compare(r2) > 0)
	assert.True(r2.Compare(r1) > 0)
	assert.False(r2.Compare(r2) > 0)

	r0 := Hash{}
	assert.False(r0.Compare(r0) > 0)
	assert.False(r0.Compare(r2) > 0)
	assert.True(r2.Compare(r0) > 0)
}

func init() {
	avg, std := 4096.0, 1024.0
	for i := range benchData {
		sz := int(rand.NormFloat64()*std + avg)
		if sz < 0 {
			sz = 0
		}
		benchData[i] = make([]byte, sz)
		rand.Read(benchData[i])
	}
}

var benchData [512][]byte

func BenchmarkOf(b *testing.B) {
	for i := 0; i < b.N; i++ {
		j := i % len(benchData)
		_ = Of(benchData[j])
	}
}
