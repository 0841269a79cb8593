// Copyright 2020-2021 Dolthub, Inc.
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

package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
)

func TestCanonicalizeOrdersCommutativeOperands(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	a := Canonicalize(ctx, NewAnd(sym("b"), sym("a")))
	b := Canonicalize(ctx, NewAnd(sym("a"), sym("b")))
	require.Equal(CanonicalKey(a), CanonicalKey(b))
}

func TestCanonicalizeOrdersCommutativeComparison(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	a := Canonicalize(ctx, NewEquals(sym("b"), sym("a")))
	b := Canonicalize(ctx, NewEquals(sym("a"), sym("b")))
	require.Equal(CanonicalKey(a), CanonicalKey(b))
}

func TestAreEquivalentIgnoresOperandOrder(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	require.True(AreEquivalent(ctx, NewAnd(sym("a"), sym("b")), NewAnd(sym("b"), sym("a"))))
}

func TestAreEquivalentFoldsConstants(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	require.True(AreEquivalent(ctx, NewAnd(True, sym("a")), sym("a")))
}

func TestSortByKeyIsStableAcrossPermutations(t *testing.T) {
	require := require.New(t)

	a := []sql.Expression{sym("c"), sym("a"), sym("b")}
	b := []sql.Expression{sym("b"), sym("c"), sym("a")}
	require.Equal(SortByKey(a), SortByKey(b))
}
