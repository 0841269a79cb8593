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
	"github.com/sopel39/predicatepushdown/sql/types"
)

func TestConstantFoldAndShortCircuits(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	require.Equal(False, ConstantFold(ctx, NewAnd(sym("a"), False)))
	require.Equal(sym("a"), ConstantFold(ctx, NewAnd(sym("a"), True)))
}

func TestConstantFoldOrShortCircuits(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	require.Equal(True, ConstantFold(ctx, NewOr(sym("a"), True)))
	require.Equal(sym("a"), ConstantFold(ctx, NewOr(sym("a"), False)))
}

func TestConstantFoldEvaluatesLiteralComparison(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	got := ConstantFold(ctx, NewGreaterThan(NewLiteral(int64(5), types.Int64), NewLiteral(int64(3), types.Int64)))
	require.Equal(True, got)
}

func TestConstantFoldNullComparisonIsNullLiteral(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	got := ConstantFold(ctx, NewEquals(NewLiteral(nil, types.Unknown), NewLiteral(int64(3), types.Int64)))
	require.True(isNullLiteral(got))
}

func TestConstantFoldDistinctFromNullYieldsTrue(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	got := ConstantFold(ctx, NewIsDistinctFrom(NewLiteral(nil, types.Unknown), NewLiteral(int64(5), types.Int64)))
	require.Equal(True, got)
}

func TestConstantFoldDistinctFromBothNullYieldsFalse(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	got := ConstantFold(ctx, NewIsDistinctFrom(NewLiteral(nil, types.Unknown), NewLiteral(nil, types.Unknown)))
	require.Equal(False, got)
}

func TestSimplifyToFalseIgnoresDistinctNullComparison(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	nulls := sql.NewSymbolSet(sql.NewSymbol("a"))
	// a IS DISTINCT FROM 5 folds to TRUE (not FALSE/NULL) once a is NULL, so
	// it must never be treated as null-rejecting.
	require.False(SimplifyToFalse(ctx, NewIsDistinctFrom(sym("a"), NewLiteral(int64(5), types.Int64)), nulls))
}

func TestSimplifyToFalseDetectsNullRejection(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	nulls := sql.NewSymbolSet(sql.NewSymbol("a"))
	require.True(SimplifyToFalse(ctx, NewGreaterThan(sym("a"), NewLiteral(int64(0), types.Int64)), nulls))
}

func TestSimplifyToFalseIgnoresNonDeterministicConjuncts(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	nulls := sql.NewSymbolSet(sql.NewSymbol("a"))
	require.False(SimplifyToFalse(ctx, NewFunctionCall("rand"), nulls))
}

func TestSimplifyToFalseUnrelatedPredicateDoesNotReject(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	nulls := sql.NewSymbolSet(sql.NewSymbol("b"))
	require.False(SimplifyToFalse(ctx, NewGreaterThan(sym("a"), NewLiteral(int64(0), types.Int64)), nulls))
}
