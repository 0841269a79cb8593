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

package inference

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/types"
)

type noopMetadata struct{}

func (noopMetadata) IsDeterministic(sql.FunctionId) bool { return true }

func ref(name string) *expression.SymbolRef {
	return expression.NewSymbolRef(sql.NewSymbol(name), types.Int64)
}

func ctx() *sql.Context {
	return sql.NewContext(nil, nil, noopMetadata{})
}

func TestRewriteUsesDirectMembershipWhenInScope(t *testing.T) {
	require := require.New(t)

	inf := New(ctx())
	scope := sql.NewSymbolSet(sql.NewSymbol("a"))
	got, ok := inf.Rewrite(ctx(), ref("a"), scope)
	require.True(ok)
	require.Equal(ref("a"), got)
}

func TestRewriteSubstitutesViaTransitiveEquality(t *testing.T) {
	require := require.New(t)

	eq := expression.NewAnd(expression.NewEquals(ref("a"), ref("b")), expression.NewEquals(ref("b"), ref("c")))
	inf := New(ctx(), eq)

	scope := sql.NewSymbolSet(sql.NewSymbol("c"))
	got, ok := inf.Rewrite(ctx(), ref("a"), scope)
	require.True(ok)
	require.Equal(ref("c"), got)
}

func TestRewriteFailsWithoutInScopeRepresentative(t *testing.T) {
	require := require.New(t)

	eq := expression.NewEquals(ref("a"), ref("b"))
	inf := New(ctx(), eq)

	scope := sql.NewSymbolSet(sql.NewSymbol("c"))
	_, ok := inf.Rewrite(ctx(), ref("a"), scope)
	require.False(ok)
}

func TestGenerateEqualitiesPartitionedByScope(t *testing.T) {
	require := require.New(t)

	eq := expression.NewAnd(expression.NewEquals(ref("l.x"), ref("r.x")), expression.NewEquals(ref("r.x"), ref("r.y")))
	inf := New(ctx(), eq)

	leftScope := sql.NewSymbolSet(sql.NewSymbol("l.x"))
	scopeEq, complementEq, straddlingEq := inf.GenerateEqualitiesPartitionedBy(leftScope)

	require.Empty(scopeEq)
	require.Len(complementEq, 1)
	require.Len(straddlingEq, 1)
}

func TestNonInferrableConjunctsExcludesEqualities(t *testing.T) {
	require := require.New(t)

	eq := expression.NewEquals(ref("a"), ref("b"))
	gt := expression.NewGreaterThan(ref("a"), expression.NewLiteral(int64(1), types.Int64))
	inf := New(ctx(), expression.NewAnd(eq, gt))

	got := inf.NonInferrableConjuncts(ctx(), expression.NewAnd(eq, gt))
	require.Equal([]sql.Expression{gt}, got)
	_ = inf
}

func TestNonDeterministicEqualityIsNonInferrable(t *testing.T) {
	require := require.New(t)

	call := expression.NewFunctionCall("rand")
	eq := expression.NewEquals(call, ref("b"))
	inf := New(ctx(), eq)

	scope := sql.NewSymbolSet(sql.NewSymbol("b"))
	_, ok := inf.Rewrite(ctx(), expression.NewEquals(ref("b"), call), scope)
	require.False(ok)

	got := inf.NonInferrableConjuncts(ctx(), eq)
	require.Equal([]sql.Expression{eq}, got)
}
