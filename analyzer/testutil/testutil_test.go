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

package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/types"
)

func TestMetadataIsDeterministic(t *testing.T) {
	require := require.New(t)

	m := Metadata{NonDeterministic: map[sql.FunctionId]bool{"rand": true}}
	require.True(m.IsDeterministic("sum"))
	require.False(m.IsDeterministic("rand"))
}

func TestTypeAnalyzerGetType(t *testing.T) {
	require := require.New(t)

	x := sql.NewSymbol("x")
	a := TypeAnalyzer{Types: map[sql.Symbol]sql.Type{x: types.Int64}}

	got, err := a.GetType(nil, nil, expression.NewSymbolRef(x, nil))
	require.NoError(err)
	require.Equal(types.Int64, got)

	got, err = a.GetType(nil, nil, expression.True)
	require.NoError(err)
	require.Nil(got)
}

func TestSymbolAllocatorNeverRepeats(t *testing.T) {
	require := require.New(t)

	a := NewSymbolAllocator()
	first := a.NewSymbol(expression.True, types.Boolean)
	second := a.NewSymbol(expression.True, types.Boolean)
	require.NotEqual(first, second)
}

func TestPlanNodeIdAllocatorMonotonic(t *testing.T) {
	require := require.New(t)

	a := &PlanNodeIdAllocator{}
	require.Equal("pn0", a.GetNextId())
	require.Equal("pn1", a.GetNextId())
}

func TestNoEffectivePredicatesAlwaysTrue(t *testing.T) {
	require := require.New(t)

	n := NoEffectivePredicates{True: expression.True}
	got, err := n.Extract(nil, nil, nil, nil)
	require.NoError(err)
	require.Equal(expression.True, got)
}
