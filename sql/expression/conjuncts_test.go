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

func sym(name string) *SymbolRef { return NewSymbolRef(sql.NewSymbol(name), types.Int64) }

func TestExtractConjunctsFlattensAnd(t *testing.T) {
	require := require.New(t)

	e := NewAnd(NewAnd(sym("a"), sym("b")), sym("c"))
	got := ExtractConjuncts(e)
	require.Len(got, 3)
}

func TestExtractConjunctsDropsTrue(t *testing.T) {
	require := require.New(t)

	require.Empty(ExtractConjuncts(True))
	require.Empty(ExtractConjuncts(nil))
	require.Equal([]sql.Expression{sym("a")}, ExtractConjuncts(NewAnd(True, sym("a"))))
}

func TestExtractConjunctsShortCircuitsFalse(t *testing.T) {
	require := require.New(t)

	got := ExtractConjuncts(NewAnd(sym("a"), False))
	require.Equal([]sql.Expression{False}, got)
}

func TestCombineConjunctsRoundTrips(t *testing.T) {
	require := require.New(t)

	list := []sql.Expression{sym("a"), sym("b")}
	combined := CombineConjuncts(list)
	require.ElementsMatch(list, ExtractConjuncts(combined))
}

func TestCombineConjunctsEmptyIsTrue(t *testing.T) {
	require := require.New(t)
	require.Equal(True, CombineConjuncts(nil))
}

func TestCombineConjunctsAnyFalseIsFalse(t *testing.T) {
	require := require.New(t)
	require.Equal(False, CombineConjuncts([]sql.Expression{sym("a"), False}))
}

func TestCombineConjunctsDedupes(t *testing.T) {
	require := require.New(t)

	combined := CombineConjuncts([]sql.Expression{sym("a"), sym("a")})
	require.Equal(sym("a"), combined)
}
