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

func TestInlineSymbolsSubstitutesReference(t *testing.T) {
	require := require.New(t)

	mapping := map[sql.Symbol]sql.Expression{sql.NewSymbol("a"): sym("x")}
	got := InlineSymbols(mapping, sym("a"))
	require.Equal(sym("x"), got)
}

func TestInlineSymbolsRecursesIntoChildren(t *testing.T) {
	require := require.New(t)

	mapping := map[sql.Symbol]sql.Expression{sql.NewSymbol("a"): sym("x")}
	got := InlineSymbols(mapping, NewAnd(sym("a"), sym("b")))
	require.Equal(NewAnd(sym("x"), sym("b")), got)
}

func TestInlineSymbolsLeavesTryOpaque(t *testing.T) {
	require := require.New(t)

	mapping := map[sql.Symbol]sql.Expression{sql.NewSymbol("a"): sym("x")}
	try := NewTry(sym("a"))
	got := InlineSymbols(mapping, try)
	require.Same(try, got)
}

func TestInlineSymbolsLeavesUnmappedSymbolUnchanged(t *testing.T) {
	require := require.New(t)

	got := InlineSymbols(nil, sym("a"))
	require.Equal(sym("a"), got)
}
