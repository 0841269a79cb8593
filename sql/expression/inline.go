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

import "github.com/sopel39/predicatepushdown/sql"

// InlineSymbols rewrites symbol references in e according to mapping,
// recursing into every subtree except a Try's body, which is left opaque
// (its symbols, if any, are never substituted).
func InlineSymbols(mapping map[sql.Symbol]sql.Expression, e sql.Expression) sql.Expression {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *SymbolRef:
		if repl, ok := mapping[v.Symbol]; ok {
			return repl
		}
		return v
	case *Try:
		return v
	default:
		children := v.Children()
		if len(children) == 0 {
			return v
		}
		newChildren := make([]sql.Expression, len(children))
		changed := false
		for i, c := range children {
			nc := InlineSymbols(mapping, c)
			newChildren[i] = nc
			if nc != c {
				changed = true
			}
		}
		if !changed {
			return v
		}
		nv, err := v.WithChildren(newChildren...)
		if err != nil {
			return v
		}
		return nv
	}
}
