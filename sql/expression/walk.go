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

// Walk visits e and every descendant in pre-order. fn returning false skips
// the subtree rooted at the expression it was called with.
func Walk(e sql.Expression, fn func(sql.Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.Children() {
		Walk(c, fn)
	}
}

// Symbols returns the set of symbols e references, including those nested
// inside a Try subtree (extraction is unrestricted; only InlineSymbols
// treats Try as opaque).
func Symbols(e sql.Expression) sql.SymbolSet {
	set := sql.NewSymbolSet()
	Walk(e, func(ex sql.Expression) bool {
		if sr, ok := ex.(*SymbolRef); ok {
			set.Add(sr.Symbol)
		}
		return true
	})
	return set
}

// ContainsTry reports whether e or any descendant is a Try expression.
func ContainsTry(e sql.Expression) bool {
	found := false
	Walk(e, func(ex sql.Expression) bool {
		if _, ok := ex.(*Try); ok {
			found = true
			return false
		}
		return !found
	})
	return found
}
