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

// Package expression is the concrete sql.Expression variants and the
// boolean-algebra utilities that operate over them: conjunct
// extraction/combination, determinism analysis, symbol inlining and
// structural equivalence.
package expression

import (
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/sopel39/predicatepushdown/sql"
)

// ErrWrongChildCount is raised by WithChildren when called with the wrong
// number of children for the receiver's arity.
var ErrWrongChildCount = goerrors.NewKind("expression %s expects %d children, got %d")

// SymbolRef is a reference to a Symbol within the enclosing plan node's
// input scope.
type SymbolRef struct {
	Symbol sql.Symbol
	Typ    sql.Type
}

// NewSymbolRef returns a reference to sym.
func NewSymbolRef(sym sql.Symbol, typ sql.Type) *SymbolRef {
	return &SymbolRef{Symbol: sym, Typ: typ}
}

// Children implements sql.Expression.
func (e *SymbolRef) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (e *SymbolRef) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrWrongChildCount.New("SymbolRef", 0, len(children))
	}
	return e, nil
}

func (e *SymbolRef) String() string { return e.Symbol.Name() }
