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

package plan

import (
	"fmt"

	"github.com/sopel39/predicatepushdown/sql"
)

// Union concatenates Sources row-wise. SymbolMapping[i][out] gives the
// Sources[i] symbol that feeds output symbol out; this is what lets the
// pushdown rule rewrite a single inherited predicate once per branch by
// substituting each branch's own symbols for the Union's output symbols.
type Union struct {
	Sources       []sql.PlanNode
	Output        []sql.Symbol
	SymbolMapping []map[sql.Symbol]sql.Symbol
}

// NewUnion returns a Union node.
func NewUnion(sources []sql.PlanNode, output []sql.Symbol, symbolMapping []map[sql.Symbol]sql.Symbol) *Union {
	return &Union{Sources: sources, Output: output, SymbolMapping: symbolMapping}
}

func (u *Union) Children() []sql.PlanNode { return u.Sources }

func (u *Union) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != len(u.Sources) {
		return nil, ErrWrongChildCount.New("Union", len(u.Sources), len(children))
	}
	cp := *u
	cp.Sources = children
	return &cp, nil
}

func (u *Union) OutputSymbols() []sql.Symbol { return u.Output }

func (u *Union) String() string {
	return fmt.Sprintf("Union(%d sources)", len(u.Sources))
}

// MapToBranch translates symbols into branch i's own namespace using
// SymbolMapping[i].
func (u *Union) MapToBranch(i int, s sql.Symbol) (sql.Symbol, bool) {
	mapped, ok := u.SymbolMapping[i][s]
	return mapped, ok
}
