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

// TableScan is a leaf reading Table, with an optional already-enforced
// Constraint (e.g. a prior pushdown pass folded into table properties).
// The analyzer's Metadata collaborator decides whether a new predicate can
// be absorbed here (spec.md §6).
type TableScan struct {
	Table      string
	Output     []sql.Symbol
	Constraint sql.Expression
}

// NewTableScan returns a TableScan node.
func NewTableScan(table string, output []sql.Symbol, constraint sql.Expression) *TableScan {
	return &TableScan{Table: table, Output: output, Constraint: constraint}
}

func (t *TableScan) Children() []sql.PlanNode { return nil }

func (t *TableScan) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 0 {
		return nil, ErrWrongChildCount.New("TableScan", 0, len(children))
	}
	cp := *t
	return &cp, nil
}

func (t *TableScan) OutputSymbols() []sql.Symbol { return t.Output }

func (t *TableScan) String() string { return fmt.Sprintf("TableScan(%s)", t.Table) }

// WithConstraint returns a copy of t with a new enforced constraint,
// applied when the analyzer determines Metadata can absorb a predicate
// into the table's own properties (spec.md §4.4's TableScan rule).
func (t *TableScan) WithConstraint(constraint sql.Expression) *TableScan {
	cp := *t
	cp.Constraint = constraint
	return &cp
}
