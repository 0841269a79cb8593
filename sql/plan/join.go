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
	"strings"

	"github.com/sopel39/predicatepushdown/sql"
)

// EquiClause is one `left = right` conjunct of a Join's equi-clauses, each
// side a symbol of the matching child.
type EquiClause struct {
	Left, Right sql.Symbol
}

// Join is a two-input relational join. Filter is the residual predicate
// beyond the equi-clauses (nil if none). DynamicFilters maps a
// dynamic-filter id to the build-side symbol it was derived from; it is
// only ever populated on an INNER join, and only when dynamic filtering is
// enabled (spec.md invariant).
type Join struct {
	Type           JoinType
	Left, Right    sql.PlanNode
	EquiClauses    []EquiClause
	Filter         sql.Expression
	Output         []sql.Symbol
	DynamicFilters map[string]sql.Symbol
	// Id is opaque metadata (e.g. a plan-node id) carried through rewrites
	// unexamined by this module.
	Id string
}

// NewJoin returns a Join node.
func NewJoin(typ JoinType, left, right sql.PlanNode, equiClauses []EquiClause, filter sql.Expression, output []sql.Symbol) *Join {
	return &Join{Type: typ, Left: left, Right: right, EquiClauses: equiClauses, Filter: filter, Output: output}
}

func (j *Join) Children() []sql.PlanNode { return []sql.PlanNode{j.Left, j.Right} }

func (j *Join) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 2 {
		return nil, ErrWrongChildCount.New("Join", 2, len(children))
	}
	cp := *j
	cp.Left, cp.Right = children[0], children[1]
	return &cp, nil
}

func (j *Join) OutputSymbols() []sql.Symbol { return j.Output }

func (j *Join) String() string {
	clauses := make([]string, len(j.EquiClauses))
	for i, c := range j.EquiClauses {
		clauses[i] = fmt.Sprintf("%s = %s", c.Left, c.Right)
	}
	extra := ""
	if j.Filter != nil {
		extra = fmt.Sprintf(", filter=%s", j.Filter.String())
	}
	return fmt.Sprintf("%sJoin(%s%s)", j.Type, strings.Join(clauses, " AND "), extra)
}

// WithEquiClausesAndFilter returns a copy of j with new equi-clauses and
// filter, e.g. after re-deriving equi-clauses from a rewritten join
// predicate (spec.md §4.4 Join rule step 5).
func (j *Join) WithEquiClausesAndFilter(equiClauses []EquiClause, filter sql.Expression) *Join {
	cp := *j
	cp.EquiClauses = equiClauses
	cp.Filter = filter
	return &cp
}

// WithType returns a copy of j with a different join type, used by the
// join normalizer to downgrade OUTER to INNER.
func (j *Join) WithType(typ JoinType) *Join {
	cp := *j
	cp.Type = typ
	return &cp
}

// WithDynamicFilters returns a copy of j with DynamicFilters set.
func (j *Join) WithDynamicFilters(dynamicFilters map[string]sql.Symbol) *Join {
	cp := *j
	cp.DynamicFilters = dynamicFilters
	return &cp
}
