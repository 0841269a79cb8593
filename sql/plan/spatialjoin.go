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

// SpatialJoin is a join whose condition is a spatial predicate rather than
// an equi-clause; only INNER and LEFT are meaningful (a LEFT may be
// downgraded to INNER by the join normalizer).
type SpatialJoin struct {
	Type        JoinType
	Left, Right sql.PlanNode
	Filter      sql.Expression
	Output      []sql.Symbol
}

// NewSpatialJoin returns a SpatialJoin node.
func NewSpatialJoin(typ JoinType, left, right sql.PlanNode, filter sql.Expression, output []sql.Symbol) *SpatialJoin {
	return &SpatialJoin{Type: typ, Left: left, Right: right, Filter: filter, Output: output}
}

func (s *SpatialJoin) Children() []sql.PlanNode { return []sql.PlanNode{s.Left, s.Right} }

func (s *SpatialJoin) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 2 {
		return nil, ErrWrongChildCount.New("SpatialJoin", 2, len(children))
	}
	cp := *s
	cp.Left, cp.Right = children[0], children[1]
	return &cp, nil
}

func (s *SpatialJoin) OutputSymbols() []sql.Symbol { return s.Output }

func (s *SpatialJoin) String() string {
	return fmt.Sprintf("%sSpatialJoin(%s)", s.Type, s.Filter.String())
}

// WithFilterAndType returns a copy of s with a new filter/type, e.g. after
// the join normalizer downgrades LEFT to INNER.
func (s *SpatialJoin) WithFilterAndType(typ JoinType, filter sql.Expression) *SpatialJoin {
	cp := *s
	cp.Type = typ
	cp.Filter = filter
	return &cp
}
