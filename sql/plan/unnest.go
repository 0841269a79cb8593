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

// Unnest cross- or left-joins Source against the expansion of each of
// UnnestSymbols (e.g. an array/map column), replicating ReplicateSymbols
// from Source onto every produced row. Filter is an optional residual
// predicate applied at the join, only meaningful when Type is LEFT.
type Unnest struct {
	Source            sql.PlanNode
	ReplicateSymbols  []sql.Symbol
	UnnestSymbols     []sql.Symbol
	Output            []sql.Symbol
	Type              JoinType
	Filter            sql.Expression
}

// NewUnnest returns an Unnest node.
func NewUnnest(source sql.PlanNode, replicateSymbols, unnestSymbols, output []sql.Symbol, typ JoinType, filter sql.Expression) *Unnest {
	return &Unnest{Source: source, ReplicateSymbols: replicateSymbols, UnnestSymbols: unnestSymbols, Output: output, Type: typ, Filter: filter}
}

func (u *Unnest) Children() []sql.PlanNode { return []sql.PlanNode{u.Source} }

func (u *Unnest) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Unnest", 1, len(children))
	}
	cp := *u
	cp.Source = children[0]
	return &cp, nil
}

func (u *Unnest) OutputSymbols() []sql.Symbol { return u.Output }

func (u *Unnest) String() string {
	return fmt.Sprintf("%sUnnest(%v)", u.Type, u.UnnestSymbols)
}

// WithFilter returns a copy of u with a new residual filter.
func (u *Unnest) WithFilter(filter sql.Expression) *Unnest {
	cp := *u
	cp.Filter = filter
	return &cp
}
