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

// SortKey is one ORDER BY entry.
type SortKey struct {
	Symbol     sql.Symbol
	Descending bool
}

// Sort is a purely order-imposing node: predicates pass through it
// unchanged in both directions (spec.md §4.4 treats it, like Sample, as
// transparent).
type Sort struct {
	Source sql.PlanNode
	Keys   []SortKey
}

// NewSort returns a Sort node.
func NewSort(source sql.PlanNode, keys []SortKey) *Sort {
	return &Sort{Source: source, Keys: keys}
}

func (s *Sort) Children() []sql.PlanNode { return []sql.PlanNode{s.Source} }

func (s *Sort) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Sort", 1, len(children))
	}
	cp := *s
	cp.Source = children[0]
	return &cp, nil
}

func (s *Sort) OutputSymbols() []sql.Symbol { return s.Source.OutputSymbols() }

func (s *Sort) String() string { return fmt.Sprintf("Sort(%v)", s.Keys) }
