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

// MarkDistinct flags, per row, whether it is the first occurrence of
// DistinctSymbols seen so far, exposing the flag as Marker. A conjunct
// referencing Marker can never be pushed below this node (spec.md §4.4).
type MarkDistinct struct {
	Source          sql.PlanNode
	DistinctSymbols []sql.Symbol
	Marker          sql.Symbol
}

// NewMarkDistinct returns a MarkDistinct node.
func NewMarkDistinct(source sql.PlanNode, distinctSymbols []sql.Symbol, marker sql.Symbol) *MarkDistinct {
	return &MarkDistinct{Source: source, DistinctSymbols: distinctSymbols, Marker: marker}
}

func (m *MarkDistinct) Children() []sql.PlanNode { return []sql.PlanNode{m.Source} }

func (m *MarkDistinct) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("MarkDistinct", 1, len(children))
	}
	cp := *m
	cp.Source = children[0]
	return &cp, nil
}

func (m *MarkDistinct) OutputSymbols() []sql.Symbol {
	return append(append([]sql.Symbol{}, m.Source.OutputSymbols()...), m.Marker)
}

func (m *MarkDistinct) String() string {
	return fmt.Sprintf("MarkDistinct(%v -> %s)", m.DistinctSymbols, m.Marker)
}
