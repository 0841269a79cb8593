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

// SemiJoin tests, for each row of Source, whether FilteringSource contains
// a matching row (SourceKey = FilterKey), exposing the boolean result as
// SemiOutput alongside Source's own columns.
type SemiJoin struct {
	Source, FilteringSource   sql.PlanNode
	SourceKey, FilterKey      sql.Symbol
	SemiOutput                sql.Symbol
}

// NewSemiJoin returns a SemiJoin node.
func NewSemiJoin(source, filteringSource sql.PlanNode, sourceKey, filterKey, semiOutput sql.Symbol) *SemiJoin {
	return &SemiJoin{Source: source, FilteringSource: filteringSource, SourceKey: sourceKey, FilterKey: filterKey, SemiOutput: semiOutput}
}

func (s *SemiJoin) Children() []sql.PlanNode { return []sql.PlanNode{s.Source, s.FilteringSource} }

func (s *SemiJoin) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 2 {
		return nil, ErrWrongChildCount.New("SemiJoin", 2, len(children))
	}
	cp := *s
	cp.Source, cp.FilteringSource = children[0], children[1]
	return &cp, nil
}

func (s *SemiJoin) OutputSymbols() []sql.Symbol {
	return append(append([]sql.Symbol{}, s.Source.OutputSymbols()...), s.SemiOutput)
}

func (s *SemiJoin) String() string {
	return fmt.Sprintf("SemiJoin(%s = %s -> %s)", s.SourceKey, s.FilterKey, s.SemiOutput)
}

// ReferencesSemiOutput reports whether e references s's SemiOutput symbol,
// the test spec.md §4.4's SemiJoin rule uses to choose the filtering vs.
// non-filtering rewrite path.
func (s *SemiJoin) ReferencesSemiOutput(symbols sql.SymbolSet) bool {
	return symbols.Contains(s.SemiOutput)
}
