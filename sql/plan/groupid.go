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

// GroupId materializes GROUPING SETS by replicating Source once per
// grouping set and nulling out the columns not present in that set.
// CommonGroupingColumns is the intersection of every set in
// GroupingColumns, the only columns a conjunct may reference and still be
// pushed (spec.md §4.4's GroupId rule).
type GroupId struct {
	Source                 sql.PlanNode
	GroupingColumns         [][]sql.Symbol
	CommonGroupingColumns   []sql.Symbol
	GroupIdSymbol           sql.Symbol
	AggregationArguments    []sql.Symbol
}

// NewGroupId returns a GroupId node.
func NewGroupId(source sql.PlanNode, groupingColumns [][]sql.Symbol, aggregationArguments []sql.Symbol, groupIdSymbol sql.Symbol) *GroupId {
	return &GroupId{
		Source:               source,
		GroupingColumns:      groupingColumns,
		CommonGroupingColumns: intersectAll(groupingColumns),
		AggregationArguments: aggregationArguments,
		GroupIdSymbol:        groupIdSymbol,
	}
}

func intersectAll(sets [][]sql.Symbol) []sql.Symbol {
	if len(sets) == 0 {
		return nil
	}
	counts := map[sql.Symbol]int{}
	for _, set := range sets {
		seen := sql.NewSymbolSet()
		for _, s := range set {
			if !seen.Contains(s) {
				seen.Add(s)
				counts[s]++
			}
		}
	}
	var out []sql.Symbol
	for _, s := range sets[0] {
		if counts[s] == len(sets) {
			already := false
			for _, o := range out {
				if o == s {
					already = true
					break
				}
			}
			if !already {
				out = append(out, s)
			}
		}
	}
	return out
}

func (g *GroupId) Children() []sql.PlanNode { return []sql.PlanNode{g.Source} }

func (g *GroupId) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("GroupId", 1, len(children))
	}
	cp := *g
	cp.Source = children[0]
	return &cp, nil
}

func (g *GroupId) OutputSymbols() []sql.Symbol {
	out := append([]sql.Symbol{}, g.AggregationArguments...)
	return append(out, g.GroupIdSymbol)
}

func (g *GroupId) String() string {
	return fmt.Sprintf("GroupId(common=%v)", g.CommonGroupingColumns)
}
