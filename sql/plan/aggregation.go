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

// Aggregate is one `Output := Call` entry of an Aggregation's aggregate
// list.
type Aggregate struct {
	Output sql.Symbol
	Call   sql.Expression
}

// Aggregation groups Source by each of GroupingSets and computes
// Aggregations over each group. GroupIdSymbol is non-nil when this
// aggregation sits below a GroupId node and must exclude the synthetic
// grouping-set discriminator from pushdown eligibility.
type Aggregation struct {
	Source        sql.PlanNode
	Aggregations  []Aggregate
	GroupingSets  [][]sql.Symbol
	GroupIdSymbol *sql.Symbol
}

// NewAggregation returns an Aggregation node.
func NewAggregation(source sql.PlanNode, aggregations []Aggregate, groupingSets [][]sql.Symbol, groupIdSymbol *sql.Symbol) *Aggregation {
	return &Aggregation{Source: source, Aggregations: aggregations, GroupingSets: groupingSets, GroupIdSymbol: groupIdSymbol}
}

func (a *Aggregation) Children() []sql.PlanNode { return []sql.PlanNode{a.Source} }

func (a *Aggregation) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Aggregation", 1, len(children))
	}
	cp := *a
	cp.Source = children[0]
	return &cp, nil
}

func (a *Aggregation) OutputSymbols() []sql.Symbol {
	keys := a.GroupingKeys()
	out := make([]sql.Symbol, 0, len(keys)+len(a.Aggregations))
	out = append(out, keys...)
	for _, agg := range a.Aggregations {
		out = append(out, agg.Output)
	}
	return out
}

func (a *Aggregation) String() string {
	aggs := make([]string, len(a.Aggregations))
	for i, agg := range a.Aggregations {
		aggs[i] = fmt.Sprintf("%s := %s", agg.Output, agg.Call.String())
	}
	return fmt.Sprintf("Aggregation(groupBy=%v, aggs=[%s])", a.GroupingKeys(), strings.Join(aggs, ", "))
}

// GroupingKeys returns the union of every grouping set's symbols, in
// first-seen order. This is the full grouping-key list exposed in the
// schema; GroupingScope (analyzer) further restricts to symbols common to
// every set when that's what a rewrite needs.
func (a *Aggregation) GroupingKeys() []sql.Symbol {
	seen := sql.NewSymbolSet()
	var out []sql.Symbol
	for _, set := range a.GroupingSets {
		for _, s := range set {
			if !seen.Contains(s) {
				seen.Add(s)
				out = append(out, s)
			}
		}
	}
	return out
}

// HasEmptyGroupingSet reports whether any grouping set is the empty set
// (global aggregation, no GROUP BY), in which case spec.md §4.4's
// Aggregation rule falls through to the default residual-only rewrite.
func (a *Aggregation) HasEmptyGroupingSet() bool {
	for _, set := range a.GroupingSets {
		if len(set) == 0 {
			return true
		}
	}
	return false
}
