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

package analyzer

import (
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/transform"

	"github.com/sopel39/predicatepushdown/analyzer/inference"
)

// rewriteAggregation implements spec.md §4.4's Aggregation rule. An empty
// grouping set (global aggregation) falls through to the default
// residual-only policy since there is no grouping scope to push into.
// Otherwise, conjuncts over the grouping keys alone -- excluding any
// referencing the synthetic group-id symbol, and excluding
// non-deterministic ones -- are eligible; the inference's grouping-scope
// equalities are added back so transitively implied equalities over the
// keys aren't lost.
func rewriteAggregation(ctx *sql.Context, a *Analyzer, n *plan.Aggregation, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	if n.HasEmptyGroupingSet() {
		return defaultRewrite(ctx, a, n, inherited)
	}

	groupingKeys := sql.NewSymbolSet(n.GroupingKeys()...)
	inf := inference.New(ctx, inherited)

	var pushed, residual []sql.Expression
	for _, c := range expression.ExtractConjuncts(inherited) {
		if n.GroupIdSymbol != nil && expression.Symbols(c).Contains(*n.GroupIdSymbol) {
			residual = append(residual, c)
			continue
		}
		if !expression.IsDeterministic(ctx, c) {
			residual = append(residual, c)
			continue
		}
		if expression.Symbols(c).SubsetOf(groupingKeys) {
			pushed = append(pushed, c)
		} else {
			residual = append(residual, c)
		}
	}
	scopeEqualities, _, _ := inf.GenerateEqualitiesPartitionedBy(groupingKeys)
	pushed = append(pushed, scopeEqualities...)

	childPredicate := expression.CombineConjuncts(pushed)
	newSource, identity, err := recurse(ctx, a, n.Source, childPredicate)
	if err != nil {
		return nil, transform.SameTree, err
	}

	newAgg := sql.PlanNode(n)
	if identity == transform.NewTree {
		newAgg = plan.NewAggregation(newSource, n.Aggregations, n.GroupingSets, n.GroupIdSymbol)
	}

	residualPredicate := expression.CombineConjuncts(residual)
	if expression.IsTrueLiteral(expression.Canonicalize(ctx, residualPredicate)) {
		if identity == transform.SameTree {
			return n, transform.SameTree, nil
		}
		return newAgg, transform.NewTree, nil
	}
	return wrapFilter(ctx, newAgg, residualPredicate), transform.NewTree, nil
}
