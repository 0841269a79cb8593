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
)

// rewriteGroupId pushes conjuncts whose free symbols are all in
// n.CommonGroupingColumns -- the columns present in every grouping set,
// and therefore the only ones guaranteed never nulled-out by GroupId's
// replication (spec.md §4.4 GroupId rule). This IR doesn't separate a
// group-output symbol namespace from the source's own (grouping columns
// keep their source symbol identity through GroupId, the same convention
// Aggregation's pass-through group keys use), so no renaming step is
// needed before pushing.
func rewriteGroupId(ctx *sql.Context, a *Analyzer, n *plan.GroupId, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	common := sql.NewSymbolSet(n.CommonGroupingColumns...)

	var pushed, residual []sql.Expression
	for _, c := range expression.ExtractConjuncts(inherited) {
		if expression.Symbols(c).SubsetOf(common) {
			pushed = append(pushed, c)
		} else {
			residual = append(residual, c)
		}
	}

	childPredicate := expression.CombineConjuncts(pushed)
	newSource, identity, err := recurse(ctx, a, n.Source, childPredicate)
	if err != nil {
		return nil, transform.SameTree, err
	}

	newGroupId := sql.PlanNode(n)
	if identity == transform.NewTree {
		newGroupId = plan.NewGroupId(newSource, n.GroupingColumns, n.AggregationArguments, n.GroupIdSymbol)
	}

	residualPredicate := expression.CombineConjuncts(residual)
	if expression.IsTrueLiteral(expression.Canonicalize(ctx, residualPredicate)) {
		if identity == transform.SameTree {
			return n, transform.SameTree, nil
		}
		return newGroupId, transform.NewTree, nil
	}
	return wrapFilter(ctx, newGroupId, residualPredicate), transform.NewTree, nil
}
