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

// rewriteWindow pushes a conjunct only if it is deterministic and constant
// within a partition, i.e. its free symbols are a subset of PartitionBy
// (spec.md §4.4 Window rule); everything else remains a Filter above.
func rewriteWindow(ctx *sql.Context, a *Analyzer, n *plan.Window, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	partitionBy := sql.NewSymbolSet(n.PartitionBy...)

	var pushed, residual []sql.Expression
	for _, c := range expression.ExtractConjuncts(inherited) {
		if expression.IsDeterministic(ctx, c) && expression.Symbols(c).SubsetOf(partitionBy) {
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

	newWindow := sql.PlanNode(n)
	if identity == transform.NewTree {
		newWindow = plan.NewWindow(newSource, n.Functions, n.PartitionBy)
	}

	residualPredicate := expression.CombineConjuncts(residual)
	if expression.IsTrueLiteral(expression.Canonicalize(ctx, residualPredicate)) {
		if identity == transform.SameTree {
			return n, transform.SameTree, nil
		}
		return newWindow, transform.NewTree, nil
	}
	return wrapFilter(ctx, newWindow, residualPredicate), transform.NewTree, nil
}
