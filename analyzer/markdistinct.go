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

// rewriteMarkDistinct pushes conjuncts whose free symbols are a subset of
// DistinctSymbols; a conjunct referencing the Marker column itself can
// never qualify, since Marker doesn't exist below this node (spec.md §4.4
// MarkDistinct rule).
func rewriteMarkDistinct(ctx *sql.Context, a *Analyzer, n *plan.MarkDistinct, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	distinct := sql.NewSymbolSet(n.DistinctSymbols...)

	var pushed, residual []sql.Expression
	for _, c := range expression.ExtractConjuncts(inherited) {
		if expression.Symbols(c).SubsetOf(distinct) {
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

	newNode := sql.PlanNode(n)
	if identity == transform.NewTree {
		newNode = plan.NewMarkDistinct(newSource, n.DistinctSymbols, n.Marker)
	}

	residualPredicate := expression.CombineConjuncts(residual)
	if expression.IsTrueLiteral(expression.Canonicalize(ctx, residualPredicate)) {
		if identity == transform.SameTree {
			return n, transform.SameTree, nil
		}
		return newNode, transform.NewTree, nil
	}
	return wrapFilter(ctx, newNode, residualPredicate), transform.NewTree, nil
}
