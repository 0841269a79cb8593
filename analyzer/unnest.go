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

// rewriteUnnest implements spec.md §4.4's Unnest rule: RIGHT/FULL unnests
// never push (the unnested side can manufacture extra rows independent of
// Source, so a predicate over Source alone isn't sound to push past it in
// either direction); LEFT/INNER push conjuncts whose free symbols are a
// subset of ReplicateSymbols, with non-deterministic conjuncts always kept
// above regardless of join type.
func rewriteUnnest(ctx *sql.Context, a *Analyzer, n *plan.Unnest, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	if n.Type == plan.RightJoin || n.Type == plan.FullJoin {
		newSource, identity, err := recurse(ctx, a, n.Source, expression.True)
		if err != nil {
			return nil, transform.SameTree, err
		}
		newNode := sql.PlanNode(n)
		if identity == transform.NewTree {
			newNode = plan.NewUnnest(newSource, n.ReplicateSymbols, n.UnnestSymbols, n.Output, n.Type, n.Filter)
		}
		if expression.IsTrueLiteral(expression.Canonicalize(ctx, inherited)) {
			if identity == transform.SameTree {
				return n, transform.SameTree, nil
			}
			return newNode, transform.NewTree, nil
		}
		return wrapFilter(ctx, newNode, inherited), transform.NewTree, nil
	}

	replicate := sql.NewSymbolSet(n.ReplicateSymbols...)
	var pushed, residual []sql.Expression
	for _, c := range expression.ExtractConjuncts(inherited) {
		if expression.IsDeterministic(ctx, c) && expression.Symbols(c).SubsetOf(replicate) {
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
		newNode = plan.NewUnnest(newSource, n.ReplicateSymbols, n.UnnestSymbols, n.Output, n.Type, n.Filter)
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
