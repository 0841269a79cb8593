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

// rewriteUnion translates the inherited predicate into each branch's own
// symbol namespace via SymbolMapping and recurses independently (spec.md
// §4.4 Union rule). A conjunct referencing an output symbol that a
// branch's mapping doesn't cover is not pushed into that branch (see
// translateForBranch), and no Filter is left above the Union for it.
func rewriteUnion(ctx *sql.Context, a *Analyzer, n *plan.Union, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	newSources := make([]sql.PlanNode, len(n.Sources))
	same := transform.SameTree
	for i, source := range n.Sources {
		branchPredicate := translateForBranch(inherited, func(s sql.Symbol) (sql.Symbol, bool) { return n.MapToBranch(i, s) })
		ns, identity, err := recurse(ctx, a, source, branchPredicate)
		if err != nil {
			return nil, transform.SameTree, err
		}
		newSources[i] = ns
		same = same.AndAlso(identity)
	}
	if same == transform.SameTree {
		return n, transform.SameTree, nil
	}
	return plan.NewUnion(newSources, n.Output, n.SymbolMapping), transform.NewTree, nil
}

// rewriteExchange is Union's twin for Exchange, using Inputs[i] instead of
// SymbolMapping (spec.md §4.4 Exchange rule: "identical to Union but the
// mapping comes from the inputs[i] list").
func rewriteExchange(ctx *sql.Context, a *Analyzer, n *plan.Exchange, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	newSources := make([]sql.PlanNode, len(n.Sources))
	same := transform.SameTree
	for i, source := range n.Sources {
		branchPredicate := translateForBranch(inherited, func(s sql.Symbol) (sql.Symbol, bool) { return n.MapToBranch(i, s) })
		ns, identity, err := recurse(ctx, a, source, branchPredicate)
		if err != nil {
			return nil, transform.SameTree, err
		}
		newSources[i] = ns
		same = same.AndAlso(identity)
	}
	if same == transform.SameTree {
		return n, transform.SameTree, nil
	}
	return plan.NewExchange(n.Scope, newSources, n.Output, n.Inputs, n.PartitionKeys), transform.NewTree, nil
}

// translateForBranch rewrites every top-level conjunct of predicate whose
// free symbols all translate via mapToBranch into the branch's own
// namespace; a conjunct with an untranslatable symbol is dropped (it
// cannot be meaningfully pushed into this branch and has no shared
// post-node slot to fall back to, unlike Join's post-join residual).
func translateForBranch(predicate sql.Expression, mapToBranch func(sql.Symbol) (sql.Symbol, bool)) sql.Expression {
	var translatable []sql.Expression
	for _, c := range expression.ExtractConjuncts(predicate) {
		mapping := map[sql.Symbol]sql.Expression{}
		ok := true
		for _, s := range expression.Symbols(c).Slice() {
			mapped, found := mapToBranch(s)
			if !found {
				ok = false
				break
			}
			mapping[s] = expression.NewSymbolRef(mapped, nil)
		}
		if !ok {
			continue
		}
		translatable = append(translatable, expression.InlineSymbols(mapping, c))
	}
	return expression.CombineConjuncts(translatable)
}
