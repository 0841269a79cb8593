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

// rewriteJoin implements spec.md §4.4's Join rule in full: normalize the
// join type against null-rejection, dispatch the inherited and join
// predicates through processInnerJoin/processLimitedOuterJoin, simplify
// and re-derive equi-clauses from what's left of the join predicate,
// synthesize dynamic filters for the (possibly new) equi-clauses of an
// INNER join, recurse into both children, and reassemble -- re-imposing
// the output-symbol contract with an identity Project if needed.
func rewriteJoin(ctx *sql.Context, a *Analyzer, n *plan.Join, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	leftEffective, err := effectivePredicateFor(ctx, a, n.Left)
	if err != nil {
		return nil, transform.SameTree, err
	}
	rightEffective, err := effectivePredicateFor(ctx, a, n.Right)
	if err != nil {
		return nil, transform.SameTree, err
	}

	newType := tryNormalizeToOuterToInnerJoin(ctx, n.Type, n.Left, n.Right, inherited, leftEffective, rightEffective)
	joinPredicate := expression.CombineConjuncts(append(equiClausesAsConjuncts(n.EquiClauses), orTrue(n.Filter)))

	var leftPredicate, rightPredicate, newJoinPredicate, postJoinPredicate sql.Expression
	switch newType {
	case plan.InnerJoin:
		leftPredicate, rightPredicate, newJoinPredicate = processInnerJoin(ctx, n.Left, n.Right, inherited, joinPredicate, leftEffective, rightEffective)
		postJoinPredicate = expression.True
	case plan.LeftJoin:
		leftPredicate, rightPredicate, newJoinPredicate, postJoinPredicate = processLimitedOuterJoin(ctx, n.Left, n.Right, inherited, joinPredicate, leftEffective, rightEffective)
	case plan.RightJoin:
		rightPredicate, leftPredicate, newJoinPredicate, postJoinPredicate = processLimitedOuterJoin(ctx, n.Right, n.Left, inherited, joinPredicate, rightEffective, leftEffective)
	case plan.FullJoin:
		leftPredicate, rightPredicate = expression.True, expression.True
		postJoinPredicate = inherited
		newJoinPredicate = joinPredicate
	default:
		return nil, transform.SameTree, ErrUnsupportedJoinType.New(newType.String())
	}

	newJoinPredicate = simplify(ctx, a, newJoinPredicate)
	newJoinPredicate = expression.Canonicalize(ctx, newJoinPredicate)
	if expression.IsFalseLiteral(newJoinPredicate) {
		newJoinPredicate = expression.NewFalseComparison()
	}

	newEquiClauses, residualConjuncts, leftExtra, rightExtra := deriveEquiClauses(ctx, a, newJoinPredicate, n.Left, n.Right)

	var dynamicFilters map[string]sql.Symbol
	if newType == plan.InnerJoin && ctx != nil && ctx.Session != nil && ctx.Session.EnableDynamicFiltering && len(newEquiClauses) > 0 {
		var probeMarkers sql.Expression
		probeMarkers, dynamicFilters = synthesizeDynamicFilters(ctx, a, newEquiClauses, typesOf(ctx, a, n.Left))
		if !expression.IsTrueLiteral(expression.Canonicalize(ctx, probeMarkers)) {
			leftPredicate = expression.NewAnd(leftPredicate, probeMarkers)
		}
	}

	newFilter := expression.CombineConjuncts(residualConjuncts)
	if newType == plan.InnerJoin && len(newEquiClauses) == 0 && !expression.IsTrueLiteral(expression.Canonicalize(ctx, newFilter)) {
		// An INNER join with no equi-clauses left has nothing useful for a
		// join operator to do with the remaining predicate; promote it to
		// a post-join Filter over the cross product instead.
		postJoinPredicate = expression.NewAnd(postJoinPredicate, newFilter)
		newFilter = expression.True
	}

	augmentedLeft := withExtraAssignments(ctx, a, n.Left, leftExtra)
	augmentedRight := withExtraAssignments(ctx, a, n.Right, rightExtra)

	newLeft, leftIdentity, err := recurse(ctx, a, augmentedLeft, leftPredicate)
	if err != nil {
		return nil, transform.SameTree, err
	}
	newRight, rightIdentity, err := recurse(ctx, a, augmentedRight, rightPredicate)
	if err != nil {
		return nil, transform.SameTree, err
	}

	sameChildren := leftIdentity.AndAlso(rightIdentity)
	structureChanged := newType != n.Type || !equalitySets(n.EquiClauses, newEquiClauses) ||
		!expression.AreEquivalent(ctx, orTrue(n.Filter), newFilter) || len(leftExtra) > 0 || len(rightExtra) > 0

	var newNode sql.PlanNode = n
	if sameChildren == transform.NewTree || structureChanged {
		rebuilt := n.WithEquiClausesAndFilter(newEquiClauses, filterOrNil(newFilter))
		rebuilt = rebuilt.WithType(newType)
		rebuilt = rebuilt.WithDynamicFilters(dynamicFilters)
		joined, jerr := rebuilt.WithChildren(newLeft, newRight)
		if jerr != nil {
			return nil, transform.SameTree, jerr
		}
		newNode = joined
	}

	result := identityProjectIfNeeded(ctx, a, newNode, n.Output)
	if result == newNode && sameChildren == transform.SameTree && !structureChanged && expression.IsTrueLiteral(expression.Canonicalize(ctx, postJoinPredicate)) {
		return n, transform.SameTree, nil
	}
	return wrapFilter(ctx, result, postJoinPredicate), transform.NewTree, nil
}

func orTrue(e sql.Expression) sql.Expression {
	if e == nil {
		return expression.True
	}
	return e
}

func filterOrNil(e sql.Expression) sql.Expression {
	if e == nil || expression.IsTrueLiteral(expression.Canonicalize(nil, e)) {
		return nil
	}
	return e
}

func equiClausesAsConjuncts(clauses []plan.EquiClause) []sql.Expression {
	out := make([]sql.Expression, len(clauses))
	for i, c := range clauses {
		out[i] = expression.NewEquals(expression.NewSymbolRef(c.Left, nil), expression.NewSymbolRef(c.Right, nil))
	}
	return out
}

// deriveEquiClauses re-scans newJoinPredicate's conjuncts (spec.md §4.4
// Join rule step 5) looking for deterministic equalities whose two sides
// fall cleanly one-per-child: a plain SymbolRef side is used directly, a
// compound side is hoisted into a Project assignment over its own child
// via SymbolAllocator so the equi-clause can still reference a bare
// symbol. A conjunct that doesn't fit this shape (non-equality,
// non-deterministic, both sides in the same child, or a compound side with
// no SymbolAllocator wired to materialize it) is kept as a residual
// filter conjunct instead.
func deriveEquiClauses(ctx *sql.Context, a *Analyzer, predicate sql.Expression, left, right sql.PlanNode) ([]plan.EquiClause, []sql.Expression, []plan.Assignment, []plan.Assignment) {
	leftScope := sql.NewSymbolSet(left.OutputSymbols()...)
	rightScope := sql.NewSymbolSet(right.OutputSymbols()...)

	var clauses []plan.EquiClause
	var residual []sql.Expression
	var leftExtra, rightExtra []plan.Assignment

	for _, c := range expression.ExtractConjuncts(predicate) {
		cmp, ok := expression.IsEquiJoinShape(c)
		if !ok || !expression.IsDeterministic(ctx, c) {
			residual = append(residual, c)
			continue
		}
		lSyms, rSyms := expression.Symbols(cmp.Left), expression.Symbols(cmp.Right)

		var leftSym, rightSym sql.Symbol
		var leftOk, rightOk bool
		switch {
		case lSyms.SubsetOf(leftScope) && rSyms.SubsetOf(rightScope):
			leftSym, leftOk = materializeSide(ctx, a, cmp.Left, &leftExtra)
			rightSym, rightOk = materializeSide(ctx, a, cmp.Right, &rightExtra)
		case lSyms.SubsetOf(rightScope) && rSyms.SubsetOf(leftScope):
			leftSym, leftOk = materializeSide(ctx, a, cmp.Right, &leftExtra)
			rightSym, rightOk = materializeSide(ctx, a, cmp.Left, &rightExtra)
		}
		if leftOk && rightOk {
			clauses = append(clauses, plan.EquiClause{Left: leftSym, Right: rightSym})
		} else {
			residual = append(residual, c)
		}
	}
	return clauses, residual, leftExtra, rightExtra
}

func materializeSide(ctx *sql.Context, a *Analyzer, e sql.Expression, extra *[]plan.Assignment) (sql.Symbol, bool) {
	if ref, ok := e.(*expression.SymbolRef); ok {
		return ref.Symbol, true
	}
	if a == nil || a.SymbolAllocator == nil {
		return sql.Symbol{}, false
	}
	var t sql.Type
	if a.TypeAnalyzer != nil {
		if resolved, err := a.TypeAnalyzer.GetType(ctx, nil, e); err == nil {
			t = resolved
		}
	}
	sym := a.SymbolAllocator.NewSymbol(e, t)
	*extra = append(*extra, plan.Assignment{Output: sym, Expr: e})
	return sym, true
}

// withExtraAssignments wraps node in a Project carrying its own output
// symbols unchanged plus extra, used to materialize non-symbol equi-clause
// sides without disturbing the predicate recursed into node (spec.md §4.4
// Join rule step 5's "materializing non-symbol equi-clause sides via
// Project").
func withExtraAssignments(ctx *sql.Context, a *Analyzer, node sql.PlanNode, extra []plan.Assignment) sql.PlanNode {
	if len(extra) == 0 {
		return node
	}
	types := typesOf(ctx, a, node)
	assignments := make([]plan.Assignment, 0, len(node.OutputSymbols())+len(extra))
	for _, s := range node.OutputSymbols() {
		var t sql.Type
		if types != nil {
			t = types[s]
		}
		assignments = append(assignments, plan.Assignment{Output: s, Expr: expression.NewSymbolRef(s, t)})
	}
	assignments = append(assignments, extra...)
	return plan.NewProject(assignments, node)
}
