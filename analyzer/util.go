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
	"fmt"

	"github.com/sopel39/predicatepushdown/internal/telemetry"
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/transform"
)

// wrapFilter wraps node in a Filter carrying predicate, unless predicate is
// (after simplification) TRUE, in which case node is returned unchanged --
// spec.md's invariant that TRUE filters are never materialized.
func wrapFilter(ctx *sql.Context, node sql.PlanNode, predicate sql.Expression) sql.PlanNode {
	predicate = expression.Canonicalize(ctx, predicate)
	if expression.IsTrueLiteral(predicate) {
		return node
	}
	telemetry.ResidualFilters.WithLabelValues(fmt.Sprintf("%T", node)).Add(float64(len(expression.ExtractConjuncts(predicate))))
	return plan.NewFilter(predicate, node)
}

// simplify constant-folds predicate via the configured ExpressionInterpreter
// when one is wired, falling back to the local single-pass folder
// otherwise (spec.md §6 treats ExpressionInterpreter as an external
// collaborator but the local fold is sufficient whenever one isn't wired,
// e.g. in tests).
func simplify(ctx *sql.Context, a *Analyzer, e sql.Expression) sql.Expression {
	if e == nil {
		return expression.True
	}
	if a != nil && a.ExpressionInterpreter != nil {
		if folded, err := a.ExpressionInterpreter.Optimize(ctx, e); err == nil {
			return folded
		}
	}
	return expression.ConstantFold(ctx, e)
}

// typesOf asks the wired TypeAnalyzer for its whole symbol->type map (node
// does not narrow it), returning nil if no analyzer is wired (callers must
// tolerate a nil type map; it only affects cosmetic type annotations on
// synthesized SymbolRefs).
func typesOf(ctx *sql.Context, a *Analyzer, node sql.PlanNode) map[sql.Symbol]sql.Type {
	if a == nil || a.TypeAnalyzer == nil {
		return nil
	}
	types, err := a.TypeAnalyzer.GetTypes(ctx, nil, nil)
	if err != nil {
		return nil
	}
	_ = node
	return types
}

// sameChildAndPredicate reports whether rewriting source with childPredicate
// produced no change and the predicate handed to a newly materialized
// Filter would be identical to an existing Filter's -- used by the Filter
// rule (spec.md §4.4) to decide between fusing and re-wrapping.
func sameChildAndPredicate(ctx *sql.Context, originalChild, newChild sql.PlanNode, originalPredicate, newPredicate sql.Expression) bool {
	return originalChild == newChild && expression.AreEquivalent(ctx, originalPredicate, newPredicate)
}

// identityProjectIfNeeded wraps node in an identity Project when its output
// symbols differ from want, preserving the output-symbol contract a rewrite
// must never silently break (spec.md invariant + §4.4 Join rule step 9).
func identityProjectIfNeeded(ctx *sql.Context, a *Analyzer, node sql.PlanNode, want []sql.Symbol) sql.PlanNode {
	got := node.OutputSymbols()
	if symbolsEqual(got, want) {
		return node
	}
	return plan.NewIdentityProject(want, typesOf(ctx, a, node), node)
}

func symbolsEqual(a, b []sql.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// recurse rewrites child with childPredicate as its inherited predicate,
// used by every operator rule to descend.
func recurse(ctx *sql.Context, a *Analyzer, child sql.PlanNode, childPredicate sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	if n := len(expression.ExtractConjuncts(expression.Canonicalize(ctx, childPredicate))); n > 0 && !expression.IsTrueLiteral(expression.Canonicalize(ctx, childPredicate)) {
		telemetry.PushedConjuncts.WithLabelValues(fmt.Sprintf("%T", child)).Add(float64(n))
	}
	return rewrite(ctx, a, child, childPredicate)
}

// equalitySets reports whether two EquiClause slices are equal as sets,
// ignoring order -- used by the Join rule (spec.md §4.4 step 8) to decide
// whether identity Projects can be skipped.
func equalitySets(a, b []plan.EquiClause) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[plan.EquiClause]int{}
	for _, c := range a {
		seen[c]++
	}
	for _, c := range b {
		if seen[c] == 0 {
			return false
		}
		seen[c]--
	}
	return true
}
