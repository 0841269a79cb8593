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

// rewriteProject implements spec.md §4.4's Project rule: deterministic
// inherited conjuncts split into inlinable (every referenced output symbol
// either aliases a literal/symbol-ref, or occurs exactly once in the
// conjunct) and non-inlinable. Inlinable conjuncts are substituted via the
// assignment map, canonicalized, and cast-unwrapped, then pushed to the
// source; everything else stays as a Filter above the (possibly
// unrewritten) Project.
func rewriteProject(ctx *sql.Context, a *Analyzer, n *plan.Project, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	assignments := n.AssignmentMap()
	deterministic, nonDeterministic := expression.PartitionDeterministic(ctx, inherited)

	var inlinable, residual []sql.Expression
	for _, c := range deterministic {
		if isInlinableConjunct(c, assignments) {
			inlinable = append(inlinable, c)
		} else {
			residual = append(residual, c)
		}
	}
	residual = append(residual, nonDeterministic...)

	var pushed []sql.Expression
	for _, c := range inlinable {
		inlined := expression.InlineSymbols(assignments, c)
		inlined = expression.Canonicalize(ctx, inlined)
		inlined = unwrapCastsDeep(ctx, a, inlined)
		pushed = append(pushed, inlined)
	}

	childPredicate := expression.CombineConjuncts(pushed)
	newSource, identity, err := recurse(ctx, a, n.Source, childPredicate)
	if err != nil {
		return nil, transform.SameTree, err
	}

	newProject := sql.PlanNode(n)
	if identity == transform.NewTree {
		newProject = plan.NewProject(n.Assignments, newSource)
	}

	residualPredicate := expression.CombineConjuncts(residual)
	if expression.IsTrueLiteral(expression.Canonicalize(ctx, residualPredicate)) {
		if identity == transform.SameTree {
			return n, transform.SameTree, nil
		}
		return newProject, transform.NewTree, nil
	}
	return wrapFilter(ctx, newProject, residualPredicate), transform.NewTree, nil
}

// isInlinableConjunct reports whether every symbol conjunct references,
// all of which must be produced by assignments (the Project's output), is
// either a simple alias (literal or bare symbol reference) or occurs
// exactly once within conjunct. A conjunct containing a Try expression is
// never inlinable.
func isInlinableConjunct(conjunct sql.Expression, assignments map[sql.Symbol]sql.Expression) bool {
	if expression.ContainsTry(conjunct) {
		return false
	}
	for _, s := range expression.Symbols(conjunct).Slice() {
		assigned, ok := assignments[s]
		if !ok {
			return false
		}
		if isSimpleAlias(assigned) {
			continue
		}
		if countSymbolOccurrences(conjunct, s) == 1 {
			continue
		}
		return false
	}
	return true
}

func isSimpleAlias(e sql.Expression) bool {
	switch e.(type) {
	case *expression.Literal, *expression.SymbolRef:
		return true
	default:
		return false
	}
}

func countSymbolOccurrences(e sql.Expression, s sql.Symbol) int {
	count := 0
	expression.Walk(e, func(ex sql.Expression) bool {
		if ref, ok := ex.(*expression.SymbolRef); ok && ref.Symbol == s {
			count++
		}
		return true
	})
	return count
}

// unwrapCastsDeep recursively applies expression.UnwrapRedundantCast, using
// the Analyzer's TypeAnalyzer when wired to resolve a cast child's type; in
// its absence every cast is left alone (UnwrapRedundantCast's typeOf
// returning "" is its documented no-op signal).
func unwrapCastsDeep(ctx *sql.Context, a *Analyzer, e sql.Expression) sql.Expression {
	typeOf := func(sub sql.Expression) string {
		if a == nil || a.TypeAnalyzer == nil {
			return ""
		}
		t, err := a.TypeAnalyzer.GetType(ctx, nil, sub)
		if err != nil || t == nil {
			return ""
		}
		return t.String()
	}
	return unwrapCastsRec(e, typeOf)
}

func unwrapCastsRec(e sql.Expression, typeOf func(sql.Expression) string) sql.Expression {
	e = expression.UnwrapRedundantCast(e, typeOf)
	children := e.Children()
	if len(children) == 0 {
		return e
	}
	newChildren := make([]sql.Expression, len(children))
	changed := false
	for i, c := range children {
		nc := unwrapCastsRec(c, typeOf)
		newChildren[i] = nc
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return e
	}
	nv, err := e.WithChildren(newChildren...)
	if err != nil {
		return e
	}
	return nv
}
