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
	"github.com/sopel39/predicatepushdown/analyzer/inference"
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/transform"
)

// rewriteSemiJoin implements spec.md §4.4's SemiJoin rule: two paths
// depending on whether inherited references n's SemiOutput symbol.
func rewriteSemiJoin(ctx *sql.Context, a *Analyzer, n *plan.SemiJoin, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	referencesOutput := false
	for _, c := range expression.ExtractConjuncts(inherited) {
		if n.ReferencesSemiOutput(expression.Symbols(c)) {
			referencesOutput = true
			break
		}
	}
	if referencesOutput {
		return rewriteSemiJoinFiltering(ctx, a, n, inherited)
	}
	return rewriteSemiJoinNonFiltering(ctx, a, n, inherited)
}

// rewriteSemiJoinNonFiltering is spec.md §4.4's "Non-filtering" path: the
// inherited predicate does not reference SemiOutput, so FilteringSource is
// rewritten with TRUE. A deterministic conjunct that references only
// Source's output symbols pushes into Source; the rest (every
// non-deterministic conjunct included) remains a residual above the join. FilteringSource never receives pushed predicates in this path: it
// is only ever probed via SourceKey/FilterKey, never filtered by
// Source-side conditions.
func rewriteSemiJoinNonFiltering(ctx *sql.Context, a *Analyzer, n *plan.SemiJoin, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	sourceScope := sql.NewSymbolSet(n.Source.OutputSymbols()...)

	var pushed, residual []sql.Expression
	for _, c := range expression.ExtractConjuncts(inherited) {
		symbols := expression.Symbols(c)
		if expression.IsDeterministic(ctx, c) && !n.ReferencesSemiOutput(symbols) && symbols.SubsetOf(sourceScope) {
			pushed = append(pushed, c)
		} else {
			residual = append(residual, c)
		}
	}

	newSource, sourceIdentity, err := recurse(ctx, a, n.Source, expression.CombineConjuncts(pushed))
	if err != nil {
		return nil, transform.SameTree, err
	}
	newFiltering, filteringIdentity, err := recurse(ctx, a, n.FilteringSource, expression.True)
	if err != nil {
		return nil, transform.SameTree, err
	}

	same := sourceIdentity.AndAlso(filteringIdentity)
	newNode := sql.PlanNode(n)
	if same == transform.NewTree {
		newNode = plan.NewSemiJoin(newSource, newFiltering, n.SourceKey, n.FilterKey, n.SemiOutput)
	}

	residualPredicate := expression.CombineConjuncts(residual)
	if expression.IsTrueLiteral(expression.Canonicalize(ctx, residualPredicate)) {
		if same == transform.SameTree {
			return n, transform.SameTree, nil
		}
		return newNode, transform.NewTree, nil
	}
	return wrapFilter(ctx, newNode, residualPredicate), transform.NewTree, nil
}

// rewriteSemiJoinFiltering is spec.md §4.4's "Filtering" path: inherited
// references SemiOutput, so a predicate over the join's result exists and
// the sourceKey = filterKey relationship is the only lever available to
// push anything through it. Delegates the actual split to
// processSemiJoinFiltering and recurses exactly like the non-filtering
// path otherwise.
func rewriteSemiJoinFiltering(ctx *sql.Context, a *Analyzer, n *plan.SemiJoin, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	sourceEffective, err := effectivePredicateFor(ctx, a, n.Source)
	if err != nil {
		return nil, transform.SameTree, err
	}
	filterEffective, err := effectivePredicateFor(ctx, a, n.FilteringSource)
	if err != nil {
		return nil, transform.SameTree, err
	}

	sourcePush, filterPush, residual := processSemiJoinFiltering(ctx, n, inherited, sourceEffective, filterEffective)

	newSource, sourceIdentity, err := recurse(ctx, a, n.Source, sourcePush)
	if err != nil {
		return nil, transform.SameTree, err
	}
	newFiltering, filteringIdentity, err := recurse(ctx, a, n.FilteringSource, filterPush)
	if err != nil {
		return nil, transform.SameTree, err
	}

	same := sourceIdentity.AndAlso(filteringIdentity)
	newNode := sql.PlanNode(n)
	if same == transform.NewTree {
		newNode = plan.NewSemiJoin(newSource, newFiltering, n.SourceKey, n.FilterKey, n.SemiOutput)
	}

	if expression.IsTrueLiteral(expression.Canonicalize(ctx, residual)) {
		if same == transform.SameTree {
			return n, transform.SameTree, nil
		}
		return newNode, transform.NewTree, nil
	}
	return wrapFilter(ctx, newNode, residual), transform.NewTree, nil
}

// processSemiJoinFiltering implements spec.md §4.4's Filtering split:
// construct a synthetic sourceKey = filterKey equi-predicate, build an
// equivalence closure over it plus the deterministic inherited conjuncts
// and both sides' effective predicates, and push whatever each side's
// scope can absorb -- mirroring processInnerJoin's scope-equality-plus-
// non-inferrable-conjunct structure, specialized to SemiJoin's single key
// pair instead of a general equi-clause list. A conjunct referencing
// SemiOutput can never be localized to either side (it is only known once
// the join itself runs) and always lands in the post-join residual.
func processSemiJoinFiltering(ctx *sql.Context, n *plan.SemiJoin, inherited, sourceEffective, filterEffective sql.Expression) (sourcePush, filterPush, residual sql.Expression) {
	sourceScope := sql.NewSymbolSet(n.Source.OutputSymbols()...)
	filterScope := sql.NewSymbolSet(n.FilteringSource.OutputSymbols()...)

	inheritedDet, inheritedNonDet := expression.PartitionDeterministic(ctx, inherited)

	var sourcePushed, filterPushed, residualConjuncts []sql.Expression

	// Every Source row maps to exactly one output row, so a
	// non-deterministic Source-confined predicate is safe to evaluate once
	// there; it can never reach FilteringSource (probed once per Source
	// row, not once per output row) or reference SemiOutput.
	for _, c := range inheritedNonDet {
		if !n.ReferencesSemiOutput(expression.Symbols(c)) && expression.Symbols(c).SubsetOf(sourceScope) {
			sourcePushed = append(sourcePushed, c)
		} else {
			residualConjuncts = append(residualConjuncts, c)
		}
	}

	inheritedDetCombined := expression.CombineConjuncts(inheritedDet)
	keyEquality := expression.NewEquals(expression.NewSymbolRef(n.SourceKey, nil), expression.NewSymbolRef(n.FilterKey, nil))

	sourceInference := inference.New(ctx, inheritedDetCombined, filterEffective, keyEquality)
	filterInference := inference.New(ctx, inheritedDetCombined, sourceEffective, keyEquality)
	allInference := inference.New(ctx, inheritedDetCombined, sourceEffective, filterEffective, keyEquality)

	// Unlike a Join, a SemiJoin has no general filter slot that spans both
	// sides: any equality straddling Source's and FilteringSource's scopes
	// would reference FilterKey above the join, outside its output-symbol
	// contract, so generateEqualitiesPartitionedBy's straddling equalities
	// are deliberately not collected here -- the sourceKey = filterKey
	// relationship the join itself enforces already makes them redundant.
	sourceScopeEq, _, _ := sourceInference.GenerateEqualitiesPartitionedBy(sourceScope)
	filterScopeEq, _, _ := filterInference.GenerateEqualitiesPartitionedBy(filterScope)

	sourcePushed = append(sourcePushed, sourceScopeEq...)
	filterPushed = append(filterPushed, filterScopeEq...)

	for _, c := range allInference.NonInferrableConjuncts(ctx, inheritedDetCombined) {
		if n.ReferencesSemiOutput(expression.Symbols(c)) {
			residualConjuncts = append(residualConjuncts, c)
			continue
		}
		if rw, ok := allInference.Rewrite(ctx, c, sourceScope); ok {
			sourcePushed = append(sourcePushed, rw)
			continue
		}
		if rw, ok := allInference.Rewrite(ctx, c, filterScope); ok {
			filterPushed = append(filterPushed, rw)
			continue
		}
		residualConjuncts = append(residualConjuncts, c)
	}

	// Exchange effectives across the join via the key equality: each
	// side's guaranteed predicate, rewritten in terms of the other side's
	// symbols, is safe to push there too.
	if !expression.IsTrueLiteral(expression.Canonicalize(ctx, filterEffective)) {
		if rw, ok := allInference.Rewrite(ctx, filterEffective, sourceScope); ok {
			sourcePushed = append(sourcePushed, rw)
		}
	}
	if !expression.IsTrueLiteral(expression.Canonicalize(ctx, sourceEffective)) {
		if rw, ok := allInference.Rewrite(ctx, sourceEffective, filterScope); ok {
			filterPushed = append(filterPushed, rw)
		}
	}

	return expression.CombineConjuncts(sourcePushed), expression.CombineConjuncts(filterPushed), expression.CombineConjuncts(residualConjuncts)
}
