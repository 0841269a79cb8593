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
)

// processLimitedOuterJoin implements spec.md §4.4's outer-join handling
// (already normalized to a LEFT shape by the caller, swapping sides for a
// RIGHT join): the outer (preserved) side behaves like Filter's own
// source -- inherited and outerEffective push through it freely -- but
// nothing may be pushed INTO the inner (null-producing) side except via
// equalities that are null-safe, since a row of the outer side with no
// match must survive with inner columns NULL. joinPredicate conjuncts that
// can't be proven null-safe stay in joinResidual, kept at the join itself
// rather than pushed to either side.
func processLimitedOuterJoin(ctx *sql.Context, outer, inner sql.PlanNode, inherited, joinPredicate, outerEffective, innerEffective sql.Expression) (outerPush, innerPush, joinResidual, postJoin sql.Expression) {
	outerScope := sql.NewSymbolSet(outer.OutputSymbols()...)
	innerScope := sql.NewSymbolSet(inner.OutputSymbols()...)

	inheritedDet, inheritedNonDet := expression.PartitionDeterministic(ctx, inherited)
	joinDet, joinNonDet := expression.PartitionDeterministic(ctx, joinPredicate)

	var post []sql.Expression
	post = append(post, inheritedNonDet...)
	var residual []sql.Expression
	residual = append(residual, joinNonDet...)

	outerEffectiveDet := expression.FilterDeterministicConjuncts(ctx, outerEffective)
	innerEffectiveDet := expression.FilterDeterministicConjuncts(ctx, innerEffective)
	inheritedCombined := expression.CombineConjuncts(inheritedDet)
	joinCombined := expression.CombineConjuncts(joinDet)

	// Only the inherited predicate's equalities wholly within the outer
	// side's own scope are safe to mix into the null-safe inference below;
	// an inherited equality straddling outer/inner (impossible pre-join
	// since inherited only ever mentions this join's own output, which at
	// this point is still outer ∪ inner) or entirely outside outer scope
	// falls through to postJoin untouched.
	inheritedInference := inference.New(ctx, inheritedCombined)
	outerOnlyEq, outerOnlyComplement, outerOnlyStraddling := inheritedInference.GenerateEqualitiesPartitionedBy(outerScope)
	post = append(post, outerOnlyComplement...)
	post = append(post, outerOnlyStraddling...)

	outerInference := inference.New(ctx, expression.CombineConjuncts(outerOnlyEq), outerEffectiveDet)
	nullSafeInference := inference.New(ctx, expression.CombineConjuncts(outerOnlyEq), outerEffectiveDet, innerEffectiveDet, joinCombined)
	nullSafeWithoutInner := inference.New(ctx, expression.CombineConjuncts(outerOnlyEq), outerEffectiveDet, joinCombined)

	var outerPushed, innerPushed []sql.Expression
	outerPushed = append(outerPushed, outerOnlyEq...)

	innerScopeEq, _, _ := nullSafeWithoutInner.GenerateEqualitiesPartitionedBy(innerScope)
	innerPushed = append(innerPushed, innerScopeEq...)

	joinInnerEq, joinComplementEq, joinStraddlingEq := nullSafeInference.GenerateEqualitiesPartitionedBy(innerScope)
	innerPushed = append(innerPushed, joinInnerEq...)
	residual = append(residual, joinComplementEq...)
	residual = append(residual, joinStraddlingEq...)

	for _, c := range inheritedInference.NonInferrableConjuncts(ctx, inheritedCombined) {
		rwOuter, ok := outerInference.Rewrite(ctx, c, outerScope)
		if !ok {
			post = append(post, c)
			continue
		}
		outerPushed = append(outerPushed, rwOuter)
		if rwInner, ok := nullSafeInference.Rewrite(ctx, rwOuter, innerScope); ok {
			innerPushed = append(innerPushed, rwInner)
		}
	}

	outerEffInf := inference.New(ctx, outerEffectiveDet)
	for _, c := range outerEffInf.NonInferrableConjuncts(ctx, outerEffectiveDet) {
		if rwInner, ok := nullSafeInference.Rewrite(ctx, c, innerScope); ok {
			innerPushed = append(innerPushed, rwInner)
		}
	}

	joinInf := inference.New(ctx, joinCombined)
	for _, c := range joinInf.NonInferrableConjuncts(ctx, joinCombined) {
		if rwInner, ok := nullSafeInference.Rewrite(ctx, c, innerScope); ok {
			innerPushed = append(innerPushed, rwInner)
		} else {
			residual = append(residual, c)
		}
	}

	return expression.CombineConjuncts(outerPushed), expression.CombineConjuncts(innerPushed), expression.CombineConjuncts(residual), expression.CombineConjuncts(post)
}
