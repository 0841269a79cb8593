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

// processInnerJoin implements spec.md §4.4's processInnerJoin: since an
// inner join's rows are never null-padded, both effectives, the inherited
// predicate, and the join predicate may all freely exchange equalities
// across sides. Non-deterministic conjuncts from either source are never
// pushed and fall straight to joinResidual.
func processInnerJoin(ctx *sql.Context, left, right sql.PlanNode, inherited, joinPredicate, leftEffective, rightEffective sql.Expression) (leftPush, rightPush, joinResidual sql.Expression) {
	leftScope := sql.NewSymbolSet(left.OutputSymbols()...)
	rightScope := sql.NewSymbolSet(right.OutputSymbols()...)

	inheritedDet, inheritedNonDet := expression.PartitionDeterministic(ctx, inherited)
	joinDet, joinNonDet := expression.PartitionDeterministic(ctx, joinPredicate)

	var residual []sql.Expression
	residual = append(residual, inheritedNonDet...)
	residual = append(residual, joinNonDet...)

	leftEffectiveDet := expression.FilterDeterministicConjuncts(ctx, leftEffective)
	rightEffectiveDet := expression.FilterDeterministicConjuncts(ctx, rightEffective)
	inheritedCombined := expression.CombineConjuncts(inheritedDet)
	joinCombined := expression.CombineConjuncts(joinDet)

	inheritedInf := inference.New(ctx, inheritedCombined)
	simplifiedLeftEffective := rewriteOrKeep(ctx, inheritedInf, leftEffectiveDet, leftScope)
	simplifiedRightEffective := rewriteOrKeep(ctx, inheritedInf, rightEffectiveDet, rightScope)

	allInference := inference.New(ctx, inheritedCombined, leftEffectiveDet, rightEffectiveDet, joinCombined, simplifiedLeftEffective, simplifiedRightEffective)
	allWithoutLeft := inference.New(ctx, inheritedCombined, rightEffectiveDet, joinCombined, simplifiedRightEffective)
	allWithoutRight := inference.New(ctx, inheritedCombined, leftEffectiveDet, joinCombined, simplifiedLeftEffective)

	leftScopeEq, _, _ := allWithoutLeft.GenerateEqualitiesPartitionedBy(leftScope)
	rightScopeEq, _, _ := allWithoutRight.GenerateEqualitiesPartitionedBy(rightScope)
	_, _, straddling := allInference.GenerateEqualitiesPartitionedBy(leftScope)

	var leftPushed, rightPushed []sql.Expression
	leftPushed = append(leftPushed, leftScopeEq...)
	rightPushed = append(rightPushed, rightScopeEq...)
	residual = append(residual, straddling...)

	for _, c := range allInference.NonInferrableConjuncts(ctx, inheritedCombined) {
		if rw, ok := allInference.Rewrite(ctx, c, leftScope); ok {
			leftPushed = append(leftPushed, rw)
			continue
		}
		if rw, ok := allInference.Rewrite(ctx, c, rightScope); ok {
			rightPushed = append(rightPushed, rw)
			continue
		}
		residual = append(residual, c)
	}

	if !expression.IsTrueLiteral(expression.Canonicalize(ctx, simplifiedRightEffective)) {
		if rw, ok := allInference.Rewrite(ctx, simplifiedRightEffective, leftScope); ok {
			leftPushed = append(leftPushed, rw)
		}
	}
	if !expression.IsTrueLiteral(expression.Canonicalize(ctx, simplifiedLeftEffective)) {
		if rw, ok := allInference.Rewrite(ctx, simplifiedLeftEffective, rightScope); ok {
			rightPushed = append(rightPushed, rw)
		}
	}

	for _, c := range allInference.NonInferrableConjuncts(ctx, joinCombined) {
		if rw, ok := allInference.Rewrite(ctx, c, leftScope); ok {
			leftPushed = append(leftPushed, rw)
			continue
		}
		if rw, ok := allInference.Rewrite(ctx, c, rightScope); ok {
			rightPushed = append(rightPushed, rw)
			continue
		}
		residual = append(residual, c)
	}

	return expression.CombineConjuncts(leftPushed), expression.CombineConjuncts(rightPushed), expression.CombineConjuncts(residual)
}

func rewriteOrKeep(ctx *sql.Context, inf *inference.Inference, e sql.Expression, scope sql.SymbolSet) sql.Expression {
	if rw, ok := inf.Rewrite(ctx, e, scope); ok {
		return rw
	}
	return e
}
