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
	"github.com/sopel39/predicatepushdown/internal/telemetry"
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
)

// tryNormalizeToOuterToInnerJoin implements spec.md §4.5: given the
// null-producing side(s) of an outer join, check whether inheritedPredicate
// combined with the preserved side's effective predicate rejects rows
// where that side is entirely null, by substituting NULL for every symbol
// of the null-producing side and constant-folding. A rejection downgrades
// the join type -- LEFT/RIGHT to INNER, FULL to LEFT, RIGHT, or INNER
// depending on which side(s) reject nulls.
func tryNormalizeToOuterToInnerJoin(ctx *sql.Context, typ plan.JoinType, left, right sql.PlanNode, inherited, leftEffective, rightEffective sql.Expression) plan.JoinType {
	rightNulls := sql.NewSymbolSet(right.OutputSymbols()...)
	leftNulls := sql.NewSymbolSet(left.OutputSymbols()...)

	newType := typ
	switch typ {
	case plan.LeftJoin:
		if rejectsNulls(ctx, expression.NewAnd(inherited, leftEffective), rightNulls) {
			newType = plan.InnerJoin
		}
	case plan.RightJoin:
		if rejectsNulls(ctx, expression.NewAnd(inherited, rightEffective), leftNulls) {
			newType = plan.InnerJoin
		}
	case plan.FullJoin:
		rejectsRight := rejectsNulls(ctx, expression.NewAnd(inherited, leftEffective), rightNulls)
		rejectsLeft := rejectsNulls(ctx, expression.NewAnd(inherited, rightEffective), leftNulls)
		switch {
		case rejectsRight && rejectsLeft:
			newType = plan.InnerJoin
		case rejectsRight:
			newType = plan.LeftJoin
		case rejectsLeft:
			newType = plan.RightJoin
		}
	}
	if newType != typ {
		telemetry.OuterToInnerDowngrades.WithLabelValues(typ.String(), newType.String()).Inc()
	}
	return newType
}

func rejectsNulls(ctx *sql.Context, predicate sql.Expression, nullSide sql.SymbolSet) bool {
	return expression.SimplifyToFalse(ctx, predicate, nullSide)
}
