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

package expression

import (
	"github.com/spf13/cast"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/types"
)

// ConstantFold is the single constant-folding pass spec.md §2 and its
// Non-goals allow: a one-shot bottom-up simplification of AND/OR/NOT and
// comparisons between two literals, standing in for the out-of-scope
// ExpressionInterpreter.Optimize collaborator when this repo's own tests
// and CLI run without a real one wired up. It is not a fixed-point
// simplifier and must not be called repeatedly expecting further
// convergence.
func ConstantFold(ctx *sql.Context, e sql.Expression) sql.Expression {
	switch v := e.(type) {
	case *And:
		l, r := ConstantFold(ctx, v.Left), ConstantFold(ctx, v.Right)
		if IsFalseLiteral(l) || IsFalseLiteral(r) {
			return False
		}
		if IsTrueLiteral(l) {
			return r
		}
		if IsTrueLiteral(r) {
			return l
		}
		return NewAnd(l, r)
	case *Or:
		l, r := ConstantFold(ctx, v.Left), ConstantFold(ctx, v.Right)
		if IsTrueLiteral(l) || IsTrueLiteral(r) {
			return True
		}
		if IsFalseLiteral(l) {
			return r
		}
		if IsFalseLiteral(r) {
			return l
		}
		return NewOr(l, r)
	case *Not:
		c := ConstantFold(ctx, v.Child)
		if IsTrueLiteral(c) {
			return False
		}
		if IsFalseLiteral(c) {
			return True
		}
		return NewNot(c)
	case *Comparison:
		l, r := ConstantFold(ctx, v.Left), ConstantFold(ctx, v.Right)
		ll, lok := l.(*Literal)
		rl, rok := r.(*Literal)
		if lok && rok {
			// Distinct ("IS DISTINCT FROM") is null-safe: it always yields a
			// definite TRUE/FALSE, treating NULL as a value to compare
			// against rather than an unknown that poisons the result.
			if v.Op == Distinct {
				if res, ok := evalComparison(v.Op, ll.Value, rl.Value); ok {
					return NewLiteral(res, types.Boolean)
				}
			} else if ll.Value == nil || rl.Value == nil {
				return NewLiteral(nil, types.Boolean)
			} else if res, ok := evalComparison(v.Op, ll.Value, rl.Value); ok {
				return NewLiteral(res, types.Boolean)
			}
		}
		return newComparison(v.Op, l, r)
	default:
		return e
	}
}

// evalComparison evaluates a literal-literal comparison, coercing through
// float64 when both sides parse numerically and falling back to string
// comparison for EQ/NE otherwise. ok is false when the comparison cannot be
// evaluated (e.g. a NULL operand), in which case the caller leaves the
// comparison unfolded.
func evalComparison(op ComparisonOp, a, b interface{}) (result bool, ok bool) {
	if op == Distinct && (a == nil || b == nil) {
		// NULL-safe: NULL is DISTINCT FROM any non-NULL value, and NULL is
		// NOT DISTINCT FROM NULL.
		return a != nil || b != nil, true
	}
	if a == nil || b == nil {
		return false, false
	}
	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		switch op {
		case EQ:
			return af == bf, true
		case NE, Distinct:
			return af != bf, true
		case LT:
			return af < bf, true
		case LE:
			return af <= bf, true
		case GT:
			return af > bf, true
		case GE:
			return af >= bf, true
		}
	}
	as, aserr := cast.ToStringE(a)
	bs, bserr := cast.ToStringE(b)
	if aserr == nil && bserr == nil {
		switch op {
		case EQ:
			return as == bs, true
		case NE, Distinct:
			return as != bs, true
		}
	}
	return false, false
}

// SimplifyToFalse reports whether e's deterministic conjuncts fold to
// FALSE once every symbol in nullSymbols is substituted with NULL. Used by
// the join normalizer (analyzer/join_normalizer.go) to detect a
// null-rejecting inherited predicate.
func SimplifyToFalse(ctx *sql.Context, e sql.Expression, nullSymbols sql.SymbolSet) bool {
	mapping := make(map[sql.Symbol]sql.Expression, len(nullSymbols))
	for sym := range nullSymbols {
		mapping[sym] = NewLiteral(nil, types.Unknown)
	}
	for _, conjunct := range ExtractConjuncts(e) {
		if !IsDeterministic(ctx, conjunct) {
			continue
		}
		substituted := InlineSymbols(mapping, conjunct)
		folded := ConstantFold(ctx, substituted)
		if IsFalseLiteral(folded) || isNullLiteral(folded) {
			return true
		}
	}
	return false
}

func isNullLiteral(e sql.Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.Value == nil
}
