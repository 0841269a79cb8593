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
	"sort"

	"github.com/sopel39/predicatepushdown/sql"
)

// Canonicalize orders the operands of commutative operators (AND/OR,
// EQ/NE/IS DISTINCT FROM comparisons) by their canonical string key and
// runs ConstantFold, so that two expressions differing only in operand
// order or foldable sub-constants produce identical output. This is the
// deterministic canonical form spec.md's design notes (§9b) recommend to
// keep revisit detection from being too strict (infinite revisits) or too
// lax (lost pushdown opportunities).
func Canonicalize(ctx *sql.Context, e sql.Expression) sql.Expression {
	return canonicalize(ctx, ConstantFold(ctx, e))
}

func canonicalize(ctx *sql.Context, e sql.Expression) sql.Expression {
	switch v := e.(type) {
	case *And:
		l, r := canonicalize(ctx, v.Left), canonicalize(ctx, v.Right)
		return orderCommutative(func(a, b sql.Expression) sql.Expression { return NewAnd(a, b) }, l, r)
	case *Or:
		l, r := canonicalize(ctx, v.Left), canonicalize(ctx, v.Right)
		return orderCommutative(func(a, b sql.Expression) sql.Expression { return NewOr(a, b) }, l, r)
	case *Comparison:
		l, r := canonicalize(ctx, v.Left), canonicalize(ctx, v.Right)
		if v.Op.commutative() && CanonicalKey(l) > CanonicalKey(r) {
			return newComparison(v.Op, r, l)
		}
		return newComparison(v.Op, l, r)
	case *Not:
		return NewNot(canonicalize(ctx, v.Child))
	default:
		children := e.Children()
		if len(children) == 0 {
			return e
		}
		newChildren := make([]sql.Expression, len(children))
		for i, c := range children {
			newChildren[i] = canonicalize(ctx, c)
		}
		nv, err := e.WithChildren(newChildren...)
		if err != nil {
			return e
		}
		return nv
	}
}

func orderCommutative(build func(a, b sql.Expression) sql.Expression, l, r sql.Expression) sql.Expression {
	if CanonicalKey(l) > CanonicalKey(r) {
		return build(r, l)
	}
	return build(l, r)
}

// CanonicalKey returns a stable string key for e, used both to order
// commutative operands deterministically and to dedupe syntactically
// identical conjuncts.
func CanonicalKey(e sql.Expression) string {
	if e == nil {
		return ""
	}
	return e.String()
}

// AreEquivalent reports whether e1 and e2 are structurally identical after
// canonicalization (commutative reordering plus constant folding).
func AreEquivalent(ctx *sql.Context, e1, e2 sql.Expression) bool {
	return CanonicalKey(Canonicalize(ctx, e1)) == CanonicalKey(Canonicalize(ctx, e2))
}

// SortByKey sorts a slice of expressions by CanonicalKey, used wherever
// output needs to be deterministic but no other natural order exists (e.g.
// choosing a representative in the equality inference engine).
func SortByKey(list []sql.Expression) []sql.Expression {
	out := make([]sql.Expression, len(list))
	copy(out, list)
	sort.Slice(out, func(i, j int) bool { return CanonicalKey(out[i]) < CanonicalKey(out[j]) })
	return out
}
