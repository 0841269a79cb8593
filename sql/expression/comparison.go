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
	"fmt"

	"github.com/sopel39/predicatepushdown/sql"
)

// ComparisonOp enumerates the comparison operators of spec.md's data model.
type ComparisonOp int

const (
	EQ ComparisonOp = iota
	NE
	LT
	LE
	GT
	GE
	// Distinct is SQL's "IS DISTINCT FROM": null-safe inequality.
	Distinct
)

func (op ComparisonOp) String() string {
	switch op {
	case EQ:
		return "="
	case NE:
		return "<>"
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	case Distinct:
		return "IS DISTINCT FROM"
	default:
		return "?"
	}
}

// commutative reports whether swapping operands preserves the operator's
// meaning, used by canonicalization.
func (op ComparisonOp) commutative() bool {
	return op == EQ || op == NE || op == Distinct
}

// Swap returns the operator that holds when the two operands are swapped,
// e.g. `a < b` swapped is `b > a`.
func (op ComparisonOp) Swap() ComparisonOp {
	switch op {
	case LT:
		return GT
	case LE:
		return GE
	case GT:
		return LT
	case GE:
		return LE
	default:
		return op
	}
}

// Comparison is a binary comparison expression.
type Comparison struct {
	Op          ComparisonOp
	Left, Right sql.Expression
}

func newComparison(op ComparisonOp, left, right sql.Expression) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

func NewEquals(left, right sql.Expression) *Comparison              { return newComparison(EQ, left, right) }
func NewNotEquals(left, right sql.Expression) *Comparison            { return newComparison(NE, left, right) }
func NewLessThan(left, right sql.Expression) *Comparison             { return newComparison(LT, left, right) }
func NewLessThanOrEqual(left, right sql.Expression) *Comparison      { return newComparison(LE, left, right) }
func NewGreaterThan(left, right sql.Expression) *Comparison          { return newComparison(GT, left, right) }
func NewGreaterThanOrEqual(left, right sql.Expression) *Comparison   { return newComparison(GE, left, right) }
func NewIsDistinctFrom(left, right sql.Expression) *Comparison       { return newComparison(Distinct, left, right) }

// Children implements sql.Expression.
func (c *Comparison) Children() []sql.Expression { return []sql.Expression{c.Left, c.Right} }

// WithChildren implements sql.Expression.
func (c *Comparison) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrWrongChildCount.New("Comparison", 2, len(children))
	}
	return newComparison(c.Op, children[0], children[1]), nil
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left.String(), c.Op.String(), c.Right.String())
}

// IsEquiJoinShape reports whether e is an EQ comparison, irrespective of
// whether it is deterministic or whether its sides actually straddle a
// join's two inputs (the caller checks determinism and scope containment
// separately).
func IsEquiJoinShape(e sql.Expression) (*Comparison, bool) {
	c, ok := e.(*Comparison)
	if !ok || c.Op != EQ {
		return nil, false
	}
	return c, true
}
