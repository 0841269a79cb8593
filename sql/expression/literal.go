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
	"github.com/sopel39/predicatepushdown/sql/types"
)

// Literal is a constant value carrying its Type.
type Literal struct {
	Value interface{}
	Typ   sql.Type
}

// NewLiteral returns a Literal with the given value and type.
func NewLiteral(value interface{}, typ sql.Type) *Literal {
	return &Literal{Value: value, Typ: typ}
}

// True is the boolean literal TRUE.
var True = NewLiteral(true, types.Boolean)

// False is the boolean literal FALSE.
var False = NewLiteral(false, types.Boolean)

// Children implements sql.Expression.
func (l *Literal) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, ErrWrongChildCount.New("Literal", 0, len(children))
	}
	return l, nil
}

func (l *Literal) String() string {
	if l.Value == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", l.Value)
}

// IsTrue reports whether l is the boolean literal TRUE.
func (l *Literal) IsTrue() bool {
	b, ok := l.Value.(bool)
	return ok && b
}

// IsFalse reports whether l is the boolean literal FALSE.
func (l *Literal) IsFalse() bool {
	b, ok := l.Value.(bool)
	return ok && !b
}

// IsTrueLiteral reports whether e is the boolean literal TRUE.
func IsTrueLiteral(e sql.Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.IsTrue()
}

// IsFalseLiteral reports whether e is the boolean literal FALSE.
func IsFalseLiteral(e sql.Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.IsFalse()
}

// NewFalseComparison returns a provably-false, non-literal comparison
// (0 = 1) used when a join predicate simplifies to FALSE but the caller
// needs to preserve downstream handling that expects a comparison rather
// than a literal (spec open question 9a).
func NewFalseComparison() sql.Expression {
	return NewEquals(NewLiteral(int64(0), types.Int64), NewLiteral(int64(1), types.Int64))
}
