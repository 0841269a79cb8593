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

// Cast converts Child's value to Typ.
type Cast struct {
	Child sql.Expression
	Typ   sql.Type
}

// NewCast returns CAST(child AS typ).
func NewCast(child sql.Expression, typ sql.Type) *Cast { return &Cast{Child: child, Typ: typ} }

func (c *Cast) Children() []sql.Expression { return []sql.Expression{c.Child} }

func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Cast", 1, len(children))
	}
	return NewCast(children[0], c.Typ), nil
}

func (c *Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.Child.String(), c.Typ.String()) }

// UnwrapRedundantCast strips a Cast whose child already has the target
// type, the cast-unwrapping rewrite spec.md §4.4's Project rule applies
// after inlining. typeOf returns "" when the type of child is unknown,
// in which case the cast is left alone.
func UnwrapRedundantCast(e sql.Expression, typeOf func(sql.Expression) string) sql.Expression {
	c, ok := e.(*Cast)
	if !ok {
		return e
	}
	childType := typeOf(c.Child)
	if childType != "" && childType == c.Typ.String() {
		return c.Child
	}
	return e
}

// Try marks a subtree whose evaluation errors must be suppressed by
// returning NULL instead. It is opaque: InlineSymbols never rewrites
// symbols within it, and it is never a candidate for Project inlining.
type Try struct {
	Child sql.Expression
}

// NewTry returns TRY(child).
func NewTry(child sql.Expression) *Try { return &Try{Child: child} }

func (t *Try) Children() []sql.Expression { return []sql.Expression{t.Child} }

func (t *Try) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Try", 1, len(children))
	}
	return NewTry(children[0]), nil
}

func (t *Try) String() string { return fmt.Sprintf("TRY(%s)", t.Child.String()) }
