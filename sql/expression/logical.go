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

// And is a binary boolean conjunction.
type And struct {
	Left, Right sql.Expression
}

// NewAnd returns left AND right.
func NewAnd(left, right sql.Expression) *And { return &And{Left: left, Right: right} }

func (a *And) Children() []sql.Expression { return []sql.Expression{a.Left, a.Right} }

func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrWrongChildCount.New("And", 2, len(children))
	}
	return NewAnd(children[0], children[1]), nil
}

func (a *And) String() string { return fmt.Sprintf("(%s AND %s)", a.Left.String(), a.Right.String()) }

// Or is a binary boolean disjunction.
type Or struct {
	Left, Right sql.Expression
}

// NewOr returns left OR right.
func NewOr(left, right sql.Expression) *Or { return &Or{Left: left, Right: right} }

func (o *Or) Children() []sql.Expression { return []sql.Expression{o.Left, o.Right} }

func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, ErrWrongChildCount.New("Or", 2, len(children))
	}
	return NewOr(children[0], children[1]), nil
}

func (o *Or) String() string { return fmt.Sprintf("(%s OR %s)", o.Left.String(), o.Right.String()) }

// Not is boolean negation.
type Not struct {
	Child sql.Expression
}

// NewNot returns NOT child.
func NewNot(child sql.Expression) *Not { return &Not{Child: child} }

func (n *Not) Children() []sql.Expression { return []sql.Expression{n.Child} }

func (n *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Not", 1, len(children))
	}
	return NewNot(children[0]), nil
}

func (n *Not) String() string { return fmt.Sprintf("(NOT %s)", n.Child.String()) }

// JoinAnd folds a list of expressions into a single AND tree, left to
// right. An empty list returns TRUE. This is the raw tree-builder used
// internally by CombineConjuncts once the list has been deduplicated and
// checked for FALSE.
func JoinAnd(list []sql.Expression) sql.Expression {
	if len(list) == 0 {
		return True
	}
	result := list[0]
	for _, e := range list[1:] {
		result = NewAnd(result, e)
	}
	return result
}
