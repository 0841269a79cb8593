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

package plan

import (
	"fmt"
	"strings"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
)

// Assignment is one Symbol := Expression entry of a Project's ordered
// mapping.
type Assignment struct {
	Output sql.Symbol
	Expr   sql.Expression
}

// Project evaluates Assignments in order over Source, producing a new
// schema. Assignments preserve insertion order (the Builder below is the
// only supported way to construct one from scratch).
type Project struct {
	Source      sql.PlanNode
	Assignments []Assignment
}

// NewProject returns a Project with the given ordered assignments.
func NewProject(assignments []Assignment, source sql.PlanNode) *Project {
	return &Project{Source: source, Assignments: assignments}
}

// NewIdentityProject returns a Project whose assignments are SymbolRefs to
// exactly the given symbols, in order -- used to re-impose an
// output-symbol contract after a rewrite without otherwise touching the
// plan (spec.md §4.4 Join rule step 9).
func NewIdentityProject(symbols []sql.Symbol, types map[sql.Symbol]sql.Type, source sql.PlanNode) *Project {
	assignments := make([]Assignment, len(symbols))
	for i, s := range symbols {
		assignments[i] = Assignment{Output: s, Expr: identityRef(s, types)}
	}
	return NewProject(assignments, source)
}

func identityRef(s sql.Symbol, types map[sql.Symbol]sql.Type) sql.Expression {
	var t sql.Type
	if types != nil {
		t = types[s]
	}
	return expression.NewSymbolRef(s, t)
}

func (p *Project) Children() []sql.PlanNode { return []sql.PlanNode{p.Source} }

func (p *Project) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Project", 1, len(children))
	}
	return NewProject(p.Assignments, children[0]), nil
}

func (p *Project) OutputSymbols() []sql.Symbol {
	out := make([]sql.Symbol, len(p.Assignments))
	for i, a := range p.Assignments {
		out[i] = a.Output
	}
	return out
}

func (p *Project) String() string {
	parts := make([]string, len(p.Assignments))
	for i, a := range p.Assignments {
		parts[i] = fmt.Sprintf("%s := %s", a.Output, a.Expr.String())
	}
	return fmt.Sprintf("Project(%s)", strings.Join(parts, ", "))
}

// AssignmentMap returns p's assignments as a Symbol->Expression map. The
// ordering contract is only carried by the Assignments slice; this is a
// convenience lookup for rewrites that don't care about order.
func (p *Project) AssignmentMap() map[sql.Symbol]sql.Expression {
	out := make(map[sql.Symbol]sql.Expression, len(p.Assignments))
	for _, a := range p.Assignments {
		out[a.Output] = a.Expr
	}
	return out
}

// Builder accumulates Assignments in insertion order and freezes into an
// immutable slice, the builder-pattern the spec's design notes (§9) call
// for in place of an ad hoc mutable map.
type Builder struct {
	assignments []Assignment
	seen        map[sql.Symbol]bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{seen: map[sql.Symbol]bool{}}
}

// Put appends (or, if out was already put, overwrites in place) an
// assignment.
func (b *Builder) Put(out sql.Symbol, expr sql.Expression) *Builder {
	if b.seen[out] {
		for i, a := range b.assignments {
			if a.Output == out {
				b.assignments[i].Expr = expr
				return b
			}
		}
	}
	b.seen[out] = true
	b.assignments = append(b.assignments, Assignment{Output: out, Expr: expr})
	return b
}

// Build freezes the accumulated assignments.
func (b *Builder) Build() []Assignment {
	out := make([]Assignment, len(b.assignments))
	copy(out, b.assignments)
	return out
}
