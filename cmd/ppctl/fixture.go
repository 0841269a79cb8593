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

package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/types"
)

// nodeFixture and exprFixture are the JSON shapes a testdata file decodes
// into before being built into the real sql.PlanNode/sql.Expression trees
// -- a small tagged union, since the stdlib decoder has no notion of an
// interface target.
type nodeFixture struct {
	Kind string `json:"kind"`

	// TableScan
	Table      string           `json:"table,omitempty"`
	Output     []string         `json:"output,omitempty"`
	Constraint *exprFixture     `json:"constraint,omitempty"`

	// Filter
	Predicate *exprFixture `json:"predicate,omitempty"`
	Source    *nodeFixture `json:"source,omitempty"`

	// Project
	Assignments []assignmentFixture `json:"assignments,omitempty"`

	// Join
	Type        string             `json:"type,omitempty"`
	Left        *nodeFixture       `json:"left,omitempty"`
	Right       *nodeFixture       `json:"right,omitempty"`
	EquiClauses []equiClauseFixture `json:"equiClauses,omitempty"`
	Filter      *exprFixture       `json:"filter,omitempty"`

	// Union
	Sources       []nodeFixture       `json:"sources,omitempty"`
	SymbolMapping []map[string]string `json:"symbolMapping,omitempty"`

	// Aggregation
	Aggregations  []aggregateFixture `json:"aggregations,omitempty"`
	GroupingSets  [][]string         `json:"groupingSets,omitempty"`
	GroupIdSymbol *string            `json:"groupIdSymbol,omitempty"`

	// SemiJoin
	FilteringSource *nodeFixture `json:"filteringSource,omitempty"`
	SourceKey       string       `json:"sourceKey,omitempty"`
	FilterKey       string       `json:"filterKey,omitempty"`
	SemiOutput      string       `json:"semiOutput,omitempty"`
}

type assignmentFixture struct {
	Output string      `json:"output"`
	Expr   exprFixture `json:"expr"`
}

type equiClauseFixture struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type aggregateFixture struct {
	Output string      `json:"output"`
	Call   exprFixture `json:"call"`
}

type exprFixture struct {
	Kind string `json:"kind"`

	// symbol
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`

	// literal
	Value interface{} `json:"value,omitempty"`

	// and/or/cmp
	Op    string       `json:"op,omitempty"`
	Left  *exprFixture `json:"left,omitempty"`
	Right *exprFixture `json:"right,omitempty"`

	// not
	Child *exprFixture `json:"child,omitempty"`

	// call
	Fn   string        `json:"fn,omitempty"`
	Args []exprFixture `json:"args,omitempty"`
}

var namedTypes = map[string]sql.Type{
	"BOOLEAN": types.Boolean,
	"INT64":   types.Int64,
	"FLOAT64": types.Float64,
	"TEXT":    types.Text,
	"":        nil,
}

func resolveType(name string) (sql.Type, error) {
	t, ok := namedTypes[name]
	if !ok {
		return nil, errors.Errorf("unknown type name %q", name)
	}
	return t, nil
}

// decodePlan parses the top-level JSON document in data into a sql.PlanNode.
func decodePlan(data []byte) (sql.PlanNode, error) {
	var f nodeFixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decoding plan fixture")
	}
	return buildNode(&f)
}

func buildNode(f *nodeFixture) (sql.PlanNode, error) {
	if f == nil {
		return nil, errors.New("nil node fixture")
	}
	switch f.Kind {
	case "TableScan":
		output, err := symbolsOf(f.Output)
		if err != nil {
			return nil, err
		}
		constraint, err := buildExprOrTrue(f.Constraint)
		if err != nil {
			return nil, err
		}
		return plan.NewTableScan(f.Table, output, constraint), nil

	case "Filter":
		source, err := buildNode(f.Source)
		if err != nil {
			return nil, err
		}
		predicate, err := buildExpr(f.Predicate)
		if err != nil {
			return nil, err
		}
		return plan.NewFilter(predicate, source), nil

	case "Project":
		source, err := buildNode(f.Source)
		if err != nil {
			return nil, err
		}
		assignments := make([]plan.Assignment, len(f.Assignments))
		for i, a := range f.Assignments {
			expr, err := buildExpr(&a.Expr)
			if err != nil {
				return nil, err
			}
			assignments[i] = plan.Assignment{Output: sql.NewSymbol(a.Output), Expr: expr}
		}
		return plan.NewProject(assignments, source), nil

	case "Join":
		left, err := buildNode(f.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildNode(f.Right)
		if err != nil {
			return nil, err
		}
		joinType, err := joinTypeOf(f.Type)
		if err != nil {
			return nil, err
		}
		equiClauses := make([]plan.EquiClause, len(f.EquiClauses))
		for i, c := range f.EquiClauses {
			equiClauses[i] = plan.EquiClause{Left: sql.NewSymbol(c.Left), Right: sql.NewSymbol(c.Right)}
		}
		filter, err := buildExprOrNil(f.Filter)
		if err != nil {
			return nil, err
		}
		output, err := symbolsOf(f.Output)
		if err != nil {
			return nil, err
		}
		return plan.NewJoin(joinType, left, right, equiClauses, filter, output), nil

	case "Union":
		sources := make([]sql.PlanNode, len(f.Sources))
		for i := range f.Sources {
			n, err := buildNode(&f.Sources[i])
			if err != nil {
				return nil, err
			}
			sources[i] = n
		}
		output, err := symbolsOf(f.Output)
		if err != nil {
			return nil, err
		}
		mapping := make([]map[sql.Symbol]sql.Symbol, len(f.SymbolMapping))
		for i, m := range f.SymbolMapping {
			mapping[i] = make(map[sql.Symbol]sql.Symbol, len(m))
			for out, branch := range m {
				mapping[i][sql.NewSymbol(out)] = sql.NewSymbol(branch)
			}
		}
		return plan.NewUnion(sources, output, mapping), nil

	case "Aggregation":
		source, err := buildNode(f.Source)
		if err != nil {
			return nil, err
		}
		aggregations := make([]plan.Aggregate, len(f.Aggregations))
		for i, a := range f.Aggregations {
			call, err := buildExpr(&a.Call)
			if err != nil {
				return nil, err
			}
			aggregations[i] = plan.Aggregate{Output: sql.NewSymbol(a.Output), Call: call}
		}
		groupingSets := make([][]sql.Symbol, len(f.GroupingSets))
		for i, gs := range f.GroupingSets {
			symbols, err := symbolsOf(gs)
			if err != nil {
				return nil, err
			}
			groupingSets[i] = symbols
		}
		var groupIdSymbol *sql.Symbol
		if f.GroupIdSymbol != nil {
			s := sql.NewSymbol(*f.GroupIdSymbol)
			groupIdSymbol = &s
		}
		return plan.NewAggregation(source, aggregations, groupingSets, groupIdSymbol), nil

	case "SemiJoin":
		source, err := buildNode(f.Source)
		if err != nil {
			return nil, err
		}
		filteringSource, err := buildNode(f.FilteringSource)
		if err != nil {
			return nil, err
		}
		return plan.NewSemiJoin(source, filteringSource, sql.NewSymbol(f.SourceKey), sql.NewSymbol(f.FilterKey), sql.NewSymbol(f.SemiOutput)), nil

	default:
		return nil, errors.Errorf("unknown plan node kind %q", f.Kind)
	}
}

func joinTypeOf(name string) (plan.JoinType, error) {
	switch name {
	case "INNER":
		return plan.InnerJoin, nil
	case "LEFT":
		return plan.LeftJoin, nil
	case "RIGHT":
		return plan.RightJoin, nil
	case "FULL":
		return plan.FullJoin, nil
	default:
		return 0, errors.Errorf("unknown join type %q", name)
	}
}

func symbolsOf(names []string) ([]sql.Symbol, error) {
	out := make([]sql.Symbol, len(names))
	for i, n := range names {
		out[i] = sql.NewSymbol(n)
	}
	return out, nil
}

func buildExprOrNil(f *exprFixture) (sql.Expression, error) {
	if f == nil {
		return nil, nil
	}
	return buildExpr(f)
}

func buildExprOrTrue(f *exprFixture) (sql.Expression, error) {
	if f == nil {
		return nil, nil
	}
	return buildExpr(f)
}

func buildExpr(f *exprFixture) (sql.Expression, error) {
	if f == nil {
		return nil, errors.New("nil expression fixture")
	}
	switch f.Kind {
	case "symbol":
		t, err := resolveType(f.Type)
		if err != nil {
			return nil, err
		}
		return expression.NewSymbolRef(sql.NewSymbol(f.Name), t), nil

	case "literal":
		t, err := resolveType(f.Type)
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(f.Value, t), nil

	case "and":
		left, err := buildExpr(f.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(f.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewAnd(left, right), nil

	case "or":
		left, err := buildExpr(f.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(f.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewOr(left, right), nil

	case "not":
		child, err := buildExpr(f.Child)
		if err != nil {
			return nil, err
		}
		return expression.NewNot(child), nil

	case "cmp":
		left, err := buildExpr(f.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(f.Right)
		if err != nil {
			return nil, err
		}
		switch f.Op {
		case "EQ":
			return expression.NewEquals(left, right), nil
		case "NE":
			return expression.NewNotEquals(left, right), nil
		case "LT":
			return expression.NewLessThan(left, right), nil
		case "LE":
			return expression.NewLessThanOrEqual(left, right), nil
		case "GT":
			return expression.NewGreaterThan(left, right), nil
		case "GE":
			return expression.NewGreaterThanOrEqual(left, right), nil
		case "DISTINCT":
			return expression.NewIsDistinctFrom(left, right), nil
		default:
			return nil, errors.Errorf("unknown comparison op %q", f.Op)
		}

	case "call":
		args := make([]sql.Expression, len(f.Args))
		for i := range f.Args {
			arg, err := buildExpr(&f.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return expression.NewFunctionCall(sql.FunctionId(f.Fn), args...), nil

	default:
		return nil, fmt.Errorf("unknown expression kind %q", f.Kind)
	}
}
