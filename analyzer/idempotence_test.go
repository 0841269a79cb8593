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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
)

// render flattens a plan tree to a comparable string, since sql.PlanNode
// implementations carry unexported fields that cmp.Diff cannot traverse.
func render(node sql.PlanNode, depth int) string {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	out := indent + node.String() + "\n"
	for _, child := range node.Children() {
		out += render(child, depth+1)
	}
	return out
}

// runTwice asserts that optimizing a plan a second time produces no further
// rewrite, per the fixed-point property every batch in a.Batches must hold.
func runTwice(t *testing.T, root sql.PlanNode) {
	t.Helper()
	require := require.New(t)

	ctx := sql.NewEmptyContext()
	a := NewDefault(sql.AllDeterministicMetadata{})

	once, err := Optimize(ctx, a, root, DefaultRuleSelector)
	require.NoError(err)

	twice, err := Optimize(ctx, a, once, DefaultRuleSelector)
	require.NoError(err)

	if diff := cmp.Diff(render(once, 0), render(twice, 0)); diff != "" {
		t.Fatalf("optimize is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestOptimizeIsIdempotentFilterOverProject(t *testing.T) {
	src := plan.NewTableScan("src", []sql.Symbol{s("x")}, nil)
	proj := plan.NewProject([]plan.Assignment{{Output: s("a"), Expr: symRef("x")}}, src)
	root := plan.NewFilter(expression.NewGreaterThan(symRef("a"), lit(5)), proj)
	runTwice(t, root)
}

func TestOptimizeIsIdempotentLeftJoinNullRejection(t *testing.T) {
	left := plan.NewTableScan("l", []sql.Symbol{s("l.k")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.k"), s("r.y")}, nil)
	join := plan.NewJoin(plan.LeftJoin, left, right,
		[]plan.EquiClause{{Left: s("l.k"), Right: s("r.k")}}, nil,
		[]sql.Symbol{s("l.k"), s("r.k"), s("r.y")})
	root := plan.NewFilter(expression.NewGreaterThan(symRef("r.y"), lit(0)), join)
	runTwice(t, root)
}

func TestOptimizeIsIdempotentAggregationPushability(t *testing.T) {
	src := plan.NewTableScan("src", []sql.Symbol{s("k"), s("v")}, nil)
	agg := plan.NewAggregation(src,
		[]plan.Aggregate{{Output: s("sum"), Call: expression.NewFunctionCall("sum", symRef("v"))}},
		[][]sql.Symbol{{s("k")}}, nil)
	predicate := expression.NewAnd(
		expression.NewGreaterThan(symRef("k"), lit(0)),
		expression.NewGreaterThan(symRef("sum"), lit(10)),
	)
	root := plan.NewFilter(predicate, agg)
	runTwice(t, root)
}

func TestOptimizeIsIdempotentInnerJoinTransitiveEquality(t *testing.T) {
	left := plan.NewTableScan("l", []sql.Symbol{s("l.x")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.x")}, nil)
	join := plan.NewJoin(plan.InnerJoin, left, right,
		[]plan.EquiClause{{Left: s("l.x"), Right: s("r.x")}}, nil,
		[]sql.Symbol{s("l.x"), s("r.x")})
	root := plan.NewFilter(expression.NewEquals(symRef("l.x"), lit(5)), join)
	runTwice(t, root)
}
