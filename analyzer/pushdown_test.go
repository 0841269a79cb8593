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

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/types"
)

func s(name string) sql.Symbol { return sql.NewSymbol(name) }

func symRef(name string) *expression.SymbolRef { return expression.NewSymbolRef(s(name), types.Int64) }

func lit(v int64) *expression.Literal { return expression.NewLiteral(v, types.Int64) }

func optimizeFixture(t *testing.T, root sql.PlanNode) sql.PlanNode {
	t.Helper()
	require := require.New(t)

	ctx := sql.NewEmptyContext()
	a := NewDefault(sql.AllDeterministicMetadata{})
	result, err := Optimize(ctx, a, root, DefaultRuleSelector)
	require.NoError(err)
	require.Equal(root.OutputSymbols(), result.OutputSymbols())
	return result
}

func containsFilterDirectlyAbove(node sql.PlanNode, childType interface{}) bool {
	f, ok := node.(*plan.Filter)
	if !ok {
		return false
	}
	switch childType.(type) {
	case *plan.Project:
		_, ok := f.Source.(*plan.Project)
		return ok
	case *plan.Join:
		_, ok := f.Source.(*plan.Join)
		return ok
	}
	return false
}

// S1: Filter-over-Project inline -- no residual Filter should remain above
// the Project once the comparison is rewritten in terms of the source.
func TestS1FilterOverProjectInlines(t *testing.T) {
	require := require.New(t)

	src := plan.NewTableScan("src", []sql.Symbol{s("x")}, nil)
	proj := plan.NewProject([]plan.Assignment{
		{Output: s("a"), Expr: symRef("x")},
	}, src)
	root := plan.NewFilter(expression.NewGreaterThan(symRef("a"), lit(5)), proj)

	result := optimizeFixture(t, root)

	require.False(containsFilterDirectlyAbove(result, (*plan.Project)(nil)))
	_, isProject := result.(*plan.Project)
	require.True(isProject, "expected root to be the Project, got %T", result)
}

// S2: a LEFT join null-rejected by a filter on the null-producing side
// normalizes to an INNER join.
func TestS2LeftJoinNullRejectionDowngradesToInner(t *testing.T) {
	require := require.New(t)

	left := plan.NewTableScan("l", []sql.Symbol{s("l.k")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.k"), s("r.y")}, nil)
	join := plan.NewJoin(plan.LeftJoin, left, right,
		[]plan.EquiClause{{Left: s("l.k"), Right: s("r.k")}}, nil,
		[]sql.Symbol{s("l.k"), s("r.k"), s("r.y")})
	root := plan.NewFilter(expression.NewGreaterThan(symRef("r.y"), lit(0)), join)

	result := optimizeFixture(t, root)

	var foundInner bool
	var walk func(sql.PlanNode)
	walk = func(n sql.PlanNode) {
		if j, ok := n.(*plan.Join); ok && j.Type == plan.InnerJoin {
			foundInner = true
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(result)
	require.True(foundInner, "expected the LEFT join to normalize to INNER")
}

// S3: an INNER join's equi-clause propagates a filtered constant to both
// sides via transitive equality.
func TestS3InnerJoinTransitiveEquality(t *testing.T) {
	require := require.New(t)

	left := plan.NewTableScan("l", []sql.Symbol{s("l.x")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.x")}, nil)
	join := plan.NewJoin(plan.InnerJoin, left, right,
		[]plan.EquiClause{{Left: s("l.x"), Right: s("r.x")}}, nil,
		[]sql.Symbol{s("l.x"), s("r.x")})
	root := plan.NewFilter(expression.NewEquals(symRef("l.x"), lit(5)), join)

	result := optimizeFixture(t, root)

	var scans []*plan.TableScan
	var walk func(sql.PlanNode)
	walk = func(n sql.PlanNode) {
		if ts, ok := n.(*plan.TableScan); ok {
			scans = append(scans, ts)
		}
		if f, ok := n.(*plan.Filter); ok {
			if ts, ok := f.Source.(*plan.TableScan); ok {
				require.Contains(f.Predicate.String(), "5", "expected the constant to be pushed onto %s", ts.Table)
			}
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(result)
	require.Len(scans, 2, "both table scans should still be present")
}

// S5: an Aggregation only lets grouping-key predicates through; aggregate
// predicates stay above it.
func TestS5AggregationPushability(t *testing.T) {
	require := require.New(t)

	src := plan.NewTableScan("src", []sql.Symbol{s("k"), s("v")}, nil)
	agg := plan.NewAggregation(src,
		[]plan.Aggregate{{Output: s("sum"), Call: expression.NewFunctionCall("sum", symRef("v"))}},
		[][]sql.Symbol{{s("k")}}, nil)
	predicate := expression.NewAnd(
		expression.NewGreaterThan(symRef("k"), lit(0)),
		expression.NewGreaterThan(symRef("sum"), lit(10)),
	)
	root := plan.NewFilter(predicate, agg)

	result := optimizeFixture(t, root)

	topFilter, ok := result.(*plan.Filter)
	require.True(ok, "expected a residual Filter retaining the aggregate predicate, got %T", result)
	require.Contains(topFilter.Predicate.String(), "sum")
	_, isAgg := topFilter.Source.(*plan.Aggregation)
	require.True(isAgg)
}

// S6: a non-deterministic conjunct is never pushed past its origin, while
// a sibling deterministic conjunct still reaches the source.
func TestS6NonDeterministicRetention(t *testing.T) {
	require := require.New(t)

	src := plan.NewTableScan("src", []sql.Symbol{s("x")}, nil)
	predicate := expression.NewAnd(
		expression.NewLessThan(expression.NewFunctionCall("rand"), expression.NewLiteral(0.5, types.Float64)),
		expression.NewEquals(symRef("x"), lit(3)),
	)
	root := plan.NewFilter(predicate, src)

	result := optimizeFixture(t, root)

	topFilter, ok := result.(*plan.Filter)
	require.True(ok)
	require.Contains(topFilter.Predicate.String(), "rand")
}

// S4: a Union splits a translatable conjunct into each branch's own
// namespace via SymbolMapping; a conjunct referencing an output symbol one
// branch's mapping doesn't cover never reaches that branch.
func TestS4UnionSplitting(t *testing.T) {
	require := require.New(t)

	b1 := plan.NewTableScan("s1", []sql.Symbol{s("x1"), s("y1")}, nil)
	b2 := plan.NewTableScan("s2", []sql.Symbol{s("x2")}, nil)
	union := plan.NewUnion(
		[]sql.PlanNode{b1, b2},
		[]sql.Symbol{s("o"), s("p")},
		[]map[sql.Symbol]sql.Symbol{
			{s("o"): s("x1"), s("p"): s("y1")},
			{s("o"): s("x2")},
		},
	)
	predicate := expression.NewAnd(
		expression.NewGreaterThan(symRef("o"), lit(0)),
		expression.NewGreaterThan(symRef("p"), lit(0)),
	)
	root := plan.NewFilter(predicate, union)

	result := optimizeFixture(t, root)

	u, ok := result.(*plan.Union)
	require.True(ok, "expected root to be the Union, got %T", result)
	require.Len(u.Sources, 2)

	f1, ok := u.Sources[0].(*plan.Filter)
	require.True(ok, "expected branch 1's scan to be wrapped in a Filter, got %T", u.Sources[0])
	require.Contains(f1.Predicate.String(), "x1")
	require.Contains(f1.Predicate.String(), "y1", "branch 1's mapping covers both o and p, so both conjuncts should cross")

	f2, ok := u.Sources[1].(*plan.Filter)
	require.True(ok, "expected branch 2's scan to be wrapped in a Filter, got %T", u.Sources[1])
	require.Contains(f2.Predicate.String(), "x2")
	require.NotContains(f2.Predicate.String(), "y1", "branch 2's mapping doesn't cover p, so that conjunct must not cross")
	require.NotContains(f2.Predicate.String(), "p", "branch 2's mapping doesn't cover p, so that conjunct must not cross")
}

// S7: a SemiJoin's own output predicate stays a residual above the join
// while a source-scope conjunct still pushes into Source through the
// Filtering path, leaving FilteringSource untouched when it has nothing to
// absorb.
func TestS7SemiJoinFilteringForm(t *testing.T) {
	require := require.New(t)

	src := plan.NewTableScan("src", []sql.Symbol{s("src.k"), s("src.v")}, nil)
	filtering := plan.NewTableScan("filter", []sql.Symbol{s("filter.k")}, nil)
	semi := plan.NewSemiJoin(src, filtering, s("src.k"), s("filter.k"), s("m"))
	predicate := expression.NewAnd(
		symRef("m"),
		expression.NewEquals(symRef("src.v"), lit(5)),
	)
	root := plan.NewFilter(predicate, semi)

	result := optimizeFixture(t, root)

	topFilter, ok := result.(*plan.Filter)
	require.True(ok, "expected a residual Filter retaining the SemiOutput conjunct, got %T", result)
	require.Contains(topFilter.Predicate.String(), "m")
	require.NotContains(topFilter.Predicate.String(), "src.v", "the source-scope conjunct must not remain above the join")

	newSemi, ok := topFilter.Source.(*plan.SemiJoin)
	require.True(ok, "expected the SemiJoin directly under the residual Filter, got %T", topFilter.Source)

	sourceFilter, ok := newSemi.Source.(*plan.Filter)
	require.True(ok, "expected Source to be wrapped in a Filter carrying the pushed conjunct, got %T", newSemi.Source)
	require.Contains(sourceFilter.Predicate.String(), "src.v")

	_, stillScan := newSemi.FilteringSource.(*plan.TableScan)
	require.True(stillScan, "FilteringSource has no conjunct to absorb in this fixture, expected it untouched")
}
