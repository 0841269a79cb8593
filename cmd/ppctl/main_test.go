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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/analyzer"
	"github.com/sopel39/predicatepushdown/analyzer/testutil"
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
)

var fixtures = []string{
	"s1_filter_over_project.json",
	"s2_left_join_null_rejection.json",
	"s3_inner_join_transitive_equality.json",
	"s4_union_splitting.json",
	"s5_aggregation_pushability.json",
	"s6_nondeterministic_retention.json",
	"s7_semijoin_filtering_form.json",
}

func optimizeFixtureFile(t *testing.T, name string) sql.PlanNode {
	t.Helper()
	require := require.New(t)

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(err)

	root, err := decodePlan(data)
	require.NoError(err)

	ctx := sql.NewEmptyContext()
	a := analyzer.NewDefault(testutil.Metadata{})
	a.TypeAnalyzer = testutil.TypeAnalyzer{}
	a.EffectivePredicateExtractor = testutil.NoEffectivePredicates{True: expression.True}
	a.SymbolAllocator = testutil.NewSymbolAllocator()
	a.PlanNodeIdAllocator = &testutil.PlanNodeIdAllocator{}

	result, err := analyzer.Optimize(ctx, a, root, analyzer.DefaultRuleSelector)
	require.NoError(err)
	require.Equal(root.OutputSymbols(), result.OutputSymbols())
	return result
}

// TestS4UnionSplittingFixture checks that s4_union_splitting.json's
// translatable conjunct is actually pushed into both branches, not just
// that optimization runs without error.
func TestS4UnionSplittingFixture(t *testing.T) {
	require := require.New(t)

	result := optimizeFixtureFile(t, "s4_union_splitting.json")

	u, ok := result.(*plan.Union)
	require.True(ok, "expected root to be the Union, got %T", result)
	require.Len(u.Sources, 2)

	f1, ok := u.Sources[0].(*plan.Filter)
	require.True(ok, "expected branch s1's scan to be wrapped in a Filter, got %T", u.Sources[0])
	require.Contains(f1.Predicate.String(), "x1")

	f2, ok := u.Sources[1].(*plan.Filter)
	require.True(ok, "expected branch s2's scan to be wrapped in a Filter, got %T", u.Sources[1])
	require.Contains(f2.Predicate.String(), "x2")
}

// TestS7SemiJoinFilteringFormFixture checks that s7_semijoin_filtering_form.json's
// source-scope conjunct reaches Source while the SemiOutput conjunct stays
// a residual above the join, not just that optimization runs without error.
func TestS7SemiJoinFilteringFormFixture(t *testing.T) {
	require := require.New(t)

	result := optimizeFixtureFile(t, "s7_semijoin_filtering_form.json")

	topFilter, ok := result.(*plan.Filter)
	require.True(ok, "expected a residual Filter retaining the SemiOutput conjunct, got %T", result)
	require.Contains(topFilter.Predicate.String(), "m")
	require.NotContains(topFilter.Predicate.String(), "src.v", "the source-scope conjunct must not remain above the join")

	semi, ok := topFilter.Source.(*plan.SemiJoin)
	require.True(ok, "expected the SemiJoin directly under the residual Filter, got %T", topFilter.Source)

	sourceFilter, ok := semi.Source.(*plan.Filter)
	require.True(ok, "expected Source to be wrapped in a Filter carrying the pushed conjunct, got %T", semi.Source)
	require.Contains(sourceFilter.Predicate.String(), "src.v")
}

func TestFixturesOptimizeWithoutError(t *testing.T) {
	for _, name := range fixtures {
		name := name
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			data, err := os.ReadFile(filepath.Join("testdata", name))
			require.NoError(err)

			root, err := decodePlan(data)
			require.NoError(err)

			ctx := sql.NewEmptyContext()
			a := analyzer.NewDefault(testutil.Metadata{})
			a.TypeAnalyzer = testutil.TypeAnalyzer{}
			a.EffectivePredicateExtractor = testutil.NoEffectivePredicates{True: expression.True}
			a.SymbolAllocator = testutil.NewSymbolAllocator()
			a.PlanNodeIdAllocator = &testutil.PlanNodeIdAllocator{}

			result, err := analyzer.Optimize(ctx, a, root, analyzer.DefaultRuleSelector)
			require.NoError(err)
			require.Equal(root.OutputSymbols(), result.OutputSymbols())
		})
	}
}
