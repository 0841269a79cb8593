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
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/transform"
)

// applyPushdown is the Rule entry point the pushdown batch registers; it
// exists so the Rule/RuleSelector machinery has something uniform to call,
// with the actual recursive driver living in rewrite below.
func applyPushdown(ctx *sql.Context, a *Analyzer, node sql.PlanNode, inherited sql.Expression, sel RuleSelector) (sql.PlanNode, transform.TreeIdentity, error) {
	if !sel(PushdownRuleId) {
		return node, transform.SameTree, nil
	}
	return rewrite(ctx, a, node, inherited)
}

// rewrite is the top-down driver of spec.md §4.3: it owns one inherited
// predicate and dispatches on node's concrete variant, each handler
// deciding how much of inherited it can push to its children versus
// materializing as a Filter. Handlers compare the result against node by
// reference to report TreeIdentity cheaply; only the predicate ever forces
// a new node even when children are otherwise unchanged.
func rewrite(ctx *sql.Context, a *Analyzer, node sql.PlanNode, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	switch n := node.(type) {
	case *plan.Filter:
		return rewriteFilter(ctx, a, n, inherited)
	case *plan.Project:
		return rewriteProject(ctx, a, n, inherited)
	case *plan.TableScan:
		return rewriteTableScan(ctx, a, n, inherited)
	case *plan.Window:
		return rewriteWindow(ctx, a, n, inherited)
	case *plan.Aggregation:
		return rewriteAggregation(ctx, a, n, inherited)
	case *plan.GroupId:
		return rewriteGroupId(ctx, a, n, inherited)
	case *plan.MarkDistinct:
		return rewriteMarkDistinct(ctx, a, n, inherited)
	case *plan.Union:
		return rewriteUnion(ctx, a, n, inherited)
	case *plan.Exchange:
		return rewriteExchange(ctx, a, n, inherited)
	case *plan.Sort:
		return rewriteTransparentSort(ctx, a, n, inherited)
	case *plan.Sample:
		return rewriteTransparentSample(ctx, a, n, inherited)
	case *plan.AssignUniqueId:
		return rewriteAssignUniqueId(ctx, a, n, inherited)
	case *plan.Unnest:
		return rewriteUnnest(ctx, a, n, inherited)
	case *plan.Join:
		return rewriteJoin(ctx, a, n, inherited)
	case *plan.SemiJoin:
		return rewriteSemiJoin(ctx, a, n, inherited)
	case *plan.SpatialJoin:
		return rewriteSpatialJoin(ctx, a, n, inherited)
	default:
		return defaultRewrite(ctx, a, node, inherited)
	}
}

// defaultRewrite is spec.md §4.3's fallback policy for any node variant
// without a dedicated rule: recurse on every child with TRUE, then wrap the
// (possibly unchanged) result with a Filter carrying inherited if it isn't
// TRUE.
func defaultRewrite(ctx *sql.Context, a *Analyzer, node sql.PlanNode, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	a.warnUnsupportedNode(node)
	children := node.Children()
	same := transform.SameTree
	newChildren := make([]sql.PlanNode, len(children))
	for i, c := range children {
		nc, identity, err := recurse(ctx, a, c, expression.True)
		if err != nil {
			return nil, transform.SameTree, err
		}
		newChildren[i] = nc
		same = same.AndAlso(identity)
	}
	result := node
	if same == transform.NewTree {
		nn, err := node.WithChildren(newChildren...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		result = nn
	}
	if expression.IsTrueLiteral(expression.Canonicalize(ctx, inherited)) {
		return result, same, nil
	}
	return wrapFilter(ctx, result, inherited), transform.NewTree, nil
}

func (a *Analyzer) warnUnsupportedNode(node sql.PlanNode) {
	if a != nil && a.Warnings != nil {
		a.Warnings.Add("no dedicated pushdown rule for %T, applying default policy", node)
	}
}
