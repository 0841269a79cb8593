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

// rewriteSpatialJoin implements spec.md §4.4's SpatialJoin rule: the same
// inner/outer split as Join, minus equi-clause re-derivation and dynamic
// filtering (a spatial predicate is rarely an equality and dynamic probes
// aren't defined over it). Only INNER and LEFT are legal join types here;
// unlike Join, a spatial predicate that constant-folds away to FALSE is a
// malformed plan rather than a legitimately always-false filter, since a
// SpatialJoin's entire reason for existing is carrying that predicate.
func rewriteSpatialJoin(ctx *sql.Context, a *Analyzer, n *plan.SpatialJoin, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	leftEffective, err := effectivePredicateFor(ctx, a, n.Left)
	if err != nil {
		return nil, transform.SameTree, err
	}
	rightEffective, err := effectivePredicateFor(ctx, a, n.Right)
	if err != nil {
		return nil, transform.SameTree, err
	}

	newType := tryNormalizeToOuterToInnerJoin(ctx, n.Type, n.Left, n.Right, inherited, leftEffective, rightEffective)

	var leftPredicate, rightPredicate, newJoinPredicate, postJoinPredicate sql.Expression
	switch newType {
	case plan.InnerJoin:
		leftPredicate, rightPredicate, newJoinPredicate = processInnerJoin(ctx, n.Left, n.Right, inherited, n.Filter, leftEffective, rightEffective)
		postJoinPredicate = expression.True
	case plan.LeftJoin:
		leftPredicate, rightPredicate, newJoinPredicate, postJoinPredicate = processLimitedOuterJoin(ctx, n.Left, n.Right, inherited, n.Filter, leftEffective, rightEffective)
	default:
		return nil, transform.SameTree, ErrUnsupportedJoinType.New(newType.String())
	}

	newJoinPredicate = simplify(ctx, a, newJoinPredicate)
	newJoinPredicate = expression.Canonicalize(ctx, newJoinPredicate)
	if expression.IsFalseLiteral(newJoinPredicate) {
		return nil, transform.SameTree, ErrMissingSpatialPredicate.New(n.String())
	}

	newLeft, leftIdentity, err := recurse(ctx, a, n.Left, leftPredicate)
	if err != nil {
		return nil, transform.SameTree, err
	}
	newRight, rightIdentity, err := recurse(ctx, a, n.Right, rightPredicate)
	if err != nil {
		return nil, transform.SameTree, err
	}

	sameChildren := leftIdentity.AndAlso(rightIdentity)
	predicateChanged := !expression.AreEquivalent(ctx, n.Filter, newJoinPredicate) || newType != n.Type

	var newNode sql.PlanNode = n
	if sameChildren == transform.NewTree || predicateChanged {
		newNode = n.WithFilterAndType(newType, newJoinPredicate)
		if sameChildren == transform.NewTree {
			joined, jerr := newNode.WithChildren(newLeft, newRight)
			if jerr != nil {
				return nil, transform.SameTree, jerr
			}
			newNode = joined
		}
	}

	result := identityProjectIfNeeded(ctx, a, newNode, n.Output)
	if result == newNode && sameChildren == transform.SameTree && !predicateChanged && expression.IsTrueLiteral(expression.Canonicalize(ctx, postJoinPredicate)) {
		return n, transform.SameTree, nil
	}
	return wrapFilter(ctx, result, postJoinPredicate), transform.NewTree, nil
}
