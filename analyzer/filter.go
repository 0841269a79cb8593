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

// rewriteFilter fuses n's own predicate with the inherited one and recurses
// on the source with AND(n.Predicate, inherited). If the result is itself a
// Filter over the same child with a predicate equivalent to n.Predicate,
// the original Filter is kept; otherwise the rewritten subplan is adopted
// (spec.md §4.4 Filter rule).
func rewriteFilter(ctx *sql.Context, a *Analyzer, n *plan.Filter, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	combined := expression.NewAnd(n.Predicate, inherited)
	rewrittenSource, identity, err := recurse(ctx, a, n.Source, combined)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if sub, ok := rewrittenSource.(*plan.Filter); ok && sameChildAndPredicate(ctx, n.Source, sub.Source, n.Predicate, sub.Predicate) {
		return n, transform.SameTree, nil
	}
	_ = identity
	return rewrittenSource, transform.NewTree, nil
}
