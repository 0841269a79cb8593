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

// rewriteTableScan replaces the inherited predicate with its simplified
// form and, if it isn't TRUE, wraps the scan in a Filter (spec.md §4.4
// TableScan rule). When the session flag
// PredicatePushdownUseTableProperties is set, the simplified predicate's
// conjuncts are appended to n.Constraint instead, and no Filter is
// produced.
func rewriteTableScan(ctx *sql.Context, a *Analyzer, n *plan.TableScan, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	simplified := simplify(ctx, a, inherited)
	if expression.IsTrueLiteral(simplified) {
		return n, transform.SameTree, nil
	}
	if ctx.Session != nil && ctx.Session.PredicatePushdownUseTableProperties {
		absorbed := plan.NewTableScan(n.Table, n.Output, expression.JoinAnd(append(expression.ExtractConjuncts(n.Constraint), expression.ExtractConjuncts(simplified)...)))
		return absorbed, transform.NewTree, nil
	}
	return wrapFilter(ctx, n, simplified), transform.NewTree, nil
}
