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

// rewriteAssignUniqueId asserts the inherited predicate never references
// the synthesized id column -- pushing such a predicate below this node
// would reference an id that doesn't exist there yet, an invariant
// violation that aborts optimization (spec.md §4.4, §7) -- then applies
// transparent pushdown.
func rewriteAssignUniqueId(ctx *sql.Context, a *Analyzer, n *plan.AssignUniqueId, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	if expression.Symbols(inherited).Contains(n.IdColumn) {
		return nil, transform.SameTree, ErrAssignUniqueIdColumnReferenced.New(n.IdColumn.String())
	}
	newSource, identity, err := recurse(ctx, a, n.Source, inherited)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if identity == transform.SameTree {
		return n, transform.SameTree, nil
	}
	return plan.NewAssignUniqueId(newSource, n.IdColumn), transform.NewTree, nil
}
