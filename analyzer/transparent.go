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
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/transform"
)

// rewriteTransparentSort recurses with the inherited predicate unchanged
// (spec.md §4.4: Sort is a transparent carrier, never a pushdown barrier,
// and is itself never a target of pushdown per the Non-goals).
func rewriteTransparentSort(ctx *sql.Context, a *Analyzer, n *plan.Sort, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	newSource, identity, err := recurse(ctx, a, n.Source, inherited)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if identity == transform.SameTree {
		return n, transform.SameTree, nil
	}
	return plan.NewSort(newSource, n.Keys), transform.NewTree, nil
}

// rewriteTransparentSample is Sample's analogue of rewriteTransparentSort.
func rewriteTransparentSample(ctx *sql.Context, a *Analyzer, n *plan.Sample, inherited sql.Expression) (sql.PlanNode, transform.TreeIdentity, error) {
	newSource, identity, err := recurse(ctx, a, n.Source, inherited)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if identity == transform.SameTree {
		return n, transform.SameTree, nil
	}
	return plan.NewSample(newSource, n.Method, n.Percentage), transform.NewTree, nil
}
