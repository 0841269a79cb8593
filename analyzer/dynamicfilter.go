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
	"github.com/sopel39/predicatepushdown/internal/telemetry"
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
)

// synthesizeDynamicFilters implements spec.md §4.4 Join rule step 6: for an
// INNER join with dynamic filtering enabled, every equi-clause gets a
// DYNAMIC_FILTER(id, probe) marker folded into the probe (left) side's
// pushed predicate, with id->build-symbol (right side) recorded in the
// returned map for the executor to populate at runtime. Without a wired
// PlanNodeIdAllocator there is no stable id source, so the feature stays
// inert rather than minting ids some other way.
func synthesizeDynamicFilters(ctx *sql.Context, a *Analyzer, equiClauses []plan.EquiClause, probeTypes map[sql.Symbol]sql.Type) (sql.Expression, map[string]sql.Symbol) {
	if a == nil || a.PlanNodeIdAllocator == nil || len(equiClauses) == 0 {
		return expression.True, nil
	}

	dynamicFilters := make(map[string]sql.Symbol, len(equiClauses))
	markers := make([]sql.Expression, 0, len(equiClauses))
	for _, clause := range equiClauses {
		id := a.PlanNodeIdAllocator.GetNextId()
		dynamicFilters[id] = clause.Right
		var t sql.Type
		if probeTypes != nil {
			t = probeTypes[clause.Left]
		}
		markers = append(markers, expression.NewDynamicFilter(id, t, expression.NewSymbolRef(clause.Left, t)))
	}
	telemetry.DynamicFiltersEmitted.Add(float64(len(markers)))
	telemetry.Log.WithField("count", len(markers)).Debug("synthesized dynamic filters for inner equi-join")
	return expression.CombineConjuncts(markers), dynamicFilters
}
