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
	"github.com/opentracing/opentracing-go"

	"github.com/sopel39/predicatepushdown/internal/telemetry"
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
)

// Optimize runs every configured batch's rules over plan in order, each
// driven top-down with TRUE as the initial inherited predicate (spec.md §6
// entry point). It is idempotent in the sense required by the invariant:
// a second call over the output is a no-op rewrite producing an equivalent
// (if not always reference-identical) plan.
func Optimize(ctx *sql.Context, a *Analyzer, root sql.PlanNode, sel RuleSelector) (sql.PlanNode, error) {
	if sel == nil {
		sel = DefaultRuleSelector
	}
	span := opentracing.StartSpan("predicatepushdown.Optimize")
	defer span.Finish()

	originalOutput := root.OutputSymbols()
	node := root
	for _, batch := range a.Batches {
		telemetry.Log.WithField("batch", batch.Desc).Debug("running pushdown batch")
		for _, r := range batch.Rules {
			rewritten, _, err := r.Apply(ctx, a, node, expression.True, sel)
			if err != nil {
				telemetry.Log.WithField("rule", r.Id).WithError(err).Info("pushdown rule aborted")
				return nil, err
			}
			node = rewritten
		}
	}
	result := identityProjectIfNeeded(ctx, a, node, originalOutput)
	telemetry.Log.WithField("output_symbols", len(originalOutput)).Info("pushdown optimization finished")
	return result, nil
}
