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
)

// effectivePredicateFor adapts the external EffectivePredicateExtractor
// collaborator (spec.md §6): it summarizes node's guaranteed truths, sound
// but not necessarily complete. When no extractor is wired (tests, the CLI
// front door without a catalog), TRUE is returned -- a sound, maximally
// conservative summary. The extractor's result is asserted to reference
// only node's own output symbols; a violation aborts optimization
// (spec.md §7).
func effectivePredicateFor(ctx *sql.Context, a *Analyzer, node sql.PlanNode) (sql.Expression, error) {
	if a == nil || a.EffectivePredicateExtractor == nil {
		return expression.True, nil
	}
	pred, err := a.EffectivePredicateExtractor.Extract(ctx, node, typesOf(ctx, a, node), a.TypeAnalyzer)
	if err != nil {
		return nil, err
	}
	if pred == nil {
		return expression.True, nil
	}
	scope := sql.NewSymbolSet(node.OutputSymbols()...)
	symbols := expression.Symbols(pred)
	if !symbols.SubsetOf(scope) {
		return nil, ErrEffectivePredicateScopeViolation.New(node, firstOutOfScope(symbols, scope).String())
	}
	return pred, nil
}

func firstOutOfScope(symbols, scope sql.SymbolSet) sql.Symbol {
	for _, s := range symbols.Slice() {
		if !scope.Contains(s) {
			return s
		}
	}
	return sql.Symbol{}
}
