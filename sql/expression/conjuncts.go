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

package expression

import "github.com/sopel39/predicatepushdown/sql"

// ExtractConjuncts flattens nested AND into a list of top-level conjuncts.
// A FALSE conjunct anywhere short-circuits to []Expression{FALSE}; TRUE
// conjuncts are dropped. A nil expression is treated as TRUE (no conjuncts).
func ExtractConjuncts(e sql.Expression) []sql.Expression {
	if e == nil || IsTrueLiteral(e) {
		return nil
	}
	if IsFalseLiteral(e) {
		return []sql.Expression{False}
	}
	and, ok := e.(*And)
	if !ok {
		return []sql.Expression{e}
	}
	left := ExtractConjuncts(and.Left)
	if len(left) == 1 && IsFalseLiteral(left[0]) {
		return left
	}
	right := ExtractConjuncts(and.Right)
	if len(right) == 1 && IsFalseLiteral(right[0]) {
		return right
	}
	return append(left, right...)
}

// CombineConjuncts recombines a conjunct list into a single expression.
// Empty input yields TRUE, a singleton returns its sole element unchanged,
// and any FALSE conjunct collapses the whole list to FALSE. Syntactically
// identical conjuncts (by canonical string form) are deduplicated before
// recombination.
func CombineConjuncts(list []sql.Expression) sql.Expression {
	deduped := dedupeConjuncts(list)
	for _, c := range deduped {
		if IsFalseLiteral(c) {
			return False
		}
	}
	if len(deduped) == 0 {
		return True
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	return JoinAnd(deduped)
}

func dedupeConjuncts(list []sql.Expression) []sql.Expression {
	seen := make(map[string]bool, len(list))
	out := make([]sql.Expression, 0, len(list))
	for _, e := range list {
		if e == nil || IsTrueLiteral(e) {
			continue
		}
		key := CanonicalKey(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
