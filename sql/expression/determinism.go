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

// IsDeterministic reports whether e contains no non-deterministic function
// call. A Try expression is deterministic iff its body is; determinism of a
// FunctionCall is resolved via ctx.Metadata, further restricted by the
// hard-coded rand-like primitives of function.go.
func IsDeterministic(ctx *sql.Context, e sql.Expression) bool {
	if e == nil {
		return true
	}
	if fn, ok := e.(*FunctionCall); ok {
		if isRandLike(fn.Id) {
			return false
		}
		if ctx.Metadata != nil && !ctx.Metadata.IsDeterministic(fn.Id) {
			return false
		}
	}
	for _, c := range e.Children() {
		if !IsDeterministic(ctx, c) {
			return false
		}
	}
	return true
}

// FilterDeterministicConjuncts returns the combine of e's deterministic
// top-level conjuncts only.
func FilterDeterministicConjuncts(ctx *sql.Context, e sql.Expression) sql.Expression {
	var det []sql.Expression
	for _, c := range ExtractConjuncts(e) {
		if IsDeterministic(ctx, c) {
			det = append(det, c)
		}
	}
	return CombineConjuncts(det)
}

// PartitionDeterministic splits e's top-level conjuncts into deterministic
// and non-deterministic lists, preserving order within each.
func PartitionDeterministic(ctx *sql.Context, e sql.Expression) (deterministic, nonDeterministic []sql.Expression) {
	for _, c := range ExtractConjuncts(e) {
		if IsDeterministic(ctx, c) {
			deterministic = append(deterministic, c)
		} else {
			nonDeterministic = append(nonDeterministic, c)
		}
	}
	return deterministic, nonDeterministic
}
