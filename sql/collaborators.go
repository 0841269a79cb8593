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

package sql

// Metadata answers determinism questions about scalar functions. Backed by
// the catalog; out of scope here beyond this contract.
type Metadata interface {
	IsDeterministic(fn FunctionId) bool
}

// TypeAnalyzer maps expressions to their result types given a symbol->type
// scope. Out of scope beyond this contract.
type TypeAnalyzer interface {
	GetType(ctx *Context, types map[Symbol]Type, expr Expression) (Type, error)
	GetTypes(ctx *Context, types map[Symbol]Type, expr Expression) (map[Symbol]Type, error)
}

// EffectivePredicateExtractor summarizes a subplan's guaranteed truths. The
// result is sound (implied by execution of plan) but not necessarily
// complete. Out of scope beyond this contract.
type EffectivePredicateExtractor interface {
	Extract(ctx *Context, plan PlanNode, types map[Symbol]Type, analyzer TypeAnalyzer) (Expression, error)
}

// ExpressionInterpreter constant-folds deterministic subtrees of an
// expression. Out of scope beyond this contract.
type ExpressionInterpreter interface {
	Optimize(ctx *Context, expr Expression) (Expression, error)
}

// LiteralEncoder encodes a runtime value of a given Type back into an
// Expression literal. Out of scope beyond this contract.
type LiteralEncoder interface {
	Encode(value interface{}, t Type) (Expression, error)
}

// SymbolAllocator mints a fresh Symbol for an expression materialized by a
// rewrite (e.g. a non-symbol equi-clause side hoisted into a Project).
type SymbolAllocator interface {
	NewSymbol(expr Expression, t Type) Symbol
}

// PlanNodeIdAllocator mints a fresh, monotonically increasing plan-node id.
type PlanNodeIdAllocator interface {
	GetNextId() string
}
