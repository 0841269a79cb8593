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

// Package testutil holds the stub collaborator implementations this
// module's own tests and cmd/ppctl wire in place of a real catalog/type
// analyzer, since those live out of scope (sql.Metadata,
// sql.TypeAnalyzer, sql.EffectivePredicateExtractor, sql.SymbolAllocator,
// sql.PlanNodeIdAllocator).
package testutil

import (
	"fmt"
	"sync"

	uuid "github.com/satori/go.uuid"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
)

// Metadata reports every function deterministic except those named in
// NonDeterministic.
type Metadata struct {
	NonDeterministic map[sql.FunctionId]bool
}

// IsDeterministic reports false only for fn listed in m.NonDeterministic.
func (m Metadata) IsDeterministic(fn sql.FunctionId) bool {
	return !m.NonDeterministic[fn]
}

// TypeAnalyzer returns whatever type is already recorded for a symbol in
// its Types map, and a nil type for any other expression -- real type
// inference is out of scope here.
type TypeAnalyzer struct {
	Types map[sql.Symbol]sql.Type
}

// GetType returns a's recorded type for a bare SymbolRef; any other
// expression shape reports sql.Type(nil), which this module treats as "no
// type annotation available" rather than an error.
func (a TypeAnalyzer) GetType(ctx *sql.Context, types map[sql.Symbol]sql.Type, expr sql.Expression) (sql.Type, error) {
	if ref, ok := symbolOf(expr); ok {
		if t, ok := a.Types[ref]; ok {
			return t, nil
		}
	}
	return nil, nil
}

// GetTypes returns a's whole recorded symbol->type map, ignoring the scope
// filter the real analyzer would apply.
func (a TypeAnalyzer) GetTypes(ctx *sql.Context, types map[sql.Symbol]sql.Type, expr sql.Expression) (map[sql.Symbol]sql.Type, error) {
	return a.Types, nil
}

func symbolOf(expr sql.Expression) (sql.Symbol, bool) {
	if r, ok := expr.(*expression.SymbolRef); ok {
		return r.Symbol, true
	}
	return sql.Symbol{}, false
}

// NoEffectivePredicates always reports TRUE, the conservative answer a
// collaborator that knows nothing about its inputs must give.
type NoEffectivePredicates struct {
	True sql.Expression
}

// Extract returns n.True unconditionally.
func (n NoEffectivePredicates) Extract(ctx *sql.Context, plan sql.PlanNode, types map[sql.Symbol]sql.Type, analyzer sql.TypeAnalyzer) (sql.Expression, error) {
	return n.True, nil
}

// SymbolAllocator mints "tmp_<uuid prefix>_<n>" debug names, counting up
// from zero, so two test fixtures run in the same process never collide
// on a generated symbol name even though both start counting at zero.
type SymbolAllocator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSymbolAllocator mints a fresh allocator with its own random prefix.
func NewSymbolAllocator() *SymbolAllocator {
	prefix := "00000000"
	if id, err := uuid.NewV4(); err == nil {
		prefix = id.String()[:8]
	}
	return &SymbolAllocator{prefix: prefix}
}

// NewSymbol returns a fresh, never-before-returned Symbol; t is carried by
// the caller, not by the allocator itself.
func (a *SymbolAllocator) NewSymbol(expr sql.Expression, t sql.Type) sql.Symbol {
	a.mu.Lock()
	defer a.mu.Unlock()
	name := fmt.Sprintf("tmp_%s_%d", a.prefix, a.next)
	a.next++
	return sql.NewSymbol(name)
}

// PlanNodeIdAllocator mints monotonically increasing plan-node ids of the
// form "pn0", "pn1", ... -- the stable, collision-free-within-one-plan
// format the dynamic-filter id contract (spec.md §9c) requires, distinct
// from SymbolAllocator's debug-only UUID flavoring.
type PlanNodeIdAllocator struct {
	mu   sync.Mutex
	next int
}

// GetNextId returns the next id in sequence.
func (a *PlanNodeIdAllocator) GetNextId() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := fmt.Sprintf("pn%d", a.next)
	a.next++
	return id
}
