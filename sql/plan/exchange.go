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

package plan

import (
	"fmt"

	"github.com/sopel39/predicatepushdown/sql"
)

// ExchangeScope distinguishes a single-input passthrough exchange from a
// multi-input (e.g. repartitioning union-like) exchange; both shapes push
// predicates straight through, but the multi-input case must translate via
// Inputs like Union does.
type ExchangeScope int

const (
	ExchangeLocal ExchangeScope = iota
	ExchangeRemote
)

func (e ExchangeScope) String() string {
	if e == ExchangeRemote {
		return "REMOTE"
	}
	return "LOCAL"
}

// Exchange redistributes rows across Sources without otherwise changing
// them; Inputs[i] maps Exchange's output symbols to Sources[i]'s symbols,
// same shape as Union.SymbolMapping.
type Exchange struct {
	Scope         ExchangeScope
	Sources       []sql.PlanNode
	Output        []sql.Symbol
	Inputs        []map[sql.Symbol]sql.Symbol
	PartitionKeys []sql.Symbol
}

// NewExchange returns an Exchange node.
func NewExchange(scope ExchangeScope, sources []sql.PlanNode, output []sql.Symbol, inputs []map[sql.Symbol]sql.Symbol, partitionKeys []sql.Symbol) *Exchange {
	return &Exchange{Scope: scope, Sources: sources, Output: output, Inputs: inputs, PartitionKeys: partitionKeys}
}

func (e *Exchange) Children() []sql.PlanNode { return e.Sources }

func (e *Exchange) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != len(e.Sources) {
		return nil, ErrWrongChildCount.New("Exchange", len(e.Sources), len(children))
	}
	cp := *e
	cp.Sources = children
	return &cp, nil
}

func (e *Exchange) OutputSymbols() []sql.Symbol { return e.Output }

func (e *Exchange) String() string {
	return fmt.Sprintf("%sExchange", e.Scope)
}

// MapToBranch translates symbols into branch i's own namespace.
func (e *Exchange) MapToBranch(i int, s sql.Symbol) (sql.Symbol, bool) {
	mapped, ok := e.Inputs[i][s]
	return mapped, ok
}
