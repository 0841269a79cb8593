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

// WindowFunction is one Output := Call OVER (...) entry of a Window's
// function list.
type WindowFunction struct {
	Output sql.Symbol
	Call   sql.Expression
}

// Window computes WindowFunctions over Source, partitioned by
// PartitionBy. Only conjuncts restricted to PartitionBy (spec.md §4.4's
// Window rule) are eligible to push below a Window.
type Window struct {
	Source      sql.PlanNode
	Functions   []WindowFunction
	PartitionBy []sql.Symbol
}

// NewWindow returns a Window node.
func NewWindow(source sql.PlanNode, functions []WindowFunction, partitionBy []sql.Symbol) *Window {
	return &Window{Source: source, Functions: functions, PartitionBy: partitionBy}
}

func (w *Window) Children() []sql.PlanNode { return []sql.PlanNode{w.Source} }

func (w *Window) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Window", 1, len(children))
	}
	cp := *w
	cp.Source = children[0]
	return &cp, nil
}

func (w *Window) OutputSymbols() []sql.Symbol {
	out := append([]sql.Symbol{}, w.Source.OutputSymbols()...)
	for _, f := range w.Functions {
		out = append(out, f.Output)
	}
	return out
}

func (w *Window) String() string {
	return fmt.Sprintf("Window(partitionBy=%v, %d functions)", w.PartitionBy, len(w.Functions))
}
