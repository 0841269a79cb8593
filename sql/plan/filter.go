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

// Filter retains only the rows of Source for which Predicate is true.
type Filter struct {
	Source    sql.PlanNode
	Predicate sql.Expression
}

// NewFilter returns a Filter node. Callers should never construct a Filter
// whose Predicate is the literal TRUE (spec.md invariant "TRUE filters are
// never materialized") -- see analyzer.MaybeWrapFilter.
func NewFilter(predicate sql.Expression, source sql.PlanNode) *Filter {
	return &Filter{Source: source, Predicate: predicate}
}

func (f *Filter) Children() []sql.PlanNode { return []sql.PlanNode{f.Source} }

func (f *Filter) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Filter", 1, len(children))
	}
	return NewFilter(f.Predicate, children[0]), nil
}

func (f *Filter) OutputSymbols() []sql.Symbol { return f.Source.OutputSymbols() }

func (f *Filter) String() string { return fmt.Sprintf("Filter(%s)", f.Predicate.String()) }
