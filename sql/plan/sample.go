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

// SampleMethod distinguishes row-level Bernoulli sampling from
// block/system-level sampling.
type SampleMethod int

const (
	SampleBernoulli SampleMethod = iota
	SampleSystem
)

func (m SampleMethod) String() string {
	if m == SampleSystem {
		return "SYSTEM"
	}
	return "BERNOULLI"
}

// Sample independently keeps each row of Source with probability
// Percentage; like Sort, it is transparent to predicate pushdown.
type Sample struct {
	Source     sql.PlanNode
	Method     SampleMethod
	Percentage float64
}

// NewSample returns a Sample node.
func NewSample(source sql.PlanNode, method SampleMethod, percentage float64) *Sample {
	return &Sample{Source: source, Method: method, Percentage: percentage}
}

func (s *Sample) Children() []sql.PlanNode { return []sql.PlanNode{s.Source} }

func (s *Sample) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("Sample", 1, len(children))
	}
	cp := *s
	cp.Source = children[0]
	return &cp, nil
}

func (s *Sample) OutputSymbols() []sql.Symbol { return s.Source.OutputSymbols() }

func (s *Sample) String() string {
	return fmt.Sprintf("Sample(%s, %.2f%%)", s.Method, s.Percentage)
}
