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

// Expression is a node of the boolean/scalar expression tree. Concrete
// variants live in sql/expression. WithChildren must return a new value of
// the same dynamic type with the given children; it must error if the
// number of children it is given doesn't match Children().
type Expression interface {
	Children() []Expression
	WithChildren(children ...Expression) (Expression, error)
	String() string
}

// PlanNode is a node of the logical query plan tree. Concrete variants live
// in sql/plan. Every PlanNode exposes a deterministic ordered list of
// output symbols that rewrites must preserve at the root.
type PlanNode interface {
	Children() []PlanNode
	WithChildren(children ...PlanNode) (PlanNode, error)
	OutputSymbols() []Symbol
	String() string
}
