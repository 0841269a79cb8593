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

// Type is the handle a Symbol or literal carries for its result type. The
// actual type system (numeric widths, collations, temporal precision, ...)
// lives in the type analyzer, out of scope for this module; this interface
// is only the contract the optimizer needs to hold a Type opaquely.
type Type interface {
	String() string
}

// FunctionId identifies a scalar function for the purposes of determinism
// lookup in Metadata. Out of scope: resolving a FunctionId to an executable
// implementation.
type FunctionId string

// Schema is the ordered list of output symbols and their types of a PlanNode.
type Schema []Field

// Field pairs a Symbol with its Type within a Schema.
type Field struct {
	Symbol Symbol
	Type   Type
}

// Symbols returns the schema's symbols in order.
func (s Schema) Symbols() []Symbol {
	out := make([]Symbol, len(s))
	for i, f := range s {
		out[i] = f.Symbol
	}
	return out
}
