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

import (
	"fmt"
	"strings"

	"github.com/sopel39/predicatepushdown/sql"
)

// FunctionCall is a scalar function application. Id is the function's
// catalog identity, consulted via sql.Metadata for determinism.
type FunctionCall struct {
	Id   sql.FunctionId
	Args []sql.Expression
}

// NewFunctionCall returns a call to fn with the given arguments.
func NewFunctionCall(fn sql.FunctionId, args ...sql.Expression) *FunctionCall {
	return &FunctionCall{Id: fn, Args: args}
}

func (f *FunctionCall) Children() []sql.Expression { return f.Args }

func (f *FunctionCall) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return &FunctionCall{Id: f.Id, Args: children}, nil
}

func (f *FunctionCall) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Id, strings.Join(args, ", "))
}

// randLikeNames are scalar functions that spec.md §4.1 calls out as
// non-deterministic regardless of what the catalog says, because a
// metadata entry lagging behind a newly registered volatile builtin is a
// correctness hazard this module hard-codes around.
var randLikeNames = map[string]bool{
	"rand":    true,
	"random":  true,
	"uuid":    true,
	"now":     true,
	"sysdate": true,
}

func isRandLike(fn sql.FunctionId) bool {
	return randLikeNames[strings.ToLower(string(fn))]
}
