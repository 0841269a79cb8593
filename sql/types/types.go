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

// Package types holds a handful of concrete sql.Type values used by this
// module's tests and CLI fixtures. The real type system is the out-of-scope
// type analyzer's job; this package exists only so expressions have
// something non-nil to carry as their Type.
package types

import "github.com/sopel39/predicatepushdown/sql"

type namedType string

func (n namedType) String() string { return string(n) }

var (
	Boolean  sql.Type = namedType("BOOLEAN")
	Int64    sql.Type = namedType("BIGINT")
	Float64  sql.Type = namedType("DOUBLE")
	Text     sql.Type = namedType("TEXT")
	Unknown  sql.Type = namedType("UNKNOWN")
)
