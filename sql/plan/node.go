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

// Package plan holds the concrete sql.PlanNode variants spec.md's data
// model requires: Filter, Project, Join, SemiJoin, SpatialJoin,
// Aggregation, Union, Exchange, Window, GroupId, MarkDistinct, Unnest,
// Sort, Sample, TableScan, AssignUniqueId.
package plan

import (
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/sopel39/predicatepushdown/sql"
)

// ErrWrongChildCount is raised by a WithChildren implementation called
// with the wrong number of children for the receiver's arity.
var ErrWrongChildCount = goerrors.NewKind("plan node %s expects %d children, got %d")

// JoinType enumerates the join kinds spec.md's data model requires on
// Join, SpatialJoin and Unnest.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
)

func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "INNER"
	case LeftJoin:
		return "LEFT"
	case RightJoin:
		return "RIGHT"
	case FullJoin:
		return "FULL"
	default:
		return "?"
	}
}
