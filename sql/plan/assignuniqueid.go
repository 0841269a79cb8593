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

// AssignUniqueId appends a fresh, globally unique IdColumn to every row of
// Source. No conjunct referencing IdColumn may ever be pushed below this
// node -- doing so would push a predicate that depends on an id which
// does not yet exist below the point it's assigned (spec.md invariant,
// surfaced as ErrAssignUniqueIdColumnReferenced when violated).
type AssignUniqueId struct {
	Source   sql.PlanNode
	IdColumn sql.Symbol
}

// NewAssignUniqueId returns an AssignUniqueId node.
func NewAssignUniqueId(source sql.PlanNode, idColumn sql.Symbol) *AssignUniqueId {
	return &AssignUniqueId{Source: source, IdColumn: idColumn}
}

func (a *AssignUniqueId) Children() []sql.PlanNode { return []sql.PlanNode{a.Source} }

func (a *AssignUniqueId) WithChildren(children ...sql.PlanNode) (sql.PlanNode, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("AssignUniqueId", 1, len(children))
	}
	cp := *a
	cp.Source = children[0]
	return &cp, nil
}

func (a *AssignUniqueId) OutputSymbols() []sql.Symbol {
	return append(append([]sql.Symbol{}, a.Source.OutputSymbols()...), a.IdColumn)
}

func (a *AssignUniqueId) String() string {
	return fmt.Sprintf("AssignUniqueId(%s)", a.IdColumn)
}
