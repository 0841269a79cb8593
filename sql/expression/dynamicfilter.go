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

	"github.com/sopel39/predicatepushdown/sql"
)

// DynamicFilter is a probe-side marker predicate synthesized for an inner
// equi-join: DYNAMIC_FILTER(id, probe). It is opaque downstream, identified
// by its Id, and is folded into the join's probe-side predicate only; the
// scan operator that consumes it is out of scope here.
type DynamicFilter struct {
	Id    string
	Typ   sql.Type
	Probe sql.Expression
}

// NewDynamicFilter returns a marker referencing the dynamic filter id,
// evaluated against probe.
func NewDynamicFilter(id string, typ sql.Type, probe sql.Expression) *DynamicFilter {
	return &DynamicFilter{Id: id, Typ: typ, Probe: probe}
}

func (d *DynamicFilter) Children() []sql.Expression { return []sql.Expression{d.Probe} }

func (d *DynamicFilter) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, ErrWrongChildCount.New("DynamicFilter", 1, len(children))
	}
	return NewDynamicFilter(d.Id, d.Typ, children[0]), nil
}

func (d *DynamicFilter) String() string {
	return fmt.Sprintf("DYNAMIC_FILTER(%s, %s)", d.Id, d.Probe.String())
}
