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

package analyzer

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/types"
)

var intType = types.Int64

// randomFilterOverShape builds a Filter sitting above a randomly chosen
// Join, Aggregation, or Union, exercising Testable Property 1 (output
// symbols are preserved and the optimizer never panics) over a wider shape
// space than the hand-picked scenario fixtures in pushdown_test.go cover.
func randomFilterOverShape(rnd *rand.Rand, i int) sql.PlanNode {
	lk := sql.NewSymbol(fmt.Sprintf("l%d.k", i))
	ly := sql.NewSymbol(fmt.Sprintf("l%d.y", i))
	rk := sql.NewSymbol(fmt.Sprintf("r%d.k", i))
	ry := sql.NewSymbol(fmt.Sprintf("r%d.y", i))

	left := plan.NewTableScan(fmt.Sprintf("l%d", i), []sql.Symbol{lk, ly}, nil)
	right := plan.NewTableScan(fmt.Sprintf("r%d", i), []sql.Symbol{rk, ry}, nil)

	var source sql.PlanNode
	switch rnd.Intn(3) {
	case 0:
		types := []plan.JoinType{plan.InnerJoin, plan.LeftJoin, plan.RightJoin, plan.FullJoin}
		source = plan.NewJoin(types[rnd.Intn(len(types))], left, right,
			[]plan.EquiClause{{Left: lk, Right: rk}}, nil,
			[]sql.Symbol{lk, ly, rk, ry})
	case 1:
		source = plan.NewAggregation(left,
			[]plan.Aggregate{{Output: sql.NewSymbol(fmt.Sprintf("sum%d", i)), Call: expression.NewFunctionCall("sum", expression.NewSymbolRef(ly, intType))}},
			[][]sql.Symbol{{lk}}, nil)
	default:
		mapping := []map[sql.Symbol]sql.Symbol{
			{lk: lk, ly: ly},
			{rk: lk, ry: ly},
		}
		source = plan.NewUnion([]sql.PlanNode{left, right}, []sql.Symbol{lk, ly}, mapping)
	}

	predicateSym := lk
	if rnd.Intn(2) == 0 {
		predicateSym = ly
	}
	predicate := expression.NewGreaterThan(expression.NewSymbolRef(predicateSym, intType), expression.NewLiteral(int64(rnd.Intn(100)), intType))
	return plan.NewFilter(predicate, source)
}

func TestOptimizeRandomizedShapesPreserveOutputAndNeverPanic(t *testing.T) {
	require := require.New(t)

	rnd := rand.New(rand.NewSource(7))
	ctx := sql.NewEmptyContext()
	a := NewDefault(sql.AllDeterministicMetadata{})

	for i := 0; i < 50; i++ {
		root := randomFilterOverShape(rnd, i)

		var result sql.PlanNode
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("case %d panicked: %v", i, r)
				}
			}()
			var err error
			result, err = Optimize(ctx, a, root, DefaultRuleSelector)
			require.NoError(err, "case %d", i)
		}()

		require.Equal(root.OutputSymbols(), result.OutputSymbols(), "case %d", i)
		require.False(containsTrueFilter(result), "case %d: optimizer left a vacuous TRUE filter", i)
	}
}

func containsTrueFilter(node sql.PlanNode) bool {
	if f, ok := node.(*plan.Filter); ok && expression.IsTrueLiteral(f.Predicate) {
		return true
	}
	for _, c := range node.Children() {
		if containsTrueFilter(c) {
			return true
		}
	}
	return false
}
