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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
	"github.com/sopel39/predicatepushdown/sql/plan"
	"github.com/sopel39/predicatepushdown/sql/types"
)

func TestTryNormalizeLeftJoinDowngradesOnRightNullRejection(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewEmptyContext()
	left := plan.NewTableScan("l", []sql.Symbol{s("l.k")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.k"), s("r.y")}, nil)
	inherited := expression.NewGreaterThan(symRef("r.y"), lit(0))

	got := tryNormalizeToOuterToInnerJoin(ctx, plan.LeftJoin, left, right, inherited, expression.True, expression.True)
	require.Equal(plan.InnerJoin, got)
}

func TestTryNormalizeLeftJoinKeepsTypeWithoutNullRejection(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewEmptyContext()
	left := plan.NewTableScan("l", []sql.Symbol{s("l.k")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.k"), s("r.y")}, nil)
	inherited := expression.NewGreaterThan(symRef("l.k"), lit(0))

	got := tryNormalizeToOuterToInnerJoin(ctx, plan.LeftJoin, left, right, inherited, expression.True, expression.True)
	require.Equal(plan.LeftJoin, got)
}

func TestTryNormalizeFullJoinDowngradesToInnerWhenBothSidesReject(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewEmptyContext()
	left := plan.NewTableScan("l", []sql.Symbol{s("l.k"), s("l.y")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.k"), s("r.y")}, nil)
	inherited := expression.NewAnd(
		expression.NewGreaterThan(symRef("l.y"), lit(0)),
		expression.NewGreaterThan(symRef("r.y"), lit(0)),
	)

	got := tryNormalizeToOuterToInnerJoin(ctx, plan.FullJoin, left, right, inherited, expression.True, expression.True)
	require.Equal(plan.InnerJoin, got)
}

func TestTryNormalizeFullJoinDowngradesToLeftWhenOnlyRightRejects(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewEmptyContext()
	left := plan.NewTableScan("l", []sql.Symbol{s("l.k")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.k"), s("r.y")}, nil)
	inherited := expression.NewGreaterThan(symRef("r.y"), lit(0))

	got := tryNormalizeToOuterToInnerJoin(ctx, plan.FullJoin, left, right, inherited, expression.True, expression.True)
	require.Equal(plan.LeftJoin, got)
}

func TestTryNormalizeIgnoresNonDeterministicRejection(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewEmptyContext()
	left := plan.NewTableScan("l", []sql.Symbol{s("l.k")}, nil)
	right := plan.NewTableScan("r", []sql.Symbol{s("r.k")}, nil)
	inherited := expression.NewEquals(expression.NewFunctionCall("rand"), symRef("r.k"))

	got := tryNormalizeToOuterToInnerJoin(ctx, plan.LeftJoin, left, right, inherited, expression.True, expression.True)
	require.Equal(plan.LeftJoin, got)
}

var _ = types.Boolean
