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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sopel39/predicatepushdown/sql"
)

type fakeMetadata struct {
	nonDeterministic map[sql.FunctionId]bool
}

func (m fakeMetadata) IsDeterministic(fn sql.FunctionId) bool { return !m.nonDeterministic[fn] }

func TestIsDeterministicHardcodesRandLike(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	require.False(IsDeterministic(ctx, NewFunctionCall("rand")))
	require.False(IsDeterministic(ctx, NewFunctionCall("NOW")))
	require.True(IsDeterministic(ctx, NewFunctionCall("sum", sym("a"))))
}

func TestIsDeterministicConsultsMetadata(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{nonDeterministic: map[sql.FunctionId]bool{"my_udf": true}})
	require.False(IsDeterministic(ctx, NewFunctionCall("my_udf", sym("a"))))
}

func TestIsDeterministicRecursesIntoChildren(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	e := NewAnd(sym("a"), NewFunctionCall("rand"))
	require.False(IsDeterministic(ctx, e))
}

func TestPartitionDeterministic(t *testing.T) {
	require := require.New(t)

	ctx := sql.NewContext(nil, nil, fakeMetadata{})
	e := NewAnd(NewFunctionCall("rand"), sym("a"))
	det, nondet := PartitionDeterministic(ctx, e)
	require.Equal([]sql.Expression{sym("a")}, det)
	require.Equal([]sql.Expression{NewFunctionCall("rand")}, nondet)
}
