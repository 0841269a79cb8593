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
	goerrors "gopkg.in/src-d/go-errors.v1"
)

// Invariant-violation kinds. These abort optimization; none of them are
// expected to fire on a well-formed input plan.
var (
	ErrAssignUniqueIdColumnReferenced = goerrors.NewKind(
		"inherited predicate references AssignUniqueId column %s before it is assigned")
	ErrEffectivePredicateScopeViolation = goerrors.NewKind(
		"effective predicate for node %T references symbol %s outside its output scope")
	ErrUnsupportedJoinType = goerrors.NewKind(
		"unsupported join type %s")
	ErrMissingSpatialPredicate = goerrors.NewKind(
		"spatial join %s has no predicate after rewrite")
)
