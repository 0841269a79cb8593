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

// Package transform holds the tree-rewrite discipline shared by every rule
// in this module: a rewrite reports, alongside its result, whether the tree
// actually changed (TreeIdentity), so callers can skip rebuilding unchanged
// ancestors (spec.md §9, "Ownership") instead of comparing trees deeply on
// every step.
package transform

// TreeIdentity records whether a rewrite produced a structurally new tree
// (NewTree) or returned its input untouched (SameTree).
type TreeIdentity bool

const (
	SameTree TreeIdentity = false
	NewTree  TreeIdentity = true
)

// AndAlso combines two TreeIdentity values from sibling rewrites: the
// combined tree is new if either side is.
func (t TreeIdentity) AndAlso(other TreeIdentity) TreeIdentity {
	return t || other
}
