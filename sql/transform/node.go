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

package transform

import "github.com/sopel39/predicatepushdown/sql"

// NodeFunc rewrites a single PlanNode, reporting whether it changed.
type NodeFunc func(n sql.PlanNode) (sql.PlanNode, TreeIdentity, error)

// ExprFunc rewrites a single Expression, reporting whether it changed.
type ExprFunc func(e sql.Expression) (sql.Expression, TreeIdentity, error)

// NodeChildren rewrites n's children bottom-up with f and reassembles n via
// WithChildren only if at least one child actually changed, preserving
// reference identity for unchanged subtrees the way spec.md §9's Ownership
// note recommends.
func NodeChildren(n sql.PlanNode, f NodeFunc) (sql.PlanNode, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return n, SameTree, nil
	}
	newChildren := make([]sql.PlanNode, len(children))
	same := SameTree
	for i, c := range children {
		nc, identity, err := f(c)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		same = same.AndAlso(identity)
	}
	if same == SameTree {
		return n, SameTree, nil
	}
	newNode, err := n.WithChildren(newChildren...)
	if err != nil {
		return nil, SameTree, err
	}
	return newNode, NewTree, nil
}

// TransformUp applies f to every node of the tree rooted at n, children
// before parents, threading TreeIdentity so an unchanged subtree is never
// rebuilt.
func TransformUp(n sql.PlanNode, f NodeFunc) (sql.PlanNode, TreeIdentity, error) {
	withChildren, childIdentity, err := NodeChildren(n, func(c sql.PlanNode) (sql.PlanNode, TreeIdentity, error) {
		return TransformUp(c, f)
	})
	if err != nil {
		return nil, SameTree, err
	}
	result, identity, err := f(withChildren)
	if err != nil {
		return nil, SameTree, err
	}
	return result, childIdentity.AndAlso(identity), nil
}

// ExprChildren rewrites e's children bottom-up with f, same identity
// discipline as NodeChildren.
func ExprChildren(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	if len(children) == 0 {
		return e, SameTree, nil
	}
	newChildren := make([]sql.Expression, len(children))
	same := SameTree
	for i, c := range children {
		nc, identity, err := f(c)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		same = same.AndAlso(identity)
	}
	if same == SameTree {
		return e, SameTree, nil
	}
	newExpr, err := e.WithChildren(newChildren...)
	if err != nil {
		return nil, SameTree, err
	}
	return newExpr, NewTree, nil
}
