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

// Package inference builds equivalence classes out of deterministic
// equality conjuncts and uses them to rewrite expressions into a target
// symbol scope, or to emit equalities partitioned by that scope. It has no
// knowledge of plan nodes: callers (the analyzer's join/aggregation/etc.
// rules) decide which expressions to feed in and what scope to rewrite
// into.
package inference

import (
	"sort"

	"github.com/mitchellh/hashstructure"

	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
)

// member is one element of an equivalence class: the expression itself
// plus a structural hash used as the union-find key, since two distinct
// *Expression values with identical structure (e.g. two SymbolRefs to the
// same symbol built by different callers) must land in the same class.
type member struct {
	expr sql.Expression
	key  uint64
}

// Inference is an equivalence-class structure over deterministic
// equalities, built once from a fixed list of source expressions and then
// queried repeatedly. It carries no hidden global state; build a new one
// whenever the source expressions change.
type Inference struct {
	// parent/rank implement union-find keyed by structural hash.
	parent map[uint64]uint64
	rank   map[uint64]int
	// members maps a structural hash to every expression observed with
	// that hash (almost always length 1, but kept as a slice since
	// hashstructure collisions, while vanishingly rare, must not silently
	// drop an operand).
	members map[uint64][]sql.Expression
	// nonInferrable holds every top-level conjunct that was not a plain
	// deterministic equality.
	nonInferrable []sql.Expression
}

// New builds an Inference from the top-level conjuncts of every expr in
// exprs. Non-equality conjuncts, and equalities where either side is
// non-deterministic or contains a Try-expression, are recorded as
// non-inferrable rather than unioned.
func New(ctx *sql.Context, exprs ...sql.Expression) *Inference {
	inf := &Inference{
		parent:  map[uint64]uint64{},
		rank:    map[uint64]int{},
		members: map[uint64][]sql.Expression{},
	}
	for _, e := range exprs {
		if e == nil {
			continue
		}
		for _, conjunct := range expression.ExtractConjuncts(e) {
			inf.absorb(ctx, conjunct)
		}
	}
	return inf
}

func (inf *Inference) absorb(ctx *sql.Context, conjunct sql.Expression) {
	cmp, ok := expression.IsEquiJoinShape(conjunct)
	if !ok || !expression.IsDeterministic(ctx, conjunct) ||
		expression.ContainsTry(cmp.Left) || expression.ContainsTry(cmp.Right) {
		inf.nonInferrable = append(inf.nonInferrable, conjunct)
		return
	}
	inf.union(cmp.Left, cmp.Right)
}

func (inf *Inference) keyOf(e sql.Expression) uint64 {
	canon := expression.CanonicalKey(e)
	h, err := hashstructure.Hash(canon, nil)
	if err != nil {
		// hashstructure only fails on unsupported types (channels,
		// functions); a string argument never triggers that, so this is
		// unreachable in practice. Fall back to a fixed bucket rather
		// than panicking.
		h = 0
	}
	if _, ok := inf.members[h]; !ok {
		inf.parent[h] = h
		inf.rank[h] = 0
	}
	found := false
	for _, m := range inf.members[h] {
		if expression.CanonicalKey(m) == canon {
			found = true
			break
		}
	}
	if !found {
		inf.members[h] = append(inf.members[h], e)
	}
	return h
}

func (inf *Inference) find(h uint64) uint64 {
	root := h
	for inf.parent[root] != root {
		root = inf.parent[root]
	}
	for h != root {
		next := inf.parent[h]
		inf.parent[h] = root
		h = next
	}
	return root
}

func (inf *Inference) union(a, b sql.Expression) {
	ha, hb := inf.keyOf(a), inf.keyOf(b)
	ra, rb := inf.find(ha), inf.find(hb)
	if ra == rb {
		return
	}
	if inf.rank[ra] < inf.rank[rb] {
		ra, rb = rb, ra
	}
	inf.parent[rb] = ra
	if inf.rank[ra] == inf.rank[rb] {
		inf.rank[ra]++
	}
}

// classes returns every equivalence class with 2+ members as a slice of
// member-expression lists, in deterministic (canonical key) order both
// across classes and within a class.
func (inf *Inference) classes() [][]sql.Expression {
	byRoot := map[uint64][]sql.Expression{}
	for h, exprs := range inf.members {
		root := inf.find(h)
		byRoot[root] = append(byRoot[root], exprs...)
	}
	var out [][]sql.Expression
	for _, exprs := range byRoot {
		if len(exprs) < 2 {
			continue
		}
		out = append(out, expression.SortByKey(exprs))
	}
	sort.Slice(out, func(i, j int) bool {
		return expression.CanonicalKey(out[i][0]) < expression.CanonicalKey(out[j][0])
	})
	return out
}

// Rewrite attempts to produce an expression equivalent to conjunct whose
// free symbols are all contained in scope, substituting out-of-scope
// subexpressions with an in-scope representative from their equivalence
// class. It returns (nil, false) if conjunct is non-deterministic,
// contains a Try-expression, or some required substitution has no
// in-scope representative.
func (inf *Inference) Rewrite(ctx *sql.Context, conjunct sql.Expression, scope sql.SymbolSet) (sql.Expression, bool) {
	if !expression.IsDeterministic(ctx, conjunct) || expression.ContainsTry(conjunct) {
		return nil, false
	}
	if expression.Symbols(conjunct).SubsetOf(scope) {
		return conjunct, true
	}
	mapping := map[sql.Symbol]sql.Expression{}
	for _, s := range expression.Symbols(conjunct).Slice() {
		if scope.Contains(s) {
			continue
		}
		rep, ok := inf.representativeFor(expression.NewSymbolRef(s, nil), scope)
		if !ok {
			return nil, false
		}
		mapping[s] = rep
	}
	if len(mapping) == 0 {
		return conjunct, true
	}
	return expression.InlineSymbols(mapping, conjunct), true
}

// representativeFor finds, for the equivalence class containing needle, a
// member that lies entirely within scope (i.e. all its free symbols are
// in-scope). Representative choice is deterministic: shortest String(),
// then lexicographic, matching spec.md §4.2's tie-break rule.
func (inf *Inference) representativeFor(needle sql.Expression, scope sql.SymbolSet) (sql.Expression, bool) {
	h := inf.keyOf(needle)
	root := inf.find(h)
	var candidates []sql.Expression
	for hh, exprs := range inf.members {
		if inf.find(hh) != root {
			continue
		}
		for _, e := range exprs {
			if expression.Symbols(e).SubsetOf(scope) {
				candidates = append(candidates, e)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		si, sj := candidates[i].String(), candidates[j].String()
		if len(si) != len(sj) {
			return len(si) < len(sj)
		}
		return si < sj
	})
	return candidates[0], true
}

// GenerateEqualitiesPartitionedBy emits, for every equivalence class with
// 2+ members, the equalities among its in-scope members (scopeEqualities),
// among its out-of-scope members (scopeComplementEqualities), and at most
// one equality bridging an in-scope and out-of-scope representative
// (scopeStraddlingEqualities).
func (inf *Inference) GenerateEqualitiesPartitionedBy(scope sql.SymbolSet) (scopeEqualities, scopeComplementEqualities, scopeStraddlingEqualities []sql.Expression) {
	for _, class := range inf.classes() {
		var inScope, outScope []sql.Expression
		for _, e := range class {
			if expression.Symbols(e).SubsetOf(scope) {
				inScope = append(inScope, e)
			} else {
				outScope = append(outScope, e)
			}
		}
		scopeEqualities = append(scopeEqualities, chainEqualities(inScope)...)
		scopeComplementEqualities = append(scopeComplementEqualities, chainEqualities(outScope)...)
		if len(inScope) > 0 && len(outScope) > 0 {
			scopeStraddlingEqualities = append(scopeStraddlingEqualities, expression.NewEquals(inScope[0], outScope[0]))
		}
	}
	return
}

// chainEqualities returns `members[0] = members[1]`, `members[0] =
// members[2]`, ... i.e. a spanning set of equalities connecting every
// member to a single representative, sufficient to reconstruct the whole
// class's transitive closure without the quadratic blowup of all pairs.
func chainEqualities(members []sql.Expression) []sql.Expression {
	if len(members) < 2 {
		return nil
	}
	out := make([]sql.Expression, 0, len(members)-1)
	for _, m := range members[1:] {
		out = append(out, expression.NewEquals(members[0], m))
	}
	return out
}

// NonInferrableConjuncts returns the top-level conjuncts of e that are not
// plain deterministic equalities -- they were never absorbed into an
// equivalence class and callers must still reckon with them directly.
func (inf *Inference) NonInferrableConjuncts(ctx *sql.Context, e sql.Expression) []sql.Expression {
	var out []sql.Expression
	for _, conjunct := range expression.ExtractConjuncts(e) {
		if _, ok := expression.IsEquiJoinShape(conjunct); ok && expression.IsDeterministic(ctx, conjunct) &&
			!expression.ContainsTry(conjunct) {
			continue
		}
		out = append(out, conjunct)
	}
	return out
}
