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

// Package analyzer implements the predicate pushdown rewrite: a top-down
// traversal of a relational plan that carries a single inherited predicate
// accumulator and, at each node, decides how much of it can be pushed
// toward the data sources versus materialized as a Filter.
package analyzer

import (
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/transform"
)

// RuleId names a Rule for selection purposes.
type RuleId string

const PushdownRuleId RuleId = "predicate_pushdown"

// RuleSelector decides whether a named rule should run during a given
// Analyzer invocation.
type RuleSelector func(RuleId) bool

// DefaultRuleSelector runs every rule.
func DefaultRuleSelector(RuleId) bool { return true }

// RuleFunc is one rewrite pass over node. It receives the inherited
// predicate accumulated so far and returns the rewritten node along with
// whether anything changed.
type RuleFunc func(ctx *sql.Context, a *Analyzer, node sql.PlanNode, inherited sql.Expression, sel RuleSelector) (sql.PlanNode, transform.TreeIdentity, error)

// Rule pairs an id with the function implementing it, mirroring the
// teacher's Rule/RuleFunc split so batches can be filtered by RuleSelector
// without the caller needing to know each rule's implementation.
type Rule struct {
	Id    RuleId
	Apply RuleFunc
}

// Batch is a named group of rules run in sequence.
type Batch struct {
	Desc  string
	Rules []Rule
}

// Analyzer bundles the external collaborators the pushdown rules consult,
// plus the batches to run. There is exactly one batch in this module (the
// pushdown rewrite proper) but the Batch/Rule split is kept because it is
// how the ambient rule-selection machinery (RuleSelector) is meant to be
// exercised, and it gives a natural seam for future rules.
type Analyzer struct {
	Metadata                    sql.Metadata
	TypeAnalyzer                sql.TypeAnalyzer
	EffectivePredicateExtractor sql.EffectivePredicateExtractor
	ExpressionInterpreter       sql.ExpressionInterpreter
	LiteralEncoder              sql.LiteralEncoder
	SymbolAllocator             sql.SymbolAllocator
	PlanNodeIdAllocator         sql.PlanNodeIdAllocator
	Warnings                    *sql.WarningSink
	Batches                     []Batch
}

// NewDefault returns an Analyzer wired with the single pushdown batch.
func NewDefault(metadata sql.Metadata) *Analyzer {
	a := &Analyzer{Metadata: metadata, Warnings: sql.NewWarningSink()}
	a.Batches = []Batch{
		{
			Desc: "predicate pushdown",
			Rules: []Rule{
				{Id: PushdownRuleId, Apply: applyPushdown},
			},
		},
	}
	return a
}

// getRule looks up a rule by id across every batch.
func (a *Analyzer) getRule(id RuleId) (Rule, bool) {
	for _, b := range a.Batches {
		for _, r := range b.Rules {
			if r.Id == id {
				return r, true
			}
		}
	}
	return Rule{}, false
}
