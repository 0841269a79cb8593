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

// Command ppctl is a tiny CLI front door that decodes a JSON plan
// fixture, wires stub collaborators, runs the predicate pushdown
// optimizer over it, and prints the rewritten tree -- the CLI-shaped
// equivalent of the teacher's own _example/main.go.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sopel39/predicatepushdown/analyzer"
	"github.com/sopel39/predicatepushdown/analyzer/testutil"
	"github.com/sopel39/predicatepushdown/internal/config"
	"github.com/sopel39/predicatepushdown/sql"
	"github.com/sopel39/predicatepushdown/sql/expression"
)

func main() {
	var fixturePath, configPath string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-config":
			i++
			if i < len(args) {
				configPath = args[i]
			}
		default:
			fixturePath = args[i]
		}
	}
	if fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: ppctl [-config pushdown.toml] <plan-fixture.json>")
		os.Exit(2)
	}

	if err := run(fixturePath, configPath); err != nil {
		logrus.WithError(err).Error("ppctl failed")
		os.Exit(1)
	}
}

func run(fixturePath, configPath string) error {
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return errors.Wrap(err, "reading fixture")
	}
	root, err := decodePlan(data)
	if err != nil {
		return errors.Wrap(err, "decoding fixture")
	}

	session, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	ctx := sql.NewContext(nil, session, testutil.Metadata{})
	a := analyzer.NewDefault(testutil.Metadata{})
	a.TypeAnalyzer = testutil.TypeAnalyzer{}
	a.EffectivePredicateExtractor = testutil.NoEffectivePredicates{True: expression.True}
	a.SymbolAllocator = testutil.NewSymbolAllocator()
	a.PlanNodeIdAllocator = &testutil.PlanNodeIdAllocator{}

	result, err := analyzer.Optimize(ctx, a, root, analyzer.DefaultRuleSelector)
	if err != nil {
		return errors.Wrap(err, "optimizing plan")
	}

	fmt.Println(describe(result, 0))
	return nil
}

func describe(node sql.PlanNode, depth int) string {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	out := indent + node.String() + "\n"
	for _, child := range node.Children() {
		out += describe(child, depth+1)
	}
	return out
}
