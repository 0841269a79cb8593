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

package sql

import "context"

// Config carries the session configuration flags this module consumes.
type Config struct {
	// EnableDynamicFiltering synthesizes dynamic-filter probe predicates
	// for inner equi-joins when true.
	EnableDynamicFiltering bool
	// PredicatePushdownUseTableProperties lets the effective-predicate
	// extractor read table properties (e.g. partitioning) when true.
	PredicatePushdownUseTableProperties bool
}

// DefaultConfig returns the session defaults used when no config file is
// supplied.
func DefaultConfig() *Config {
	return &Config{
		EnableDynamicFiltering:              false,
		PredicatePushdownUseTableProperties: false,
	}
}

// Context bundles the standard library context.Context used for tracing and
// cancellation plumbing with the session config and the Metadata
// collaborator, mirroring the teacher's own *sql.Context.
type Context struct {
	context.Context
	Session  *Config
	Metadata Metadata
}

// NewContext builds a Context from its parts.
func NewContext(parent context.Context, session *Config, metadata Metadata) *Context {
	if parent == nil {
		parent = context.Background()
	}
	if session == nil {
		session = DefaultConfig()
	}
	return &Context{Context: parent, Session: session, Metadata: metadata}
}

// NewEmptyContext returns a Context with default session flags and a
// metadata collaborator that treats every function as deterministic. Handy
// for tests and the CLI front door.
func NewEmptyContext() *Context {
	return NewContext(context.Background(), DefaultConfig(), AllDeterministicMetadata{})
}

// AllDeterministicMetadata is a Metadata stub that reports every function as
// deterministic. Used by tests and the CLI front door where a real catalog
// isn't wired up.
type AllDeterministicMetadata struct{}

// IsDeterministic always returns true.
func (AllDeterministicMetadata) IsDeterministic(FunctionId) bool { return true }
