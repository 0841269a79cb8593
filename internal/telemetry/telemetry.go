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

// Package telemetry wires the logging, tracing, and metrics the teacher's
// own analyzer batches carry -- spec.md's Non-goals scope out an
// observability layer as a *feature*, but logging/tracing/metrics are
// ambient concerns carried regardless (SPEC_FULL.md §8).
package telemetry

import (
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Log is the package-wide logger, mirroring the teacher's own use of a
// single package-level logrus.Logger rather than threading one through
// every call.
var Log = logrus.StandardLogger()

var (
	// PushedConjuncts counts conjuncts successfully pushed into a child,
	// labeled by the plan-node variant of the child they were pushed into.
	PushedConjuncts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "predicatepushdown",
		Name:      "pushed_conjuncts_total",
		Help:      "Conjuncts pushed toward a child node, by node variant.",
	}, []string{"node"})

	// ResidualFilters counts conjuncts that stayed behind as a residual
	// Filter, labeled the same way.
	ResidualFilters = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "predicatepushdown",
		Name:      "residual_filters_total",
		Help:      "Conjuncts materialized as a residual Filter, by node variant.",
	}, []string{"node"})

	// DynamicFiltersEmitted counts DYNAMIC_FILTER markers synthesized for
	// INNER joins.
	DynamicFiltersEmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "predicatepushdown",
		Name:      "dynamic_filters_emitted_total",
		Help:      "Dynamic-filter probe markers synthesized for INNER joins.",
	})

	// OuterToInnerDowngrades counts join-type normalizations from an
	// OUTER shape to a narrower one.
	OuterToInnerDowngrades = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "predicatepushdown",
		Name:      "outer_to_inner_downgrades_total",
		Help:      "Join-type downgrades performed by the null-rejection normalizer.",
	}, []string{"from", "to"})
)

func init() {
	prometheus.MustRegister(PushedConjuncts, ResidualFilters, DynamicFiltersEmitted, OuterToInnerDowngrades)
}

// StartSpan opens a span named operation, as a child of ctx when ctx is
// non-nil, and returns the span -- the same
// coarse-grained per-rule instrumentation the teacher applies to its own
// analyzer batches.
func StartSpan(ctx opentracing.SpanContext, operation string) opentracing.Span {
	var span opentracing.Span
	if ctx != nil {
		span = opentracing.StartSpan(operation, opentracing.ChildOf(ctx))
	} else {
		span = opentracing.StartSpan(operation)
	}
	return span
}
