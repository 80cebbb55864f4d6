/*
 * Copyright 2026 The ClusterLens Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package models defines the shared domain types for the correlation layer.
package models

// NamespacePodPair identifies one candidate correlation target. Pairs are
// value types; equality by (namespace, pod) is used to deduplicate targets
// before fan-out.
type NamespacePodPair struct {
	Namespace string `json:"namespace"`
	Pod       string `json:"pod,omitempty"`
}

// LogEntry is the normalized shape of one correlated log record.
type LogEntry struct {
	Message   string `json:"message"`
	Level     string `json:"level"`
	Namespace string `json:"namespace,omitempty"`
	Pod       string `json:"pod,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Span is the simplified shape of one trace span. Tags are flattened from
// the backend's {key,value} list into a map. Namespace and Pod are only set
// when the span could be matched against the correlation objects that
// produced its trace ID.
type Span struct {
	TraceID       string                 `json:"traceID"`
	SpanID        string                 `json:"spanID"`
	OperationName string                 `json:"operationName"`
	StartTime     int64                  `json:"startTime"`
	Duration      int64                  `json:"duration"`
	Tags          map[string]interface{} `json:"tags"`
	Namespace     string                 `json:"namespace,omitempty"`
	Pod           string                 `json:"pod,omitempty"`
}

// AggregationResult is the terminal value of one correlation pass. Both
// buckets are always present, even when empty. Bucket items are
// heterogeneous: normalized LogEntry/Span values from the log and trace
// branches, raw objects from the fallback branch.
type AggregationResult struct {
	Logs   []interface{} `json:"logs"`
	Traces []interface{} `json:"traces"`
}

// NewAggregationResult returns a result with both buckets allocated.
func NewAggregationResult() AggregationResult {
	return AggregationResult{
		Logs:   []interface{}{},
		Traces: []interface{}{},
	}
}

// GoalResult is one entry of a goal-resolution response: the goal class it
// was resolved for and the domain queries that reach it. Backends are
// inconsistent about which field carries the goal name, so all three are
// kept and consulted in a fixed order (goal, class, name).
type GoalResult struct {
	Goal    string      `json:"goal,omitempty"`
	Class   string      `json:"class,omitempty"`
	Name    string      `json:"name,omitempty"`
	Queries []GoalQuery `json:"queries"`
}

// GoalName returns the explicit goal name, or empty when none is set.
func (g *GoalResult) GoalName() string {
	switch {
	case g.Goal != "":
		return g.Goal
	case g.Class != "":
		return g.Class
	default:
		return g.Name
	}
}

// GoalQuery is one executable domain query under a resolved goal.
type GoalQuery struct {
	Query string `json:"query"`
	Count int    `json:"count,omitempty"`
}

// SpanMode selects which spans a trace-detail fetch keeps.
type SpanMode int

const (
	// SpanModeAll keeps every span of every fetched trace.
	SpanModeAll SpanMode = iota
	// SpanModeErrorsOnly keeps only error-like traces, and within them only
	// tags whose value looks error-like; spans left with zero tags are
	// dropped entirely.
	SpanModeErrorsOnly
)

func (m SpanMode) String() string {
	if m == SpanModeErrorsOnly {
		return "errors_only"
	}

	return "all"
}
