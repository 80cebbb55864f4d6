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

// Package correlation aggregates correlated log and trace signals for a
// cluster anomaly and assembles them into bounded text context for LLM
// prompts.
package correlation

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clusterlens/clusterlens/pkg/korrel8r"
	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/models"
)

const (
	bucketLogs   = "logs"
	bucketTraces = "traces"
)

// traceIDFields is the lookup order for a trace ID inside a raw signal
// object. The "id" fallback is last because it is the most generic.
var traceIDFields = []string{"traceID", "traceId", "id"}

// Aggregator routes resolved goal queries to the logs or traces bucket and
// merges their results into one AggregationResult per pass.
type Aggregator struct {
	backend SignalBackend
	fetcher SpanFetcher
	logger  zerolog.Logger
}

// NewAggregator creates an Aggregator over the given signal backend and
// span fetcher.
func NewAggregator(backend SignalBackend, fetcher SpanFetcher, log logger.Logger) *Aggregator {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Aggregator{
		backend: backend,
		fetcher: fetcher,
		logger:  log.WithComponent("aggregator"),
	}
}

// FetchGoalQueryObjects resolves goals from the start query and aggregates
// every resulting domain query into the logs and traces buckets, keeping
// all spans of every fetched trace. It never returns an error: failures
// degrade to smaller or empty buckets.
func (a *Aggregator) FetchGoalQueryObjects(ctx context.Context, goals []string, query string) models.AggregationResult {
	return a.aggregate(ctx, goals, query, models.SpanModeAll)
}

// FetchGoalQueryErrorObjects is the error-focused variant: trace queries
// keep only error-marked traces and their error-like tags.
func (a *Aggregator) FetchGoalQueryErrorObjects(ctx context.Context, goals []string, query string) models.AggregationResult {
	return a.aggregate(ctx, goals, query, models.SpanModeErrorsOnly)
}

func (a *Aggregator) aggregate(ctx context.Context, goals []string, query string, mode models.SpanMode) models.AggregationResult {
	result := models.NewAggregationResult()

	log := a.logger.With().Str("pass_id", uuid.NewString()).Str("span_mode", mode.String()).Logger()

	goalResults, err := a.backend.ListGoals(ctx, goals, korrel8r.Start{Queries: []string{query}})
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Goal resolution failed")
		return result
	}

	// Trace IDs already fetched in this pass. Only the single aggregating
	// flow mutates it; the parallel fetch starts after the IDs are decided.
	seenTraceIDs := make(map[string]struct{})

	for i := range goalResults {
		goal := &goalResults[i]

		name := goal.GoalName()
		if name == "" && i < len(goals) {
			name = goals[i]
		}

		bucket := bucketForGoal(name)

		for _, goalQuery := range goal.Queries {
			if goalQuery.Query == "" {
				continue
			}

			raw, err := a.backend.QueryObjects(ctx, goalQuery.Query)
			if err != nil {
				log.Warn().Err(err).Str("goal", name).Str("query", goalQuery.Query).Msg("Query failed, skipping")
				continue
			}

			if bucket == bucketTraces {
				newIDs := newTraceIDs(raw, seenTraceIDs)

				for _, span := range a.fetcher.FetchSpans(ctx, newIDs, raw, mode) {
					result.Traces = append(result.Traces, span)
				}

				continue
			}

			if entries := a.backend.SimplifyLogObjects(raw); entries != nil {
				for _, entry := range entries {
					result.Logs = append(result.Logs, entry)
				}

				continue
			}

			// Payload shape the simplifier does not recognize: keep the raw
			// objects so nothing correlated is silently lost.
			result.Logs = append(result.Logs, raw.Flatten()...)
		}
	}

	log.Debug().
		Str("query", query).
		Int("logs", len(result.Logs)).
		Int("traces", len(result.Traces)).
		Msg("Aggregation pass complete")

	return result
}

// bucketForGoal maps a goal name's domain prefix to an aggregation bucket.
// Anything that is not a trace goal lands in the logs bucket, including
// unrecognized domains.
func bucketForGoal(name string) string {
	domain, _, _ := strings.Cut(name, ":")
	if strings.ToLower(domain) == "trace" {
		return bucketTraces
	}

	return bucketLogs
}

// ExtractTraceIDs pulls unique trace IDs out of a raw signal object in
// first-seen order. Nested context fields win over top-level ones; empty
// and non-string IDs are skipped.
func ExtractTraceIDs(raw models.RawValue) []string {
	var ids []string

	seen := make(map[string]struct{})

	for _, item := range raw.Items() {
		id := itemTraceID(item)
		if id == "" {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}

func itemTraceID(item map[string]interface{}) string {
	if ctx, ok := item["context"].(map[string]interface{}); ok {
		for _, field := range traceIDFields[:2] {
			if s, ok := ctx[field].(string); ok && s != "" {
				return s
			}
		}
	}

	for _, field := range traceIDFields {
		if s, ok := item[field].(string); ok && s != "" {
			return s
		}
	}

	return ""
}

// newTraceIDs extracts trace IDs from raw and returns the ones not yet in
// seen, marking them as seen.
func newTraceIDs(raw models.RawValue, seen map[string]struct{}) []string {
	extracted := ExtractTraceIDs(raw)

	ids := make([]string, 0, len(extracted))

	for _, id := range extracted {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		ids = append(ids, id)
	}

	return ids
}
