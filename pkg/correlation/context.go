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

package correlation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/models"
)

const (
	// DefaultTargets is the goal list used when none is configured.
	defaultTargetList = "log:application,log:infrastructure,trace:span"

	defaultMaxLogRows    = 10
	defaultMaxTraceSpans = 10
)

// DefaultTargets returns the default goal list for context assembly.
func DefaultTargets() []string {
	return strings.Split(defaultTargetList, ",")
}

// ContextConfig tunes context assembly.
type ContextConfig struct {
	Enabled       bool     `json:"enabled"`
	Targets       []string `json:"targets,omitempty"`
	MaxLogRows    int      `json:"max_log_rows,omitempty"`
	MaxTraceSpans int      `json:"max_trace_spans,omitempty"`

	// InjectedLine, when non-empty, is appended to the log section of every
	// assembled context. Debug/test seam only.
	InjectedLine string `json:"injected_line,omitempty"`
}

// ContextBuilder turns anomalous namespace/pod pairs into a compact text
// block of correlated logs and error spans for prompt injection. It is
// best-effort: every failure degrades to less (or no) context, never an
// error.
type ContextBuilder struct {
	aggregator GoalAggregator
	config     ContextConfig
	logger     zerolog.Logger
}

// NewContextBuilder creates a ContextBuilder. Zero limits fall back to the
// defaults, an empty target list to the default goals.
func NewContextBuilder(aggregator GoalAggregator, config ContextConfig, log logger.Logger) *ContextBuilder {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if config.MaxLogRows <= 0 {
		config.MaxLogRows = defaultMaxLogRows
	}

	if config.MaxTraceSpans <= 0 {
		config.MaxTraceSpans = defaultMaxTraceSpans
	}

	if len(config.Targets) == 0 {
		config.Targets = DefaultTargets()
	}

	return &ContextBuilder{
		aggregator: aggregator,
		config:     config,
		logger:     log.WithComponent("context_builder"),
	}
}

// BuildContext aggregates correlated signals for every pair and renders the
// noteworthy ones as newline-joined lines: filtered, sorted logs first, then
// error-like spans. Returns an empty string when disabled or when nothing
// survives filtering.
func (b *ContextBuilder) BuildContext(ctx context.Context, pairs []models.NamespacePodPair) string {
	if !b.config.Enabled || b.aggregator == nil {
		return ""
	}

	logs, spans := b.collect(ctx, pairs)

	logLines := b.renderLogs(logs)
	spanLines := b.renderSpans(spans)

	lines := append(logLines, spanLines...)

	if b.config.InjectedLine != "" {
		lines = append(lines, b.config.InjectedLine)
	}
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n")
}

// collect runs one all-spans aggregation pass per unique pair and pools the
// results. Per-pair separation is not preserved downstream.
func (b *ContextBuilder) collect(ctx context.Context, pairs []models.NamespacePodPair) ([]models.LogEntry, []models.Span) {
	var (
		logs  []models.LogEntry
		spans []models.Span
	)

	seen := make(map[models.NamespacePodPair]struct{}, len(pairs))

	for _, pair := range pairs {
		if _, ok := seen[pair]; ok {
			continue
		}

		seen[pair] = struct{}{}

		query := pairQuery(pair)
		if query == "" {
			continue
		}

		result := b.aggregator.FetchGoalQueryObjects(ctx, b.config.Targets, query)

		for _, item := range result.Logs {
			if entry, ok := coerceLogEntry(item); ok {
				logs = append(logs, entry)
			}
		}

		for _, item := range result.Traces {
			if span, ok := coerceSpan(item); ok {
				spans = append(spans, span)
			}
		}
	}

	return logs, spans
}

func (b *ContextBuilder) renderLogs(logs []models.LogEntry) []string {
	logs = FilterNoteworthy(logs)
	SortBySeverity(logs)

	if len(logs) > b.config.MaxLogRows {
		logs = logs[:b.config.MaxLogRows]
	}

	lines := make([]string, 0, len(logs))
	for _, entry := range logs {
		lines = append(lines, renderLogLine(entry))
	}

	return lines
}

func (b *ContextBuilder) renderSpans(spans []models.Span) []string {
	var lines []string

	for _, span := range spans {
		if !span.IsErrorLike() {
			continue
		}

		lines = append(lines, renderSpanLine(span))

		if len(lines) == b.config.MaxTraceSpans {
			break
		}
	}

	return lines
}

// pairQuery builds the pivot query for one pair: pod-scoped when the pod is
// known, namespace-scoped otherwise. Pairs without a namespace are skipped.
func pairQuery(pair models.NamespacePodPair) string {
	if pair.Namespace == "" {
		return ""
	}

	ns, err := json.Marshal(pair.Namespace)
	if err != nil {
		return ""
	}

	if pair.Pod == "" {
		return fmt.Sprintf(`k8s:Pod.v1:{"namespace":%s}`, ns)
	}

	pod, err := json.Marshal(pair.Pod)
	if err != nil {
		return ""
	}

	return fmt.Sprintf(`k8s:Pod.v1:{"namespace":%s,"name":%s}`, ns, pod)
}

// coerceLogEntry accepts the two shapes the logs bucket can hold: already
// normalized entries and raw fallback maps.
func coerceLogEntry(item interface{}) (models.LogEntry, bool) {
	switch v := item.(type) {
	case models.LogEntry:
		return v, true
	case map[string]interface{}:
		return models.LogEntryFromMap(v)
	default:
		return models.LogEntry{}, false
	}
}

func coerceSpan(item interface{}) (models.Span, bool) {
	switch v := item.(type) {
	case models.Span:
		return v, true
	case map[string]interface{}:
		return models.SpanFromMap(v)
	default:
		return models.Span{}, false
	}
}
