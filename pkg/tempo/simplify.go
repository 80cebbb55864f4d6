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

package tempo

import (
	"github.com/clusterlens/clusterlens/pkg/models"
)

// spanIDFields is the lookup order for a span ID inside a correlated
// signal item. Nested context fields take precedence over top-level ones.
var spanIDFields = []string{"spanID", "spanId"}

var (
	namespaceFields = []string{"k8s.namespace.name", "kubernetes.namespace_name", "namespace"}
	podFields       = []string{"k8s.pod.name", "kubernetes.pod_name", "pod", "service.name"}
)

// buildSpanIndex maps span IDs found in correlated signal objects to the
// namespace/pod pair that produced them, so fetched spans can be enriched
// with workload identity the trace backend does not carry.
func buildSpanIndex(related models.RawValue) map[string]models.NamespacePodPair {
	index := make(map[string]models.NamespacePodPair)

	for _, item := range related.ListItems() {
		flat := flattenItem(item)

		spanID := itemSpanID(item, flat)
		if spanID == "" {
			continue
		}

		pair := models.NamespacePodPair{
			Namespace: firstString(flat, namespaceFields),
			Pod:       firstString(flat, podFields),
		}

		if pair.Namespace == "" && pair.Pod == "" {
			continue
		}

		index[spanID] = pair
	}

	return index
}

// flattenItem merges a nested "attributes" map into the top-level fields.
// Top-level values win on conflict.
func flattenItem(item map[string]interface{}) map[string]interface{} {
	attrs, ok := item["attributes"].(map[string]interface{})
	if !ok {
		return item
	}

	flat := make(map[string]interface{}, len(item)+len(attrs))

	for k, v := range attrs {
		flat[k] = v
	}

	for k, v := range item {
		flat[k] = v
	}

	return flat
}

func itemSpanID(item, flat map[string]interface{}) string {
	if ctx, ok := item["context"].(map[string]interface{}); ok {
		if id := firstString(ctx, spanIDFields); id != "" {
			return id
		}
	}

	return firstString(flat, spanIDFields)
}

func firstString(m map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}

	return ""
}

// simplifyTraceDetail flattens one fetched trace into simplified spans,
// applying the errors-only filter when requested.
func simplifyTraceDetail(
	traceID string,
	detail *TraceDetail,
	index map[string]models.NamespacePodPair,
	mode models.SpanMode,
) []models.Span {
	var spans []models.Span

	for i := range detail.Trace.Data {
		data := &detail.Trace.Data[i]

		if mode == models.SpanModeErrorsOnly && !traceHasError(data.Spans) {
			continue
		}

		for j := range data.Spans {
			raw := &data.Spans[j]

			tags := raw.TagMap()
			if mode == models.SpanModeErrorsOnly {
				tags = errorTagsOnly(tags)
				if len(tags) == 0 {
					continue
				}
			}

			span := models.Span{
				TraceID:       firstNonEmpty(raw.TraceID, data.TraceID, traceID),
				SpanID:        raw.SpanID,
				OperationName: raw.OperationName,
				StartTime:     raw.StartTime,
				Duration:      raw.Duration,
				Tags:          tags,
			}

			if pair, ok := index[raw.SpanID]; ok {
				span.Namespace = pair.Namespace
				span.Pod = pair.Pod
			}

			spans = append(spans, span)
		}
	}

	return spans
}

// traceHasError reports whether any span in the trace carries an error
// marker, either in its tags or in the fields of its log events.
func traceHasError(spans []RawSpan) bool {
	for i := range spans {
		if models.TagsIndicateError(spans[i].TagMap()) {
			return true
		}

		for _, event := range spans[i].Logs {
			for _, field := range event.Fields {
				if models.TagIndicatesError(field.Key, field.Value) {
					return true
				}
			}
		}
	}

	return false
}

// errorTagsOnly keeps only the tags whose value contains an error-like
// keyword. Key-based status markers such as error=true select traces but do
// not survive this pass on their own.
func errorTagsOnly(tags map[string]interface{}) map[string]interface{} {
	filtered := make(map[string]interface{}, len(tags))

	for k, v := range tags {
		if models.ValueLooksError(v) {
			filtered[k] = v
		}
	}

	return filtered
}
