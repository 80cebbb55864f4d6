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

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field fallback chains. Upstream producers are inconsistent in naming, so
// the lookup order is fixed and must not be reordered.
var (
	logMessageFields   = []string{"message", "line", "body"}
	logLevelFields     = []string{"level", "severity"}
	logNamespaceFields = []string{"namespace", "kubernetes.namespace_name", "k8s.namespace.name"}
	logPodFields       = []string{"pod", "kubernetes.pod_name", "k8s.pod.name"}
	logTimestampFields = []string{"timestamp", "ts", "@timestamp"}
)

// LogEntryFromMap coerces a raw correlation object into a LogEntry. The
// second return value is false when the object carries no message, in which
// case the entry must be discarded.
func LogEntryFromMap(obj map[string]interface{}) (LogEntry, bool) {
	if obj == nil {
		return LogEntry{}, false
	}

	message := firstStringField(obj, logMessageFields)
	if message == "" {
		return LogEntry{}, false
	}

	level := strings.ToUpper(looseStringField(obj, logLevelFields))
	if level == "" {
		level = "UNKNOWN"
	}

	return LogEntry{
		Message:   message,
		Level:     level,
		Namespace: firstStringField(obj, logNamespaceFields),
		Pod:       firstStringField(obj, logPodFields),
		Timestamp: looseStringField(obj, logTimestampFields),
	}, true
}

// SpanFromMap coerces a raw bucket item into a Span. It accepts both the
// normalized shape (tags already a map) and backend-shaped objects (tags as
// a {key,value} list). The second return value is false for non-span shapes.
func SpanFromMap(obj map[string]interface{}) (Span, bool) {
	if obj == nil {
		return Span{}, false
	}

	span := Span{
		TraceID:       firstStringField(obj, []string{"traceID", "traceId"}),
		SpanID:        firstStringField(obj, []string{"spanID", "spanId"}),
		OperationName: firstStringField(obj, []string{"operationName", "operation"}),
		StartTime:     int64Field(obj, "startTime"),
		Duration:      int64Field(obj, "duration"),
		Namespace:     firstStringField(obj, []string{"namespace"}),
		Pod:           firstStringField(obj, []string{"pod"}),
		Tags:          FlattenTags(obj["tags"]),
	}

	if span.TraceID == "" && span.SpanID == "" {
		return Span{}, false
	}

	return span, true
}

// FlattenTags converts a tag payload into a flat map. Maps pass through;
// {key,value} lists are flattened; anything else yields an empty map.
func FlattenTags(raw interface{}) map[string]interface{} {
	tags := make(map[string]interface{})

	switch val := raw.(type) {
	case map[string]interface{}:
		for k, v := range val {
			tags[k] = v
		}
	case []interface{}:
		for _, el := range val {
			kv, ok := el.(map[string]interface{})
			if !ok {
				continue
			}

			key, ok := kv["key"].(string)
			if !ok || key == "" {
				continue
			}

			tags[key] = kv["value"]
		}
	}

	return tags
}

// firstStringField walks the fallback chain and returns the first non-empty
// string-typed value.
func firstStringField(obj map[string]interface{}, fields []string) string {
	for _, field := range fields {
		if s, ok := obj[field].(string); ok && s != "" {
			return s
		}
	}

	return ""
}

// looseStringField is like firstStringField but stringifies non-string
// values instead of skipping them.
func looseStringField(obj map[string]interface{}, fields []string) string {
	for _, field := range fields {
		val, ok := obj[field]
		if !ok || val == nil {
			continue
		}

		if s, isStr := val.(string); isStr {
			if s != "" {
				return s
			}

			continue
		}

		return fmt.Sprint(val)
	}

	return ""
}

// int64Field coerces the common JSON numeric encodings to int64, defaulting
// to zero for anything unparseable.
func int64Field(obj map[string]interface{}, field string) int64 {
	switch val := obj[field].(type) {
	case float64:
		return int64(val)
	case int64:
		return val
	case int:
		return int64(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}

	return 0
}
