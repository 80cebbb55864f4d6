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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/clusterlens/clusterlens/pkg/models"
)

// formatValue renders a tag or field value for a context line, quoting it
// when it contains whitespace or quotes so lines stay machine-splittable.
func formatValue(value interface{}) string {
	s := stringifyValue(value)

	if strings.ContainsAny(s, "\"") || strings.IndexFunc(s, isSpaceRune) >= 0 {
		return strconv.Quote(s)
	}

	return s
}

func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func stringifyValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}

		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// renderLogLine renders one normalized log entry as a context line. The
// message rides at the end unquoted.
func renderLogLine(entry models.LogEntry) string {
	return fmt.Sprintf("- namespace=%s pod=%s level=%s %s",
		formatValue(entry.Namespace),
		formatValue(entry.Pod),
		strings.ToUpper(entry.Level),
		entry.Message,
	)
}

// renderSpanLine renders one simplified span as a context line: the fixed
// identity fields first, then the tags in sorted key order.
func renderSpanLine(span models.Span) string {
	var b strings.Builder

	b.WriteString("- trace")
	b.WriteString(" traceID=" + formatValue(span.TraceID))
	b.WriteString(" spanID=" + formatValue(span.SpanID))
	b.WriteString(" operationName=" + formatValue(span.OperationName))
	b.WriteString(" startTime=" + strconv.FormatInt(span.StartTime, 10))
	b.WriteString(" duration=" + strconv.FormatInt(span.Duration, 10))

	keys := make([]string, 0, len(span.Tags))
	for k := range span.Tags {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		b.WriteString(" " + k + "=" + formatValue(span.Tags[k]))
	}

	return b.String()
}
