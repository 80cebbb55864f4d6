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
	"fmt"
	"strings"
)

// errorKeywords are the substrings that mark a tag value as error-like.
var errorKeywords = []string{"error", "exception", "fatal", "panic", "fail", "critical"}

// statusTagKeys are tag keys that carry an explicit error/status marker.
var statusTagKeys = map[string]struct{}{
	"error":            {},
	"span.status.code": {},
	"status.code":      {},
	"otel.status_code": {},
}

// ValueLooksError reports whether a tag value contains an error-like
// keyword.
func ValueLooksError(value interface{}) bool {
	s := strings.ToLower(stringify(value))

	for _, kw := range errorKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}

	return false
}

// TagIndicatesError reports whether a single tag marks its span as errored:
// either an explicit error/status tag with a truthy or error value, or any
// tag whose value contains an error-like keyword.
func TagIndicatesError(key string, value interface{}) bool {
	k := strings.ToLower(key)

	if _, ok := statusTagKeys[k]; ok {
		v := strings.ToLower(strings.TrimSpace(stringify(value)))

		if k == "error" && (v == "true" || v == "1" || v == "yes") {
			return true
		}

		if v == "error" || v == "2" || v == "status_code_error" {
			return true
		}
	}

	return ValueLooksError(value)
}

// TagsIndicateError reports whether any tag in the map marks the span as
// errored.
func TagsIndicateError(tags map[string]interface{}) bool {
	for k, v := range tags {
		if TagIndicatesError(k, v) {
			return true
		}
	}

	return false
}

// IsErrorLike reports whether the span looks errored based on its tags.
func (s *Span) IsErrorLike() bool {
	return TagsIndicateError(s.Tags)
}

func stringify(value interface{}) string {
	if value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	if b, ok := value.(bool); ok {
		if b {
			return "true"
		}

		return "false"
	}

	return fmt.Sprint(value)
}
