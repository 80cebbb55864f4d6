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

package korrel8r

import "github.com/clusterlens/clusterlens/pkg/models"

// SimplifyLogObjects converts a raw log-query result into normalized log
// entries. It returns nil, not an empty slice, when the payload is not a
// recognizable collection (a list or an object with a "data" list), so
// callers can fall back to raw aggregation. Items without a message are
// discarded.
func (c *Client) SimplifyLogObjects(raw models.RawValue) []models.LogEntry {
	if raw.Kind != models.RawKindList && raw.Kind != models.RawKindObject {
		return nil
	}

	items := raw.ListItems()
	if items == nil {
		return nil
	}

	entries := make([]models.LogEntry, 0, len(items))

	for _, item := range items {
		// Log attributes sometimes arrive nested one level down.
		source := item
		if attrs, ok := item["attributes"].(map[string]interface{}); ok {
			source = mergeAttributes(item, attrs)
		}

		entry, ok := models.LogEntryFromMap(source)
		if !ok {
			continue
		}

		entries = append(entries, entry)
	}

	return entries
}

// mergeAttributes overlays nested attributes onto the item without letting
// them shadow top-level fields.
func mergeAttributes(item, attrs map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(item)+len(attrs))

	for k, v := range attrs {
		merged[k] = v
	}

	for k, v := range item {
		if k == "attributes" {
			continue
		}

		merged[k] = v
	}

	return merged
}
