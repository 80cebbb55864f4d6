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

import "encoding/json"

// RawValueKind tags the JSON shape a correlation backend returned.
type RawValueKind int

const (
	// RawKindEmpty marks a zero RawValue (no payload).
	RawKindEmpty RawValueKind = iota
	// RawKindList marks a JSON array payload.
	RawKindList
	// RawKindObject marks a JSON object payload.
	RawKindObject
	// RawKindScalar marks any other JSON payload (string, number, bool, null).
	RawKindScalar
)

// RawValue is the tagged union for a domain-query result. Backends return
// either a list of objects, an object with a "data" list, or a single
// object; every consumer goes through Items/Flatten instead of re-checking
// the shape.
type RawValue struct {
	Kind   RawValueKind
	List   []interface{}
	Object map[string]interface{}
	Scalar interface{}
}

// UnmarshalJSON decodes any JSON payload into the matching union arm. It
// never fails on unexpected shapes; truly malformed JSON is the only error.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	v.Set(decoded)

	return nil
}

// Set populates the union from an already-decoded JSON value.
func (v *RawValue) Set(decoded interface{}) {
	*v = RawValue{}

	switch val := decoded.(type) {
	case nil:
		v.Kind = RawKindEmpty
	case []interface{}:
		v.Kind = RawKindList
		v.List = val
	case map[string]interface{}:
		v.Kind = RawKindObject
		v.Object = val
	default:
		v.Kind = RawKindScalar
		v.Scalar = val
	}
}

// MarshalJSON re-encodes whichever arm is populated.
func (v RawValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case RawKindList:
		return json.Marshal(v.List)
	case RawKindObject:
		return json.Marshal(v.Object)
	case RawKindScalar:
		return json.Marshal(v.Scalar)
	case RawKindEmpty:
		return []byte("null"), nil
	default:
		return []byte("null"), nil
	}
}

// dataList returns the Object's "data" field when it is a list.
func (v RawValue) dataList() ([]interface{}, bool) {
	if v.Kind != RawKindObject {
		return nil, false
	}

	data, ok := v.Object["data"].([]interface{})

	return data, ok
}

// Items returns the canonical object view: the map elements of a list, the
// map elements of an object's "data" list, or the object itself as a
// singleton. Non-object elements are skipped.
func (v RawValue) Items() []map[string]interface{} {
	switch v.Kind {
	case RawKindList:
		return mapElements(v.List)
	case RawKindObject:
		if data, ok := v.dataList(); ok {
			return mapElements(data)
		}

		return []map[string]interface{}{v.Object}
	case RawKindEmpty, RawKindScalar:
		return nil
	default:
		return nil
	}
}

// ListItems is like Items but without the singleton fallback: an object
// lacking a "data" list yields nothing. Used where a bare object is not a
// meaningful item set, such as the span enrichment index.
func (v RawValue) ListItems() []map[string]interface{} {
	switch v.Kind {
	case RawKindList:
		return mapElements(v.List)
	case RawKindObject:
		if data, ok := v.dataList(); ok {
			return mapElements(data)
		}

		return nil
	case RawKindEmpty, RawKindScalar:
		return nil
	default:
		return nil
	}
}

// Flatten returns the raw elements for fallback bucket aggregation: a list's
// elements, an object's "data" elements, or the payload itself as a single
// item. An empty value flattens to nothing.
func (v RawValue) Flatten() []interface{} {
	switch v.Kind {
	case RawKindList:
		return v.List
	case RawKindObject:
		if data, ok := v.dataList(); ok {
			return data
		}

		return []interface{}{v.Object}
	case RawKindScalar:
		return []interface{}{v.Scalar}
	case RawKindEmpty:
		return nil
	default:
		return nil
	}
}

func mapElements(list []interface{}) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(list))

	for _, el := range list {
		if m, ok := el.(map[string]interface{}); ok {
			items = append(items, m)
		}
	}

	return items
}
