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

import "encoding/json"

// TraceDetail wraps a fetched trace payload with a success marker so
// callers can treat parse failures and partial fetches uniformly.
type TraceDetail struct {
	Success bool         `json:"success"`
	Trace   TracePayload `json:"trace"`
}

// TracePayload is the Jaeger-compatible response body for a single trace.
type TracePayload struct {
	Data []TraceData `json:"data"`
}

// TraceData holds one trace's spans. Tempo and Jaeger disagree on field
// casing, so decoding tolerates both.
type TraceData struct {
	TraceID string
	Spans   []RawSpan
}

func (d *TraceData) UnmarshalJSON(data []byte) error {
	var aux struct {
		TraceID    string    `json:"traceID"`
		TraceIDAlt string    `json:"traceId"`
		Spans      []RawSpan `json:"spans"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.TraceID = aux.TraceID
	if d.TraceID == "" {
		d.TraceID = aux.TraceIDAlt
	}

	d.Spans = aux.Spans

	return nil
}

// RawSpan is a single span as returned by the trace API, before tag
// flattening and enrichment.
type RawSpan struct {
	TraceID       string
	SpanID        string
	OperationName string
	StartTime     int64
	Duration      int64
	Tags          []KeyValue
	Logs          []SpanLog
}

func (s *RawSpan) UnmarshalJSON(data []byte) error {
	var aux struct {
		TraceID          string     `json:"traceID"`
		TraceIDAlt       string     `json:"traceId"`
		SpanID           string     `json:"spanID"`
		SpanIDAlt        string     `json:"spanId"`
		OperationName    string     `json:"operationName"`
		OperationNameAlt string     `json:"operation"`
		StartTime        int64      `json:"startTime"`
		Duration         int64      `json:"duration"`
		Tags             []KeyValue `json:"tags"`
		Logs             []SpanLog  `json:"logs"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.TraceID = firstNonEmpty(aux.TraceID, aux.TraceIDAlt)
	s.SpanID = firstNonEmpty(aux.SpanID, aux.SpanIDAlt)
	s.OperationName = firstNonEmpty(aux.OperationName, aux.OperationNameAlt)
	s.StartTime = aux.StartTime
	s.Duration = aux.Duration
	s.Tags = aux.Tags
	s.Logs = aux.Logs

	return nil
}

// KeyValue is a Jaeger-style tag entry.
type KeyValue struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// SpanLog is a span log event carrying its own tag fields.
type SpanLog struct {
	Timestamp int64      `json:"timestamp"`
	Fields    []KeyValue `json:"fields"`
}

// TagMap flattens the span's tag list into a map. Later duplicates win.
func (s *RawSpan) TagMap() map[string]interface{} {
	tags := make(map[string]interface{}, len(s.Tags))

	for _, kv := range s.Tags {
		if kv.Key == "" {
			continue
		}

		tags[kv.Key] = kv.Value
	}

	return tags
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
