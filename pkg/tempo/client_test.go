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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clusterlens/clusterlens/pkg/logger"
)

const tracePayloadJSON = `{
	"data": [
		{
			"traceId": "abc123",
			"spans": [
				{
					"traceId": "abc123",
					"spanId": "s1",
					"operation": "GET /items",
					"startTime": 1700000000000000,
					"duration": 2500,
					"tags": [
						{"key": "http.status_code", "value": 500},
						{"key": "error", "value": true}
					],
					"logs": [
						{"timestamp": 1700000000000100, "fields": [{"key": "event", "value": "exception"}]}
					]
				},
				{
					"traceID": "abc123",
					"spanID": "s2",
					"operationName": "db.query",
					"startTime": 1700000000000200,
					"duration": 800,
					"tags": [{"key": "db.system", "value": "postgresql"}]
				}
			]
		}
	]
}`

func TestGetTraceDetails(t *testing.T) {
	var gotPath, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(tracePayloadJSON))
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL, Token: "secret", TenantID: "dev"}, logger.NewTestLogger())

	detail, err := client.GetTraceDetails(context.Background(), "abc123")
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "/api/traces/v1/dev/api/traces/abc123", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.True(t, detail.Success)

	require.Len(t, detail.Trace.Data, 1)

	data := detail.Trace.Data[0]
	assert.Equal(t, "abc123", data.TraceID)
	require.Len(t, data.Spans, 2)

	// Alternate field casings must decode to the same struct fields.
	assert.Equal(t, "s1", data.Spans[0].SpanID)
	assert.Equal(t, "GET /items", data.Spans[0].OperationName)
	assert.Equal(t, "s2", data.Spans[1].SpanID)
	assert.Equal(t, "db.query", data.Spans[1].OperationName)
	assert.Equal(t, int64(2500), data.Spans[0].Duration)
	require.Len(t, data.Spans[0].Logs, 1)
	assert.Equal(t, "event", data.Spans[0].Logs[0].Fields[0].Key)
}

func TestGetTraceDetailsNoTenant(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL}, logger.NewTestLogger())

	detail, err := client.GetTraceDetails(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "/api/traces/abc123", gotPath)
	assert.Empty(t, detail.Trace.Data)
}

func TestGetTraceDetailsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL}, logger.NewTestLogger())

	_, err := client.GetTraceDetails(context.Background(), "missing")
	require.ErrorIs(t, err, errUnexpectedStatusCode)
}

func TestGetTraceDetailsValidation(t *testing.T) {
	client := NewClient(Config{}, logger.NewTestLogger())

	_, err := client.GetTraceDetails(context.Background(), "abc123")
	require.ErrorIs(t, err, errNoURL)

	client = NewClient(Config{URL: "http://tempo.example"}, logger.NewTestLogger())

	_, err = client.GetTraceDetails(context.Background(), "")
	require.ErrorIs(t, err, errEmptyTraceID)
}

func TestTagMapSkipsEmptyKeys(t *testing.T) {
	span := RawSpan{Tags: []KeyValue{
		{Key: "error", Value: true},
		{Key: "", Value: "dropped"},
	}}

	tags := span.TagMap()
	assert.Equal(t, map[string]interface{}{"error": true}, tags)
}
