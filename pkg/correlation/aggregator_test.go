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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/clusterlens/clusterlens/pkg/korrel8r"
	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/models"
)

var errBackendDown = errors.New("backend down")

func rawFromJSON(t *testing.T, payload string) models.RawValue {
	t.Helper()

	var raw models.RawValue
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	return raw
}

func TestExtractTraceIDs(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{
			name:    "list shape",
			payload: `[{"traceID": "a"}, {"traceId": "b"}, {"id": "c"}]`,
			want:    []string{"a", "b", "c"},
		},
		{
			name:    "dict with data",
			payload: `{"data": [{"traceID": "a"}, {"traceID": "b"}]}`,
			want:    []string{"a", "b"},
		},
		{
			name:    "singleton object",
			payload: `{"traceID": "only"}`,
			want:    []string{"only"},
		},
		{
			name:    "dedup first seen order",
			payload: `[{"traceID": "a"}, {"traceID": "b"}, {"traceId": "a"}]`,
			want:    []string{"a", "b"},
		},
		{
			name:    "nested context wins",
			payload: `[{"context": {"traceId": "ctx"}, "traceID": "outer"}]`,
			want:    []string{"ctx"},
		},
		{
			name:    "non-string and empty excluded",
			payload: `[{"traceID": 42}, {"traceID": ""}, {"traceID": "ok"}]`,
			want:    []string{"ok"},
		},
		{
			name:    "scalar yields nothing",
			payload: `"not a collection"`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTraceIDs(rawFromJSON(t, tt.payload))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBucketForGoal(t *testing.T) {
	assert.Equal(t, bucketTraces, bucketForGoal("trace:span"))
	assert.Equal(t, bucketLogs, bucketForGoal("log:application"))
	assert.Equal(t, bucketLogs, bucketForGoal("metric:foo"))
	assert.Equal(t, bucketLogs, bucketForGoal(""))
	assert.Equal(t, bucketTraces, bucketForGoal("TRACE:span"))
}

func TestFetchGoalQueryObjectsRouting(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockSignalBackend(ctrl)
	fetcher := NewMockSpanFetcher(ctrl)

	goals := []string{"log:application", "trace:span", "metric:foo"}
	logRaw := rawFromJSON(t, `[{"message": "boom", "level": "error"}]`)
	traceRaw := rawFromJSON(t, `[{"traceID": "t1"}]`)
	metricRaw := rawFromJSON(t, `[{"value": 1}]`)

	backend.EXPECT().ListGoals(gomock.Any(), goals, korrel8r.Start{Queries: []string{"start"}}).Return([]models.GoalResult{
		{Goal: "log:application", Queries: []models.GoalQuery{{Query: "q-log"}}},
		{Goal: "trace:span", Queries: []models.GoalQuery{{Query: "q-trace"}}},
		{Goal: "metric:foo", Queries: []models.GoalQuery{{Query: "q-metric"}}},
	}, nil)

	backend.EXPECT().QueryObjects(gomock.Any(), "q-log").Return(logRaw, nil)
	backend.EXPECT().QueryObjects(gomock.Any(), "q-trace").Return(traceRaw, nil)
	backend.EXPECT().QueryObjects(gomock.Any(), "q-metric").Return(metricRaw, nil)

	backend.EXPECT().SimplifyLogObjects(logRaw).Return([]models.LogEntry{
		{Message: "boom", Level: "ERROR"},
	})
	// The simplifier does not recognize metric objects, so they fall back
	// into the logs bucket raw. Unrecognized domains default to logs.
	backend.EXPECT().SimplifyLogObjects(metricRaw).Return(nil)

	fetcher.EXPECT().FetchSpans(gomock.Any(), []string{"t1"}, traceRaw, models.SpanModeAll).Return([]models.Span{
		{TraceID: "t1", SpanID: "s1"},
	})

	agg := NewAggregator(backend, fetcher, logger.NewTestLogger())
	result := agg.FetchGoalQueryObjects(context.Background(), goals, "start")

	require.Len(t, result.Logs, 2)
	assert.Equal(t, models.LogEntry{Message: "boom", Level: "ERROR"}, result.Logs[0])
	assert.Equal(t, map[string]interface{}{"value": float64(1)}, result.Logs[1])

	require.Len(t, result.Traces, 1)
	assert.Equal(t, models.Span{TraceID: "t1", SpanID: "s1"}, result.Traces[0])
}

func TestFetchGoalQueryObjectsTraceDedup(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockSignalBackend(ctrl)
	fetcher := NewMockSpanFetcher(ctrl)

	goals := []string{"trace:span"}
	firstRaw := rawFromJSON(t, `[{"traceID": "t1"}, {"traceID": "t2"}]`)
	secondRaw := rawFromJSON(t, `[{"traceID": "t2"}, {"traceID": "t3"}]`)

	backend.EXPECT().ListGoals(gomock.Any(), goals, gomock.Any()).Return([]models.GoalResult{
		{Goal: "trace:span", Queries: []models.GoalQuery{{Query: "q1"}, {Query: "q2"}}},
	}, nil)

	backend.EXPECT().QueryObjects(gomock.Any(), "q1").Return(firstRaw, nil)
	backend.EXPECT().QueryObjects(gomock.Any(), "q2").Return(secondRaw, nil)

	// t2 was already fetched by the first query, so the second fetch
	// receives only the genuinely new ID.
	fetcher.EXPECT().FetchSpans(gomock.Any(), []string{"t1", "t2"}, firstRaw, models.SpanModeAll).Return(nil)
	fetcher.EXPECT().FetchSpans(gomock.Any(), []string{"t3"}, secondRaw, models.SpanModeAll).Return(nil)

	agg := NewAggregator(backend, fetcher, logger.NewTestLogger())
	result := agg.FetchGoalQueryObjects(context.Background(), goals, "start")

	assert.Empty(t, result.Traces)
	assert.Empty(t, result.Logs)
}

func TestFetchGoalQueryObjectsPartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockSignalBackend(ctrl)
	fetcher := NewMockSpanFetcher(ctrl)

	goals := []string{"log:application"}
	okRaw := rawFromJSON(t, `[{"message": "still here"}]`)

	backend.EXPECT().ListGoals(gomock.Any(), goals, gomock.Any()).Return([]models.GoalResult{
		{Goal: "log:application", Queries: []models.GoalQuery{{Query: "q-bad"}, {Query: "q-good"}}},
	}, nil)

	backend.EXPECT().QueryObjects(gomock.Any(), "q-bad").Return(models.RawValue{}, errBackendDown)
	backend.EXPECT().QueryObjects(gomock.Any(), "q-good").Return(okRaw, nil)
	backend.EXPECT().SimplifyLogObjects(okRaw).Return([]models.LogEntry{{Message: "still here", Level: "UNKNOWN"}})

	agg := NewAggregator(backend, fetcher, logger.NewTestLogger())
	result := agg.FetchGoalQueryObjects(context.Background(), goals, "start")

	require.Len(t, result.Logs, 1)
}

func TestFetchGoalQueryObjectsGoalResolutionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockSignalBackend(ctrl)
	fetcher := NewMockSpanFetcher(ctrl)

	backend.EXPECT().ListGoals(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errBackendDown)

	agg := NewAggregator(backend, fetcher, logger.NewTestLogger())
	result := agg.FetchGoalQueryObjects(context.Background(), []string{"log:application"}, "start")

	// Both buckets are present even when resolution failed outright.
	assert.NotNil(t, result.Logs)
	assert.NotNil(t, result.Traces)
	assert.Empty(t, result.Logs)
	assert.Empty(t, result.Traces)
}

func TestFetchGoalQueryObjectsPositionalGoalName(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockSignalBackend(ctrl)
	fetcher := NewMockSpanFetcher(ctrl)

	goals := []string{"trace:span"}
	traceRaw := rawFromJSON(t, `[{"traceID": "t1"}]`)

	// The backend omits the goal name entirely; the positional fallback to
	// goals[0] must still route the query to the traces bucket.
	backend.EXPECT().ListGoals(gomock.Any(), goals, gomock.Any()).Return([]models.GoalResult{
		{Queries: []models.GoalQuery{{Query: "q1"}}},
	}, nil)

	backend.EXPECT().QueryObjects(gomock.Any(), "q1").Return(traceRaw, nil)
	fetcher.EXPECT().FetchSpans(gomock.Any(), []string{"t1"}, traceRaw, models.SpanModeAll).Return(nil)

	agg := NewAggregator(backend, fetcher, logger.NewTestLogger())
	agg.FetchGoalQueryObjects(context.Background(), goals, "start")
}

func TestFetchGoalQueryObjectsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockSignalBackend(ctrl)
	fetcher := NewMockSpanFetcher(ctrl)

	goals := []string{"trace:span"}
	traceRaw := rawFromJSON(t, `[{"traceID": "t1"}]`)
	span := models.Span{TraceID: "t1", SpanID: "s1"}

	backend.EXPECT().ListGoals(gomock.Any(), goals, gomock.Any()).Return([]models.GoalResult{
		{Goal: "trace:span", Queries: []models.GoalQuery{{Query: "q1"}}},
	}, nil).Times(2)

	backend.EXPECT().QueryObjects(gomock.Any(), "q1").Return(traceRaw, nil).Times(2)

	// The seen-trace-ID set is per call: a second top-level call fetches
	// the same trace again.
	fetcher.EXPECT().FetchSpans(gomock.Any(), []string{"t1"}, traceRaw, models.SpanModeAll).
		Return([]models.Span{span}).Times(2)

	agg := NewAggregator(backend, fetcher, logger.NewTestLogger())

	first := agg.FetchGoalQueryObjects(context.Background(), goals, "start")
	second := agg.FetchGoalQueryObjects(context.Background(), goals, "start")

	assert.Equal(t, first, second)
	require.Len(t, second.Traces, 1)
}

func TestFetchGoalQueryErrorObjectsMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := NewMockSignalBackend(ctrl)
	fetcher := NewMockSpanFetcher(ctrl)

	goals := []string{"trace:span"}
	traceRaw := rawFromJSON(t, `[{"traceID": "t1"}]`)

	backend.EXPECT().ListGoals(gomock.Any(), goals, gomock.Any()).Return([]models.GoalResult{
		{Goal: "trace:span", Queries: []models.GoalQuery{{Query: "q1"}}},
	}, nil)

	backend.EXPECT().QueryObjects(gomock.Any(), "q1").Return(traceRaw, nil)
	fetcher.EXPECT().FetchSpans(gomock.Any(), []string{"t1"}, traceRaw, models.SpanModeErrorsOnly).Return(nil)

	agg := NewAggregator(backend, fetcher, logger.NewTestLogger())
	agg.FetchGoalQueryErrorObjects(context.Background(), goals, "start")
}
