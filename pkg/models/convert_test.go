package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEntryFromMap(t *testing.T) {
	entry, ok := LogEntryFromMap(map[string]interface{}{
		"message":   "OOM",
		"level":     "error",
		"namespace": "prod",
		"pod":       "svc-1",
		"timestamp": "2026-01-02T03:04:05Z",
	})
	require.True(t, ok)
	assert.Equal(t, "OOM", entry.Message)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "prod", entry.Namespace)
	assert.Equal(t, "svc-1", entry.Pod)
}

func TestLogEntryFromMapFallbackChain(t *testing.T) {
	// "message" wins over "line", "line" over "body".
	entry, ok := LogEntryFromMap(map[string]interface{}{
		"line": "from line",
		"body": "from body",
	})
	require.True(t, ok)
	assert.Equal(t, "from line", entry.Message)

	entry, ok = LogEntryFromMap(map[string]interface{}{
		"body":                      "from body",
		"severity":                  "warn",
		"kubernetes.namespace_name": "ns-a",
		"kubernetes.pod_name":       "pod-a",
	})
	require.True(t, ok)
	assert.Equal(t, "from body", entry.Message)
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "ns-a", entry.Namespace)
	assert.Equal(t, "pod-a", entry.Pod)
}

func TestLogEntryFromMapDiscardsEmptyMessage(t *testing.T) {
	_, ok := LogEntryFromMap(map[string]interface{}{"level": "ERROR"})
	assert.False(t, ok)

	_, ok = LogEntryFromMap(map[string]interface{}{"message": ""})
	assert.False(t, ok)

	_, ok = LogEntryFromMap(nil)
	assert.False(t, ok)
}

func TestLogEntryFromMapDefaultsUnknownLevel(t *testing.T) {
	entry, ok := LogEntryFromMap(map[string]interface{}{"message": "hi"})
	require.True(t, ok)
	assert.Equal(t, "UNKNOWN", entry.Level)
}

func TestSpanFromMapListTags(t *testing.T) {
	span, ok := SpanFromMap(map[string]interface{}{
		"traceID":       "abc123",
		"spanId":        "s1",
		"operationName": "GET /v1/items",
		"startTime":     float64(1700000000000),
		"duration":      float64(1234),
		"tags": []interface{}{
			map[string]interface{}{"key": "error", "value": "true"},
			map[string]interface{}{"key": "http.status_code", "value": float64(500)},
			map[string]interface{}{"value": "keyless is skipped"},
		},
	})
	require.True(t, ok)
	assert.Equal(t, "abc123", span.TraceID)
	assert.Equal(t, "s1", span.SpanID)
	assert.Equal(t, int64(1700000000000), span.StartTime)
	assert.Equal(t, int64(1234), span.Duration)
	assert.Equal(t, "true", span.Tags["error"])
	assert.Len(t, span.Tags, 2)
}

func TestSpanFromMapMapTags(t *testing.T) {
	span, ok := SpanFromMap(map[string]interface{}{
		"traceID": "abc",
		"tags":    map[string]interface{}{"otel.status_code": "ERROR"},
	})
	require.True(t, ok)
	assert.Equal(t, "ERROR", span.Tags["otel.status_code"])
}

func TestSpanFromMapRejectsNonSpan(t *testing.T) {
	_, ok := SpanFromMap(map[string]interface{}{"message": "not a span"})
	assert.False(t, ok)

	_, ok = SpanFromMap(nil)
	assert.False(t, ok)
}

func TestFlattenTagsUnknownShape(t *testing.T) {
	assert.Empty(t, FlattenTags("not tags"))
	assert.Empty(t, FlattenTags(nil))
}
