package korrel8r

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{URL: srv.URL, Token: "tok", Timeout: 2 * time.Second}, logger.NewTestLogger())
}

func TestQueryObjectsList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1alpha1/objects", r.URL.Path)
		assert.Equal(t, `k8s:Pod.v1:{"namespace":"prod"}`, r.URL.Query().Get("query"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[{"message":"OOM"}]`))
	})

	raw, err := client.QueryObjects(context.Background(), `k8s:Pod.v1:{"namespace":"prod"}`)
	require.NoError(t, err)
	assert.Equal(t, models.RawKindList, raw.Kind)
	assert.Len(t, raw.Items(), 1)
}

func TestQueryObjectsServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.QueryObjects(context.Background(), "loki:log:{}")
	require.ErrorIs(t, err, errUnexpectedStatusCode)
}

func TestQueryObjectsNoURL(t *testing.T) {
	client := NewClient(Config{}, logger.NewTestLogger())

	_, err := client.QueryObjects(context.Background(), "loki:log:{}")
	require.ErrorIs(t, err, errNoURL)
}

func TestListGoals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1alpha1/lists/goals", r.URL.Path)

		var payload struct {
			Goals []string `json:"goals"`
			Start Start    `json:"start"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []string{"log:application", "trace:span"}, payload.Goals)
		assert.Equal(t, []string{`k8s:Pod.v1:{"namespace":"prod"}`}, payload.Start.Queries)

		_, _ = w.Write([]byte(`[
			{"class":"log:application","queries":[{"query":"loki:log:{}","count":3}]},
			{"class":"trace:span","queries":[{"query":"trace:span:{}","count":1}]}
		]`))
	})

	goals, err := client.ListGoals(context.Background(),
		[]string{"log:application", "trace:span"},
		Start{Queries: []string{`k8s:Pod.v1:{"namespace":"prod"}`}})
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "log:application", goals[0].GoalName())
	assert.Equal(t, "loki:log:{}", goals[0].Queries[0].Query)
}

func TestFindRelatedFillsMissingTargets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"loki/log":[{"message":"x"}]}}`))
	})

	resp, err := client.FindRelated(context.Background(), &FindRelatedRequest{
		Start:   map[string]interface{}{"class": "prom/alert"},
		Targets: []string{"loki/log", "tempo/trace", "k8s/event"},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results["loki/log"], 1)
	assert.Empty(t, resp.Results["tempo/trace"])
	assert.Empty(t, resp.Results["k8s/event"])
}

func TestSimplifyLogObjects(t *testing.T) {
	client := NewClient(Config{URL: "http://unused"}, logger.NewTestLogger())

	raw := rawFromJSON(t, `[
		{"message":"disk full","level":"error","namespace":"prod","pod":"db-0"},
		{"level":"info"},
		{"body":"fallback body","severity":"warn"}
	]`)

	entries := client.SimplifyLogObjects(raw)
	require.Len(t, entries, 2)
	assert.Equal(t, "disk full", entries[0].Message)
	assert.Equal(t, "ERROR", entries[0].Level)
	assert.Equal(t, "fallback body", entries[1].Message)
	assert.Equal(t, "WARN", entries[1].Level)
}

func TestSimplifyLogObjectsNestedAttributes(t *testing.T) {
	client := NewClient(Config{URL: "http://unused"}, logger.NewTestLogger())

	raw := rawFromJSON(t, `{"data":[
		{"message":"crash","attributes":{"kubernetes.namespace_name":"dev","kubernetes.pod_name":"api-1","level":"FATAL"}}
	]}`)

	entries := client.SimplifyLogObjects(raw)
	require.Len(t, entries, 1)
	assert.Equal(t, "dev", entries[0].Namespace)
	assert.Equal(t, "api-1", entries[0].Pod)
	assert.Equal(t, "FATAL", entries[0].Level)
}

func TestSimplifyLogObjectsNonCollection(t *testing.T) {
	client := NewClient(Config{URL: "http://unused"}, logger.NewTestLogger())

	// A bare object without a data list is not a log collection; callers
	// must take the fallback aggregation path.
	assert.Nil(t, client.SimplifyLogObjects(rawFromJSON(t, `{"message":"solo"}`)))
	assert.Nil(t, client.SimplifyLogObjects(rawFromJSON(t, `"scalar"`)))

	// An empty list is still a collection: non-nil, zero entries.
	entries := client.SimplifyLogObjects(rawFromJSON(t, `[]`))
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func rawFromJSON(t *testing.T, payload string) models.RawValue {
	t.Helper()

	var raw models.RawValue
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	return raw
}
