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

package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/models"
)

func vectorBody(samples ...string) string {
	result := ""
	for i, s := range samples {
		if i > 0 {
			result += ","
		}

		result += s
	}

	return `{"status":"success","data":{"resultType":"vector","result":[` + result + `]}}`
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewProvider(Config{
		URL:             srv.URL,
		Token:           "secret",
		RetryMaxElapsed: 10 * time.Millisecond,
	}, logger.NewTestLogger())
	require.NoError(t, err)

	return provider
}

func TestNewProviderNoURL(t *testing.T) {
	_, err := NewProvider(Config{}, logger.NewTestLogger())
	require.ErrorIs(t, err, errNoURL)
}

func TestExecuteInstantQueries(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		switch r.Form.Get("query") {
		case "up":
			fmt.Fprint(w, vectorBody(`{"metric":{},"value":[1700000000,"42"]}`))
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			fmt.Fprint(w, vectorBody())
		}
	})

	results := provider.ExecuteInstantQueries(context.Background(), map[string]string{
		"Up":      "up",
		"Broken":  "broken",
		"NoMatch": "absent_series",
	})

	// Failures and empty results both degrade to zero.
	assert.Equal(t, map[string]float64{"Up": 42, "Broken": 0, "NoMatch": 0}, results)
}

func TestExecuteRangeQueries(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		if r.Form.Get("query") == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		fmt.Fprint(w, `{"status":"success","data":{"resultType":"matrix","result":[`+
			`{"metric":{"pod":"svc-1"},"values":[[1700000000,"1"],[1700000030,"2"]]}]}}`)
	})

	end := time.Now()
	results := provider.ExecuteRangeQueries(context.Background(), map[string]string{
		"CPU":    "cpu_usage",
		"Broken": "broken",
	}, end.Add(-time.Hour), end, 30*time.Second)

	require.Len(t, results["CPU"], 1)
	assert.Len(t, results["CPU"][0].Values, 2)
	assert.Empty(t, results["Broken"])
}

func TestBuildPodIssueContext(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, podIssueQuery, r.Form.Get("query"))

		fmt.Fprint(w, vectorBody(
			`{"metric":{"namespace":"prod","pod":"svc-1"},"value":[1700000000,"1"]}`,
			`{"metric":{"namespace":"prod","pod":"svc-1"},"value":[1700000000,"1"]}`,
			`{"metric":{"namespace":"dev","pod":"db-0"},"value":[1700000000,"1"]}`,
		))
	})

	source := &recordingSource{result: "correlated context"}

	got := provider.BuildPodIssueContext(context.Background(), source)
	assert.Equal(t, "correlated context", got)
	assert.Equal(t, []models.NamespacePodPair{
		{Namespace: "prod", Pod: "svc-1"},
		{Namespace: "dev", Pod: "db-0"},
	}, source.pairs)
}

func TestBuildPodIssueContextDegrades(t *testing.T) {
	broken := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	source := &recordingSource{result: "never"}
	assert.Empty(t, broken.BuildPodIssueContext(context.Background(), source))
	assert.Nil(t, source.pairs)

	empty := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, vectorBody())
	})

	assert.Empty(t, empty.BuildPodIssueContext(context.Background(), source))
	assert.Empty(t, empty.BuildPodIssueContext(context.Background(), nil))
}

type recordingSource struct {
	pairs  []models.NamespacePodPair
	result string
}

func (s *recordingSource) BuildContext(_ context.Context, pairs []models.NamespacePodPair) string {
	s.pairs = pairs
	return s.result
}
