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

// Package metrics queries Prometheus/Thanos for anomaly signals and turns
// them into correlation targets. Query failures degrade to empty results so
// the analysis path never blocks on the metrics backend.
package metrics

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clusterlens/clusterlens/pkg/logger"
)

var errNoURL = errors.New("no prometheus URL configured")

const (
	defaultQueryConcurrency = 10
	defaultRetryMaxElapsed  = 15 * time.Second
)

// Config holds the connection settings for the metrics backend.
type Config struct {
	URL                string        `json:"url"`
	Token              string        `json:"token,omitempty"`
	Timeout            time.Duration `json:"timeout,omitempty"`
	InsecureSkipVerify bool          `json:"insecure_skip_verify,omitempty"`
	QueryConcurrency   int           `json:"query_concurrency,omitempty"`
	RetryMaxElapsed    time.Duration `json:"retry_max_elapsed,omitempty"`
}

// Provider executes PromQL against a Prometheus-compatible API.
type Provider struct {
	api         promv1.API
	concurrency int
	retryMax    time.Duration
	logger      zerolog.Logger
}

type bearerRoundTripper struct {
	token string
	next  http.RoundTripper
}

func (rt *bearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+rt.token)
	}

	return rt.next.RoundTrip(req)
}

// NewProvider creates a Provider from the given configuration.
func NewProvider(config Config, log logger.Logger) (*Provider, error) {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if config.URL == "" {
		return nil, errNoURL
	}

	inner := http.DefaultTransport
	if config.InsecureSkipVerify {
		inner = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // operator opt-in for clusters with self-signed certs
		}
	}

	client, err := api.NewClient(api.Config{
		Address:      config.URL,
		RoundTripper: &bearerRoundTripper{token: config.Token, next: inner},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus client: %w", err)
	}

	concurrency := config.QueryConcurrency
	if concurrency <= 0 {
		concurrency = defaultQueryConcurrency
	}

	retryMax := config.RetryMaxElapsed
	if retryMax <= 0 {
		retryMax = defaultRetryMaxElapsed
	}

	return &Provider{
		api:         promv1.NewAPI(client),
		concurrency: concurrency,
		retryMax:    retryMax,
		logger:      log.WithComponent("metrics"),
	}, nil
}

// query runs one instant query with exponential-backoff retries.
func (p *Provider) query(ctx context.Context, query string, ts time.Time) (model.Value, error) {
	operation := func() (model.Value, error) {
		value, warnings, err := p.api.Query(ctx, query, ts)
		if err != nil {
			return nil, err
		}

		for _, w := range warnings {
			p.logger.Debug().Str("query", query).Str("warning", w).Msg("Query warning")
		}

		return value, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(p.retryMax))
}

func (p *Provider) queryRange(ctx context.Context, query string, r promv1.Range) (model.Value, error) {
	operation := func() (model.Value, error) {
		value, warnings, err := p.api.QueryRange(ctx, query, r)
		if err != nil {
			return nil, err
		}

		for _, w := range warnings {
			p.logger.Debug().Str("query", query).Str("warning", w).Msg("Range query warning")
		}

		return value, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(p.retryMax))
}

// ExecuteInstantQueries runs the labelled instant queries in parallel and
// returns one scalar per label: the first sample's value, or 0 when the
// query failed or returned nothing.
func (p *Provider) ExecuteInstantQueries(ctx context.Context, queries map[string]string) map[string]float64 {
	results := make(map[string]float64, len(queries))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	now := time.Now()

	for label, query := range queries {
		label, query := label, query

		g.Go(func() error {
			value := 0.0

			raw, err := p.query(gctx, query, now)
			if err != nil {
				p.logger.Warn().Err(err).Str("label", label).Msg("Instant query failed")
			} else {
				value = firstSampleValue(raw)
			}

			mu.Lock()
			results[label] = value
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// ExecuteRangeQueries runs the labelled range queries in parallel. A failed
// query yields an empty series for its label rather than an error.
func (p *Provider) ExecuteRangeQueries(
	ctx context.Context,
	queries map[string]string,
	start, end time.Time,
	step time.Duration,
) map[string]model.Matrix {
	results := make(map[string]model.Matrix, len(queries))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	r := promv1.Range{Start: start, End: end, Step: step}

	for label, query := range queries {
		label, query := label, query

		g.Go(func() error {
			series := model.Matrix{}

			raw, err := p.queryRange(gctx, query, r)
			if err != nil {
				p.logger.Warn().Err(err).Str("label", label).Msg("Range query failed")
			} else if matrix, ok := raw.(model.Matrix); ok {
				series = matrix
			}

			mu.Lock()
			results[label] = series
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	return results
}

func firstSampleValue(value model.Value) float64 {
	switch v := value.(type) {
	case model.Vector:
		if len(v) > 0 {
			return float64(v[0].Value)
		}
	case *model.Scalar:
		if v != nil {
			return float64(v.Value)
		}
	}

	return 0
}
