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

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/clusterlens/clusterlens/pkg/config"
	"github.com/clusterlens/clusterlens/pkg/correlation"
	"github.com/clusterlens/clusterlens/pkg/korrel8r"
	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/mcp"
	"github.com/clusterlens/clusterlens/pkg/metrics"
	"github.com/clusterlens/clusterlens/pkg/modelconfig"
	"github.com/clusterlens/clusterlens/pkg/models"
	"github.com/clusterlens/clusterlens/pkg/tempo"
	"github.com/clusterlens/clusterlens/pkg/version"
)

// noopFetcher stands in for the trace fetcher when Tempo is unconfigured;
// trace queries then contribute nothing to the traces bucket.
type noopFetcher struct{}

func (noopFetcher) FetchSpans(context.Context, []string, models.RawValue, models.SpanMode) []models.Span {
	return nil
}

// podIssueAdapter binds the metrics provider to the context builder for the
// pod-issue tool.
type podIssueAdapter struct {
	provider *metrics.Provider
	source   metrics.ContextSource
}

func (a *podIssueAdapter) BuildPodIssueContext(ctx context.Context) string {
	return a.provider.BuildPodIssueContext(ctx, a.source)
}

func main() {
	configPath := flag.String("config", "/etc/clusterlens/clusterlens.json", "Path to config file")
	flag.Parse()

	ctx := context.Background()
	cfgLoader := config.New(nil)

	var cfg mcp.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logger.DefaultConfig()
	}

	appLogger, err := logger.New(logConfig)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	deps := buildDeps(ctx, &cfg, appLogger)

	srv := mcp.NewServer("clusterlens", version.GetVersion(), deps, appLogger)

	switch cfg.Transport {
	case mcp.TransportHTTP:
		appLogger.Info().Str("addr", cfg.ListenAddr).Msg("Serving MCP over HTTP")
		err = srv.ServeHTTP(cfg.ListenAddr)
	default:
		appLogger.Info().Msg("Serving MCP over stdio")
		err = srv.ServeStdio()
	}

	if err != nil {
		appLogger.Fatal().Err(err).Msg("MCP server failed")
	}
}

// buildDeps wires the tool dependencies. Optional backends (Tempo,
// Prometheus, in-cluster model catalog) are skipped when unconfigured or
// unavailable; the correlation path still works with what remains.
func buildDeps(ctx context.Context, cfg *mcp.Config, appLogger logger.Logger) mcp.Deps {
	signalClient := korrel8r.NewClient(cfg.Korrel8r, appLogger)

	var fetcher correlation.SpanFetcher
	if cfg.Tempo.URL != "" {
		traceClient := tempo.NewClient(cfg.Tempo, appLogger)
		fetcher = tempo.NewFetcher(traceClient, cfg.TraceFetchConcurrency, appLogger)
	} else {
		appLogger.Warn().Msg("No Tempo URL configured, trace correlation disabled")
		fetcher = noopFetcher{}
	}

	aggregator := correlation.NewAggregator(signalClient, fetcher, appLogger)
	builder := correlation.NewContextBuilder(aggregator, cfg.Correlation, appLogger)

	deps := mcp.Deps{
		Querier:    signalClient,
		Aggregator: aggregator,
		Context:    builder,
		Related:    correlation.NewNeighbourService(signalClient, cfg.Neighbours, appLogger),
		Targets:    cfg.Correlation.Targets,
	}

	if cfg.Prometheus.URL != "" {
		provider, err := metrics.NewProvider(cfg.Prometheus, appLogger)
		if err != nil {
			appLogger.Warn().Err(err).Msg("Metrics provider unavailable")
		} else {
			deps.PodIssues = &podIssueAdapter{provider: provider, source: builder}
		}
	}

	if store := buildModelStore(ctx, cfg, appLogger); store != nil {
		deps.Models = store
	}

	return deps
}

func buildModelStore(_ context.Context, cfg *mcp.Config, appLogger logger.Logger) *modelconfig.Store {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = os.Getenv("NAMESPACE")
	}

	if namespace == "" {
		appLogger.Warn().Msg("No namespace configured, model catalog disabled")
		return nil
	}

	restConfig, err := rest.InClusterConfig()
	if err != nil {
		appLogger.Warn().Err(err).Msg("Not running in-cluster, model catalog disabled")
		return nil
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		appLogger.Warn().Err(err).Msg("Failed to create kubernetes client, model catalog disabled")
		return nil
	}

	defaults := modelconfig.DefaultsFromEnv(appLogger)

	return modelconfig.NewStore(client, namespace, defaults, nil, appLogger)
}
