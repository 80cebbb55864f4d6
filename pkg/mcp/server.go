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

// Package mcp exposes the correlation operations as MCP tools for an LLM
// assistant.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/clusterlens/clusterlens/pkg/correlation"
	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/modelconfig"
	"github.com/clusterlens/clusterlens/pkg/models"
)

// SignalQuerier is the slice of the Korrel8r client the query tool needs.
type SignalQuerier interface {
	QueryObjects(ctx context.Context, query string) (models.RawValue, error)
	SimplifyLogObjects(raw models.RawValue) []models.LogEntry
}

// ContextSource assembles correlated text context for a set of pairs.
type ContextSource interface {
	BuildContext(ctx context.Context, pairs []models.NamespacePodPair) string
}

// ModelLister lists the configured LLM models.
type ModelLister interface {
	ListModels(ctx context.Context) []modelconfig.NamedModel
}

// PodIssueSource builds correlated context for currently failing pods.
type PodIssueSource interface {
	BuildPodIssueContext(ctx context.Context) string
}

// RelatedSource resolves the signals correlated to one workload through the
// neighbourhood API.
type RelatedSource interface {
	CorrelateWorkload(ctx context.Context, pair models.NamespacePodPair, now time.Time) (map[string][]interface{}, error)
}

// Deps are the collaborators behind the tool surface. Nil entries disable
// the corresponding tools.
type Deps struct {
	Querier    SignalQuerier
	Aggregator correlation.GoalAggregator
	Context    ContextSource
	Models     ModelLister
	PodIssues  PodIssueSource
	Related    RelatedSource
	Targets    []string
}

// Server wraps the mcp-go server with the ClusterLens tool set.
type Server struct {
	mcpServer *server.MCPServer
	deps      Deps
	logger    zerolog.Logger
}

// NewServer creates an MCP server and registers every tool with a non-nil
// dependency.
func NewServer(name, version string, deps Deps, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if len(deps.Targets) == 0 {
		deps.Targets = correlation.DefaultTargets()
	}

	s := &Server{
		mcpServer: server.NewMCPServer(name, version),
		deps:      deps,
		logger:    log.WithComponent("mcp"),
	}

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	if s.deps.Querier != nil {
		s.addTool("korrel8r_query_objects",
			"Execute one Korrel8r domain query (domain:class:{json-filter}) and return the matching objects.",
			s.handleQueryObjects)
	}

	if s.deps.Aggregator != nil {
		s.addTool("korrel8r_get_correlated",
			"Resolve correlation goals from a start query and return the aggregated logs and traces buckets.",
			s.handleGetCorrelated)
	}

	if s.deps.Context != nil {
		s.addTool("build_correlated_context",
			"Build the correlated log/trace text context for one namespace (and optionally pod).",
			s.handleBuildContext)
	}

	if s.deps.Related != nil {
		s.addTool("korrel8r_find_related",
			"Find the signals (objects, events, logs, traces) correlated to one namespace/pod over the lookback window.",
			s.handleFindRelated)
	}

	if s.deps.PodIssues != nil {
		s.addTool("get_pod_issue_context",
			"Find currently failing or crash-looping pods and build their correlated log/trace context.",
			s.handlePodIssueContext)
	}

	if s.deps.Models != nil {
		s.addTool("list_models",
			"List the configured LLM models, internal models first.",
			s.handleListModels)
	}
}

func (s *Server) addTool(name, description string, handler func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error)) {
	tool := mcp.NewTool(name, mcp.WithDescription(description))

	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		return handler(ctx, args)
	})
}

// ServeStdio serves the tool set over stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP serves the tool set over streamable HTTP on addr.
func (s *Server) ServeHTTP(addr string) error {
	return server.NewStreamableHTTPServer(s.mcpServer).Start(addr)
}
