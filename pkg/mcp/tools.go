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

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/clusterlens/clusterlens/pkg/correlation"
	"github.com/clusterlens/clusterlens/pkg/models"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return textResult("{}")
	}

	return textResult(string(data))
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// goalsArg accepts the goal list either as a JSON array or as a
// comma-separated string.
func goalsArg(args map[string]interface{}) []string {
	var goals []string

	switch v := args["goals"].(type) {
	case []interface{}:
		for _, g := range v {
			if s, ok := g.(string); ok && strings.TrimSpace(s) != "" {
				goals = append(goals, strings.TrimSpace(s))
			}
		}
	case string:
		for _, g := range strings.Split(v, ",") {
			if g = strings.TrimSpace(g); g != "" {
				goals = append(goals, g)
			}
		}
	}

	return goals
}

func (s *Server) handleQueryObjects(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	query := stringArg(args, "query")
	if query == "" {
		return errorResult("query is required"), nil
	}

	raw, err := s.deps.Querier.QueryObjects(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("Query tool failed")
		return errorResult("query failed: " + err.Error()), nil
	}

	if entries := s.deps.Querier.SimplifyLogObjects(raw); entries != nil {
		return jsonResult(entries), nil
	}

	return jsonResult(raw), nil
}

func (s *Server) handleGetCorrelated(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	query := stringArg(args, "query")
	if query == "" {
		return errorResult("query is required"), nil
	}

	goals := goalsArg(args)
	if len(goals) == 0 {
		goals = s.deps.Targets
	}

	for _, goal := range goals {
		if !strings.Contains(goal, ":") {
			return errorResult("invalid goal " + quoteArg(goal) + ": expected domain:class"), nil
		}
	}

	result := s.deps.Aggregator.FetchGoalQueryObjects(ctx, goals, query)

	return jsonResult(result), nil
}

func (s *Server) handleBuildContext(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	namespace := stringArg(args, "namespace")
	if namespace == "" {
		return errorResult("namespace is required"), nil
	}

	pair := models.NamespacePodPair{
		Namespace: namespace,
		Pod:       stringArg(args, "pod"),
	}

	text := s.deps.Context.BuildContext(ctx, []models.NamespacePodPair{pair})
	if text == "" {
		return textResult("No correlated signals found."), nil
	}

	return textResult(text), nil
}

func (s *Server) handleFindRelated(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	namespace := stringArg(args, "namespace")
	if namespace == "" {
		return errorResult("namespace is required"), nil
	}

	pair := models.NamespacePodPair{
		Namespace: namespace,
		Pod:       stringArg(args, "pod"),
	}

	results, err := s.deps.Related.CorrelateWorkload(ctx, pair, time.Now())
	if errors.Is(err, correlation.ErrCorrelationDisabled) {
		return textResult("Neighbourhood correlation is disabled."), nil
	}

	if err != nil {
		s.logger.Warn().Err(err).Str("namespace", namespace).Msg("Find-related tool failed")
		return errorResult("correlation failed: " + err.Error()), nil
	}

	return jsonResult(results), nil
}

func (s *Server) handlePodIssueContext(ctx context.Context, _ map[string]interface{}) (*mcp.CallToolResult, error) {
	text := s.deps.PodIssues.BuildPodIssueContext(ctx)
	if text == "" {
		return textResult("No pod issues found."), nil
	}

	return textResult(text), nil
}

func (s *Server) handleListModels(ctx context.Context, _ map[string]interface{}) (*mcp.CallToolResult, error) {
	list := s.deps.Models.ListModels(ctx)
	if len(list) == 0 {
		return textResult("No LLM models configured."), nil
	}

	return jsonResult(list), nil
}

func quoteArg(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		return `"` + s + `"`
	}

	return string(data)
}
