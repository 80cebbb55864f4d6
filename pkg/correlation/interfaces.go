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

//go:generate mockgen -destination=mock_correlation.go -package=correlation github.com/clusterlens/clusterlens/pkg/correlation SignalBackend,SpanFetcher,GoalAggregator,RelatedFinder

import (
	"context"

	"github.com/clusterlens/clusterlens/pkg/korrel8r"
	"github.com/clusterlens/clusterlens/pkg/models"
)

// SignalBackend is the slice of the Korrel8r client the aggregator needs.
type SignalBackend interface {
	QueryObjects(ctx context.Context, query string) (models.RawValue, error)
	ListGoals(ctx context.Context, goals []string, start korrel8r.Start) ([]models.GoalResult, error)
	SimplifyLogObjects(raw models.RawValue) []models.LogEntry
}

// SpanFetcher fetches and simplifies trace details for a set of trace IDs.
type SpanFetcher interface {
	FetchSpans(ctx context.Context, traceIDs []string, related models.RawValue, mode models.SpanMode) []models.Span
}

// GoalAggregator runs one goal-resolution aggregation pass.
type GoalAggregator interface {
	FetchGoalQueryObjects(ctx context.Context, goals []string, query string) models.AggregationResult
}

// RelatedFinder resolves signals correlated to a starting query across a set
// of target classes.
type RelatedFinder interface {
	FindRelated(ctx context.Context, request *korrel8r.FindRelatedRequest) (*korrel8r.FindRelatedResponse, error)
}
