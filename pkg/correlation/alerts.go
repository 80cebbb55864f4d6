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
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/clusterlens/clusterlens/pkg/korrel8r"
	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/models"
)

// ErrCorrelationDisabled marks a neighbourhood lookup short-circuited by the
// feature flag before any network call.
var ErrCorrelationDisabled = errors.New("correlation is disabled")

// defaultNeighbourTargets are the signal classes a neighbourhood lookup
// resolves when none are configured.
var defaultNeighbourTargets = []string{"k8s/object", "k8s/event", "loki/log", "tempo/trace"}

// NeighbourConfig tunes neighbourhood correlation lookups.
type NeighbourConfig struct {
	Enabled  bool          `json:"enabled"`
	Targets  []string      `json:"targets,omitempty"`
	MaxItems int           `json:"max_items,omitempty"`
	Depth    int           `json:"depth,omitempty"`
	Lookback time.Duration `json:"lookback,omitempty"`
}

// NeighbourService finds signals correlated to a workload through the
// signal backend's neighbourhood API.
type NeighbourService struct {
	finder RelatedFinder
	config NeighbourConfig
	logger zerolog.Logger
}

// NewNeighbourService creates a NeighbourService. An empty target list falls
// back to the default signal classes.
func NewNeighbourService(finder RelatedFinder, config NeighbourConfig, log logger.Logger) *NeighbourService {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if len(config.Targets) == 0 {
		config.Targets = defaultNeighbourTargets
	}

	if config.Lookback <= 0 {
		config.Lookback = time.Hour
	}

	return &NeighbourService{
		finder: finder,
		config: config,
		logger: log.WithComponent("neighbours"),
	}
}

// CorrelateWorkload resolves the signals correlated to one namespace/pod
// pair over the configured lookback window. Every configured target key is
// present in the result, empty when nothing was found.
func (s *NeighbourService) CorrelateWorkload(
	ctx context.Context,
	pair models.NamespacePodPair,
	now time.Time,
) (map[string][]interface{}, error) {
	if !s.config.Enabled {
		return nil, ErrCorrelationDisabled
	}

	query := pairQuery(pair)
	if query == "" {
		return nil, errors.New("pair has no namespace")
	}

	request := &korrel8r.FindRelatedRequest{
		Start:   map[string]interface{}{"queries": []string{query}},
		Targets: s.config.Targets,
		Window: &korrel8r.TimeWindow{
			Start: now.Add(-s.config.Lookback).UTC().Format(time.RFC3339),
			End:   now.UTC().Format(time.RFC3339),
		},
		Limit: s.config.MaxItems,
		Depth: s.config.Depth,
	}

	resp, err := s.finder.FindRelated(ctx, request)
	if err != nil {
		s.logger.Warn().Err(err).Str("namespace", pair.Namespace).Str("pod", pair.Pod).
			Msg("Neighbourhood lookup failed")
		return nil, err
	}

	return resp.Results, nil
}
