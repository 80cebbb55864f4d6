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
	"strings"
	"time"

	"github.com/prometheus/common/model"

	"github.com/clusterlens/clusterlens/pkg/models"
)

// podIssueQuery finds pods currently failed or crash-looping, one series
// per (namespace, pod).
const podIssueQuery = `max by (namespace, pod) (` +
	`(kube_pod_status_phase{phase="Failed"} == 1) or ` +
	`(kube_pod_container_status_waiting_reason{reason="CrashLoopBackOff"} == 1))`

// ContextSource assembles correlated text context for a set of pairs.
type ContextSource interface {
	BuildContext(ctx context.Context, pairs []models.NamespacePodPair) string
}

// ExtractNamespacePodPairs collects unique (namespace, pod) pairs from the
// samples' label sets in first-seen order. When the namespace label is
// missing, the composite label (typically `"namespace | model"`) is parsed
// as a fallback.
func ExtractNamespacePodPairs(samples model.Vector, compositeLabel model.LabelName) []models.NamespacePodPair {
	var pairs []models.NamespacePodPair

	seen := make(map[models.NamespacePodPair]struct{})

	for _, sample := range samples {
		pair := models.NamespacePodPair{
			Namespace: string(sample.Metric["namespace"]),
			Pod:       string(sample.Metric["pod"]),
		}

		if pair.Namespace == "" && compositeLabel != "" {
			composite := string(sample.Metric[compositeLabel])
			if ns, _, found := strings.Cut(composite, "|"); found {
				pair.Namespace = strings.TrimSpace(ns)
			}
		}

		if pair.Namespace == "" && pair.Pod == "" {
			continue
		}

		if _, ok := seen[pair]; ok {
			continue
		}

		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}

	return pairs
}

// BuildPodIssueContext finds currently failing pods and asks the context
// source for their correlated signals. Any failure along the way yields an
// empty string.
func (p *Provider) BuildPodIssueContext(ctx context.Context, source ContextSource) string {
	if source == nil {
		return ""
	}

	value, err := p.query(ctx, podIssueQuery, time.Now())
	if err != nil {
		p.logger.Warn().Err(err).Msg("Pod issue query failed")
		return ""
	}

	vector, ok := value.(model.Vector)
	if !ok {
		return ""
	}

	pairs := ExtractNamespacePodPairs(vector, "")
	if len(pairs) == 0 {
		return ""
	}

	return source.BuildContext(ctx, pairs)
}
