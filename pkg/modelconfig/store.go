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

// Package modelconfig manages the LLM model catalog with a ConfigMap as the
// source of truth, seeded from the MODEL_CONFIG environment variable on
// first use. The ConfigMap is user-managed and survives chart upgrades.
package modelconfig

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/clusterlens/clusterlens/pkg/logger"
)

const (
	// ConfigMapName is the user-managed model catalog ConfigMap.
	ConfigMapName = "ai-model-config"

	configMapKey    = "model-config.json"
	defaultCacheTTL = 60 * time.Second
)

// Model describes one LLM endpoint available for summarization and chat.
// External models run outside the cluster and are billed per token.
type Model struct {
	URL            string  `json:"url,omitempty"`
	External       bool    `json:"external"`
	Provider       string  `json:"provider,omitempty"`
	Deployment     string  `json:"deployment,omitempty"`
	CostPromptRate float64 `json:"cost_prompt_rate,omitempty"`
	CostOutputRate float64 `json:"cost_output_rate,omitempty"`
}

// NamedModel pairs a model with its catalog name for ordered listings.
type NamedModel struct {
	Name string `json:"name"`
	Model
}

// Clock abstracts time for the TTL cache.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Store reads the model catalog from the ConfigMap, creating it from the
// defaults when missing, and caches the result with a TTL.
type Store struct {
	client    kubernetes.Interface
	namespace string
	defaults  map[string]Model
	clock     Clock
	ttl       time.Duration
	logger    zerolog.Logger

	mu          sync.Mutex
	cached      map[string]Model
	lastRefresh time.Time
}

// NewStore creates a Store. A nil clock uses the wall clock.
func NewStore(client kubernetes.Interface, namespace string, defaults map[string]Model, clock Clock, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if clock == nil {
		clock = realClock{}
	}

	if defaults == nil {
		defaults = map[string]Model{}
	}

	return &Store{
		client:    client,
		namespace: namespace,
		defaults:  defaults,
		clock:     clock,
		ttl:       defaultCacheTTL,
		logger:    log.WithComponent("modelconfig"),
	}
}

// DefaultsFromEnv parses the MODEL_CONFIG environment variable. A missing
// or unparseable value yields an empty catalog, never an error.
func DefaultsFromEnv(log logger.Logger) map[string]Model {
	if log == nil {
		log = logger.NewTestLogger()
	}

	raw := os.Getenv("MODEL_CONFIG")
	if raw == "" {
		return map[string]Model{}
	}

	var defaults map[string]Model
	if err := json.Unmarshal([]byte(raw), &defaults); err != nil {
		log.Warn().Err(err).Msg("Could not parse MODEL_CONFIG, using empty catalog")
		return map[string]Model{}
	}

	return defaults
}

// GetConfig returns the current model catalog, refreshing from the
// ConfigMap when the cache has expired.
func (s *Store) GetConfig(ctx context.Context) map[string]Model {
	return s.get(ctx, false)
}

// Reload refreshes the catalog from the ConfigMap, bypassing the cache.
func (s *Store) Reload(ctx context.Context) map[string]Model {
	return s.get(ctx, true)
}

func (s *Store) get(ctx context.Context, force bool) map[string]Model {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if !force && s.cached != nil && now.Sub(s.lastRefresh) <= s.ttl {
		return s.cached
	}

	s.cached = s.load(ctx)
	s.lastRefresh = now

	s.logger.Debug().Int("models", len(s.cached)).Msg("Model catalog refreshed")

	return s.cached
}

// load reads the ConfigMap, creating it from the defaults when absent. Any
// failure falls back to the defaults so callers always get a catalog.
func (s *Store) load(ctx context.Context) map[string]Model {
	cm, err := s.client.CoreV1().ConfigMaps(s.namespace).Get(ctx, ConfigMapName, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		s.logger.Info().Str("configmap", ConfigMapName).Msg("ConfigMap not found, creating from defaults")

		if err := s.create(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("ConfigMap creation failed, using defaults")
		}

		return s.defaults
	}

	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read model ConfigMap, using defaults")
		return s.defaults
	}

	var catalog map[string]Model
	if err := json.Unmarshal([]byte(cm.Data[configMapKey]), &catalog); err != nil {
		s.logger.Warn().Err(err).Msg("Malformed model ConfigMap data, using defaults")
		return s.defaults
	}

	return catalog
}

func (s *Store) create(ctx context.Context) error {
	data, err := json.MarshalIndent(s.defaults, "", "  ")
	if err != nil {
		return err
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      ConfigMapName,
			Namespace: s.namespace,
			Labels: map[string]string{
				"app.kubernetes.io/name":       "clusterlens",
				"app.kubernetes.io/component":  "model-config",
				"app.kubernetes.io/managed-by": "clusterlens",
			},
			Annotations: map[string]string{
				"config.kubernetes.io/created-by":  "clusterlens",
				"config.kubernetes.io/created-at":  s.clock.Now().UTC().Format(time.RFC3339),
				"config.kubernetes.io/description": "User-managed AI model configuration. Not managed by Helm; persists across upgrades.",
			},
		},
		Data: map[string]string{configMapKey: string(data)},
	}

	_, err = s.client.CoreV1().ConfigMaps(s.namespace).Create(ctx, cm, metav1.CreateOptions{})

	return err
}

// ListModels returns the catalog as a list sorted with internal models
// before external ones, names ascending within each group.
func (s *Store) ListModels(ctx context.Context) []NamedModel {
	catalog := s.GetConfig(ctx)

	list := make([]NamedModel, 0, len(catalog))
	for name, model := range catalog {
		list = append(list, NamedModel{Name: name, Model: model})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].External != list[j].External {
			return !list[i].External
		}

		return list[i].Name < list[j].Name
	})

	return list
}
