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
	"errors"
	"fmt"

	"github.com/clusterlens/clusterlens/pkg/correlation"
	"github.com/clusterlens/clusterlens/pkg/korrel8r"
	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/metrics"
	"github.com/clusterlens/clusterlens/pkg/tempo"
)

const (
	// TransportStdio serves the tools over stdio.
	TransportStdio = "stdio"
	// TransportHTTP serves the tools over streamable HTTP.
	TransportHTTP = "http"
)

var (
	errNoKorrel8rURL    = errors.New("korrel8r.url is required")
	errInvalidTransport = errors.New("invalid transport")
	errNoListenAddr     = errors.New("listen_addr is required for http transport")
)

// Config is the service configuration for the ClusterLens MCP server.
type Config struct {
	Transport  string `json:"transport,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
	Namespace  string `json:"namespace,omitempty"`

	TraceFetchConcurrency int `json:"trace_fetch_concurrency,omitempty"`

	Korrel8r    korrel8r.Config             `json:"korrel8r"`
	Tempo       tempo.Config                `json:"tempo"`
	Prometheus  metrics.Config              `json:"prometheus"`
	Correlation correlation.ContextConfig   `json:"correlation"`
	Neighbours  correlation.NeighbourConfig `json:"neighbours"`

	Logging *logger.Config `json:"logging,omitempty"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.Korrel8r.URL == "" {
		return errNoKorrel8rURL
	}

	switch c.Transport {
	case "", TransportStdio:
	case TransportHTTP:
		if c.ListenAddr == "" {
			return errNoListenAddr
		}
	default:
		return fmt.Errorf("%w: %s (expected '%s' or '%s')",
			errInvalidTransport, c.Transport, TransportStdio, TransportHTTP)
	}

	return nil
}
