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

// Package tempo fetches full trace payloads from a Tempo gateway and
// flattens them into spans suitable for correlation context.
package tempo

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/clusterlens/clusterlens/pkg/logger"
)

var (
	errUnexpectedStatusCode = errors.New("unexpected status code")
	errNoURL                = errors.New("no tempo URL configured")
	errEmptyTraceID         = errors.New("empty trace ID")
)

const defaultTimeout = 8 * time.Second

// Config holds the connection settings for a Tempo gateway.
type Config struct {
	URL                string        `json:"url"`
	Token              string        `json:"token,omitempty"`
	TenantID           string        `json:"tenant_id,omitempty"`
	Timeout            time.Duration `json:"timeout,omitempty"`
	InsecureSkipVerify bool          `json:"insecure_skip_verify,omitempty"`
}

// Client queries a Tempo gateway over its Jaeger-compatible HTTP API.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Tempo client from the given configuration.
func NewClient(config Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewTestLogger()
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport
	if config.InsecureSkipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // operator opt-in for clusters with self-signed certs
		}
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: log.WithComponent("tempo"),
	}
}

// GetTraceDetails fetches the full span payload for a single trace ID.
func (c *Client) GetTraceDetails(ctx context.Context, traceID string) (*TraceDetail, error) {
	if c.config.URL == "" {
		return nil, errNoURL
	}

	if traceID == "" {
		return nil, errEmptyTraceID
	}

	endpoint, err := c.traceEndpoint(traceID)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace endpoint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trace request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug().Err(cerr).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatusCode, resp.StatusCode)
	}

	var payload TracePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode trace payload: %w", err)
	}

	return &TraceDetail{Success: true, Trace: payload}, nil
}

// traceEndpoint builds the per-trace URL, routing through the multi-tenant
// gateway prefix when a tenant ID is configured.
func (c *Client) traceEndpoint(traceID string) (string, error) {
	if c.config.TenantID != "" {
		return url.JoinPath(c.config.URL, "api", "traces", "v1", c.config.TenantID, "api", "traces", traceID)
	}

	return url.JoinPath(c.config.URL, "api", "traces", traceID)
}
