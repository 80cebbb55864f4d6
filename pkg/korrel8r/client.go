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

// Package korrel8r provides the HTTP client for the Korrel8r graph
// correlation engine. Domain queries follow the engine's grammar
// (domain:class:{json-filter}); the client constructs and passes them
// through without parsing.
package korrel8r

import (
	"bytes"
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
	"github.com/clusterlens/clusterlens/pkg/models"
)

var (
	errUnexpectedStatusCode = errors.New("unexpected status code")
	errNoURL                = errors.New("korrel8r URL not configured")
)

const defaultTimeout = 8 * time.Second

// Config holds the connection settings for the Korrel8r service.
type Config struct {
	URL                string        `json:"url"`
	Token              string        `json:"token"`
	Timeout            time.Duration `json:"timeout"`
	InsecureSkipVerify bool          `json:"insecure_skip_verify"`
}

// Start is the starting point of a goal-resolution request.
type Start struct {
	Queries []string `json:"queries"`
}

// TimeWindow bounds a neighbourhood correlation request.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Client talks to a Korrel8r instance over HTTP.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Korrel8r client. The timeout defaults to 8s when the
// config leaves it unset.
func NewClient(config Config, log logger.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	//nolint:gosec // Skipping TLS verification is an explicit deployment choice.
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: log.WithComponent("korrel8r"),
	}
}

// QueryObjects executes a single domain query and returns the raw result.
func (c *Client) QueryObjects(ctx context.Context, query string) (models.RawValue, error) {
	var result models.RawValue

	endpoint, err := c.endpoint("/api/v1alpha1/objects")
	if err != nil {
		return result, err
	}

	endpoint.RawQuery = url.Values{"query": []string{query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return result, err
	}

	if err := c.do(req, &result); err != nil {
		return models.RawValue{}, err
	}

	return result, nil
}

// ListGoals resolves the given goal classes from a start query and returns
// one GoalResult per goal, in backend order.
func (c *Client) ListGoals(ctx context.Context, goals []string, start Start) ([]models.GoalResult, error) {
	endpoint, err := c.endpoint("/api/v1alpha1/lists/goals")
	if err != nil {
		return nil, err
	}

	payload := struct {
		Goals []string `json:"goals"`
		Start Start    `json:"start"`
	}{
		Goals: goals,
		Start: start,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	var results []models.GoalResult
	if err := c.do(req, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// FindRelatedRequest describes one neighbourhood correlation request.
type FindRelatedRequest struct {
	Start   map[string]interface{} `json:"start"`
	Targets []string               `json:"targets"`
	Window  *TimeWindow            `json:"window,omitempty"`
	Limit   int                    `json:"limit,omitempty"`
	Depth   int                    `json:"depth,omitempty"`
}

// FindRelatedResponse carries per-target result buckets plus backend
// metadata.
type FindRelatedResponse struct {
	Results map[string][]interface{} `json:"results"`
	Meta    map[string]interface{}   `json:"meta,omitempty"`
}

// FindRelated asks the engine for objects related to the start object in
// each target class. Every requested target is present in the returned map,
// empty when the backend had nothing for it.
func (c *Client) FindRelated(ctx context.Context, request *FindRelatedRequest) (*FindRelatedResponse, error) {
	endpoint, err := c.endpoint("/api/v1alpha1/lists/neighbours")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	var resp FindRelatedResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	if resp.Results == nil {
		resp.Results = make(map[string][]interface{}, len(request.Targets))
	}

	for _, target := range request.Targets {
		if _, ok := resp.Results[target]; !ok {
			resp.Results[target] = []interface{}{}
		}
	}

	return &resp, nil
}

func (c *Client) endpoint(path string) (*url.URL, error) {
	if c.config.URL == "" {
		return nil, errNoURL
	}

	base, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid korrel8r URL: %w", err)
	}

	return base.JoinPath(path), nil
}

func (c *Client) do(req *http.Request, dst interface{}) error {
	req.Header.Set("Accept", "application/json")

	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug().Err(cerr).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d from %s", errUnexpectedStatusCode, resp.StatusCode, req.URL.Path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode korrel8r response: %w", err)
	}

	return nil
}
