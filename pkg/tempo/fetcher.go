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

package tempo

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clusterlens/clusterlens/pkg/logger"
	"github.com/clusterlens/clusterlens/pkg/models"
)

const defaultFetchConcurrency = 10

// Fetcher fans out trace-detail fetches with a bounded concurrency limit
// and flattens the results into simplified spans.
type Fetcher struct {
	backend     TraceBackend
	concurrency int
	logger      zerolog.Logger
}

// NewFetcher creates a Fetcher over the given backend. A non-positive
// concurrency falls back to the default limit of 10.
func NewFetcher(backend TraceBackend, concurrency int, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.NewTestLogger()
	}

	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}

	return &Fetcher{
		backend:     backend,
		concurrency: concurrency,
		logger:      log.WithComponent("tempo_fetcher"),
	}
}

// FetchSpans fetches every trace ID concurrently and returns the combined
// simplified spans. Individual fetch failures are logged and skipped, so
// the result reflects whatever subset succeeded. Span order follows fetch
// completion order, not input order.
func (f *Fetcher) FetchSpans(
	ctx context.Context,
	traceIDs []string,
	related models.RawValue,
	mode models.SpanMode,
) []models.Span {
	spans := make([]models.Span, 0, len(traceIDs))
	if len(traceIDs) == 0 {
		return spans
	}

	index := buildSpanIndex(related)

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for _, id := range traceIDs {
		traceID := id

		g.Go(func() error {
			detail, err := f.backend.GetTraceDetails(gctx, traceID)
			if err != nil {
				f.logger.Debug().Err(err).Str("trace_id", traceID).Msg("Trace fetch failed, skipping")
				return nil
			}

			if detail == nil || !detail.Success {
				return nil
			}

			simplified := simplifyTraceDetail(traceID, detail, index, mode)
			if len(simplified) == 0 {
				return nil
			}

			mu.Lock()
			spans = append(spans, simplified...)
			mu.Unlock()

			return nil
		})
	}

	// Workers swallow their own errors, so Wait only orders the appends.
	_ = g.Wait()

	return spans
}
