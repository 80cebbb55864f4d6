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

//go:generate mockgen -destination=mock_tempo.go -package=tempo github.com/clusterlens/clusterlens/pkg/tempo TraceBackend

import "context"

// TraceBackend fetches the full span payload for a trace ID.
type TraceBackend interface {
	GetTraceDetails(ctx context.Context, traceID string) (*TraceDetail, error)
}
