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
	"fmt"
	"time"
)

// niceStepsSeconds are the step buckets ChooseStep picks from, ascending.
var niceStepsSeconds = []int64{1, 2, 5, 10, 15, 30, 60, 120, 300, 600, 900, 1800, 3600, 7200, 14400, 21600, 43200}

// ChooseStep picks the smallest nice step that keeps a range query under
// maxPoints samples per series and at or above minStep. Degenerate windows
// fall back to minStep; windows wider than the largest bucket allows use
// the largest bucket.
func ChooseStep(start, end time.Time, maxPoints int, minStep time.Duration) time.Duration {
	if minStep <= 0 {
		minStep = time.Second
	}

	if maxPoints < 2 || !end.After(start) {
		return minStep
	}

	need := end.Sub(start) / time.Duration(maxPoints-1)
	if need < minStep {
		need = minStep
	}

	for _, s := range niceStepsSeconds {
		step := time.Duration(s) * time.Second
		if step >= need {
			return step
		}
	}

	return time.Duration(niceStepsSeconds[len(niceStepsSeconds)-1]) * time.Second
}

// FormatStep renders a step the way PromQL durations are written: whole
// hours, else whole minutes, else seconds.
func FormatStep(step time.Duration) string {
	seconds := int64(step / time.Second)

	switch {
	case seconds >= 3600 && seconds%3600 == 0:
		return fmt.Sprintf("%dh", seconds/3600)
	case seconds >= 60 && seconds%60 == 0:
		return fmt.Sprintf("%dm", seconds/60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
