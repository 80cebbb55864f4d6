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
	"sort"
	"strings"
	"time"

	"github.com/clusterlens/clusterlens/pkg/models"
)

// severityRanks orders log levels for context assembly. Unknown levels rank
// lowest so they never displace real signals.
var severityRanks = map[string]int{
	"FATAL":    7,
	"CRITICAL": 7,
	"ERROR":    6,
	"WARN":     5,
	"WARNING":  5,
	"INFO":     3,
	"DEBUG":    2,
	"TRACE":    1,
	"UNKNOWN":  0,
}

// routineLevels are the log levels excluded from LLM context. Anything
// outside this set is kept, so uncommon levels such as NOTICE survive the
// filter even without a severity rank.
var routineLevels = map[string]struct{}{
	"DEBUG":   {},
	"INFO":    {},
	"TRACE":   {},
	"UNKNOWN": {},
	"":        {},
}

func severityRank(level string) int {
	return severityRanks[strings.ToUpper(level)]
}

// FilterNoteworthy drops entries whose level marks routine operation.
func FilterNoteworthy(entries []models.LogEntry) []models.LogEntry {
	filtered := make([]models.LogEntry, 0, len(entries))

	for _, entry := range entries {
		if _, routine := routineLevels[strings.ToUpper(entry.Level)]; !routine {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}

// SortBySeverity orders entries by severity descending, then timestamp
// descending. The sort is stable so equal entries keep their input order.
func SortBySeverity(entries []models.LogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := severityRank(entries[i].Level), severityRank(entries[j].Level)
		if ri != rj {
			return ri > rj
		}

		return parseLogTime(entries[i].Timestamp).After(parseLogTime(entries[j].Timestamp))
	})
}

var logTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseLogTime parses an ISO-8601-ish timestamp permissively. Anything
// unparseable sorts as epoch zero, oldest.
func parseLogTime(ts string) time.Time {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Unix(0, 0).UTC()
	}

	for _, layout := range logTimeLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}

	return time.Unix(0, 0).UTC()
}
