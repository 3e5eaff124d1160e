// Copyright 2025 Quay Labs, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metadata provides functionality for tracking and persisting
// metadata about bundle fetch operations. It records statistics about each
// fetch including the item counts per category, HTTP requests made, and
// duration.
//
// Metadata is saved as JSON files alongside state files, allowing external
// tools to analyze fetch history and performance.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Tracker collects statistics during a bundle fetch and generates the
// metadata record. Create a new tracker at the start of each fetch and
// call its methods to record activity.
type Tracker struct {
	startTime    time.Time
	apiCallCount int
	releases     int
	issues       int
	pullRequests int
}

// New creates a new metadata tracker and initializes it with the current
// time. Call this at the beginning of a fetch operation.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// AddAPICalls records HTTP requests spent during the fetch.
func (t *Tracker) AddAPICalls(n int) {
	t.apiCallCount += n
}

// RecordCounts stores the item counts of the fetched bundle.
func (t *Tracker) RecordCounts(releases, issues, pullRequests int) {
	t.releases = releases
	t.issues = issues
	t.pullRequests = pullRequests
}

// GenerateMetadata creates a FetchMetadata instance capturing the complete
// fetch statistics. Call this at the end of a successful fetch.
func (t *Tracker) GenerateMetadata(toolVersion string, params FetchParams, fixtures bool) *FetchMetadata {
	completedAt := time.Now()
	duration := completedAt.Sub(t.startTime)

	return &FetchMetadata{
		ToolVersion: toolVersion,
		FetchID:     fmt.Sprintf("fetch-%d", t.startTime.Unix()),
		Parameters:  params,
		Results: FetchResults{
			Releases:     t.releases,
			Issues:       t.issues,
			PullRequests: t.pullRequests,
			Duration:     duration.String(),
			APICallCount: t.apiCallCount,
			StartedAt:    t.startTime,
			CompletedAt:  completedAt,
		},
		Fixtures: fixtures,
	}
}

// SaveMetadata persists a FetchMetadata record to a JSON file in the
// specified directory. The file is written atomically using a temporary
// file and rename to prevent corruption. The filename includes a timestamp
// for easy sorting:
//
//	fetch-metadata-{timestamp}.json
func SaveMetadata(metadata *FetchMetadata, stateDir string) error {
	// Ensure state directory exists
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Generate filename with timestamp
	filename := fmt.Sprintf("fetch-metadata-%d.json", metadata.Results.StartedAt.Unix())
	path := filepath.Join(stateDir, filename)

	// Write to temporary file first for atomicity
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	// Write JSON with proper formatting
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(metadata); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	// Atomically rename to final location
	if err := os.Rename(tmpFile, path); err != nil {
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// LoadLatestMetadata finds and loads the most recent metadata file for the
// specified repository from the state directory. Files are ordered by the
// timestamp embedded in their names.
//
// Returns nil if no metadata exists for the repository, or an error if
// loading fails.
func LoadLatestMetadata(stateDir, owner, repo string) (*FetchMetadata, error) {
	pattern := filepath.Join(stateDir, "fetch-metadata-*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata files: %w", err)
	}

	if len(files) == 0 {
		return nil, nil
	}

	// Newest first
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		var meta FetchMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		if meta.Parameters.Owner == owner && meta.Parameters.Repository == repo {
			return &meta, nil
		}
	}

	return nil, nil
}
