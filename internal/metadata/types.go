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

// Package metadata types define the structures used for tracking and
// persisting information about bundle fetch operations. These types
// capture statistics and audit information for troubleshooting.
package metadata

import (
	"time"
)

// FetchMetadata represents the complete metadata record for a single
// bundle fetch. It captures what was fetched, from where, and how much
// came back, providing an audit trail across runs.
type FetchMetadata struct {
	ToolVersion string       `json:"tool_version"`
	FetchID     string       `json:"fetch_id"`
	Parameters  FetchParams  `json:"parameters"`
	Results     FetchResults `json:"results"`
	Fixtures    bool         `json:"fixtures"`
}

// FetchParams captures the input parameters used for a fetch operation.
// Preserved to enable reproducible fetches and debugging.
type FetchParams struct {
	Owner       string `json:"owner"`
	Repository  string `json:"repository"`
	APIEndpoint string `json:"api_endpoint"`
}

// FetchResults contains statistics about a completed bundle fetch:
// item counts per category, the number of HTTP requests spent, and
// timing information.
type FetchResults struct {
	Releases     int       `json:"releases"`
	Issues       int       `json:"issues"`
	PullRequests int       `json:"pull_requests"`
	Duration     string    `json:"fetch_duration"`
	APICallCount int       `json:"api_calls_made"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}
