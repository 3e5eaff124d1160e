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

package state

import (
	"time"
)

// CurrentVersion is the current state schema version.
// Increment this when making breaking changes to the FetchState structure.
const CurrentVersion = 1

// FetchState records the outcome of the most recent successful bundle
// fetch for one repository. The report command uses it to decide whether
// stored data is fresh enough to compare. The state is forward-compatible
// through versioning and carries a checksum for integrity validation.
type FetchState struct {
	// Version indicates the schema version of this state file.
	// Used to handle migrations and compatibility checks.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the state content (excluding this field).
	// Used to detect corruption or tampering.
	Checksum string `json:"checksum"`

	// Repository is the full repository name in "owner/repo" format.
	// Example: "delta-io/delta-rs"
	Repository string `json:"repository"`

	// LastFetchTime records when the bundle fetch completed successfully.
	LastFetchTime time.Time `json:"last_fetch_time"`

	// Counts from the last fetched bundle. Kept for monitoring and for
	// sanity-checking sudden drops between runs.
	Releases     int `json:"releases"`
	Issues       int `json:"issues"`
	PullRequests int `json:"pull_requests"`
}

// Age returns how old the recorded fetch is at the given instant.
func (s *FetchState) Age(now time.Time) time.Duration {
	return now.Sub(s.LastFetchTime)
}

// Stale reports whether the recorded fetch is older than maxAge.
// A zero maxAge disables staleness checking.
func (s *FetchState) Stale(now time.Time, maxAge time.Duration) bool {
	if maxAge == 0 {
		return false
	}
	return s.Age(now) > maxAge
}
