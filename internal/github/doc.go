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

// Package github provides a resilient client for the GitHub REST API,
// fetching repository metadata, releases, issues and pull requests. It
// handles pagination via Link headers, bounded retries with exponential
// backoff, and rate-limit-aware waiting.
//
// The package includes:
//   - A Client interface for retrieving repository activity data
//   - A REST implementation with retry and rate-limit handling
//   - A fixture client serving canned data for offline runs and tests
//   - Type definitions for the decoded API payloads
//
// Basic usage:
//
//	client := github.NewRESTClient(github.ClientConfig{Token: "your-github-token"})
//	repo, err := client.GetRepository(ctx, "delta-io", "delta-rs")
//	if err != nil {
//	    // Handle error
//	}
//	issues, err := client.GetIssues(ctx, "delta-io", "delta-rs", github.StateAll)
package github
