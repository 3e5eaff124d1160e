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

// Package main implements the ghcompare command-line interface.
// The tool fetches repository metadata, releases, issues and pull
// requests from the GitHub REST API, stores the bundles locally and
// renders a side-by-side comparison table.
//
// The CLI supports:
//   - Fetching a complete data bundle for one repository
//   - Rendering a comparison report across configured repositories
//   - A canned-data mode for running without network access
//   - GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	ghcompare fetch <owner>/<repo> [flags]
//	ghcompare report [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	ghcompare fetch delta-io/delta-rs
//	ghcompare report --repo delta-io/delta-rs --repo apache/hudi-rs
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Request rejected, repository not found or rate limit timeout
//   - 3: Server or network error
//   - 4: Invalid repository bundle
package main
