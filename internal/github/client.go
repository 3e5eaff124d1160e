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

package github

import "context"

// Client defines the interface for retrieving repository activity data.
// The REST implementation and the fixture implementation are
// interchangeable; callers pick one at construction time.
type Client interface {
	// GetRepository retrieves the repository's metadata. A repository that
	// does not exist or is not accessible yields ErrRepoNotFound.
	GetRepository(ctx context.Context, owner, repo string) (*Repository, error)

	// GetReleases retrieves every release, in API order.
	GetReleases(ctx context.Context, owner, repo string) ([]Release, error)

	// GetIssues retrieves issues filtered by state (StateOpen, StateClosed
	// or StateAll). Pull requests surfaced by the issues endpoint are
	// dropped.
	GetIssues(ctx context.Context, owner, repo, state string) ([]Issue, error)

	// GetPullRequests retrieves pull requests filtered by state. StateAll
	// returns the open listing followed by the closed listing.
	GetPullRequests(ctx context.Context, owner, repo, state string) ([]PullRequest, error)
}
