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

import (
	"context"
	"fmt"
	"net/url"
)

var _ Client = (*RESTClient)(nil)

// GetRepository implements Client. A single call, no pagination.
func (c *RESTClient) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	var repository Repository
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := c.getJSON(ctx, path, nil, &repository); err != nil {
		return nil, fmt.Errorf("fetching metadata for %s/%s: %w", owner, repo, err)
	}
	return &repository, nil
}

// GetReleases implements Client.
func (c *RESTClient) GetReleases(ctx context.Context, owner, repo string) ([]Release, error) {
	path := fmt.Sprintf("/repos/%s/%s/releases", owner, repo)
	releases, err := newPageIterator[Release](c, path, nil).Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching releases for %s/%s: %w", owner, repo, err)
	}
	return releases, nil
}

// GetIssues implements Client. The issues endpoint interleaves pull
// requests into its results; entries carrying a pull_request
// cross-reference are dropped so only true issues remain.
func (c *RESTClient) GetIssues(ctx context.Context, owner, repo, state string) ([]Issue, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues", owner, repo)
	query := url.Values{"state": {state}}
	it := newPageIterator[Issue](c, path, query)

	var issues []Issue
	for {
		issue, ok, err := it.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching issues for %s/%s: %w", owner, repo, err)
		}
		if !ok {
			return issues, nil
		}
		if issue.IsPullRequest() {
			continue
		}
		issues = append(issues, issue)
	}
}

// GetPullRequests implements Client. StateAll is served as two listings,
// open then closed, concatenated in that order.
func (c *RESTClient) GetPullRequests(ctx context.Context, owner, repo, state string) ([]PullRequest, error) {
	if state == StateAll {
		open, err := c.GetPullRequests(ctx, owner, repo, StateOpen)
		if err != nil {
			return nil, err
		}
		closed, err := c.GetPullRequests(ctx, owner, repo, StateClosed)
		if err != nil {
			return nil, err
		}
		return append(open, closed...), nil
	}

	path := fmt.Sprintf("/repos/%s/%s/pulls", owner, repo)
	query := url.Values{"state": {state}}
	pulls, err := newPageIterator[PullRequest](c, path, query).Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching pull requests for %s/%s: %w", owner, repo, err)
	}
	return pulls, nil
}
