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

// Package collect assembles complete repository bundles from a data
// client. A bundle either contains every part or is not returned at all.
package collect

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/quaylabs/ghcompare/internal/github"
	"github.com/quaylabs/ghcompare/internal/report"
)

// Collector fetches repository bundles through a Client. The client may
// be the REST implementation or the fixture one; the collector does not
// care which.
type Collector struct {
	client github.Client
	logger *log.Logger
}

// NewCollector creates a Collector using the given client.
func NewCollector(client github.Client, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.Default()
	}
	return &Collector{client: client, logger: logger}
}

// FetchRepoBundle retrieves metadata, releases, issues and pull requests
// for one repository. Any failure aborts the whole bundle; partial data
// never escapes. The assembled bundle is shape-validated before return.
func (c *Collector) FetchRepoBundle(ctx context.Context, owner, repo string) (*github.RepoBundle, error) {
	metadata, err := c.client.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("bundle for %s/%s: %w", owner, repo, err)
	}
	releases, err := c.client.GetReleases(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("bundle for %s/%s: %w", owner, repo, err)
	}
	issues, err := c.client.GetIssues(ctx, owner, repo, github.StateAll)
	if err != nil {
		return nil, fmt.Errorf("bundle for %s/%s: %w", owner, repo, err)
	}
	prs, err := c.client.GetPullRequests(ctx, owner, repo, github.StateAll)
	if err != nil {
		return nil, fmt.Errorf("bundle for %s/%s: %w", owner, repo, err)
	}

	bundle := &github.RepoBundle{
		Metadata:     metadata,
		Releases:     emptyIfNil(releases),
		Issues:       emptyIfNil(issues),
		PullRequests: emptyIfNil(prs),
	}
	if err := report.ValidateBundle(bundle); err != nil {
		return nil, fmt.Errorf("bundle for %s/%s: %w", owner, repo, err)
	}

	c.logger.Info("collected repository data",
		"repo", owner+"/"+repo,
		"releases", len(bundle.Releases),
		"issues", len(bundle.Issues),
		"pull_requests", len(bundle.PullRequests))
	return bundle, nil
}

// emptyIfNil keeps empty listings distinguishable from absent ones after
// JSON round trips.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
