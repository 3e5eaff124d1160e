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
	"time"

	ghErrors "github.com/quaylabs/ghcompare/internal/errors"
)

// FixtureClient is a canned-data implementation of the Client interface.
// It serves a fixed dataset for a handful of well-known repositories so
// the tool can run without network access or an API token. Selected
// explicitly at construction time, never through the environment.
type FixtureClient struct {
	datasets map[string]*fixtureDataset

	// Error, when set, is returned by every operation.
	Error error

	// Track calls for verification
	CallCount int
	LastOwner string
	LastRepo  string
	LastState string
}

var _ Client = (*FixtureClient)(nil)

// fixtureDataset is the complete canned response set for one repository.
type fixtureDataset struct {
	repository   *Repository
	releases     []Release
	issues       []Issue
	pullRequests []PullRequest
}

// NewFixtureClient creates a fixture client preloaded with the default
// dataset: delta-io/delta-rs and apache/hudi-rs as well-formed
// repositories, apache/iceberg-python as a deliberately broken one for
// exercising validation failures.
func NewFixtureClient() *FixtureClient {
	return &FixtureClient{
		datasets: map[string]*fixtureDataset{
			"delta-io/delta-rs":     deltaRSDataset(),
			"apache/hudi-rs":        hudiRSDataset(),
			"apache/iceberg-python": icebergPythonDataset(),
		},
	}
}

// SetDataset replaces the canned data for one repository.
func (f *FixtureClient) SetDataset(owner, repo string, bundle RepoBundle) {
	f.datasets[owner+"/"+repo] = &fixtureDataset{
		repository:   bundle.Metadata,
		releases:     bundle.Releases,
		issues:       bundle.Issues,
		pullRequests: bundle.PullRequests,
	}
}

func (f *FixtureClient) lookup(ctx context.Context, owner, repo, state string) (*fixtureDataset, error) {
	f.CallCount++
	f.LastOwner = owner
	f.LastRepo = repo
	f.LastState = state

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Error != nil {
		return nil, f.Error
	}
	ds, ok := f.datasets[owner+"/"+repo]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s/%s: %w", owner, repo, ghErrors.ErrRepoNotFound)
	}
	return ds, nil
}

// GetRepository implements Client.
func (f *FixtureClient) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	ds, err := f.lookup(ctx, owner, repo, "")
	if err != nil {
		return nil, err
	}
	return ds.repository, nil
}

// GetReleases implements Client.
func (f *FixtureClient) GetReleases(ctx context.Context, owner, repo string) ([]Release, error) {
	ds, err := f.lookup(ctx, owner, repo, "")
	if err != nil {
		return nil, err
	}
	return ds.releases, nil
}

// GetIssues implements Client.
func (f *FixtureClient) GetIssues(ctx context.Context, owner, repo, state string) ([]Issue, error) {
	ds, err := f.lookup(ctx, owner, repo, state)
	if err != nil {
		return nil, err
	}
	var issues []Issue
	for _, issue := range ds.issues {
		if issue.IsPullRequest() {
			continue
		}
		if state != StateAll && issue.State != state {
			continue
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// GetPullRequests implements Client. Mirrors the REST listing order:
// for StateAll the open entries come before the closed ones.
func (f *FixtureClient) GetPullRequests(ctx context.Context, owner, repo, state string) ([]PullRequest, error) {
	ds, err := f.lookup(ctx, owner, repo, state)
	if err != nil {
		return nil, err
	}
	var pulls []PullRequest
	for _, wanted := range []string{StateOpen, StateClosed} {
		if state != StateAll && state != wanted {
			continue
		}
		for _, pr := range ds.pullRequests {
			if pr.State == wanted {
				pulls = append(pulls, pr)
			}
		}
	}
	return pulls, nil
}

// FixtureOption allows configuring the fixture client.
type FixtureOption func(*FixtureClient)

// WithFixtureError makes every operation return the given error.
func WithFixtureError(err error) FixtureOption {
	return func(f *FixtureClient) {
		f.Error = err
	}
}

// WithFixtureBundle replaces the dataset for one repository.
func WithFixtureBundle(owner, repo string, bundle RepoBundle) FixtureOption {
	return func(f *FixtureClient) {
		f.SetDataset(owner, repo, bundle)
	}
}

// NewFixtureClientWithOptions creates a fixture client with options applied.
func NewFixtureClientWithOptions(opts ...FixtureOption) *FixtureClient {
	fixture := NewFixtureClient()
	for _, opt := range opts {
		opt(fixture)
	}
	return fixture
}

func fixtureTime(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

func repeatIssues(template Issue, n int) []Issue {
	issues := make([]Issue, n)
	for i := range issues {
		issues[i] = template
		issues[i].Number = template.Number + i
	}
	return issues
}

func repeatPulls(template PullRequest, n int) []PullRequest {
	pulls := make([]PullRequest, n)
	for i := range pulls {
		pulls[i] = template
		pulls[i].Number = template.Number + i
	}
	return pulls
}

func repeatReleases(template Release, n int) []Release {
	releases := make([]Release, n)
	for i := range releases {
		releases[i] = template
	}
	return releases
}

func deltaRSDataset() *fixtureDataset {
	published := fixtureTime("2023-01-01T00:00:00Z")
	issueClosed := fixtureTime("2023-05-15T00:00:00Z")
	prClosed := fixtureTime("2023-01-10T00:00:00Z")

	ds := &fixtureDataset{
		repository: &Repository{
			FullName:         "delta-io/delta-rs",
			Description:      "Native Rust implementation of Delta Lake",
			HTMLURL:          "https://github.com/delta-io/delta-rs",
			Language:         "Rust",
			StargazersCount:  2705,
			ForksCount:       468,
			SubscribersCount: 37,
			CreatedAt:        fixtureTime("2020-01-01T00:00:00Z"),
			UpdatedAt:        fixtureTime("2023-01-01T00:00:00Z"),
		},
		releases: repeatReleases(Release{
			TagName:     "v0.15.0",
			Name:        "Delta Rust v0.15.0",
			PublishedAt: &published,
		}, 89),
	}
	ds.issues = append(
		repeatIssues(Issue{
			Number:    100,
			Title:     "Performance improvement needed",
			State:     StateOpen,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
		}, 139),
		repeatIssues(Issue{
			Number:    1000,
			Title:     "Bug fix needed",
			State:     StateClosed,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
			ClosedAt:  &issueClosed,
		}, 1130)...)
	ds.pullRequests = append(
		repeatPulls(PullRequest{
			Number:    400,
			Title:     "Feature implementation",
			State:     StateOpen,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
		}, 17),
		repeatPulls(PullRequest{
			Number:    3000,
			Title:     "Bug fix PR",
			State:     StateClosed,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
			ClosedAt:  &prClosed,
		}, 1973)...)
	return ds
}

func hudiRSDataset() *fixtureDataset {
	published := fixtureTime("2023-01-01T00:00:00Z")
	issueClosed := fixtureTime("2023-02-15T00:00:00Z")
	prClosed := fixtureTime("2023-01-09T00:00:00Z")

	ds := &fixtureDataset{
		repository: &Repository{
			FullName:         "apache/hudi-rs",
			Description:      "Rust implementation of Apache Hudi",
			HTMLURL:          "https://github.com/apache/hudi-rs",
			Language:         "Rust",
			StargazersCount:  209,
			ForksCount:       42,
			SubscribersCount: 17,
			CreatedAt:        fixtureTime("2022-01-01T00:00:00Z"),
			UpdatedAt:        fixtureTime("2023-01-01T00:00:00Z"),
		},
		releases: repeatReleases(Release{
			TagName:     "v0.1.0",
			Name:        "Hudi Rust v0.1.0",
			PublishedAt: &published,
		}, 3),
	}
	ds.issues = append(
		repeatIssues(Issue{
			Number:    300,
			Title:     "Enhancement proposal",
			State:     StateOpen,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
		}, 28),
		repeatIssues(Issue{
			Number:    500,
			Title:     "Bug fix",
			State:     StateClosed,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
			ClosedAt:  &issueClosed,
		}, 62)...)
	ds.pullRequests = append(
		repeatPulls(PullRequest{
			Number:    600,
			Title:     "Enhancement PR",
			State:     StateOpen,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
		}, 13),
		repeatPulls(PullRequest{
			Number:    700,
			Title:     "Fix PR",
			State:     StateClosed,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
			ClosedAt:  &prClosed,
		}, 222)...)
	return ds
}

// icebergPythonDataset is deliberately malformed: missing html_url,
// negative counters, an issue stuck in an unknown state. Exercises the
// validation and metric edge paths the same way real dirty data would.
func icebergPythonDataset() *fixtureDataset {
	ds := &fixtureDataset{
		repository: &Repository{
			FullName:        "apache/iceberg-python",
			StargazersCount: -695,
			ForksCount:      268,
		},
		releases: repeatReleases(Release{}, 10),
	}
	ds.issues = append(
		repeatIssues(Issue{
			Number:    500,
			Title:     "Mislabeled issue",
			State:     "OPEN",
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
		}, 151),
		repeatIssues(Issue{
			Number: 900,
			Title:  "Issue without timestamps",
			State:  "done",
		}, 431)...)
	ds.pullRequests = append(
		repeatPulls(PullRequest{
			Number:    1100,
			Title:     "New feature PR",
			State:     StateOpen,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
		}, 76),
		repeatPulls(PullRequest{
			Number:    1200,
			Title:     "Documentation PR",
			State:     StateClosed,
			CreatedAt: fixtureTime("2023-01-01T00:00:00Z"),
		}, 1292)...)
	return ds
}
