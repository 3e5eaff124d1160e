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

import "time"

// Repository holds the metadata fields we consume from the repository
// endpoint. Only a subset of the API response is decoded; unknown fields
// are dropped by the JSON decoder.
type Repository struct {
	FullName         string    `json:"full_name"`
	Description      string    `json:"description"`
	HTMLURL          string    `json:"html_url"`
	Language         string    `json:"language"`
	StargazersCount  int       `json:"stargazers_count"`
	ForksCount       int       `json:"forks_count"`
	SubscribersCount int       `json:"subscribers_count"`
	OpenIssuesCount  int       `json:"open_issues_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Release represents a single published release.
type Release struct {
	TagName     string     `json:"tag_name"`
	Name        string     `json:"name"`
	Draft       bool       `json:"draft"`
	Prerelease  bool       `json:"prerelease"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Issue represents an item from the issues listing. The listing endpoint
// also returns pull requests; those carry a pull_request cross-reference
// which callers use to tell the two apart.
type Issue struct {
	Number      int              `json:"number"`
	Title       string           `json:"title"`
	State       string           `json:"state"`
	CreatedAt   time.Time        `json:"created_at"`
	ClosedAt    *time.Time       `json:"closed_at,omitempty"`
	PullRequest *PullRequestLink `json:"pull_request,omitempty"`
}

// PullRequestLink is the cross-reference an issues listing carries when the
// item is actually a pull request. Its presence alone is the signal; the
// URL is never followed.
type PullRequestLink struct {
	URL string `json:"url"`
}

// IsPullRequest reports whether this issue entry is a pull request in disguise.
func (i Issue) IsPullRequest() bool {
	return i.PullRequest != nil
}

// PullRequest represents a pull request from the pulls listing.
type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
}

// RepoBundle is the complete dataset fetched for one repository.
// A bundle is only handed to callers when every part fetched successfully.
type RepoBundle struct {
	Metadata     *Repository   `json:"metadata"`
	Releases     []Release     `json:"releases"`
	Issues       []Issue       `json:"issues"`
	PullRequests []PullRequest `json:"prs"`
}

// Item states used across listings and metrics.
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)
