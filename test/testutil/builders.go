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

package testutil

import (
	"fmt"
	"time"
)

// RepoDataSpec describes the shape of a generated repository dataset.
type RepoDataSpec struct {
	Stars        int
	Forks        int
	Watchers     int
	Releases     int
	OpenIssues   int
	ClosedIssues int
	// EmbeddedPRs is how many pull-request entries the issues listing
	// interleaves, the way the real endpoint does.
	EmbeddedPRs int
	OpenPRs     int
	ClosedPRs   int
	// CloseAfter is the open-to-close interval stamped on every closed
	// issue and pull request.
	CloseAfter time.Duration
}

// GenerateRepoData builds a canned dataset for owner/repo.
func GenerateRepoData(owner, repo string, spec RepoDataSpec) *RepoData {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closed := created.Add(spec.CloseAfter)

	data := &RepoData{
		Metadata: map[string]any{
			"full_name":         owner + "/" + repo,
			"description":       "Generated test repository",
			"html_url":          fmt.Sprintf("https://github.com/%s/%s", owner, repo),
			"language":          "Go",
			"stargazers_count":  spec.Stars,
			"forks_count":       spec.Forks,
			"subscribers_count": spec.Watchers,
			"created_at":        created.Format(time.RFC3339),
			"updated_at":        created.Format(time.RFC3339),
		},
	}

	for i := 0; i < spec.Releases; i++ {
		data.Releases = append(data.Releases, map[string]any{
			"tag_name":     fmt.Sprintf("v0.%d.0", spec.Releases-i),
			"name":         fmt.Sprintf("Release v0.%d.0", spec.Releases-i),
			"published_at": created.Format(time.RFC3339),
		})
	}

	number := 1
	for i := 0; i < spec.OpenIssues; i++ {
		data.Issues = append(data.Issues, map[string]any{
			"number":     number,
			"title":      fmt.Sprintf("Issue %d", number),
			"state":      "open",
			"created_at": created.Format(time.RFC3339),
		})
		number++
	}
	for i := 0; i < spec.ClosedIssues; i++ {
		data.Issues = append(data.Issues, map[string]any{
			"number":     number,
			"title":      fmt.Sprintf("Issue %d", number),
			"state":      "closed",
			"created_at": created.Format(time.RFC3339),
			"closed_at":  closed.Format(time.RFC3339),
		})
		number++
	}
	for i := 0; i < spec.EmbeddedPRs; i++ {
		data.Issues = append(data.Issues, map[string]any{
			"number":     number,
			"title":      fmt.Sprintf("PR %d seen through the issues listing", number),
			"state":      "open",
			"created_at": created.Format(time.RFC3339),
			"pull_request": map[string]any{
				"url": fmt.Sprintf("https://api.github.com/repos/%s/%s/pulls/%d", owner, repo, number),
			},
		})
		number++
	}

	for i := 0; i < spec.OpenPRs; i++ {
		data.Pulls = append(data.Pulls, map[string]any{
			"number":     number,
			"title":      fmt.Sprintf("PR %d", number),
			"state":      "open",
			"created_at": created.Format(time.RFC3339),
		})
		number++
	}
	for i := 0; i < spec.ClosedPRs; i++ {
		data.Pulls = append(data.Pulls, map[string]any{
			"number":     number,
			"title":      fmt.Sprintf("PR %d", number),
			"state":      "closed",
			"created_at": created.Format(time.RFC3339),
			"closed_at":  closed.Format(time.RFC3339),
			"merged_at":  closed.Format(time.RFC3339),
		})
		number++
	}

	return data
}
