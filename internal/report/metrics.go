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

package report

import (
	"time"

	"github.com/quaylabs/ghcompare/internal/github"
)

// Metrics is the comparison column computed for one repository.
type Metrics struct {
	Stars             int
	Forks             int
	Watchers          int
	Releases          int
	OpenIssues        int
	ClosedIssues      int
	AvgDaysIssueClose float64
	OpenPRs           int
	ClosedPRs         int
	AvgDaysPRClose    float64
}

// closable is what the average-close-time calculation needs from an item.
// Issues and pull requests both satisfy it.
type closable interface {
	lifetime() (state string, created time.Time, closed *time.Time)
}

type closableIssue github.Issue

func (i closableIssue) lifetime() (string, time.Time, *time.Time) {
	return i.State, i.CreatedAt, i.ClosedAt
}

type closablePR github.PullRequest

func (p closablePR) lifetime() (string, time.Time, *time.Time) {
	return p.State, p.CreatedAt, p.ClosedAt
}

// avgDaysUntilClosed averages the open-to-close interval, in days, over
// the closed items that carry both timestamps. Items in any other state,
// or with either timestamp missing, do not contribute to the average.
// Returns 0.0 when nothing qualifies.
func avgDaysUntilClosed(items []closable) float64 {
	var totalDays float64
	var count int
	for _, item := range items {
		state, created, closed := item.lifetime()
		if state != github.StateClosed || created.IsZero() || closed == nil {
			continue
		}
		totalDays += closed.Sub(created).Hours() / 24
		count++
	}
	if count == 0 {
		return 0.0
	}
	return totalDays / float64(count)
}

// ExtractMetrics computes the comparison column for one repository.
// Items whose state is neither open nor closed land in neither bucket.
func ExtractMetrics(bundle *github.RepoBundle) Metrics {
	m := Metrics{
		Stars:    bundle.Metadata.StargazersCount,
		Forks:    bundle.Metadata.ForksCount,
		Watchers: bundle.Metadata.SubscribersCount,
		Releases: len(bundle.Releases),
	}

	issueItems := make([]closable, 0, len(bundle.Issues))
	for _, issue := range bundle.Issues {
		switch issue.State {
		case github.StateOpen:
			m.OpenIssues++
		case github.StateClosed:
			m.ClosedIssues++
		}
		issueItems = append(issueItems, closableIssue(issue))
	}

	prItems := make([]closable, 0, len(bundle.PullRequests))
	for _, pr := range bundle.PullRequests {
		switch pr.State {
		case github.StateOpen:
			m.OpenPRs++
		case github.StateClosed:
			m.ClosedPRs++
		}
		prItems = append(prItems, closablePR(pr))
	}

	m.AvgDaysIssueClose = avgDaysUntilClosed(issueItems)
	m.AvgDaysPRClose = avgDaysUntilClosed(prItems)
	return m
}
