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
	"errors"
	"math"
	"testing"

	ghErrors "github.com/quaylabs/ghcompare/internal/errors"
	"github.com/quaylabs/ghcompare/internal/github"
)

func validBundle() *github.RepoBundle {
	return &github.RepoBundle{
		Metadata: &github.Repository{
			FullName: "o/r",
			HTMLURL:  "https://github.com/o/r",
		},
		Releases:     []github.Release{},
		Issues:       []github.Issue{},
		PullRequests: []github.PullRequest{},
	}
}

func TestValidateBundle(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*github.RepoBundle) *github.RepoBundle
		wantErr bool
	}{
		{
			name:   "valid bundle with empty listings",
			mutate: func(b *github.RepoBundle) *github.RepoBundle { return b },
		},
		{
			name:    "nil bundle",
			mutate:  func(b *github.RepoBundle) *github.RepoBundle { return nil },
			wantErr: true,
		},
		{
			name: "missing metadata",
			mutate: func(b *github.RepoBundle) *github.RepoBundle {
				b.Metadata = nil
				return b
			},
			wantErr: true,
		},
		{
			name: "missing html_url",
			mutate: func(b *github.RepoBundle) *github.RepoBundle {
				b.Metadata.HTMLURL = ""
				return b
			},
			wantErr: true,
		},
		{
			name: "missing releases list",
			mutate: func(b *github.RepoBundle) *github.RepoBundle {
				b.Releases = nil
				return b
			},
			wantErr: true,
		},
		{
			name: "missing issues list",
			mutate: func(b *github.RepoBundle) *github.RepoBundle {
				b.Issues = nil
				return b
			},
			wantErr: true,
		},
		{
			name: "missing pull request list",
			mutate: func(b *github.RepoBundle) *github.RepoBundle {
				b.PullRequests = nil
				return b
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBundle(tt.mutate(validBundle()))
			if tt.wantErr {
				if !errors.Is(err, ghErrors.ErrInvalidBundle) {
					t.Errorf("error = %v, want ErrInvalidBundle", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckMetrics(t *testing.T) {
	tests := []struct {
		name    string
		metrics Metrics
		wantErr bool
	}{
		{
			name:    "plausible metrics",
			metrics: Metrics{AvgDaysIssueClose: 12.5, AvgDaysPRClose: 3.2},
		},
		{
			name:    "zero averages",
			metrics: Metrics{},
		},
		{
			name:    "negative issue average",
			metrics: Metrics{AvgDaysIssueClose: -7.0},
			wantErr: true,
		},
		{
			name:    "negative pr average",
			metrics: Metrics{AvgDaysPRClose: -0.1},
			wantErr: true,
		},
		{
			name:    "nan average",
			metrics: Metrics{AvgDaysIssueClose: math.NaN()},
			wantErr: true,
		},
		{
			name:    "infinite average",
			metrics: Metrics{AvgDaysPRClose: math.Inf(1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMetrics(tt.metrics)
			if tt.wantErr {
				if !errors.Is(err, ghErrors.ErrInvalidBundle) {
					t.Errorf("error = %v, want ErrInvalidBundle", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
