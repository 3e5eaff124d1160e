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

// Package report turns fetched repository bundles into comparison metrics
// and renders them as a table, one column per repository.
package report

import (
	"fmt"
	"math"

	ghErrors "github.com/quaylabs/ghcompare/internal/errors"
	"github.com/quaylabs/ghcompare/internal/github"
)

// ValidateBundle checks that a fetched bundle has the shape downstream
// processing relies on: metadata present and carrying its canonical URL,
// and all three listings present (empty is fine, absent is not).
func ValidateBundle(bundle *github.RepoBundle) error {
	if bundle == nil {
		return fmt.Errorf("bundle is nil: %w", ghErrors.ErrInvalidBundle)
	}
	if bundle.Metadata == nil {
		return fmt.Errorf("bundle has no metadata: %w", ghErrors.ErrInvalidBundle)
	}
	if bundle.Metadata.HTMLURL == "" {
		return fmt.Errorf("bundle metadata has no html_url: %w", ghErrors.ErrInvalidBundle)
	}
	if bundle.Releases == nil {
		return fmt.Errorf("bundle has no releases list: %w", ghErrors.ErrInvalidBundle)
	}
	if bundle.Issues == nil {
		return fmt.Errorf("bundle has no issues list: %w", ghErrors.ErrInvalidBundle)
	}
	if bundle.PullRequests == nil {
		return fmt.Errorf("bundle has no pull request list: %w", ghErrors.ErrInvalidBundle)
	}
	return nil
}

// CheckMetrics verifies that computed metrics are plausible before they
// reach a report. Close-time averages must be finite and non-negative;
// a violation means the source timestamps were garbage.
func CheckMetrics(m Metrics) error {
	for _, avg := range []struct {
		name  string
		value float64
	}{
		{"avg days until issue was closed", m.AvgDaysIssueClose},
		{"avg days until PR was closed", m.AvgDaysPRClose},
	} {
		if math.IsNaN(avg.value) || math.IsInf(avg.value, 0) {
			return fmt.Errorf("%s is not finite: %w", avg.name, ghErrors.ErrInvalidBundle)
		}
		if avg.value < 0 {
			return fmt.Errorf("%s is negative (%f): %w", avg.name, avg.value, ghErrors.ErrInvalidBundle)
		}
	}
	return nil
}
