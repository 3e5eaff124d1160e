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

package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quaylabs/ghcompare/internal/collect"
	"github.com/quaylabs/ghcompare/internal/output"
	"github.com/quaylabs/ghcompare/internal/report"
	"github.com/quaylabs/ghcompare/test/testutil"
)

func TestReportAcrossRepositories(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.AddRepo("acme", "widgets", testutil.GenerateRepoData("acme", "widgets", testutil.RepoDataSpec{
		Stars:        500,
		Forks:        80,
		Watchers:     25,
		Releases:     12,
		OpenIssues:   30,
		ClosedIssues: 70,
		OpenPRs:      5,
		ClosedPRs:    40,
		CloseAfter:   24 * time.Hour,
	}))
	server.AddRepo("acme", "gadgets", testutil.GenerateRepoData("acme", "gadgets", testutil.RepoDataSpec{
		Stars:        80,
		Forks:        10,
		Watchers:     4,
		Releases:     2,
		OpenIssues:   8,
		ClosedIssues: 3,
		OpenPRs:      1,
		ClosedPRs:    6,
		CloseAfter:   120 * time.Hour,
	}))

	collector := collect.NewCollector(newClient(server.URL), log.New(io.Discard))

	var columns []report.Column
	for _, repository := range []string{"acme/widgets", "acme/gadgets"} {
		owner, repo, _ := strings.Cut(repository, "/")
		bundle, err := collector.FetchRepoBundle(context.Background(), owner, repo)
		if err != nil {
			t.Fatalf("fetching %s: %v", repository, err)
		}
		metrics := report.ExtractMetrics(bundle)
		if err := report.CheckMetrics(metrics); err != nil {
			t.Fatalf("metrics for %s: %v", repository, err)
		}
		columns = append(columns, report.Column{Name: repository, Metrics: metrics})
	}

	comparison := report.Build(columns)
	md := comparison.Markdown()

	for _, want := range []string{
		"| metric | acme/widgets | acme/gadgets |",
		"| stars | 500 | 80 |",
		"| releases | 12 | 2 |",
		"| open issues | 30 | 8 |",
		"| closed issues | 70 | 3 |",
		"| avg days until issue was closed | 1.0 | 5.0 |",
		"| open PRs | 5 | 1 |",
		"| closed PRs | 40 | 6 |",
		"| avg days until PR was closed | 1.0 | 5.0 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	var rendered strings.Builder
	if err := comparison.Render(&rendered); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(rendered.String(), "acme/widgets") {
		t.Error("rendered table missing repository column")
	}
}

func TestReportPersistenceWithBackups(t *testing.T) {
	dir := t.TempDir()
	store := output.NewFileStore(dir, true)

	comparison := report.Build([]report.Column{
		{Name: "acme/widgets", Metrics: report.Metrics{Stars: 500}},
	})

	if err := store.WriteText("report.md", comparison.Markdown()); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if err := store.WriteText("report.md", comparison.Markdown()); err != nil {
		t.Fatalf("second WriteText failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.md"))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(data), "| stars | 500 |") {
		t.Errorf("report content wrong:\n%s", data)
	}

	backups, err := store.Backups("report.md")
	if err != nil {
		t.Fatalf("Backups failed: %v", err)
	}
	if len(backups) == 0 {
		t.Error("overwriting the report must leave a timestamped backup")
	}
}
