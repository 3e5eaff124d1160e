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
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Column pairs a repository name with its computed metrics.
type Column struct {
	Name    string
	Metrics Metrics
}

// Report is a rendered-ready comparison: one column per repository,
// one row per metric. Row and column order never change between runs.
type Report struct {
	columns []Column
}

// metricRows defines the fixed row order of every report.
var metricRows = []struct {
	label string
	value func(Metrics) string
}{
	{"stars", func(m Metrics) string { return strconv.Itoa(m.Stars) }},
	{"forks", func(m Metrics) string { return strconv.Itoa(m.Forks) }},
	{"watchers", func(m Metrics) string { return strconv.Itoa(m.Watchers) }},
	{"releases", func(m Metrics) string { return strconv.Itoa(m.Releases) }},
	{"open issues", func(m Metrics) string { return strconv.Itoa(m.OpenIssues) }},
	{"closed issues", func(m Metrics) string { return strconv.Itoa(m.ClosedIssues) }},
	{"avg days until issue was closed", func(m Metrics) string { return formatDays(m.AvgDaysIssueClose) }},
	{"open PRs", func(m Metrics) string { return strconv.Itoa(m.OpenPRs) }},
	{"closed PRs", func(m Metrics) string { return strconv.Itoa(m.ClosedPRs) }},
	{"avg days until PR was closed", func(m Metrics) string { return formatDays(m.AvgDaysPRClose) }},
}

// formatDays rounds to one decimal place.
func formatDays(days float64) string {
	return strconv.FormatFloat(math.Round(days*10)/10, 'f', 1, 64)
}

// Build assembles a report with columns in the given order.
func Build(columns []Column) *Report {
	return &Report{columns: columns}
}

// Rows returns the table as a header row followed by one row per metric.
func (r *Report) Rows() [][]string {
	header := make([]string, 0, len(r.columns)+1)
	header = append(header, "metric")
	for _, col := range r.columns {
		header = append(header, col.Name)
	}

	rows := [][]string{header}
	for _, row := range metricRows {
		line := make([]string, 0, len(r.columns)+1)
		line = append(line, row.label)
		for _, col := range r.columns {
			line = append(line, row.value(col.Metrics))
		}
		rows = append(rows, line)
	}
	return rows
}

// Markdown renders the report as a pipe table suitable for files.
func (r *Report) Markdown() string {
	rows := r.Rows()
	var b strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&b, "| %s |\n", strings.Join(row, " | "))
		if i == 0 {
			separators := make([]string, len(row))
			for j := range separators {
				separators[j] = "---"
			}
			fmt.Fprintf(&b, "| %s |\n", strings.Join(separators, " | "))
		}
	}
	return b.String()
}

// Render writes the report as a styled terminal table.
func (r *Report) Render(w io.Writer) error {
	return pterm.DefaultTable.
		WithWriter(w).
		WithHasHeader().
		WithBoxed().
		WithData(pterm.TableData(r.Rows())).
		Render()
}
