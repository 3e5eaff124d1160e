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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/quaylabs/ghcompare/internal/collect"
	"github.com/quaylabs/ghcompare/internal/config"
	"github.com/quaylabs/ghcompare/internal/github"
	"github.com/quaylabs/ghcompare/internal/output"
	"github.com/quaylabs/ghcompare/internal/report"
	"github.com/quaylabs/ghcompare/internal/state"
)

// reportCmd represents the report command
func newReportCommand(configPath *string) *cobra.Command {
	var (
		token      string
		fixtures   bool
		refresh    bool
		repos      []string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a comparison table across repositories",
		Long: `Render a comparison table with one column per repository and one row
per metric: stars, forks, watchers, release and issue counts, pull
request counts and average close times.

Stored bundles are used when available; repositories without stored
data are fetched first. Use --refresh to refetch everything. The
repository list comes from the config unless --repo is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), reportOptions{
				configPath: *configPath,
				token:      token,
				fixtures:   fixtures,
				refresh:    refresh,
				repos:      repos,
				outputFile: outputFile,
			})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides the token environment variable)")
	cmd.Flags().BoolVar(&fixtures, "fixtures", false, "Serve canned data instead of calling the API")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch all repositories instead of using stored bundles")
	cmd.Flags().StringSliceVar(&repos, "repo", nil, "Repository to compare in <owner>/<repo> form (repeatable, overrides config)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Also write the report as a markdown file with this name")

	return cmd
}

type reportOptions struct {
	configPath string
	token      string
	fixtures   bool
	refresh    bool
	repos      []string
	outputFile string
}

// runReport executes the report command
func runReport(ctx context.Context, opts reportOptions) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if len(opts.repos) > 0 {
		cfg.Report.Repositories = opts.repos
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fixtures := opts.fixtures || cfg.GitHub.Fixtures
	client, _ := buildClient(cfg, opts.token, fixtures)
	collector := collect.NewCollector(client, log.Default())
	store := output.NewFileStore(cfg.Defaults.OutputDir, cfg.Defaults.KeepBackups)
	maxAge := time.Duration(cfg.Report.MaxAgeHours) * time.Hour

	columns := make([]report.Column, 0, len(cfg.Report.Repositories))
	for _, repository := range cfg.Report.Repositories {
		owner, repo, err := parseRepository(repository)
		if err != nil {
			return err
		}

		bundle, err := loadOrFetchBundle(ctx, collector, store, owner, repo, opts.refresh)
		if err != nil {
			return err
		}
		warnIfStale(cfg, repository, maxAge)

		metrics := report.ExtractMetrics(bundle)
		if err := report.CheckMetrics(metrics); err != nil {
			return fmt.Errorf("metrics for %s: %w", repository, err)
		}
		columns = append(columns, report.Column{Name: repository, Metrics: metrics})
	}

	comparison := report.Build(columns)
	if err := comparison.Render(os.Stdout); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if opts.outputFile != "" {
		if err := store.WriteText(opts.outputFile, comparison.Markdown()); err != nil {
			return fmt.Errorf("writing report file: %w", err)
		}
		log.Info("report written", "file", opts.outputFile, "dir", cfg.Defaults.OutputDir)
	}

	return nil
}

// loadOrFetchBundle returns the stored bundle for a repository, falling
// back to a fresh fetch when nothing is stored or refresh is requested.
// Stored bundles are revalidated: a file someone edited by hand fails
// the same checks a fetched one would.
func loadOrFetchBundle(ctx context.Context, collector *collect.Collector, store *output.FileStore, owner, repo string, refresh bool) (*github.RepoBundle, error) {
	name := output.BundleFile(owner, repo)
	if !refresh {
		var bundle github.RepoBundle
		if err := store.ReadJSON(name, &bundle); err == nil {
			if err := report.ValidateBundle(&bundle); err != nil {
				return nil, fmt.Errorf("stored bundle for %s/%s: %w", owner, repo, err)
			}
			log.Debug("using stored bundle", "repo", owner+"/"+repo)
			return &bundle, nil
		}
	}

	bundle, err := collector.FetchRepoBundle(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	if err := store.WriteJSON(name, bundle); err != nil {
		return nil, fmt.Errorf("storing bundle: %w", err)
	}
	return bundle, nil
}

// warnIfStale prints a warning when the stored data for a repository is
// older than the configured freshness threshold. Missing state is not an
// error; it just means the repository was never fetched through the
// fetch command.
func warnIfStale(cfg *config.Config, repository string, maxAge time.Duration) {
	fetchState, err := state.LoadState(state.FilePath(cfg.Defaults.StateDir, repository))
	if err != nil {
		return
	}
	now := time.Now().UTC()
	if fetchState.Stale(now, maxAge) {
		log.Warn("stored data is stale",
			"repo", repository,
			"age", fetchState.Age(now).Round(time.Minute),
			"max_age", maxAge)
	}
}
