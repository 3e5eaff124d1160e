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
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/quaylabs/ghcompare/internal/collect"
	"github.com/quaylabs/ghcompare/internal/config"
	ghErrors "github.com/quaylabs/ghcompare/internal/errors"
	"github.com/quaylabs/ghcompare/internal/github"
	"github.com/quaylabs/ghcompare/internal/metadata"
	"github.com/quaylabs/ghcompare/internal/output"
	"github.com/quaylabs/ghcompare/internal/state"
)

// fetchCmd represents the fetch command
func newFetchCommand(configPath *string) *cobra.Command {
	var (
		token    string
		fixtures bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <owner>/<repo>",
		Short: "Fetch repository data and store it locally",
		Long: `Fetch metadata, releases, issues and pull requests for a repository
and store the complete bundle on disk for later reporting.

The repository must be specified in the format: <owner>/<repo>
For example: delta-io/delta-rs, apache/hudi-rs

Authentication is optional for public repositories:
  - Use --token flag to provide a token directly
  - Or set the token environment variable named in the config`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), *configPath, args[0], token, fixtures)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides the token environment variable)")
	cmd.Flags().BoolVar(&fixtures, "fixtures", false, "Serve canned data instead of calling the API")

	return cmd
}

// runFetch executes the fetch command
func runFetch(ctx context.Context, configPath, repoArg, tokenFlag string, fixturesFlag bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	owner, repo, err := parseRepository(repoArg)
	if err != nil {
		return err
	}

	fixtures := fixturesFlag || cfg.GitHub.Fixtures
	client, restClient := buildClient(cfg, tokenFlag, fixtures)
	collector := collect.NewCollector(client, log.Default())
	tracker := metadata.New()

	spinner, _ := pterm.DefaultSpinner.
		WithWriter(os.Stderr).
		Start(fmt.Sprintf("Fetching %s/%s...", owner, repo))

	bundle, err := collector.FetchRepoBundle(ctx, owner, repo)
	if err != nil {
		spinner.Fail(fmt.Sprintf("Fetch of %s/%s failed", owner, repo))
		return err
	}
	spinner.Success(fmt.Sprintf("Fetched %s/%s: %d releases, %d issues, %d pull requests",
		owner, repo, len(bundle.Releases), len(bundle.Issues), len(bundle.PullRequests)))

	store := output.NewFileStore(cfg.Defaults.OutputDir, cfg.Defaults.KeepBackups)
	if err := store.WriteJSON(output.BundleFile(owner, repo), bundle); err != nil {
		return fmt.Errorf("storing bundle: %w", err)
	}

	fetchState := &state.FetchState{
		Version:       state.CurrentVersion,
		Repository:    owner + "/" + repo,
		LastFetchTime: time.Now().UTC(),
		Releases:      len(bundle.Releases),
		Issues:        len(bundle.Issues),
		PullRequests:  len(bundle.PullRequests),
	}
	if err := state.SaveState(fetchState, state.FilePath(cfg.Defaults.StateDir, fetchState.Repository)); err != nil {
		return fmt.Errorf("recording fetch state: %w", err)
	}

	if restClient != nil {
		tracker.AddAPICalls(restClient.Requests())
	}
	tracker.RecordCounts(len(bundle.Releases), len(bundle.Issues), len(bundle.PullRequests))
	meta := tracker.GenerateMetadata(version, metadata.FetchParams{
		Owner:       owner,
		Repository:  repo,
		APIEndpoint: cfg.GitHub.APIEndpoint,
	}, fixtures)
	if err := metadata.SaveMetadata(meta, cfg.Defaults.StateDir); err != nil {
		return fmt.Errorf("recording fetch metadata: %w", err)
	}

	return nil
}

// buildClient selects the data client. The second return value is non-nil
// only for the real REST client, which tracks its request count.
func buildClient(cfg *config.Config, tokenFlag string, fixtures bool) (github.Client, *github.RESTClient) {
	if fixtures {
		return github.NewFixtureClient(), nil
	}
	restClient := github.NewRESTClient(github.ClientConfig{
		BaseURL:    cfg.GitHub.APIEndpoint,
		Token:      getToken(tokenFlag, cfg),
		MaxRetries: cfg.Defaults.RetryAttempts,
		BaseDelay:  time.Duration(cfg.Defaults.RetryDelaySeconds) * time.Second,
		Logger:     log.Default(),
	})
	return restClient, restClient
}

// parseRepository parses an owner/repo string into its components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// getToken returns the GitHub token from the flag or the environment
// variable the config names. Empty means unauthenticated requests.
func getToken(flagToken string, cfg *config.Config) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(cfg.GitHub.TokenEnv)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, ghErrors.ErrInvalidBundle) {
		return 4
	}

	if errors.Is(err, ghErrors.ErrServerFailure) ||
		errors.Is(err, ghErrors.ErrNetworkFailure) {
		return 3
	}

	if errors.Is(err, ghErrors.ErrRequestRejected) ||
		errors.Is(err, ghErrors.ErrRepoNotFound) ||
		errors.Is(err, ghErrors.ErrRateLimitTimeout) {
		return 2
	}

	return 1 // General error
}
