package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/quaylabs/ghcompare/internal/config"
	ghErrors "github.com/quaylabs/ghcompare/internal/errors"
	"github.com/quaylabs/ghcompare/internal/github"
	"github.com/quaylabs/ghcompare/internal/metadata"
	"github.com/quaylabs/ghcompare/internal/state"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			input:     "delta-io/delta-rs",
			wantOwner: "delta-io",
			wantRepo:  "delta-rs",
			wantErr:   false,
		},
		{
			input:     "apache/hudi-rs",
			wantOwner: "apache",
			wantRepo:  "hudi-rs",
			wantErr:   false,
		},
		{
			input:   "invalid",
			wantErr: true,
		},
		{
			input:   "too/many/slashes",
			wantErr: true,
		},
		{
			input:   "/repo",
			wantErr: true,
		},
		{
			input:   "owner/",
			wantErr: true,
		},
		{
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		owner, repo, err := parseRepository(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRepository(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr {
			if owner != tt.wantOwner {
				t.Errorf("parseRepository(%q) owner = %q, want %q", tt.input, owner, tt.wantOwner)
			}
			if repo != tt.wantRepo {
				t.Errorf("parseRepository(%q) repo = %q, want %q", tt.input, repo, tt.wantRepo)
			}
		}
	}
}

func TestGetToken(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.GitHub.TokenEnv = "GHCOMPARE_TEST_TOKEN"

	t.Setenv("GHCOMPARE_TEST_TOKEN", "env-token")
	if got := getToken("", cfg); got != "env-token" {
		t.Errorf("getToken from env = %q, want env-token", got)
	}
	if got := getToken("flag-token", cfg); got != "flag-token" {
		t.Errorf("getToken = %q, flag must win over env", got)
	}

	os.Unsetenv("GHCOMPARE_TEST_TOKEN")
	if got := getToken("", cfg); got != "" {
		t.Errorf("getToken = %q, want empty without flag or env", got)
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: 0,
		},
		{
			name:     "request rejected",
			err:      fmt.Errorf("fetch: %w", ghErrors.ErrRequestRejected),
			wantCode: 2,
		},
		{
			name:     "repository not found",
			err:      fmt.Errorf("fetch: %w", ghErrors.ErrRepoNotFound),
			wantCode: 2,
		},
		{
			name:     "rate limit timeout",
			err:      fmt.Errorf("fetch: %w", ghErrors.ErrRateLimitTimeout),
			wantCode: 2,
		},
		{
			name:     "server failure",
			err:      fmt.Errorf("fetch: %w", ghErrors.ErrServerFailure),
			wantCode: 3,
		},
		{
			name:     "network failure",
			err:      fmt.Errorf("fetch: %w", ghErrors.ErrNetworkFailure),
			wantCode: 3,
		},
		{
			name:     "invalid bundle",
			err:      fmt.Errorf("validate: %w", ghErrors.ErrInvalidBundle),
			wantCode: 4,
		},
		{
			name:     "generic error",
			err:      errors.New("something else"),
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorToExitCode(tt.err)
			if got != tt.wantCode {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
		})
	}
}

func TestBuildClient(t *testing.T) {
	cfg := config.DefaultConfig()

	client, restClient := buildClient(cfg, "", true)
	if _, ok := client.(*github.FixtureClient); !ok {
		t.Errorf("fixtures mode client = %T, want *github.FixtureClient", client)
	}
	if restClient != nil {
		t.Error("fixtures mode must not return a REST client")
	}

	client, restClient = buildClient(cfg, "token", false)
	if restClient == nil {
		t.Fatal("real mode must return the REST client")
	}
	if client != github.Client(restClient) {
		t.Error("real mode must serve the REST client through the interface")
	}
}

// writeTestConfig writes a config pointing all directories into tmpDir
// and returns its path.
func writeTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := fmt.Sprintf(`github:
  fixtures: true
defaults:
  output_dir: %s
  state_dir: %s
report:
  repositories:
    - delta-io/delta-rs
    - apache/hudi-rs
`, filepath.Join(tmpDir, "data"), filepath.Join(tmpDir, "state"))
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func TestRunFetch_Fixtures(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	if err := runFetch(context.Background(), configPath, "delta-io/delta-rs", "", false); err != nil {
		t.Fatalf("runFetch failed: %v", err)
	}

	// Bundle lands in the output dir
	bundlePath := filepath.Join(tmpDir, "data", "delta-io-delta-rs.json")
	data, err := os.ReadFile(bundlePath)
	if err != nil {
		t.Fatalf("expected bundle file: %v", err)
	}
	var bundle github.RepoBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		t.Fatalf("bundle file is not valid JSON: %v", err)
	}
	if len(bundle.Issues) != 1269 || len(bundle.PullRequests) != 1990 {
		t.Errorf("bundle counts = %d issues / %d pulls, want 1269/1990",
			len(bundle.Issues), len(bundle.PullRequests))
	}

	// Fetch state is recorded
	fetchState, err := state.LoadState(state.FilePath(filepath.Join(tmpDir, "state"), "delta-io/delta-rs"))
	if err != nil {
		t.Fatalf("expected fetch state: %v", err)
	}
	if fetchState.Releases != 89 {
		t.Errorf("state releases = %d, want 89", fetchState.Releases)
	}

	// Fetch metadata is recorded and marked as fixture data
	meta, err := metadata.LoadLatestMetadata(filepath.Join(tmpDir, "state"), "delta-io", "delta-rs")
	if err != nil {
		t.Fatalf("LoadLatestMetadata failed: %v", err)
	}
	if meta == nil {
		t.Fatal("expected fetch metadata record")
	}
	if !meta.Fixtures {
		t.Error("metadata must record that fixtures served the data")
	}
}

func TestRunFetch_UnknownRepo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	err := runFetch(context.Background(), configPath, "nobody/nothing", "", false)
	if !errors.Is(err, ghErrors.ErrRepoNotFound) {
		t.Errorf("error = %v, want ErrRepoNotFound", err)
	}
	if _, statErr := os.Stat(filepath.Join(tmpDir, "data", "nobody-nothing.json")); !os.IsNotExist(statErr) {
		t.Error("no bundle file must be written on failure")
	}
}

func TestRunFetch_InvalidData(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	// The iceberg-python fixture fails bundle validation.
	err := runFetch(context.Background(), configPath, "apache/iceberg-python", "", false)
	if !errors.Is(err, ghErrors.ErrInvalidBundle) {
		t.Errorf("error = %v, want ErrInvalidBundle", err)
	}
	if mapErrorToExitCode(err) != 4 {
		t.Errorf("exit code = %d, want 4", mapErrorToExitCode(err))
	}
}

func TestRunFetch_BadRepoArgument(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	if err := runFetch(context.Background(), configPath, "not-a-repo", "", false); err == nil {
		t.Error("expected error for malformed repository argument")
	}
}
