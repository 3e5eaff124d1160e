package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ghErrors "github.com/quaylabs/ghcompare/internal/errors"
)

func TestRunReport_Fixtures(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	err := runReport(context.Background(), reportOptions{
		configPath: configPath,
		outputFile: "report.md",
	})
	if err != nil {
		t.Fatalf("runReport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "data", "report.md"))
	if err != nil {
		t.Fatalf("expected report file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "| metric | delta-io/delta-rs | apache/hudi-rs |") {
		t.Errorf("report header missing or out of order:\n%s", content)
	}
	for _, want := range []string{
		"| stars | 2705 | 209 |",
		"| releases | 89 | 3 |",
		"| open issues | 139 | 28 |",
		"| closed issues | 1130 | 62 |",
		"| open PRs | 17 | 13 |",
		"| closed PRs | 1973 | 222 |",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing row %q:\n%s", want, content)
		}
	}

	// Bundles fetched for the report are stored for reuse
	if _, err := os.Stat(filepath.Join(tmpDir, "data", "delta-io-delta-rs.json")); err != nil {
		t.Errorf("expected stored bundle: %v", err)
	}
}

func TestRunReport_RepoFlagOverridesConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	err := runReport(context.Background(), reportOptions{
		configPath: configPath,
		repos:      []string{"apache/hudi-rs"},
		outputFile: "report.md",
	})
	if err != nil {
		t.Fatalf("runReport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "data", "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if strings.Contains(content, "delta-io/delta-rs") {
		t.Error("report includes a repository the --repo flag excluded")
	}
	if !strings.Contains(content, "apache/hudi-rs") {
		t.Error("report missing the requested repository")
	}
}

func TestRunReport_UsesStoredBundle(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	if err := runFetch(context.Background(), configPath, "delta-io/delta-rs", "", false); err != nil {
		t.Fatalf("runFetch failed: %v", err)
	}

	// Replace the stored bundle with one that has recognizable numbers.
	bundlePath := filepath.Join(tmpDir, "data", "delta-io-delta-rs.json")
	custom := `{
		"metadata": {"full_name": "delta-io/delta-rs", "html_url": "https://github.com/delta-io/delta-rs", "stargazers_count": 42424},
		"releases": [],
		"issues": [],
		"prs": []
	}`
	if err := os.WriteFile(bundlePath, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	err := runReport(context.Background(), reportOptions{
		configPath: configPath,
		repos:      []string{"delta-io/delta-rs"},
		outputFile: "report.md",
	})
	if err != nil {
		t.Fatalf("runReport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "data", "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "42424") {
		t.Error("report did not use the stored bundle")
	}
}

func TestRunReport_RefreshIgnoresStoredBundle(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	bundlePath := filepath.Join(tmpDir, "data", "delta-io-delta-rs.json")
	if err := os.MkdirAll(filepath.Dir(bundlePath), 0755); err != nil {
		t.Fatal(err)
	}
	stale := `{
		"metadata": {"full_name": "delta-io/delta-rs", "html_url": "https://github.com/delta-io/delta-rs", "stargazers_count": 1},
		"releases": [],
		"issues": [],
		"prs": []
	}`
	if err := os.WriteFile(bundlePath, []byte(stale), 0644); err != nil {
		t.Fatal(err)
	}

	err := runReport(context.Background(), reportOptions{
		configPath: configPath,
		repos:      []string{"delta-io/delta-rs"},
		refresh:    true,
		outputFile: "report.md",
	})
	if err != nil {
		t.Fatalf("runReport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "data", "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "2705") {
		t.Error("refresh must refetch instead of using the stored bundle")
	}
}

func TestRunReport_InvalidStoredBundle(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	bundlePath := filepath.Join(tmpDir, "data", "delta-io-delta-rs.json")
	if err := os.MkdirAll(filepath.Dir(bundlePath), 0755); err != nil {
		t.Fatal(err)
	}
	// Metadata without its canonical URL fails revalidation.
	broken := `{
		"metadata": {"full_name": "delta-io/delta-rs"},
		"releases": [],
		"issues": [],
		"prs": []
	}`
	if err := os.WriteFile(bundlePath, []byte(broken), 0644); err != nil {
		t.Fatal(err)
	}

	err := runReport(context.Background(), reportOptions{
		configPath: configPath,
		repos:      []string{"delta-io/delta-rs"},
	})
	if !errors.Is(err, ghErrors.ErrInvalidBundle) {
		t.Errorf("error = %v, want ErrInvalidBundle", err)
	}
}

func TestRunReport_AnyFailureAborts(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestConfig(t, tmpDir)

	err := runReport(context.Background(), reportOptions{
		configPath: configPath,
		repos:      []string{"delta-io/delta-rs", "nobody/nothing"},
		outputFile: "report.md",
	})
	if !errors.Is(err, ghErrors.ErrRepoNotFound) {
		t.Errorf("error = %v, want ErrRepoNotFound", err)
	}
	if _, statErr := os.Stat(filepath.Join(tmpDir, "data", "report.md")); !os.IsNotExist(statErr) {
		t.Error("no report must be written when any repository fails")
	}
}
