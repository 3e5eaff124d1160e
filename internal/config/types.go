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

// Package config types define the configuration structures used throughout
// ghcompare. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for ghcompare.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Report   ReportConfig   `yaml:"report"`
}

// GitHubConfig contains GitHub-specific settings including the API endpoint
// and authentication configuration. This allows easy configuration for
// GitHub Enterprise deployments by specifying a custom endpoint.
type GitHubConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	TokenEnv    string `yaml:"token_env"`
	// Fixtures selects the canned-data client instead of the real API.
	Fixtures bool `yaml:"fixtures"`
}

// DefaultsConfig contains default settings that apply to all fetch
// operations unless overridden by command-line flags. These settings
// control the retry behavior and where results land on disk.
type DefaultsConfig struct {
	// RetryAttempts is the number of retries after a failed request.
	RetryAttempts int `yaml:"retry_attempts"`
	// RetryDelaySeconds is the first backoff interval; it doubles on
	// every subsequent retry.
	RetryDelaySeconds int    `yaml:"retry_delay_seconds"`
	OutputDir         string `yaml:"output_dir"`
	StateDir          string `yaml:"state_dir"`
	// KeepBackups makes the output writer keep a timestamped copy of
	// every file it overwrites.
	KeepBackups bool `yaml:"keep_backups"`
}

// ReportConfig controls which repositories the report command compares
// and how stale stored data may be before a warning is printed.
type ReportConfig struct {
	// Repositories in "owner/repo" form, compared in listed order.
	Repositories []string `yaml:"repositories"`
	// MaxAgeHours is the freshness threshold for stored bundles.
	// Zero disables the staleness warning.
	MaxAgeHours int `yaml:"max_age_hours"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
			TokenEnv:    "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			RetryAttempts:     3,
			RetryDelaySeconds: 5,
			OutputDir:         "~/.ghcompare/data",
			StateDir:          "~/.ghcompare/state",
		},
		Report: ReportConfig{
			Repositories: []string{
				"delta-io/delta-rs",
				"apache/iceberg-python",
				"apache/hudi-rs",
			},
			MaxAgeHours: 24,
		},
	}
}
