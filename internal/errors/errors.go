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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrRequestRejected indicates the API rejected the request outright
	// (4xx other than a rate-limit exhaustion). Never retried.
	// Maps to exit code 2.
	ErrRequestRejected = errors.New("request rejected by api")

	// ErrRepoNotFound indicates the specified repository does not exist or is not accessible.
	// Maps to exit code 2.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrServerFailure indicates the API kept returning 5xx responses
	// after the retry budget was exhausted.
	// Maps to exit code 3.
	ErrServerFailure = errors.New("api server failure")

	// ErrNetworkFailure indicates a network connection problem that persisted
	// past the retry budget.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRateLimitTimeout indicates the API rate limit stayed exhausted
	// across every retry attempt.
	// Maps to exit code 2.
	ErrRateLimitTimeout = errors.New("rate limit not lifted within retry budget")

	// ErrInvalidBundle indicates a fetched repository bundle failed shape validation.
	// Maps to exit code 4.
	ErrInvalidBundle = errors.New("invalid repository bundle")
)
