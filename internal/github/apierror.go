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

package github

import (
	"encoding/json"
	"fmt"
	"net/http"

	ghErrors "github.com/quaylabs/ghcompare/internal/errors"
)

// APIError represents a non-success response from the GitHub API.
// It retains the status code and the decoded error message so callers can
// report what the API actually said.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string

	// rate limit exhaustion is signalled through headers, not the body,
	// so the executor records it here at construction time
	rateLimited bool
}

// apiErrorBody is the JSON error envelope GitHub returns on failures.
type apiErrorBody struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode:  resp.StatusCode,
		rateLimited: rateLimitExhausted(resp),
	}
	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Message
		apiErr.DocumentationURL = envelope.DocumentationURL
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api: %d %s", e.StatusCode, e.Message)
}

// Unwrap maps the response class onto the application's sentinel errors so
// callers can use errors.Is without inspecting status codes.
func (e *APIError) Unwrap() []error {
	switch {
	case e.rateLimited:
		return nil
	case e.StatusCode == http.StatusNotFound:
		return []error{ghErrors.ErrRequestRejected, ghErrors.ErrRepoNotFound}
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return []error{ghErrors.ErrRequestRejected}
	case e.StatusCode >= 500:
		return []error{ghErrors.ErrServerFailure}
	}
	return nil
}
