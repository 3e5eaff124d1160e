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
	"net/http"
	"strconv"
	"time"
)

// Rate limit response headers set by the GitHub API.
const (
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
)

// resetBuffer is added on top of the advertised reset time. The reset
// header has one-second granularity and the API clock can lag ours, so
// waking exactly at the advertised instant risks another 403.
const resetBuffer = 5 * time.Second

// rateLimitExhausted reports whether the response is a quota exhaustion.
// GitHub signals it as 403 with a zero remaining-requests header; a plain
// 403 without that header is an authorization failure, not a rate limit.
func rateLimitExhausted(resp *http.Response) bool {
	return resp.StatusCode == http.StatusForbidden &&
		resp.Header.Get(headerRateLimitRemaining) == "0"
}

// rateLimitWait computes how long to sleep before the quota window resets.
// The reset header holds a Unix epoch timestamp. A reset in the past still
// yields the buffer, never a negative duration.
func rateLimitWait(h http.Header, now time.Time) time.Duration {
	wait := time.Duration(0)
	if epoch, err := strconv.ParseInt(h.Get(headerRateLimitReset), 10, 64); err == nil {
		wait = time.Unix(epoch, 0).Sub(now)
	}
	if wait < 0 {
		wait = 0
	}
	return wait + resetBuffer
}
