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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	ghErrors "github.com/quaylabs/ghcompare/internal/errors"
	"github.com/quaylabs/ghcompare/internal/faults"
)

// Defaults for the REST client.
const (
	DefaultBaseURL    = "https://api.github.com"
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 5 * time.Second
	DefaultTimeout    = 30 * time.Second

	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
)

// errorBodyLimit caps how much of an error response body we read.
const errorBodyLimit = 64 * 1024

// ClientConfig configures a RESTClient. Zero values fall back to the
// package defaults.
type ClientConfig struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
	// Token is the bearer token. Empty means unauthenticated requests.
	Token string
	// MaxRetries is how many times a failed request is retried. The total
	// number of attempts is MaxRetries+1.
	MaxRetries int
	// BaseDelay is the first backoff interval; it doubles on every
	// subsequent retry.
	BaseDelay time.Duration
	// Timeout bounds each individual HTTP request.
	Timeout time.Duration
	// Logger receives retry and rate-limit events. Defaults to the
	// package-level charmbracelet logger.
	Logger *log.Logger
}

// RESTClient talks to the GitHub REST API with bounded retries,
// exponential backoff and rate-limit-aware waiting. It implements Client.
type RESTClient struct {
	baseURL    string
	token      string
	maxRetries int
	baseDelay  time.Duration
	httpClient *http.Client
	logger     *log.Logger
	inspector  faults.Inspector

	// total HTTP requests issued, including retries
	requests int

	// injected for deterministic tests
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// Requests reports how many HTTP requests this client has issued in
// total, retries included.
func (c *RESTClient) Requests() int {
	return c.requests
}

// NewRESTClient creates a RESTClient from the given configuration,
// filling in defaults for unset fields.
func NewRESTClient(cfg ClientConfig) *RESTClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &RESTClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
		inspector:  faults.NewInspector(),
		sleep:      sleepCtx,
		now:        time.Now,
	}
}

// sleepCtx blocks for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// getPath issues a GET against baseURL+path. The query is merged over the
// default parameters, with the caller's values winning on conflict.
func (c *RESTClient) getPath(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	merged := url.Values{"apiVersion": {apiVersion}}
	for key, vals := range query {
		merged[key] = vals
	}
	target := c.baseURL + path + "?" + merged.Encode()
	return c.execute(ctx, target)
}

// getURL issues a GET against an absolute URL exactly as given. Pagination
// continuation URLs already embed their query string, so nothing is added.
func (c *RESTClient) getURL(ctx context.Context, absolute string) (*http.Response, error) {
	return c.execute(ctx, absolute)
}

// execute runs one logical request through the retry loop. On success the
// caller owns the response body. Request rejections (4xx) fail on the
// first attempt; server and transport failures back off exponentially;
// quota exhaustion waits for the advertised reset instead.
func (c *RESTClient) execute(ctx context.Context, target string) (*http.Response, error) {
	var lastErr error
	var lastKind failureKind

retries:
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("building request for %s: %w", target, err)
		}
		req.Header.Set("Accept", acceptHeader)
		req.Header.Set("X-GitHub-Api-Version", apiVersion)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		c.requests++
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr, lastKind = err, failureNetwork
			if attempt == c.maxRetries {
				break
			}
			delay := c.backoff(attempt)
			c.logger.Warn("transport failure, retrying",
				"url", target,
				"kind", c.classifyTransport(err),
				"error", err,
				"attempt", attempt+1,
				"max_attempts", c.maxRetries+1,
				"delay", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		resp.Body.Close()
		apiErr := newAPIError(resp, body)

		switch {
		case rateLimitExhausted(resp):
			lastErr, lastKind = apiErr, failureRateLimit
			if attempt == c.maxRetries {
				break retries
			}
			wait := rateLimitWait(resp.Header, c.now())
			c.logger.Warn("rate limit exhausted, waiting for reset",
				"url", target,
				"attempt", attempt+1,
				"max_attempts", c.maxRetries+1,
				"wait", wait)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}

		case resp.StatusCode >= 500:
			lastErr, lastKind = apiErr, failureServer
			if attempt == c.maxRetries {
				break retries
			}
			delay := c.backoff(attempt)
			c.logger.Warn("server error, backing off",
				"url", target,
				"status", resp.StatusCode,
				"attempt", attempt+1,
				"max_attempts", c.maxRetries+1,
				"delay", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}

		default:
			// 4xx other than quota exhaustion. Retrying cannot help.
			return nil, apiErr
		}
	}

	attempts := c.maxRetries + 1
	switch lastKind {
	case failureNetwork:
		return nil, fmt.Errorf("giving up after %d attempts: %v: %w", attempts, lastErr, ghErrors.ErrNetworkFailure)
	case failureRateLimit:
		return nil, fmt.Errorf("giving up after %d attempts: %v: %w", attempts, lastErr, ghErrors.ErrRateLimitTimeout)
	default:
		return nil, fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
	}
}

type failureKind int

const (
	failureServer failureKind = iota
	failureNetwork
	failureRateLimit
)

// backoff returns baseDelay doubled once per completed attempt.
func (c *RESTClient) backoff(attempt int) time.Duration {
	return c.baseDelay * (1 << attempt)
}

// classifyTransport names the transport failure class for log output.
func (c *RESTClient) classifyTransport(err error) string {
	switch {
	case c.inspector.IsTimeout(err):
		return "timeout"
	case c.inspector.IsDNSError(err):
		return "dns"
	case c.inspector.IsConnectionError(err):
		return "connection"
	default:
		return "other"
	}
}

// getJSON issues a path request and decodes the response body into v.
func (c *RESTClient) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	resp, err := c.getPath(ctx, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
