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

// Package testutil provides common test helpers for ghcompare
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// APIServer is an in-process stand-in for the GitHub REST API. It serves
// repository metadata, releases, issues and pull request listings for
// registered repositories, paginates listings through Link headers, and
// can inject failures ahead of the real responses.
type APIServer struct {
	*httptest.Server

	mu           sync.Mutex
	repos        map[string]*RepoData
	requestCount int
	pageSize     int

	// failures remaining before requests start succeeding
	failCount  int
	failStatus int

	// rate-limited responses remaining before requests start succeeding
	rateLimitCount int
	rateLimitReset int64
}

// RepoData is the canned response set the server holds for one repository.
type RepoData struct {
	Metadata map[string]any
	Releases []map[string]any
	Issues   []map[string]any
	Pulls    []map[string]any
}

// NewAPIServer starts a mock API server. Callers own shutdown via Close.
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()
	s := &APIServer{
		repos:    make(map[string]*RepoData),
		pageSize: 100,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// AddRepo registers canned data under "owner/repo".
func (s *APIServer) AddRepo(owner, repo string, data *RepoData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[owner+"/"+repo] = data
}

// SetPageSize caps listing pages at n items so small datasets still
// exercise pagination.
func (s *APIServer) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = n
}

// FailNext makes the next n requests answer with the given status before
// normal serving resumes.
func (s *APIServer) FailNext(n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCount = n
	s.failStatus = status
}

// RateLimitNext makes the next n requests answer as quota exhaustion with
// the given reset timestamp.
func (s *APIServer) RateLimitNext(n int, reset time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateLimitCount = n
	s.rateLimitReset = reset.Unix()
}

// Requests reports how many requests the server has answered.
func (s *APIServer) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCount
}

func (s *APIServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requestCount++

	if s.rateLimitCount > 0 {
		s.rateLimitCount--
		reset := s.rateLimitReset
		s.mu.Unlock()
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
		return
	}
	if s.failCount > 0 {
		s.failCount--
		status := s.failStatus
		s.mu.Unlock()
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"message": %q}`, http.StatusText(status))
		return
	}
	pageSize := s.pageSize
	s.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "repos" {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	data, ok := s.repos[parts[1]+"/"+parts[2]]
	s.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
		return
	}

	if len(parts) == 3 {
		writeJSON(w, data.Metadata)
		return
	}

	switch parts[3] {
	case "releases":
		s.writePage(w, r, data.Releases, pageSize)
	case "issues":
		s.writePage(w, r, filterByState(data.Issues, r.URL.Query().Get("state")), pageSize)
	case "pulls":
		s.writePage(w, r, filterByState(data.Pulls, r.URL.Query().Get("state")), pageSize)
	default:
		http.NotFound(w, r)
	}
}

// writePage slices items into pages and advertises the next one through
// the Link header, the way the real listing endpoints do.
func (s *APIServer) writePage(w http.ResponseWriter, r *http.Request, items []map[string]any, pageSize int) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	if end < len(items) {
		query := r.URL.Query()
		query.Set("page", strconv.Itoa(page+1))
		w.Header().Set("Link", fmt.Sprintf(`<%s%s?%s>; rel="next"`, s.URL, r.URL.Path, query.Encode()))
	}
	writeJSON(w, items[start:end])
}

// filterByState keeps items matching the state query. An empty or "all"
// state keeps everything.
func filterByState(items []map[string]any, state string) []map[string]any {
	if state == "" || state == "all" {
		return items
	}
	var filtered []map[string]any
	for _, item := range items {
		if item["state"] == state {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
