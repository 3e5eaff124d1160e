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
	"net/http"
	"net/url"
	"strings"
)

// pageSize is the page size requested on every listing. GitHub caps
// per_page at 100.
const pageSize = "100"

// PageIterator lazily walks a paginated JSON-array endpoint. Items are
// yielded in API order; a new page is fetched only when the buffered one
// is drained. Iterators are single-use: to start over, create a new one.
type PageIterator[T any] struct {
	client *RESTClient
	path   string
	query  url.Values

	started bool
	nextURL string
	buffer  []T
	pos     int
}

// newPageIterator prepares an iterator over baseURL+path. The query is
// copied with per_page forced to the maximum; it applies to the first
// request only. Continuation URLs from the Link header are followed
// verbatim.
func newPageIterator[T any](client *RESTClient, path string, query url.Values) *PageIterator[T] {
	q := url.Values{"per_page": {pageSize}}
	for key, vals := range query {
		if key == "per_page" {
			continue
		}
		q[key] = vals
	}
	return &PageIterator[T]{client: client, path: path, query: q}
}

// Next returns the next item. The second return value is false when the
// listing is exhausted.
func (it *PageIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for it.pos >= len(it.buffer) {
		if it.started && it.nextURL == "" {
			return zero, false, nil
		}
		if err := it.fetchPage(ctx); err != nil {
			return zero, false, err
		}
	}
	item := it.buffer[it.pos]
	it.pos++
	return item, true, nil
}

// Collect drains the iterator into a slice.
func (it *PageIterator[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for {
		item, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}

func (it *PageIterator[T]) fetchPage(ctx context.Context) error {
	resp, err := it.request(ctx)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var page []T
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return fmt.Errorf("decoding page from %s: %w", it.path, err)
	}
	it.buffer = page
	it.pos = 0
	it.started = true
	it.nextURL = parseLinkNext(resp.Header.Get("Link"))
	return nil
}

func (it *PageIterator[T]) request(ctx context.Context) (*http.Response, error) {
	if !it.started {
		return it.client.getPath(ctx, it.path, it.query)
	}
	return it.client.getURL(ctx, it.nextURL)
}

// parseLinkNext extracts the rel="next" target from an RFC 5988 Link
// header. Returns "" when the header has no next relation.
func parseLinkNext(header string) string {
	for _, part := range strings.Split(header, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		for _, attr := range sections[1:] {
			if strings.TrimSpace(attr) == `rel="next"` {
				return target
			}
		}
	}
	return ""
}
