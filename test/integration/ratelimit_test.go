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

package integration

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quaylabs/ghcompare/internal/collect"
	"github.com/quaylabs/ghcompare/test/testutil"
)

func TestFetch_WaitsOutRateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a real rate-limit reset window")
	}

	server := testutil.NewAPIServer(t)
	server.AddRepo("acme", "widgets", testutil.GenerateRepoData("acme", "widgets", testutil.RepoDataSpec{
		Releases: 1,
	}))
	// Reset already in the past: the client still waits its safety
	// buffer before retrying.
	server.RateLimitNext(1, time.Now().Add(-time.Minute))

	collector := collect.NewCollector(newClient(server.URL), log.New(io.Discard))
	start := time.Now()
	bundle, err := collector.FetchRepoBundle(context.Background(), "acme", "widgets")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("FetchRepoBundle failed: %v", err)
	}
	if len(bundle.Releases) != 1 {
		t.Errorf("releases = %d, want 1", len(bundle.Releases))
	}
	if elapsed < 4*time.Second {
		t.Errorf("fetch finished in %v, must wait the reset buffer before retrying", elapsed)
	}
	if elapsed > 15*time.Second {
		t.Errorf("fetch took %v, the wait must track the advertised reset", elapsed)
	}
}
