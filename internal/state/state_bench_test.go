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

package state

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

// BenchmarkSaveState benchmarks state saving operations
func BenchmarkSaveState(b *testing.B) {
	tempDir := b.TempDir()
	stateFile := filepath.Join(tempDir, "state.json")

	st := &FetchState{
		Repository:    "org/repo",
		LastFetchTime: time.Now(),
		Releases:      89,
		Issues:        1269,
		PullRequests:  1990,
		Version:       CurrentVersion,
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := SaveState(st, stateFile); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLoadState benchmarks state loading operations
func BenchmarkLoadState(b *testing.B) {
	tempDir := b.TempDir()
	stateFile := filepath.Join(tempDir, "state.json")

	st := &FetchState{
		Repository:    "org/repo",
		LastFetchTime: time.Now(),
		Releases:      89,
		Issues:        1269,
		PullRequests:  1990,
		Version:       CurrentVersion,
	}

	if err := SaveState(st, stateFile); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := LoadState(stateFile); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkConcurrentStateSaves benchmarks concurrent state saves
func BenchmarkConcurrentStateSaves(b *testing.B) {
	tempDir := b.TempDir()

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			stateFile := filepath.Join(tempDir, fmt.Sprintf("state_%d.json", i%10))
			st := &FetchState{
				Repository:    "org/repo",
				LastFetchTime: time.Now(),
				Issues:        i,
				Version:       CurrentVersion,
			}

			if err := SaveState(st, stateFile); err != nil {
				b.Fatal(err)
			}
			i++
		}
	})
}
