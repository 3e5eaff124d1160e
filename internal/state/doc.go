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

// Package state provides atomic persistence of per-repository fetch state.
//
// After every successful bundle fetch the tool records when it happened and
// how much data came back; the report command reads this back to warn when
// stored data has gone stale. It uses atomic file operations, SHA256
// checksums for integrity validation, and clear schema versioning for
// forward compatibility.
//
// State files are stored in a standard location (~/.ghcompare/state/) and
// use a JSON format for human readability and debugging. Every state write
// is atomic, using a write-to-temp-and-rename pattern to prevent corruption
// during crashes or power loss.
//
// Example usage:
//
//	st := &FetchState{
//	    Repository:    "delta-io/delta-rs",
//	    LastFetchTime: time.Now(),
//	    Issues:        1269,
//	}
//	err := SaveState(st, FilePath("", "delta-io/delta-rs"))
package state
