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

// Package output persists fetched bundles and rendered reports to a
// directory on disk. Bundles are stored as JSON, reports as text. When
// backups are enabled, every write additionally keeps a timestamped copy
// alongside the current file, so earlier runs remain inspectable after
// an overwrite.
//
// Example usage:
//
//	store := output.NewFileStore("/var/lib/ghcompare", true)
//	if err := store.WriteJSON("delta-io-delta-rs.json", bundle); err != nil {
//	    log.Fatal(err)
//	}
package output
