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

package output

// Store defines the interface for persisting fetched data and reports.
// This abstraction allows different backends (local directory, object
// storage) to be implemented without changing the core logic.
type Store interface {
	// WriteJSON serializes v and stores it under name.
	WriteJSON(name string, v any) error

	// ReadJSON loads the stored document under name into v.
	ReadJSON(name string, v any) error

	// WriteText stores a plain text document under name.
	WriteText(name, content string) error
}
