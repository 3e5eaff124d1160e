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

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// backupTimeLayout names backup copies so they sort chronologically.
const backupTimeLayout = "2006-01-02-15-04-05"

// FileStore persists documents in a single directory. Writes are
// serialized; the current file for a name is always the plain name,
// backups carry a UTC timestamp prefix.
type FileStore struct {
	mu      sync.Mutex
	dir     string
	backups bool

	// injected for deterministic backup names in tests
	now func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir, creating it if needed.
// When backups is true, every write keeps a timestamped copy.
func NewFileStore(dir string, backups bool) *FileStore {
	return &FileStore{dir: dir, backups: backups, now: time.Now}
}

// BundleFile returns the canonical file name for a repository's bundle.
func BundleFile(owner, repo string) string {
	return fmt.Sprintf("%s-%s.json", owner, repo)
}

// WriteJSON implements Store.
func (s *FileStore) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return s.write(name, data)
}

// ReadJSON implements Store.
func (s *FileStore) ReadJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s does not contain valid JSON: %w", name, err)
	}
	return nil
}

// WriteText implements Store.
func (s *FileStore) WriteText(name, content string) error {
	return s.write(name, []byte(content))
}

func (s *FileStore) write(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if s.backups {
		stamp := s.now().UTC().Format(backupTimeLayout)
		backupPath := filepath.Join(s.dir, stamp+"_"+name)
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write backup of %s: %w", name, err)
		}
	}
	return nil
}

// Backups lists the timestamped copies stored for name, oldest first.
func (s *FileStore) Backups(name string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list output directory: %w", err)
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base := entry.Name()
		if strings.HasSuffix(base, "_"+name) && base != name {
			matches = append(matches, base)
		}
	}
	return matches, nil
}
