// Package history persists named calculation snapshots to a single JSON
// file on the local device. The list is bounded and newest-first; a missing
// or corrupt file is treated as an empty list and silently replaced on the
// next write.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
)

// Row is one field's saved state.
type Row struct {
	Code   string  `json:"code"`
	Text   string  `json:"text"`
	Amount float64 `json:"amount"`
}

// Snapshot is a complete saved calculation. Immutable once stored.
type Snapshot struct {
	ID          string    `json:"id"`
	At          time.Time `json:"at"`
	RateType    string    `json:"rateType"`
	ActiveCount int       `json:"activeCount"`
	SourceIndex int       `json:"sourceIndex"`
	Rows        []Row     `json:"rows"`
}

// Store reads and writes the bounded snapshot list. Every operation is a
// full read-modify-write of the backing file; there are no concurrent
// writers in this single-threaded application.
type Store struct {
	path string
	max  int
}

// NewStore builds a store over the given file path, keeping at most max
// snapshots.
func NewStore(filePath string, max int) *Store {
	if max <= 0 {
		max = c.MaxHistory
	}

	return &Store{path: filePath, max: max}
}

// DefaultPath is the store's standard location in the user's data dir.
func DefaultPath() string {
	return path.Join(xdg.DataHome, c.DefaultConfigParentDir, c.HistoryFileName)
}

// List returns the persisted snapshots, newest first. Storage that is
// absent or unparseable yields an empty list; corruption never surfaces to
// the caller.
func (st *Store) List() []Snapshot {
	b, err := os.ReadFile(st.path)
	if err != nil {
		return []Snapshot{}
	}

	var list []Snapshot
	if err := json.Unmarshal(b, &list); err != nil {
		return []Snapshot{}
	}

	return list
}

// Save prepends the snapshot, truncates the list to the configured maximum,
// and persists. Missing ID and timestamp are filled in.
func (st *Store) Save(s Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	if s.At.IsZero() {
		s.At = time.Now()
	}

	list := append([]Snapshot{s}, st.List()...)
	if len(list) > st.max {
		list = list[:st.max]
	}

	return st.persist(list)
}

// Delete removes the i'th snapshot (newest-first ordering, matching List).
func (st *Store) Delete(i int) error {
	list := st.List()
	if i < 0 || i >= len(list) {
		return fmt.Errorf("no saved calculation at index %v", i)
	}

	return st.persist(append(list[:i], list[i+1:]...))
}

// Clear removes every snapshot.
func (st *Store) Clear() error {
	return st.persist([]Snapshot{})
}

func (st *Store) persist(list []Snapshot) error {
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.MkdirAll(path.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}

	//nolint:gosec
	if err := os.WriteFile(st.path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write history file %v: %w", st.path, err)
	}

	return nil
}
