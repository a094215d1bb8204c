// Package notes holds the most recently ingested notes dataset for the read
// endpoints. Two independently keyed stores exist, one per account; each
// successful parse replaces the previous contents wholesale (last writer
// wins). The stores are injected into the pipeline rather than reached as
// globals so tests get a fresh instance each.
package notes

import (
	"sync"

	"leadlens/internal/core"
)

type Store struct {
	mu   sync.RWMutex
	rows []core.NoteRow
}

func NewStore() *Store {
	return &Store{}
}

// SetData atomically replaces the store's entire contents.
func (s *Store) SetData(rows []core.NoteRow) {
	copied := make([]core.NoteRow, len(rows))
	copy(copied, rows)
	s.mu.Lock()
	s.rows = copied
	s.mu.Unlock()
}

// GetData returns a copy of the current contents; callers may mutate it
// freely.
func (s *Store) GetData() []core.NoteRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.NoteRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len reports the current row count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
