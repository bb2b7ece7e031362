package dataset

import "sync"

// Store is the single current-table slot. The upload path writes it
// wholesale; query operations read it. There is exactly one table at a time:
// loading a new file fully supersedes the old one, never merges.
//
// The mutex exists because the HTTP surface serves reads concurrently; the
// table itself is immutable once loaded, so readers share the pointer.
type Store struct {
	mu    sync.RWMutex
	table *Table
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the current table. Readers never observe a partial update:
// they either get the previous table or the new one.
func (s *Store) Load(t *Table) {
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()
}

// Current returns the loaded table, or ErrNoData when the slot is empty.
func (s *Store) Current() (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, ErrNoData
	}
	return s.table, nil
}

// Clear empties the slot.
func (s *Store) Clear() {
	s.mu.Lock()
	s.table = nil
	s.mu.Unlock()
}

// Loaded reports whether a table is present.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil
}
