package dataset

import "sync/atomic"

// Store is the process-wide handle to the current table. The loader
// publishes a fully-built table exactly once per load; readers always see
// either the previous table or the new one, never a partial state.
type Store struct {
	table atomic.Pointer[Table]
}

// NewStore creates a store holding the empty table.
func NewStore() *Store {
	s := &Store{}
	s.table.Store(Empty())
	return s
}

// Table returns the current table. It never returns nil: before the first
// successful load it returns the empty table.
func (s *Store) Table() *Table {
	return s.table.Load()
}

// Publish atomically replaces the current table.
func (s *Store) Publish(t *Table) {
	if t == nil {
		t = Empty()
	}
	s.table.Store(t)
}
