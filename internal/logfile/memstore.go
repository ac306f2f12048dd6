package logfile

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is a minimal in-memory tuple store shared by the variant
// drivers whose access method this module does not persist to an actual
// page file — the physical page layout of individual access methods is
// out of scope here. Variants differ in capability profile and FileID
// population, not in how rows are held, so they embed MemStore instead
// of each reimplementing row storage.
type MemStore struct {
	mu     sync.RWMutex
	order  []string // key strings, insertion order, for Scan
	tuples map[string]Tuple
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{tuples: make(map[string]Tuple)}
}

func tupleKey(key Tuple, keyFields []string) string {
	s := ""
	for _, f := range keyFields {
		s += fmt.Sprintf("%v\x00", key[f])
	}
	return s
}

// Insert adds tuple under the key derived from keyFields.
func (s *MemStore) Insert(tuple Tuple, keyFields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := tupleKey(tuple, keyFields)
	if _, exists := s.tuples[k]; !exists {
		s.order = append(s.order, k)
	}
	s.tuples[k] = tuple
	return nil
}

// Delete removes the tuple at key.
func (s *MemStore) Delete(key Tuple, keyFields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := tupleKey(key, keyFields)
	delete(s.tuples, k)
	for i, existing := range s.order {
		if existing == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Fetch retrieves the tuple at key, if present.
func (s *MemStore) Fetch(key Tuple, keyFields []string) (Tuple, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tuples[tupleKey(key, keyFields)]
	return t, ok
}

// Len reports the number of stored tuples.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// sliceCursor walks a fixed snapshot of tuples, implementing Cursor.
type sliceCursor struct {
	tuples []Tuple
	pos    int
}

func (c *sliceCursor) Next(ctx context.Context) (Tuple, bool, error) {
	if c.pos >= len(c.tuples) {
		return nil, false, nil
	}
	t := c.tuples[c.pos]
	c.pos++
	return t, true, nil
}

func (c *sliceCursor) Close() error { return nil }

// NewSliceCursor wraps an already-materialized tuple slice as a Cursor,
// for variants (btree, vector, ...) that need to sort or filter a
// MemStore snapshot before handing it back as a Cursor.
func NewSliceCursor(tuples []Tuple) Cursor {
	return &sliceCursor{tuples: tuples}
}

// Snapshot returns a Cursor over every stored tuple in insertion order.
func (s *MemStore) Snapshot() Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Tuple, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.tuples[k])
	}
	return &sliceCursor{tuples: out}
}

// Filter returns a Cursor over tuples for which match returns true.
func (s *MemStore) Filter(match func(Tuple) bool) Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Tuple
	for _, k := range s.order {
		t := s.tuples[k]
		if match(t) {
			out = append(out, t)
		}
	}
	return &sliceCursor{tuples: out}
}
