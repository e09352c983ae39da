package index

import (
	"sync"

	"github.com/docsift/docsift/core"
)

// Index is the in-memory semantic index: exactly one Entry per indexed
// section id.
//
// Entries are never mutated in place. Publishing an entry for an id that is
// already present atomically replaces the old mapping, so concurrent readers
// always observe a complete entry. The index is a rebuildable cache, not a
// system of record.
type Index struct {
	mu      sync.RWMutex
	entries map[core.ID]*Entry
}

// NewIndex creates an empty semantic index.
func NewIndex() *Index {
	return &Index{
		entries: make(map[core.ID]*Entry),
	}
}

// Put publishes an entry, replacing any prior entry for the same section id.
func (ix *Index) Put(entry *Entry) {
	if entry == nil {
		return
	}
	ix.mu.Lock()
	ix.entries[entry.SectionId] = entry
	ix.mu.Unlock()
}

// Get returns the entry for a section id, if present.
func (ix *Index) Get(id core.ID) (*Entry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	entry, ok := ix.entries[id]
	return entry, ok
}

// Has reports whether a section id is indexed.
func (ix *Index) Has(id core.ID) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.entries[id]
	return ok
}

// Remove deletes the entry for a section id, if present.
func (ix *Index) Remove(id core.ID) {
	ix.mu.Lock()
	delete(ix.entries, id)
	ix.mu.Unlock()
}

// Len returns the number of indexed sections.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}
