// Package ident stands in for the object-identity keying the source
// language gets for free (retry counters and XSRF memoization tables keyed
// by Request identity). Go pointers are already comparable, so a Table
// keys directly on the pointer value; the uuid handle it returns exists so
// wrapper code can carry a stable, loggable token across a retry loop
// instead of printing a raw pointer.
package ident

import (
	"sync"

	"github.com/google/uuid"
)

// Table allocates a handle the first time it sees a key and drops it on
// Release, matching spec.md §9's Design Note: "a unique integer allocated
// inside the wrapper when it sees a request for the first time and dropped
// on completion".
type Table struct {
	mu      sync.Mutex
	handles map[interface{}]string
}

// NewTable returns an empty identity table.
func NewTable() *Table {
	return &Table{handles: make(map[interface{}]string)}
}

// Handle returns the stable handle for key, allocating one if this is the
// first time key has been seen.
func (t *Table) Handle(key interface{}) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h, ok := t.handles[key]; ok {
		return h
	}
	h := uuid.NewString()
	t.handles[key] = h
	return h
}

// Release drops the handle associated with key, if any. Call this on
// settlement (success or final rejection) so per-request state does not
// accumulate across the life of a long-running process.
func (t *Table) Release(key interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.handles, key)
}
