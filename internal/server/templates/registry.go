package templates

import (
	"bytes"
	"sort"
	"sync"
)

// Registry is the in-memory table answering verification queries. Entries
// are only ever added or overwritten; nothing is removed for the lifetime of
// the process.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]byte)}
}

// Merge inserts every entry of batch under a single write lock, overwriting
// existing IDs, and returns the resulting size.
func (r *Registry) Merge(batch map[string][]byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, data := range batch {
		r.entries[id] = data
	}
	return len(r.entries)
}

// Match returns the first ID, in ascending order, whose payload equals data.
func (r *Registry) Match(data []byte) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range sortedKeys(r.entries) {
		if bytes.Equal(r.entries[id], data) {
			return id, true
		}
	}
	return "", false
}

func (r *Registry) Get(id string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.entries[id]
	return data, ok
}

// IDs returns the registered identifiers in ascending order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.entries)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
