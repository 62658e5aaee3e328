// Package status collects named counters and labels for the run report.
// Writers cache the returned pointers and update them lock-free.
package status

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Board is a thread-safe set of counters and labels
type Board struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Uint64
	labels   map[string]*atomic.Pointer[string]
}

func NewBoard() *Board {
	return &Board{
		counters: make(map[string]*atomic.Uint64),
		labels:   make(map[string]*atomic.Pointer[string]),
	}
}

// Counter returns the counter for name, creating it on first use
func (b *Board) Counter(name string) *atomic.Uint64 {
	return getOrCreate(&b.mu, b.counters, name)
}

// SetLabel stores a text value
func (b *Board) SetLabel(name, value string) {
	getOrCreate(&b.mu, b.labels, name).Store(&value)
}

// Label returns a text value, empty when unset
func (b *Board) Label(name string) string {
	b.mu.RLock()
	p, ok := b.labels[name]
	b.mu.RUnlock()
	if !ok {
		return ""
	}
	if s := p.Load(); s != nil {
		return *s
	}
	return ""
}

// Lines renders labels then counters as name=value, each group sorted
func (b *Board) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.labels)+len(b.counters))
	for _, name := range sortedKeys(b.labels) {
		v := ""
		if s := b.labels[name].Load(); s != nil {
			v = *s
		}
		out = append(out, fmt.Sprintf("%s=%s", name, v))
	}
	for _, name := range sortedKeys(b.counters) {
		out = append(out, fmt.Sprintf("%s=%d", name, b.counters[name].Load()))
	}
	return out
}

func getOrCreate[T any](mu *sync.RWMutex, m map[string]*T, name string) *T {
	mu.RLock()
	ptr, ok := m[name]
	mu.RUnlock()
	if ok {
		return ptr
	}

	mu.Lock()
	defer mu.Unlock()
	// Another writer may have created it between the locks
	if ptr, ok := m[name]; ok {
		return ptr
	}
	ptr = new(T)
	m[name] = ptr
	return ptr
}

func sortedKeys[T any](m map[string]*T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
